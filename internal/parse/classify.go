package parse

import (
	"regexp"
	"strings"
)

// Kind is the handling path a line is routed to.
type Kind int

const (
	KindContinuation Kind = iota
	KindClient
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	default:
		return "continuation"
	}
}

const nilValue = "-"

var clientRegex = regexp.MustCompile(`^\{"type":\s*"(?i:client)".*\}$`)

// STRUCTURED-DATA is greedy up to the last ']' so adjacent elements stay in one capture.
var serverRegex = regexp.MustCompile(`^<(?P<prival>\d{1,3})>(?P<version>\d{0,2}) ` +
	`(?P<timestamp>\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z|-) ` +
	`(?P<host>[!-~]+) (?P<app>[!-~]+) (?P<pid>[!-~]+) (?P<msgid>[!-~]+) ` +
	`(?P<sd>-|\[.*\])(?: (?P<message>.*))?$`)

// Classification is the result of Classify. For KindServer it carries the
// named captures of the syslog pattern so they are not re-extracted.
type Classification struct {
	Kind   Kind
	Line   string
	fields map[string]string
}

// Field returns a named capture of a server line.
func (c Classification) Field(name string) string {
	return c.fields[name]
}

// Classify tags a trimmed line as client, server or continuation.
func Classify(line string) Classification {
	if clientRegex.MatchString(line) {
		return Classification{Kind: KindClient, Line: line}
	}
	if m := serverRegex.FindStringSubmatch(line); m != nil {
		fields := make(map[string]string, len(m))
		for i, name := range serverRegex.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			fields[name] = m[i]
		}
		return Classification{Kind: KindServer, Line: line, fields: fields}
	}
	return Classification{Kind: KindContinuation, Line: line}
}

// ClassifyRaw trims surrounding whitespace before classifying.
func ClassifyRaw(line string) Classification {
	return Classify(strings.TrimSpace(line))
}
