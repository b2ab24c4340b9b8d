package resolve

import (
	"context"
	"path"
	"strings"
)

// StaticResolver resolves hosts from a fixed table. Keys are matched
// case-insensitively and may be glob patterns such as "10.0.1.*" or "*.redis.svc".
type StaticResolver struct {
	exact    map[string]string
	patterns []pattern
}

type pattern struct {
	glob    string
	program string
}

func NewStaticResolver(table map[string]string) *StaticResolver {
	r := &StaticResolver{exact: make(map[string]string, len(table))}
	for host, program := range table {
		host = strings.ToLower(host)
		if strings.ContainsAny(host, "*?[") {
			r.patterns = append(r.patterns, pattern{glob: host, program: program})
			continue
		}
		r.exact[host] = program
	}
	return r
}

func (r *StaticResolver) Resolve(_ context.Context, host string) (string, bool) {
	host = strings.ToLower(host)
	if program, ok := r.exact[host]; ok {
		return program, true
	}
	for _, p := range r.patterns {
		if matched, _ := path.Match(p.glob, host); matched {
			return p.program, true
		}
	}
	return "", false
}
