package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"lognorm/internal/event"
)

// clientFields are the keys mapped onto the normalized schema; every other key
// of a client object ends up in ExtraData.
var clientFields = map[string]bool{
	"type":        true,
	"message":     true,
	"error":       true,
	"timestamp":   true,
	"environment": true,
	"ip":          true,
	"app":         true,
}

type decodeStatus int

const (
	unparseable decodeStatus = iota
	parsed
)

type clientResult struct {
	status decodeStatus
	raw    map[string]any
}

func decodeClient(line string) clientResult {
	dec := json.NewDecoder(bytes.NewReader([]byte(line)))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return clientResult{status: unparseable}
	}
	if _, err := dec.Token(); err != io.EOF {
		return clientResult{status: unparseable}
	}
	return clientResult{status: parsed, raw: raw}
}

// ParseClient normalizes a line classified as KindClient. A line that is not
// valid JSON yields an event with every field left empty.
func ParseClient(state *State, line string) *event.NormalizedEvent {
	n := &event.NormalizedEvent{}

	res := decodeClient(line)
	if res.status == unparseable {
		return n
	}
	raw := res.raw

	n.Logsource = event.LogsourceClient

	msg, isInfo := raw["message"]
	if isInfo {
		n.Type = event.TypeInfo
	} else {
		n.Type = event.TypeError
		msg = raw["error"]
	}
	if truthy(msg) {
		n.Message = text(msg)
	}

	if v := raw["app"]; truthy(v) {
		n.Program = text(v)
	}
	if v := raw["ip"]; truthy(v) {
		n.Host = text(v)
	}
	if v := raw["environment"]; truthy(v) {
		n.Env = text(v)
	}
	if v := raw["timestamp"]; truthy(v) {
		if ts, ok := clientTimestamp(v); ok {
			n.Timestamp = ts
			state.observe(ts)
		}
	}

	for k, v := range raw {
		if clientFields[k] {
			continue
		}
		n.SetExtra(k, v)
	}

	return n
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case json.Number:
		f, err := x.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
