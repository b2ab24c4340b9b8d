package parse

import (
	"strconv"

	"lognorm/internal/event"
)

// severityType maps the low three bits of PRIVAL to an event type.
func severityType(severity int) event.Type {
	switch {
	case severity >= 0 && severity <= 3:
		return event.TypeError
	case severity == 4:
		return event.TypeWarning
	case severity >= 5 && severity <= 6:
		return event.TypeInfo
	case severity == 7:
		return event.TypeDebug
	default:
		return ""
	}
}

// ParseServer normalizes a line classified as KindServer.
func ParseServer(state *State, c Classification) *event.NormalizedEvent {
	n := &event.NormalizedEvent{Logsource: event.LogsourceServer}

	if prival, err := strconv.Atoi(c.Field("prival")); err == nil {
		n.Type = severityType(prival & 7)
	}

	if v := c.Field("host"); v != nilValue {
		n.Host = v
	}
	if v := c.Field("app"); v != nilValue {
		n.Program = v
	}
	if v := c.Field("timestamp"); v != nilValue {
		n.Timestamp = v
		state.observe(v)
	}
	if v := c.Field("message"); v != nilValue {
		n.Message = v
	}

	if sd := c.Field("sd"); sd != nilValue {
		parsed := ParseStructuredData(sd)
		if env, ok := parsed.Main["env"]; ok {
			n.Env = env
		}
		if params := parsed.Params(); len(params) > 0 {
			n.ExtraData = params
		}
	}

	if v := c.Field("pid"); v != nilValue {
		n.SetExtra("pid", v)
	}
	if v := c.Field("msgid"); v != nilValue {
		n.SetExtra("mid", v)
	}

	return n
}
