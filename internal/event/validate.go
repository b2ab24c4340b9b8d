package event

import (
	"fmt"
	"strings"
)

// ParseType upper-cases s and checks it names a known Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case TypeInfo, TypeError, TypeWarning, TypeDebug:
		return t, nil
	}
	return "", fmt.Errorf("event: unknown type %q", s)
}

// Is reports whether the event has type t. An event without a type never matches.
func (e *NormalizedEvent) Is(t Type) bool {
	return e.Type != "" && e.Type == t
}
