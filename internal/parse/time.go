package parse

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// isoLayout is the millisecond-precision UTC form every timestamp is rendered in.
const isoLayout = "2006-01-02T15:04:05.000Z"

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RubyDate,
	time.UnixDate,
	time.ANSIC,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"Jan 2, 2006 15:04:05",
	"January 2, 2006",
}

// clientTimestamp converts a client "timestamp" value to isoLayout.
// Strings are tried against timeLayouts, zone-less ones taken as UTC; numbers
// are milliseconds since the Unix epoch. ok is false for anything else.
func clientTimestamp(v any) (string, bool) {
	var t time.Time
	switch x := v.(type) {
	case string:
		parsed, ok := parseTimeString(strings.TrimSpace(x))
		if !ok {
			return "", false
		}
		t = parsed
	case json.Number:
		ms, err := x.Float64()
		if err != nil {
			return "", false
		}
		t = fromMillis(ms)
	case float64:
		t = fromMillis(x)
	default:
		return "", false
	}
	if t.IsZero() || t.Year() < 0 || t.Year() > 9999 {
		return "", false
	}
	return t.UTC().Format(isoLayout), true
}

func parseTimeString(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fromMillis(ms float64) time.Time {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}
	}
	return time.UnixMilli(int64(ms)).UTC()
}
