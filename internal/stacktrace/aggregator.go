// Package stacktrace coalesces runs of unrecognized lines into a single
// synthetic error event.
package stacktrace

import (
	"strings"

	"lognorm/internal/event"
)

// Separator joins buffered lines in the flushed message.
const Separator = " | "

// Aggregator buffers continuation lines until Flush is called.
// The zero value is an idle aggregator ready for use.
type Aggregator struct {
	buf    strings.Builder
	active bool
	lines  int
}

// Append buffers line and moves the aggregator into the buffering state.
func (a *Aggregator) Append(line string) {
	if a.buf.Len() > 0 {
		a.buf.WriteString(Separator)
	}
	a.buf.WriteString(line)
	a.active = true
	a.lines++
}

// Active reports whether lines are buffered and waiting for a flush.
func (a *Aggregator) Active() bool {
	return a.active
}

// Lines returns the number of lines appended since the last flush.
func (a *Aggregator) Lines() int {
	return a.lines
}

// Flush returns the buffered run as an ERROR event stamped with lastTimestamp
// and resets the aggregator. It returns false when nothing is buffered.
func (a *Aggregator) Flush(lastTimestamp string) (*event.NormalizedEvent, bool) {
	if !a.active {
		return nil, false
	}
	n := &event.NormalizedEvent{
		Type:      event.TypeError,
		Timestamp: lastTimestamp,
		Message:   a.buf.String(),
	}
	a.buf.Reset()
	a.active = false
	a.lines = 0
	return n, true
}
