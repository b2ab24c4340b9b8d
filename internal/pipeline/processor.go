package pipeline

import (
	"strings"

	"lognorm/internal/event"
	"lognorm/internal/parse"
	"lognorm/internal/stacktrace"
)

// Stats counts what a Processor has seen.
type Stats struct {
	Lines           int
	Client          int
	Server          int
	Stacktraces     int
	StacktraceLines int // continuation lines folded into Stacktraces
	Emitted         int
	Filtered        int
}

// Processor runs the per-line normalization loop for one input stream.
// It is not safe for concurrent use.
type Processor struct {
	state  parse.State
	agg    stacktrace.Aggregator
	filter event.Type
	stats  Stats
}

// NewProcessor returns a Processor that only emits events of type filter,
// or every event when filter is empty.
func NewProcessor(filter event.Type) *Processor {
	return &Processor{filter: filter}
}

// Process handles one raw line, calling emit for each event it completes.
func (p *Processor) Process(line string, emit func(*event.NormalizedEvent)) {
	p.stats.Lines++
	c := parse.ClassifyRaw(line)

	switch c.Kind {
	case parse.KindClient:
		p.flush(emit)
		p.stats.Client++
		p.emit(parse.ParseClient(&p.state, c.Line), emit)
	case parse.KindServer:
		p.flush(emit)
		p.stats.Server++
		p.emit(parse.ParseServer(&p.state, c), emit)
	default:
		p.agg.Append(c.Line)
	}
}

// Finish flushes a pending stack trace at end of input.
func (p *Processor) Finish(emit func(*event.NormalizedEvent)) {
	p.flush(emit)
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

// LastTimestamp is the timestamp the next flushed stack trace would carry.
func (p *Processor) LastTimestamp() string {
	return p.state.LastTimestamp
}

func (p *Processor) flush(emit func(*event.NormalizedEvent)) {
	buffered := p.agg.Lines()
	if n, ok := p.agg.Flush(p.state.LastTimestamp); ok {
		p.stats.Stacktraces++
		p.stats.StacktraceLines += buffered
		p.emit(n, emit)
	}
}

func (p *Processor) emit(n *event.NormalizedEvent, emit func(*event.NormalizedEvent)) {
	if p.filter != "" && !n.Is(p.filter) {
		p.stats.Filtered++
		return
	}
	p.stats.Emitted++
	emit(n)
}

// Normalize runs lines through a fresh Processor and returns the emitted events.
func Normalize(lines []string, filter event.Type) []*event.NormalizedEvent {
	var out []*event.NormalizedEvent
	collect := func(n *event.NormalizedEvent) { out = append(out, n) }

	p := NewProcessor(filter)
	for _, l := range lines {
		p.Process(l, collect)
	}
	p.Finish(collect)
	return out
}

// ParseFilter upper-cases the optional type filter argument. Unknown names
// are kept as given and simply match nothing.
func ParseFilter(s string) event.Type {
	return event.Type(strings.ToUpper(strings.TrimSpace(s)))
}
