package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"

	"lognorm/internal/event"
	"lognorm/internal/logging"
	"lognorm/internal/resolve"
)

// Source produces raw lines and returns once its input is exhausted or ctx is done.
type Source interface {
	Run(ctx context.Context, out chan<- event.Line) error
}

// Sink consumes normalized events until in is closed.
type Sink interface {
	Run(ctx context.Context, in <-chan *event.NormalizedEvent) error
}

// Transformer rewrites events between the processor and the sinks. It must
// not mutate an event in place; Clone it first.
type Transformer interface {
	Run(ctx context.Context, in <-chan *event.NormalizedEvent, out chan<- *event.NormalizedEvent) error
}

type Pipeline struct {
	Sources    map[string]Source
	Transforms []Transformer
	Sinks      []Sink
	Filter     event.Type
	Resolver   resolve.Resolver // optional, fills Program from Host
	Logger     hclog.Logger
}

// sourcedLine is a line tagged with the name of the source it came from.
// eof marks the end of that source's stream; kind is only set on it.
type sourcedLine struct {
	source string
	kind   string
	text   string
	eof    bool
}

func (p *Pipeline) Run(ctx context.Context) error {
	if len(p.Sources) == 0 {
		return fmt.Errorf("pipeline: no sources provided")
	}
	if len(p.Sinks) == 0 {
		return fmt.Errorf("pipeline: no sink provided")
	}
	log := logging.OrNull(p.Logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan sourcedLine, 100)
	parsed := make(chan *event.NormalizedEvent, 100)
	errCh := make(chan error, len(p.Sources)+len(p.Transforms)+len(p.Sinks))

	fail := func(err error) {
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		errCh <- err
		cancel()
	}

	names := make([]string, 0, len(p.Sources))
	for name := range p.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	var wg sync.WaitGroup
	for _, name := range names {
		src := p.Sources[name]
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw := make(chan event.Line, 100)
			forwarded := make(chan struct{})
			var kind string
			go func() {
				defer close(forwarded)
				for l := range raw {
					kind = l.Source
					lines <- sourcedLine{source: name, text: l.Text}
				}
			}()

			log.Debug("source started", "source", name)
			err := src.Run(ctx, raw)
			close(raw)
			<-forwarded
			lines <- sourcedLine{source: name, kind: kind, eof: true}

			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("source failed", "source", name, "error", err)
				fail(fmt.Errorf("source %s: %w", name, err))
				return
			}
			log.Debug("source finished", "source", name)
		}()
	}
	go func() {
		wg.Wait()
		close(lines)
	}()

	// Single consumer: all parser state is owned by this goroutine.
	go func() {
		defer close(parsed)
		procs := make(map[string]*Processor, len(p.Sources))
		emit := func(n *event.NormalizedEvent) {
			p.resolve(ctx, n)
			parsed <- n
		}
		for l := range lines {
			proc, ok := procs[l.source]
			if !ok {
				proc = NewProcessor(p.Filter)
				procs[l.source] = proc
			}
			if l.eof {
				proc.Finish(emit)
				st := proc.Stats()
				log.Info("input complete", "source", l.source, "kind", l.kind, "lines", st.Lines,
					"client", st.Client, "server", st.Server, "stacktraces", st.Stacktraces,
					"stacktrace_lines", st.StacktraceLines, "emitted", st.Emitted, "filtered", st.Filtered)
				continue
			}
			proc.Process(l.text, emit)
		}
	}()

	stream := (<-chan *event.NormalizedEvent)(parsed)
	for _, tr := range p.Transforms {
		in := stream
		out := make(chan *event.NormalizedEvent, 100)
		go func() {
			defer close(out)
			err := tr.Run(ctx, in, out)
			// keep upstream moving if the transform gave up early
			for range in {
			}
			fail(err)
		}()
		stream = out
	}

	p.fanOut(ctx, stream, fail, cancel)

	select {
	case err := <-errCh:
		log.Error("pipeline stopped with error", "error", err)
		return err
	default:
	}
	return nil
}

// fanOut hands every event to each sink and blocks until all sinks return.
// Once every sink has returned, stop is called so the sources wind down
// instead of reading input nobody will see.
func (p *Pipeline) fanOut(ctx context.Context, stream <-chan *event.NormalizedEvent, fail func(error), stop context.CancelFunc) {
	var wg sync.WaitGroup
	var running atomic.Int32
	running.Store(int32(len(p.Sinks)))
	chans := make([]chan *event.NormalizedEvent, len(p.Sinks))
	done := make([]chan struct{}, len(p.Sinks))

	for i, sink := range p.Sinks {
		chans[i] = make(chan *event.NormalizedEvent, 100)
		done[i] = make(chan struct{})
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer close(done[i])
			fail(sink.Run(ctx, chans[i]))
			if running.Add(-1) == 0 {
				stop()
			}
		}()
	}

	for n := range stream {
		for i := range chans {
			select {
			case chans[i] <- n:
			case <-done[i]:
			}
		}
	}
	for i := range chans {
		close(chans[i])
	}
	wg.Wait()
}

// resolve fills an empty Program from Host using the configured Resolver.
// n has not been handed to any sink yet.
func (p *Pipeline) resolve(ctx context.Context, n *event.NormalizedEvent) {
	if p.Resolver == nil || n.Program != "" || n.Host == "" {
		return
	}
	if svc, ok := p.Resolver.Resolve(ctx, n.Host); ok {
		n.Program = svc
	}
}
