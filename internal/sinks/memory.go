package sinks

import (
	"context"
	"sync"

	"lognorm/internal/event"
)

// MemorySink collects events in arrival order.
type MemorySink struct {
	mu     sync.Mutex
	events []*event.NormalizedEvent
}

func (s *MemorySink) Run(ctx context.Context, in <-chan *event.NormalizedEvent) error {
	for evt := range in {
		s.mu.Lock()
		s.events = append(s.events, evt)
		s.mu.Unlock()
	}
	return nil
}

// Events returns a snapshot of everything received so far.
func (s *MemorySink) Events() []*event.NormalizedEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*event.NormalizedEvent, len(s.events))
	copy(out, s.events)
	return out
}
