package transform

import (
	"context"

	"lognorm/internal/event"
)

// Remap adds static fields to each event's extraData. Keys already present
// on the event are left alone.
type Remap struct {
	AddFields map[string]string
}

func (t *Remap) Run(ctx context.Context, in <-chan *event.NormalizedEvent, out chan<- *event.NormalizedEvent) error {
	for evt := range in {
		if len(t.AddFields) > 0 {
			evt = t.apply(evt)
		}

		select {
		case out <- evt:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (t *Remap) apply(evt *event.NormalizedEvent) *event.NormalizedEvent {
	c := evt.Clone()
	for k, v := range t.AddFields {
		if _, exists := c.ExtraData[k]; exists {
			continue
		}
		c.SetExtra(k, v)
	}
	return c
}
