package sinks

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"lognorm/internal/event"
)

// StdoutSink writes one JSON document per event, NDJSON unless Pretty is set.
type StdoutSink struct {
	Pretty bool
	Writer io.Writer // defaults to os.Stdout
}

func (s *StdoutSink) Run(ctx context.Context, in <-chan *event.NormalizedEvent) error {
	w := s.Writer
	if w == nil {
		w = os.Stdout
	}
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if s.Pretty {
		encoder.SetIndent("", "  ")
	}

	for evt := range in {
		if err := encoder.Encode(evt); err != nil {
			return err
		}
	}

	return nil
}
