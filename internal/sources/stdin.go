package sources

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"lognorm/internal/event"
	"lognorm/internal/logging"
)

// DefaultMaxLineSize bounds a single line read by the stream based sources.
const DefaultMaxLineSize = 1024 * 1024

// StdinSource reads lines from Reader, os.Stdin when unset.
type StdinSource struct {
	Reader      io.Reader
	MaxLineSize int
	Logger      hclog.Logger
}

func (s *StdinSource) Run(ctx context.Context, out chan<- event.Line) error {
	r := s.Reader
	if r == nil {
		r = os.Stdin
	}
	log := logging.OrNull(s.Logger).Named("stdin")
	log.Debug("stdin source started")

	err := scanLines(ctx, r, s.MaxLineSize, "stdin", out)
	if err != nil {
		return fmt.Errorf("stdin: %w", err)
	}
	log.Debug("stdin source finished")
	return nil
}

// scanLines forwards every line of r to out. The blocking scan runs in its own
// goroutine so a cancelled ctx is noticed even while r has nothing to read.
func scanLines(ctx context.Context, r io.Reader, maxLineSize int, source string, out chan<- event.Line) error {
	if maxLineSize <= 0 {
		maxLineSize = DefaultMaxLineSize
	}
	scanner := bufio.NewScanner(r)
	// the scanner limit is the larger of max and the initial buffer's capacity
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLineSize)), maxLineSize)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case text, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if errors.Is(err, bufio.ErrTooLong) {
						return fmt.Errorf("line exceeds %d bytes: %w", maxLineSize, err)
					}
					return err
				default:
					return nil
				}
			}
			select {
			case out <- event.Line{Source: source, Text: text}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
