package sources

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hpcloud/tail"
	"github.com/klauspost/compress/gzip"

	"lognorm/internal/event"
	"lognorm/internal/logging"
)

// FileSource reads a log file. Without Follow it stops at end of file;
// with Follow it keeps tailing, reopening the file after rotation.
// Paths ending in .gz are decompressed and cannot be followed.
type FileSource struct {
	Path   string
	Follow bool
	Logger hclog.Logger
}

func (fs *FileSource) Run(ctx context.Context, out chan<- event.Line) error {
	log := logging.OrNull(fs.Logger).Named("file").With("path", fs.Path)

	if strings.HasSuffix(fs.Path, ".gz") {
		if fs.Follow {
			return fmt.Errorf("file %s: follow is not supported for compressed files", fs.Path)
		}
		return fs.runGzip(ctx, out, log)
	}

	t, err := tail.TailFile(fs.Path, tail.Config{
		Follow:    fs.Follow,
		ReOpen:    fs.Follow,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("file %s: %w", fs.Path, err)
	}
	defer t.Cleanup()

	log.Debug("file source started", "follow", fs.Follow)

	for {
		select {
		case <-ctx.Done():
			log.Debug("file source stopping")
			_ = t.Stop()
			return nil
		case line, ok := <-t.Lines:
			if !ok {
				if err := t.Wait(); err != nil {
					return fmt.Errorf("file %s: %w", fs.Path, err)
				}
				log.Debug("file source reached end of file")
				return nil
			}
			if line.Err != nil {
				log.Warn("tail line error", "error", line.Err)
				continue
			}

			select {
			case <-ctx.Done():
				_ = t.Stop()
				return nil
			case out <- event.Line{Source: "file", Text: line.Text}:
			}
		}
	}
}

func (fs *FileSource) runGzip(ctx context.Context, out chan<- event.Line, log hclog.Logger) error {
	f, err := os.Open(fs.Path)
	if err != nil {
		return fmt.Errorf("file %s: %w", fs.Path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("file %s: gzip: %w", fs.Path, err)
	}
	defer zr.Close()

	log.Debug("compressed file source started")
	if err := scanLines(ctx, zr, DefaultMaxLineSize, "file", out); err != nil {
		return fmt.Errorf("file %s: %w", fs.Path, err)
	}
	return nil
}
