// Package logging builds the hclog loggers used throughout lognorm.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "LOGNORM_LOG_LEVEL"

type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New returns a logger named "lognorm". Diagnostics go to stderr by default
// so they never mix with events written to stdout.
func New(opts Options) hclog.Logger {
	level := opts.Level
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "lognorm",
		Level:      ParseLevel(level),
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// ParseLevel maps a level name to an hclog level, defaulting to info.
func ParseLevel(s string) hclog.Level {
	if s == "" {
		return hclog.Info
	}
	l := hclog.LevelFromString(strings.ToLower(strings.TrimSpace(s)))
	if l == hclog.NoLevel {
		return hclog.Info
	}
	return l
}

// OrNull returns l, or a logger that discards everything when l is nil.
func OrNull(l hclog.Logger) hclog.Logger {
	if l == nil {
		return hclog.NewNullLogger()
	}
	return l
}
