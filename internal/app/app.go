package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"lognorm/internal/config"
	"lognorm/internal/event"
	"lognorm/internal/logging"
	"lognorm/internal/pipeline"
	"lognorm/internal/resolve"
	"lognorm/internal/sinks"
	"lognorm/internal/sources"
	"lognorm/internal/transform"
)

type App struct {
	cfg    *config.Config
	logger hclog.Logger
}

func New(cfg *config.Config, logger hclog.Logger) *App {
	return &App{cfg: cfg, logger: logging.OrNull(logger)}
}

func (a *App) Run(ctx context.Context) error {
	p, err := a.Build()
	if err != nil {
		return err
	}

	a.logger.Info("lognorm starting", "sources", len(p.Sources), "transforms", len(p.Transforms),
		"sinks", len(p.Sinks), "filter", string(p.Filter))

	if err := p.Run(ctx); err != nil {
		return err
	}

	a.logger.Info("lognorm stopped")
	return nil
}

// Build wires the configured components into a Pipeline without running it.
func (a *App) Build() (*pipeline.Pipeline, error) {
	filter := pipeline.ParseFilter(a.cfg.Filter)
	if filter != "" {
		if _, err := event.ParseType(string(filter)); err != nil {
			a.logger.Warn("filter matches no event type", "filter", a.cfg.Filter)
		}
	}

	res, err := resolve.FromConfig(a.cfg.Resolve)
	if err != nil {
		return nil, err
	}

	p := &pipeline.Pipeline{
		Sources:  make(map[string]pipeline.Source, len(a.cfg.Sources)),
		Filter:   filter,
		Resolver: res,
		Logger:   a.logger,
	}

	for name, sc := range a.cfg.Sources {
		src, err := a.buildSource(sc)
		if err != nil {
			return nil, fmt.Errorf("source [%s]: %w", name, err)
		}
		p.Sources[name] = src
	}

	for _, name := range sortedKeys(a.cfg.Transforms) {
		tc := a.cfg.Transforms[name]
		switch tc.Type {
		case "remap":
			p.Transforms = append(p.Transforms, &transform.Remap{AddFields: tc.AddFields})
		default:
			return nil, fmt.Errorf("transform [%s]: unknown type '%s'", name, tc.Type)
		}
	}

	for _, name := range sortedKeys(a.cfg.Sinks) {
		sc := a.cfg.Sinks[name]
		if fed := a.cfg.SourcesFeeding(name); len(fed) < len(a.cfg.Sources) {
			a.logger.Warn("sink inputs do not cover every source; it still receives all events",
				"sink", name, "sources", len(fed), "total", len(a.cfg.Sources))
		}
		switch sc.Type {
		case "stdout":
			p.Sinks = append(p.Sinks, &sinks.StdoutSink{Pretty: sc.Pretty})
		case "console":
			p.Sinks = append(p.Sinks, &sinks.ConsoleSink{})
		case "tui":
			p.Sinks = append(p.Sinks, &sinks.TUISink{})
		default:
			return nil, fmt.Errorf("sink [%s]: unknown type '%s'", name, sc.Type)
		}
	}

	return p, nil
}

func (a *App) buildSource(sc config.SourceConfig) (pipeline.Source, error) {
	switch sc.Type {
	case "stdin":
		return &sources.StdinSource{Logger: a.logger}, nil
	case "file":
		return &sources.FileSource{Path: sc.Path, Follow: sc.Follow, Logger: a.logger}, nil
	case "docker":
		return &sources.DockerSource{ContainerID: sc.ContainerID, Follow: sc.Follow, Logger: a.logger}, nil
	default:
		return nil, fmt.Errorf("unknown type '%s'", sc.Type)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
