package resolve

import (
	"fmt"
	"time"

	"lognorm/internal/config"
)

const defaultTTL = 30 * time.Second

// FromConfig builds the resolver described by cfg, or nil when none is configured.
func FromConfig(cfg config.ResolveConfig) (Resolver, error) {
	var chain Chain

	if len(cfg.Static) > 0 {
		chain = append(chain, NewStaticResolver(cfg.Static))
	}
	if cfg.Docker {
		dr, err := NewDockerResolver()
		if err != nil {
			return nil, fmt.Errorf("resolve: docker: %w", err)
		}
		chain = append(chain, dr)
	}

	if len(chain) == 0 {
		return nil, nil
	}

	ttl := defaultTTL
	if cfg.Cache.TTL != "" {
		d, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("resolve: cache ttl: %w", err)
		}
		ttl = d
	}

	var r Resolver = chain
	if len(chain) == 1 {
		r = chain[0]
	}
	return NewCachingResolver(r, ttl, cfg.Cache.MaxSize), nil
}
