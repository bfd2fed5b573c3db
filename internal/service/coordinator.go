package service

import (
	"context"

	"dota-scout/internal/api"
	"dota-scout/internal/cache"
	"dota-scout/internal/flight"

	"github.com/rs/zerolog"
)

type FetchOptions struct {
	// Force bypasses the cache read but still writes the fresh entry.
	Force bool
	// AllowStale serves the expired cache entry when a re-fetch fails with a
	// retryable upstream error. Off by default: a failed forced re-fetch
	// propagates its error.
	AllowStale bool
}

// Coordinator is the fetch façade over the cache store, the in-flight
// deduplicator and a caller-supplied loader. Concurrent callers for the same
// (namespace, id) coalesce onto one upstream fetch; errors propagate to every
// waiter and are never cached.
type Coordinator struct {
	cache  *cache.Store
	flight *flight.Group
	logger zerolog.Logger
}

func NewCoordinator(store *cache.Store, logger zerolog.Logger) *Coordinator {
	return &Coordinator{cache: store, flight: &flight.Group{}, logger: logger}
}

func (c *Coordinator) Fetch(ctx context.Context, ns cache.Namespace, id string, opts FetchOptions, load func(ctx context.Context) (any, error)) (any, error) {
	if !opts.Force {
		if v, ok := c.cache.Get(ns, id); ok {
			c.logger.Debug().Str("namespace", string(ns)).Str("id", id).Msg("cache hit")
			return v, nil
		}
	}

	key := cache.Key(ns, id)
	v, err := c.flight.Coalesce(ctx, key, func() (any, error) {
		// The shared fetch must survive the initiating caller's disconnect:
		// other coalesced callers may still be waiting on it.
		loadCtx := context.WithoutCancel(ctx)

		if !opts.Force {
			// Another flight may have settled between our miss and here.
			if v, ok := c.cache.Get(ns, id); ok {
				return v, nil
			}
		}

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.cache.Set(ns, id, v)
		return v, nil
	})
	if err == nil {
		return v, nil
	}

	if opts.AllowStale && api.Retryable(err) {
		if stale, _, ok := c.cache.GetStale(ns, id); ok {
			c.logger.Warn().Err(err).
				Str("namespace", string(ns)).
				Str("id", id).
				Msg("upstream fetch failed, serving stale entry")
			return stale, nil
		}
	}

	return nil, err
}

// Invalidate drops the cached entry for (ns, id).
func (c *Coordinator) Invalidate(ns cache.Namespace, id string) {
	c.cache.Invalidate(ns, id)
}
