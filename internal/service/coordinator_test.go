package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dota-scout/internal/api"
	"dota-scout/internal/cache"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator(ttl time.Duration) *Coordinator {
	store := cache.New(map[cache.Namespace]time.Duration{
		cache.NamespaceTeam:   ttl,
		cache.NamespacePlayer: ttl,
	})
	return NewCoordinator(store, zerolog.Nop())
}

func TestCoordinator_SecondFetchWithinTTLSkipsUpstream(t *testing.T) {
	c := newTestCoordinator(time.Minute)
	var calls int32

	load := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "team", nil
	}

	first, err := c.Fetch(context.Background(), cache.NamespaceTeam, "9517508", FetchOptions{}, load)
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), cache.NamespaceTeam, "9517508", FetchOptions{}, load)
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(&calls), "second fetch within TTL must not hit upstream")
	require.Equal(t, first, second)
}

func TestCoordinator_ForceBypassesReadButWrites(t *testing.T) {
	c := newTestCoordinator(time.Minute)
	var calls int32

	load := func(ctx context.Context) (any, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			return "old", nil
		}
		return "fresh", nil
	}

	_, err := c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, load)
	require.NoError(t, err)

	v, err := c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{Force: true}, load)
	require.NoError(t, err)
	require.Equal(t, "fresh", v)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls), "force must always call upstream")

	// The forced result overwrote the entry.
	v, err = c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, load)
	require.NoError(t, err)
	require.Equal(t, "fresh", v)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCoordinator_InvalidateForcesNextFetchUpstream(t *testing.T) {
	c := newTestCoordinator(time.Minute)
	var calls int32

	load := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		return "team", nil
	}

	_, err := c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, load)
	require.NoError(t, err)

	c.Invalidate(cache.NamespaceTeam, "1")

	_, err = c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, load)
	require.NoError(t, err)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCoordinator_ColdCacheConcurrentCallersCoalesce(t *testing.T) {
	c := newTestCoordinator(time.Minute)
	var calls int32

	load := func(ctx context.Context) (any, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(20 * time.Millisecond)
		return "shared", nil
	}

	const workers = 20
	results := make([]any, workers)
	errs := make([]error, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			results[i], errs[i] = c.Fetch(context.Background(), cache.NamespacePlayer, "42", FetchOptions{}, load)
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&calls), "upstream must be invoked exactly once")
	for i := range results {
		require.NoError(t, errs[i])
		require.Equal(t, "shared", results[i])
	}
}

func TestCoordinator_ErrorsAreNeverCached(t *testing.T) {
	c := newTestCoordinator(time.Minute)
	var calls int32
	netErr := &api.UpstreamError{Kind: api.ErrNetwork, Provider: "opendota", Path: "/teams/1"}

	load := func(ctx context.Context) (any, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, netErr
		}
		return "recovered", nil
	}

	_, err := c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, load)
	require.ErrorAs(t, err, new(*api.UpstreamError))

	v, err := c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, load)
	require.NoError(t, err)
	require.Equal(t, "recovered", v)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCoordinator_StaleFallbackIsOptInAndRetryableOnly(t *testing.T) {
	c := newTestCoordinator(20 * time.Millisecond)

	_, err := c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, func(ctx context.Context) (any, error) {
		return "cached", nil
	})
	require.NoError(t, err)

	time.Sleep(40 * time.Millisecond) // entry is now past its TTL

	rateErr := &api.UpstreamError{Kind: api.ErrRateLimited, Provider: "opendota", Path: "/teams/1"}
	failing := func(ctx context.Context) (any, error) { return nil, rateErr }

	// Default policy: the error propagates.
	_, err = c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{}, failing)
	require.Error(t, err)

	// Opt-in: the expired entry is served instead.
	v, err := c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{AllowStale: true}, failing)
	require.NoError(t, err)
	require.Equal(t, "cached", v)

	// NotFound is not retryable, so stale data must not mask it.
	notFound := &api.UpstreamError{Kind: api.ErrNotFound, Provider: "opendota", Path: "/teams/1"}
	_, err = c.Fetch(context.Background(), cache.NamespaceTeam, "1", FetchOptions{AllowStale: true}, func(ctx context.Context) (any, error) {
		return nil, notFound
	})
	require.True(t, api.IsNotFound(err))
}
