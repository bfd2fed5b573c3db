package flight

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group deduplicates concurrent identical fetches: at most one outstanding
// computation exists per key, and every caller that arrives while it is
// outstanding receives the same result. The pending entry is removed on
// settlement, success or failure, so the next call always recomputes.
type Group struct {
	sf singleflight.Group
}

// Coalesce runs fn for key unless a computation for key is already in
// flight, in which case it waits for that one. A caller whose ctx is
// cancelled detaches and gets ctx.Err(), but the shared computation keeps
// running for the remaining waiters.
func (g *Group) Coalesce(ctx context.Context, key string, fn func() (any, error)) (any, error) {
	ch := g.sf.DoChan(key, fn)
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
