// Package taskgroup runs independent tasks with bounded concurrency and
// fail-fast cancellation.
package taskgroup

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group schedules tasks on at most limit goroutines. Wait is the barrier
// between phases; a group is not reused after Wait.
type Group struct {
	eg  *errgroup.Group
	ctx context.Context
}

// New creates a group bound to ctx. limit < 1 means one task at a time.
func New(ctx context.Context, limit int) *Group {
	if limit < 1 {
		limit = 1
	}
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	return &Group{eg: eg, ctx: gctx}
}

// Go schedules fn, blocking while limit tasks are running. Once any task has
// failed or the parent context is done, later tasks are skipped.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if err := g.ctx.Err(); err != nil {
			return err
		}
		return fn(g.ctx)
	})
}

// Wait blocks until every scheduled task has finished and returns the first
// error.
func (g *Group) Wait() error {
	return g.eg.Wait()
}

// Each runs fn for every item on a fresh group and waits for all of them.
func Each[T any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, item T) error) error {
	g := New(ctx, limit)
	for _, item := range items {
		item := item
		g.Go(func(ctx context.Context) error {
			return fn(ctx, item)
		})
	}
	return g.Wait()
}
