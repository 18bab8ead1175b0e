package services

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// shared runs fn once per key for all concurrent callers. fn gets a context
// that keeps the caller's values but is never cancelled, so one caller going
// away does not fail the others; each caller still returns on its own ctx.
func shared[T any](ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (*T, error)) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	detached := context.WithoutCancel(ctx)
	ch := g.DoChan(key, func() (interface{}, error) {
		return fn(detached)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*T), nil
	}
}
