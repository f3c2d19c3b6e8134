package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Loader fills an LRUCache on demand. Concurrent misses for the same key
// share one call to the load function.
type Loader[T any] struct {
	cache *LRUCache[T]
	group singleflight.Group
}

// NewLoader wraps c.
func NewLoader[T any](c *LRUCache[T]) *Loader[T] {
	return &Loader[T]{cache: c}
}

// Cache returns the underlying cache.
func (l *Loader[T]) Cache() *LRUCache[T] {
	return l.cache
}

// Load returns the cached value for key or calls fn to produce it. hit
// reports whether the value came from the cache. A value loaded across a
// Clear is returned but not stored. fn runs detached from ctx cancellation
// so one caller giving up does not fail the others sharing the call.
func (l *Loader[T]) Load(ctx context.Context, key string, fn func(context.Context) (T, error)) (value T, hit bool, err error) {
	if v, ok := l.cache.Get(key); ok {
		return v, true, nil
	}

	gen := l.cache.Generation()
	ch := l.group.DoChan(key, func() (any, error) {
		v, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return v, err
		}
		l.cache.SetIfGeneration(key, v, gen)
		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, false, res.Err
		}
		return res.Val.(T), false, nil
	}
}
