package store

import (
	"context"
	"sync"
)

// Guarded serializes read-modify-write cycles on a collection so that two
// mutations issued by this process never interleave between load and save.
type Guarded[T any] struct {
	Collection[T]
	mu sync.Mutex
}

// Guard wraps c.
func Guard[T any](c Collection[T]) *Guarded[T] {
	return &Guarded[T]{Collection: c}
}

// Update loads the collection, applies fn and saves the result. When fn
// returns an error nothing is written and the error is returned as-is.
func (g *Guarded[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	records, err := g.Collection.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(records)
	if err != nil {
		return nil, err
	}
	if err := g.Collection.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Save replaces the whole collection under the same lock as Update.
func (g *Guarded[T]) Save(ctx context.Context, records []T) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Collection.Save(ctx, records)
}
