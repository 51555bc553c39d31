package store

import (
	"context"
	"fmt"

	"github.com/familyboard/familyboard/pkg/metrics"
)

// Collection is a named, ordered sequence of records persisted as a whole.
// Load on a collection that was never written returns an empty slice.
type Collection[T any] interface {
	Name() string
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
}

// Initializer is implemented by backends that materialize an empty
// collection on startup so subsequent reads are stable.
type Initializer interface {
	Init(ctx context.Context) error
}

// StorageError is returned for unreadable, unwritable or malformed backing data.
type StorageError struct {
	Collection string
	Op         string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(collection, op string, err error) error {
	metrics.StorageErrors.WithLabelValues(collection, op).Inc()
	return &StorageError{Collection: collection, Op: op, Err: err}
}

// nonNil keeps empty collections serialized as [] rather than null.
func nonNil[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
