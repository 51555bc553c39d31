package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCollection keeps a collection as one JSON array under a single key.
type RedisCollection[T any] struct {
	client *redis.Client
	name   string
	key    string
}

// NewRedisCollection stores the collection under prefix+name. Prefix may be empty.
func NewRedisCollection[T any](client *redis.Client, prefix, name string) *RedisCollection[T] {
	if prefix == "" {
		prefix = "familyboard:"
	}
	return &RedisCollection[T]{client: client, name: name, key: prefix + name}
}

func (r *RedisCollection[T]) Name() string { return r.name }

func (r *RedisCollection[T]) Load(ctx context.Context) ([]T, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []T{}, nil
		}
		return nil, storageErr(r.name, "load", err)
	}
	var records []T
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, storageErr(r.name, "load", fmt.Errorf("decode key %s: %w", r.key, err))
	}
	return nonNil(records), nil
}

func (r *RedisCollection[T]) Save(ctx context.Context, records []T) error {
	b, err := json.Marshal(nonNil(records))
	if err != nil {
		return storageErr(r.name, "save", err)
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return storageErr(r.name, "save", err)
	}
	return nil
}
