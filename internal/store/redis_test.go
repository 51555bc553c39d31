package store

import (
	"context"
	"errors"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisCollection_SaveLoad(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := NewRedisCollection[item](client, "test:", "items")
	ctx := context.Background()

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, got)

	want := []item{{ID: 7, Text: "seven"}}
	require.NoError(t, c.Save(ctx, want))
	require.True(t, m.Exists("test:items"))

	got, err = c.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestRedisCollection_MalformedIsStorageError(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.Set("familyboard:items", "oops"))

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	c := NewRedisCollection[item](client, "", "items")

	_, err = c.Load(context.Background())
	var serr *StorageError
	require.True(t, errors.As(err, &serr))
}
