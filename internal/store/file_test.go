package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
}

func TestFileCollection_MissingFileLoadsEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := NewFileCollection[item](fs, "data", "items")

	got, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)

	exists, _ := afero.Exists(fs, c.Path())
	require.False(t, exists, "plain Load must not create the file")
}

func TestFileCollection_InitCreatesEmptyArray(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := NewFileCollection[item](fs, "data", "items")
	require.NoError(t, c.Init(context.Background()))

	b, err := afero.ReadFile(fs, "data/items.json")
	require.NoError(t, err)
	require.Equal(t, "[]", string(b))

	// existing content survives a second Init
	require.NoError(t, c.Save(context.Background(), []item{{ID: 1, Text: "a"}}))
	require.NoError(t, c.Init(context.Background()))
	got, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestFileCollection_SaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := NewFileCollection[item](fs, "data", "items")
	want := []item{{ID: 2, Text: "второй"}, {ID: 1, Text: "first"}}

	require.NoError(t, c.Save(context.Background(), want))
	got, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	tmpExists, _ := afero.Exists(fs, c.Path()+".tmp")
	require.False(t, tmpExists)
}

func TestFileCollection_MalformedIsStorageError(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "data/items.json", []byte("{not json"), 0o644))
	c := NewFileCollection[item](fs, "data", "items")

	_, err := c.Load(context.Background())
	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "items", serr.Collection)
	require.Equal(t, "load", serr.Op)
}

func TestFileCollection_SaveFailsOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	c := NewFileCollection[item](fs, "data", "items")

	err := c.Save(context.Background(), []item{{ID: 1}})
	var serr *StorageError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "save", serr.Op)
}

func TestGuarded_UpdateSerializesWriters(t *testing.T) {
	g := Guard[item](NewFileCollection[item](afero.NewMemMapFs(), "data", "items"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := g.Update(ctx, func(cur []item) ([]item, error) {
				return append(cur, item{ID: id}), nil
			})
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	got, err := g.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 50, "no update may be lost")
}

func TestGuarded_UpdateErrorSkipsSave(t *testing.T) {
	c := NewFileCollection[item](afero.NewMemMapFs(), "data", "items")
	g := Guard[item](c)
	ctx := context.Background()
	require.NoError(t, g.Save(ctx, []item{{ID: 1}}))

	boom := errors.New("boom")
	_, err := g.Update(ctx, func(cur []item) ([]item, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := c.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []item{{ID: 1}}, got)
}
