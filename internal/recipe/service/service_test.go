package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/internal/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *store.FileCollection[recipe.Recipe], afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	col := store.NewFileCollection[recipe.Recipe](fs, "data", recipe.Collection)
	require.NoError(t, col.Init(context.Background()))
	return New(store.Guard[recipe.Recipe](col), record.NewClock(time.UTC)), col, fs
}

func validInput() recipe.Input {
	return recipe.Input{
		Name:         "  Пирожки ",
		Author:       "Бабушка\n",
		Ingredients:  " мука, яйца ",
		Instructions: "\tпечь 30 минут",
	}
}

func TestCreateTrimsAndPrepends(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first, total, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Пирожки", first.Name)
	require.Equal(t, "Бабушка", first.Author)
	require.Equal(t, "мука, яйца", first.Ingredients)
	require.Equal(t, "печь 30 минут", first.Instructions)
	require.Positive(t, first.ID)
	require.NotEmpty(t, first.Date)
	_, err = time.Parse(record.CreatedAtLayout, first.CreatedAt)
	require.NoError(t, err)

	second, total, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.NotEqual(t, first.ID, second.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID, "newest recipe comes first")
	require.Equal(t, first.ID, list[1].ID)
}

func TestCreateMissingFieldDoesNotTouchStore(t *testing.T) {
	svc, col, fs := newTestService(t)
	before, err := afero.ReadFile(fs, col.Path())
	require.NoError(t, err)

	for _, mutate := range []func(*recipe.Input){
		func(in *recipe.Input) { in.Name = "" },
		func(in *recipe.Input) { in.Author = "   " },
		func(in *recipe.Input) { in.Ingredients = "\n" },
		func(in *recipe.Input) { in.Instructions = "" },
	} {
		in := validInput()
		mutate(&in)
		_, _, err := svc.Create(context.Background(), in)
		var verr *record.ValidationError
		require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	}

	after, err := afero.ReadFile(fs, col.Path())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestDelete(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a, _, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	b, _, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = svc.Delete(ctx, 42)
	var nerr *record.NotFoundError
	require.True(t, errors.As(err, &nerr))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "unknown id leaves the collection unchanged")

	total, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1, total)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, b.ID, list[0].ID)
}
