package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/internal/store"
	"github.com/familyboard/familyboard/internal/wish"
	"github.com/familyboard/familyboard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestWishService(t *testing.T) {
	fs := afero.NewMemMapFs()
	col := store.NewFileCollection[wish.Wish](fs, "data", wish.Collection)
	svc := New(store.Guard[wish.Wish](col), record.NewClock(time.UTC))
	ctx := context.Background()

	before := testutil.ToFloat64(metrics.RecordsCreated.WithLabelValues(wish.Collection))

	_, _, err := svc.Create(ctx, wish.Input{Author: "Anna", Text: "  "})
	var verr *record.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, []string{"text"}, verr.Fields)
	exists, _ := afero.Exists(fs, col.Path())
	require.False(t, exists, "rejected submission must not write the collection")

	w, total, err := svc.Create(ctx, wish.Input{Author: " Anna ", Text: "Love you"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Anna", w.Author)
	require.Equal(t, "Love you", w.Text)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []wish.Wish{*w}, list)

	require.Equal(t, before+1, testutil.ToFloat64(metrics.RecordsCreated.WithLabelValues(wish.Collection)))
}
