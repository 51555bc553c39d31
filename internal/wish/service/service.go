package service

import (
	"context"

	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/internal/store"
	"github.com/familyboard/familyboard/internal/wish"
	"github.com/familyboard/familyboard/pkg/metrics"
)

// Service defines the wish operations. Wishes cannot be deleted through the API.
type Service interface {
	List(ctx context.Context) ([]wish.Wish, error)
	Create(ctx context.Context, in wish.Input) (*wish.Wish, int, error)
}

func New(col *store.Guarded[wish.Wish], clock *record.Clock) Service {
	return &wishService{col: col, clock: clock}
}

type wishService struct {
	col   *store.Guarded[wish.Wish]
	clock *record.Clock
}

func (s *wishService) List(ctx context.Context) ([]wish.Wish, error) {
	return s.col.Load(ctx)
}

func (s *wishService) Create(ctx context.Context, in wish.Input) (*wish.Wish, int, error) {
	if err := record.Require(
		record.Field{Name: "author", Value: &in.Author},
		record.Field{Name: "text", Value: &in.Text},
	); err != nil {
		return nil, 0, err
	}

	stamp := s.clock.Next()
	w := wish.Wish{ID: stamp.ID, Author: in.Author, Text: in.Text, Date: stamp.Date, CreatedAt: stamp.CreatedAt}
	all, err := s.col.Update(ctx, func(cur []wish.Wish) ([]wish.Wish, error) {
		return append([]wish.Wish{w}, cur...), nil
	})
	if err != nil {
		return nil, 0, err
	}
	metrics.RecordsCreated.WithLabelValues(wish.Collection).Inc()
	return &w, len(all), nil
}
