package service

import (
	"context"

	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/internal/store"
	"github.com/familyboard/familyboard/pkg/metrics"
)

// Service defines the recipe operations used by the handler layer.
type Service interface {
	List(ctx context.Context) ([]recipe.Recipe, error)
	// Create returns the stored recipe and the collection size after insertion.
	Create(ctx context.Context, in recipe.Input) (*recipe.Recipe, int, error)
	// Delete returns the collection size after removal.
	Delete(ctx context.Context, id int64) (int, error)
}

// New returns a Service persisting into col. New recipes go to the front of
// the collection so the default listing is newest first.
func New(col *store.Guarded[recipe.Recipe], clock *record.Clock) Service {
	return &recipeService{col: col, clock: clock}
}

type recipeService struct {
	col   *store.Guarded[recipe.Recipe]
	clock *record.Clock
}

func (s *recipeService) List(ctx context.Context) ([]recipe.Recipe, error) {
	return s.col.Load(ctx)
}

func (s *recipeService) Create(ctx context.Context, in recipe.Input) (*recipe.Recipe, int, error) {
	if err := record.Require(
		record.Field{Name: "name", Value: &in.Name},
		record.Field{Name: "author", Value: &in.Author},
		record.Field{Name: "ingredients", Value: &in.Ingredients},
		record.Field{Name: "instructions", Value: &in.Instructions},
	); err != nil {
		return nil, 0, err
	}

	stamp := s.clock.Next()
	r := recipe.Recipe{
		ID:           stamp.ID,
		Name:         in.Name,
		Author:       in.Author,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		Date:         stamp.Date,
		CreatedAt:    stamp.CreatedAt,
	}
	all, err := s.col.Update(ctx, func(cur []recipe.Recipe) ([]recipe.Recipe, error) {
		return append([]recipe.Recipe{r}, cur...), nil
	})
	if err != nil {
		return nil, 0, err
	}
	metrics.RecordsCreated.WithLabelValues(recipe.Collection).Inc()
	return &r, len(all), nil
}

func (s *recipeService) Delete(ctx context.Context, id int64) (int, error) {
	all, err := s.col.Update(ctx, func(cur []recipe.Recipe) ([]recipe.Recipe, error) {
		for i := range cur {
			if cur[i].ID == id {
				out := make([]recipe.Recipe, 0, len(cur)-1)
				out = append(out, cur[:i]...)
				return append(out, cur[i+1:]...), nil
			}
		}
		return nil, &record.NotFoundError{Collection: recipe.Collection, ID: id}
	})
	if err != nil {
		return 0, err
	}
	metrics.RecordsDeleted.WithLabelValues(recipe.Collection).Inc()
	return len(all), nil
}
