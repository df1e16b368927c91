package repository

import (
	"context"
	"errors"

	"yaminabe_backend/internal/model"
)

var ErrNotFound = errors.New("not found")

type RecipeRepository interface {
	EnsureSchema(ctx context.Context) error

	Create(ctx context.Context, recipe *model.Recipe) (int64, error)
	FindIDByName(ctx context.Context, name string) (int64, error)
	Random(ctx context.Context) (*model.Recipe, error)
}

type SlotStatsRepository interface {
	Record(draws []model.Draw, bonus bool)
	Stats() model.SlotStats
}
