package service

import (
	"context"

	"yaminabe_backend/internal/model"
)

type SlotService interface {
	Create(ctx context.Context, req model.SlotCreate) (*model.SlotSession, error)
	Start(ctx context.Context, sessionID string) (*model.SlotState, error)
	Stop(ctx context.Context, sessionID string, reel int) (*model.SlotState, error)
	State(ctx context.Context, sessionID string) (*model.SlotState, error)
	Confirm(ctx context.Context, sessionID string) (*model.SlotOutcome, error)
	Close(ctx context.Context, sessionID string) error
	Stats() model.SlotStats
}

type RecipeService interface {
	Generate(ctx context.Context, req model.RecipeRequest) (*model.Recipe, error)
	GenerateImage(ctx context.Context, req model.ImageRequest) (*model.Image, error)
	Save(ctx context.Context, recipe *model.Recipe) (int64, error)
	// Gacha случайный сохранённый рецепт, nil если рецептов нет
	Gacha(ctx context.Context) (*model.Recipe, error)
}
