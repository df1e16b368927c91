package recipe

import (
	"context"
	"errors"
	"strings"

	"yaminabe_backend/internal/model"
	"yaminabe_backend/internal/repository"

	"go.uber.org/zap"
)

// Save сохраняет рецепт. Рецепт с тем же названием не дублируется, возвращается его id
func (s *serv) Save(ctx context.Context, recipe *model.Recipe) (int64, error) {
	recipe.RecipeName = strings.TrimSpace(recipe.RecipeName)
	if len(recipe.RecipeName) == 0 {
		return 0, ErrEmptyName
	}

	var id int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindIDByName(txCtx, recipe.RecipeName)
		if err == nil {
			id = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		id, err = s.repo.Create(txCtx, recipe)
		return err
	})
	if err != nil {
		s.log.Error("save recipe failed", zap.Error(err))
		return 0, err
	}

	s.log.Info("recipe saved", zap.Int64("id", id), zap.String("name", recipe.RecipeName))
	return id, nil
}

func (s *serv) Gacha(ctx context.Context) (*model.Recipe, error) {
	r, err := s.repo.Random(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
