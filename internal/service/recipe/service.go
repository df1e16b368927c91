package recipe

import (
	"errors"

	"yaminabe_backend/internal/client"
	"yaminabe_backend/internal/config"
	"yaminabe_backend/internal/repository"
	"yaminabe_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

var (
	ErrMissingData   = errors.New("missing ingredients or theme")
	ErrInvalidTicket = errors.New("invalid theme ticket")
	ErrEmptyName     = errors.New("recipe name is empty")
	ErrImageFailed   = errors.New("image generation failed")
)

type serv struct {
	text      client.TextGenerator
	image     client.ImageGenerator
	repo      repository.RecipeRepository
	txManager trm.Manager
	tokenCfg  config.ThemeTokenConfig
	log       *zap.Logger
}

// NewRecipeService Создать сервис рецептов
func NewRecipeService(
	text client.TextGenerator,
	image client.ImageGenerator,
	repo repository.RecipeRepository,
	txManager trm.Manager,
	tokenCfg config.ThemeTokenConfig,
	log *zap.Logger,
) service.RecipeService {
	return &serv{
		text:      text,
		image:     image,
		repo:      repo,
		txManager: txManager,
		tokenCfg:  tokenCfg,
		log:       log.Named("recipe"),
	}
}
