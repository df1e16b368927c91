package recipe

import (
	"context"
	"fmt"
	"strings"

	"yaminabe_backend/internal/model"
	"yaminabe_backend/pkg/token"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// fallbackRecipe ответ, когда модель недоступна или вернула мусор
func fallbackRecipe() *model.Recipe {
	return &model.Recipe{
		RecipeName:  "謎の実験料理（通信エラー）",
		Description: "AIの接続に失敗しました。食材を混ぜて祈りましょう。",
		Steps:       []string{"全部混ぜる", "焼く", "完成"},
	}
}

type generatedRecipe struct {
	RecipeName  string   `json:"recipeName"`
	Summary     string   `json:"summary"`
	Detail      string   `json:"detail"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// Generate придумывает рецепт по ингредиентам и теме.
// Ошибка возвращается только при неверном запросе, сбой модели даёт запасной рецепт
func (s *serv) Generate(ctx context.Context, req model.RecipeRequest) (*model.Recipe, error) {
	ingredients, theme := req.Ingredients, req.Theme

	if len(req.Ticket) != 0 {
		claims, err := token.VerifyThemeToken(req.Ticket, s.tokenCfg.SecretKey())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
		}
		ingredients, theme = claims.Ingredients, claims.Theme
	}

	if len(ingredients) == 0 || len(theme) == 0 {
		return nil, ErrMissingData
	}

	text, err := s.text.Generate(ctx, recipePrompt(ingredients, theme))
	if err != nil {
		s.log.Error("recipe generation failed", zap.Error(err))
		return fallbackRecipe(), nil
	}

	recipe, err := parseRecipe(text)
	if err != nil {
		s.log.Error("recipe reply is not valid", zap.Error(err), zap.String("reply", text))
		return fallbackRecipe(), nil
	}

	return recipe, nil
}

func parseRecipe(text string) (*model.Recipe, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var g generatedRecipe
	if err := json.Unmarshal([]byte(cleaned), &g); err != nil {
		return nil, fmt.Errorf("parse recipe json: %w", err)
	}
	if len(g.RecipeName) == 0 {
		return nil, ErrEmptyName
	}
	if g.Steps == nil {
		g.Steps = []string{}
	}

	return &model.Recipe{
		RecipeName:  g.RecipeName,
		Summary:     g.Summary,
		Detail:      g.Detail,
		Description: g.Description,
		Steps:       g.Steps,
	}, nil
}

// GenerateImage картинка блюда. Без готового prompt он собирается из названия, ингредиентов и темы
func (s *serv) GenerateImage(ctx context.Context, req model.ImageRequest) (*model.Image, error) {
	prompt := req.Prompt
	if len(prompt) == 0 {
		if len(req.RecipeName) == 0 {
			return nil, ErrEmptyName
		}
		prompt = imagePrompt(req.RecipeName, req.Ingredients, req.Theme)
	}

	url, err := s.image.Generate(ctx, prompt)
	if err != nil {
		s.log.Error("image generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrImageFailed, err)
	}

	return &model.Image{URL: url}, nil
}
