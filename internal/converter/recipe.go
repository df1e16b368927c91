package converter

import (
	"yaminabe_backend/internal/api/dto/recipe"
	"yaminabe_backend/internal/model"
)

func ToRecipeRequest(req recipe.GenerateRequest) model.RecipeRequest {
	return model.RecipeRequest{
		Ingredients: req.Ingredients,
		Theme:       req.Theme,
		Ticket:      req.Ticket,
	}
}

func ToRecipeResponse(r model.Recipe) recipe.RecipeResponse {
	steps := r.Steps
	if steps == nil {
		steps = []string{}
	}
	return recipe.RecipeResponse{
		ID:          r.ID,
		RecipeName:  r.RecipeName,
		Summary:     r.Summary,
		Detail:      r.Detail,
		Description: r.Description,
		Steps:       steps,
	}
}

func ToImageRequest(req recipe.ImageRequest) model.ImageRequest {
	return model.ImageRequest{
		Prompt:      req.Prompt,
		RecipeName:  req.RecipeName,
		Ingredients: req.Ingredients,
		Theme:       req.Theme,
	}
}

func ToImageResponse(img model.Image) recipe.ImageResponse {
	return recipe.ImageResponse{ImageURL: img.URL}
}

func SaveRequestToRecipe(req recipe.SaveRequest) *model.Recipe {
	return &model.Recipe{
		RecipeName:  req.RecipeName,
		Summary:     req.Summary,
		Detail:      req.Detail,
		Description: req.Description,
		Steps:       req.Steps,
	}
}
