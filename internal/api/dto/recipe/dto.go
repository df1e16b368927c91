package recipe

type GenerateRequest struct {
	Ingredients []string          `json:"ingredients"`
	Theme       map[string]string `json:"theme"`
	Ticket      string            `json:"ticket"` // Билет слот-сессии вместо ingredients и theme
}

type RecipeResponse struct {
	ID          int64    `json:"id,omitempty"`
	RecipeName  string   `json:"recipeName"`
	Summary     string   `json:"summary,omitempty"`
	Detail      string   `json:"detail,omitempty"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

type ImageRequest struct {
	Prompt      string            `json:"prompt"`
	RecipeName  string            `json:"recipeName"`
	Ingredients []string          `json:"ingredients"`
	Theme       map[string]string `json:"theme"`
}

type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type SaveRequest struct {
	RecipeName  string   `json:"recipeName"`
	Summary     string   `json:"summary"`
	Detail      string   `json:"detail"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

type SaveResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}
