package model

// Theme выпавшая тема: ось -> символ (genre, mood, method)
type Theme map[string]string

type RecipeRequest struct {
	Ingredients []string
	Theme       Theme
	// Ticket подписанный итог слот-машины, заменяет Ingredients и Theme
	Ticket string
}

type Recipe struct {
	ID          int64
	RecipeName  string
	Summary     string
	Detail      string
	Description string
	Steps       []string
}

type ImageRequest struct {
	Prompt      string
	RecipeName  string
	Ingredients []string
	Theme       Theme
}

type Image struct {
	URL string
}
