package env

import (
	"os"

	"yaminabe_backend/internal/config"
)

const (
	imagePlaceholderEnvName = "IMAGE_PLACEHOLDER_URL"

	defaultImagePlaceholder = "/img/1402858_s.jpg"
)

type imageConfig struct {
	placeholderURL string
}

func NewImageConfig() (config.ImageConfig, error) {
	url := os.Getenv(imagePlaceholderEnvName)
	if len(url) == 0 {
		url = defaultImagePlaceholder
	}
	return &imageConfig{placeholderURL: url}, nil
}

func (cfg *imageConfig) PlaceholderURL() string {
	return cfg.placeholderURL
}
