package config

import (
	"time"

	"yaminabe_backend/internal/reel"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type SlotConfig interface {
	Reel() reel.Config
	Axes() []reel.Axis
	MaxIngredients() int
}

type HTTPConfig interface {
	Address() string
	// StaticDir каталог со страницами игры, пусто если статика не раздаётся
	StaticDir() string
}

type StorageConfig interface {
	// Driver "postgres" или "sqlite"
	Driver() string
	DSN() string
}

type GeminiConfig interface {
	APIKey() string
	Model() string
	BaseURL() string
	Timeout() time.Duration
}

type ImageConfig interface {
	PlaceholderURL() string
}

type ThemeTokenConfig interface {
	SecretKey() []byte
	TTL() time.Duration
}

type LoggerConfig interface {
	// Level уровень zap: debug, info, warn, error
	Level() string
	Production() bool
}
