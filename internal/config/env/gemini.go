package env

import (
	"fmt"
	"os"
	"time"

	"yaminabe_backend/internal/config"
)

const (
	geminiAPIKeyEnvName  = "GEMINI_API_KEY"
	geminiModelEnvName   = "GEMINI_MODEL"
	geminiBaseURLEnvName = "GEMINI_BASE_URL"
	geminiTimeoutEnvName = "GEMINI_TIMEOUT"

	defaultGeminiModel   = "gemini-2.5-flash"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiTimeout = 60 * time.Second
)

type geminiConfig struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
}

// NewGeminiConfig ключ API не обязателен: без него генерация рецепта отдаёт запасной рецепт
func NewGeminiConfig() (config.GeminiConfig, error) {
	cfg := &geminiConfig{
		apiKey:  os.Getenv(geminiAPIKeyEnvName),
		model:   os.Getenv(geminiModelEnvName),
		baseURL: os.Getenv(geminiBaseURLEnvName),
		timeout: defaultGeminiTimeout,
	}
	if len(cfg.model) == 0 {
		cfg.model = defaultGeminiModel
	}
	if len(cfg.baseURL) == 0 {
		cfg.baseURL = defaultGeminiBaseURL
	}

	if timeout := os.Getenv(geminiTimeoutEnvName); len(timeout) != 0 {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid gemini timeout: %w", err)
		}
		cfg.timeout = parsed
	}

	return cfg, nil
}

func (cfg *geminiConfig) APIKey() string {
	return cfg.apiKey
}

func (cfg *geminiConfig) Model() string {
	return cfg.model
}

func (cfg *geminiConfig) BaseURL() string {
	return cfg.baseURL
}

func (cfg *geminiConfig) Timeout() time.Duration {
	return cfg.timeout
}
