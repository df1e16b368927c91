package env

import (
	"fmt"
	"os"
	"time"

	"yaminabe_backend/internal/config"
)

const (
	themeTokenSecretEnvName = "THEME_TOKEN_SECRET"
	themeTokenTTLEnvName    = "THEME_TOKEN_TTL"

	defaultThemeTokenTTL = 30 * time.Minute
)

type themeTokenConfig struct {
	secretKey string
	ttl       time.Duration
}

func NewThemeTokenConfig() (config.ThemeTokenConfig, error) {
	secret := os.Getenv(themeTokenSecretEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("theme token secret key not found")
	}

	ttl := defaultThemeTokenTTL
	if raw := os.Getenv(themeTokenTTLEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid theme token ttl: %w", err)
		}
		ttl = parsed
	}

	return &themeTokenConfig{
		secretKey: secret,
		ttl:       ttl,
	}, nil
}

func (cfg *themeTokenConfig) SecretKey() []byte {
	return []byte(cfg.secretKey)
}

func (cfg *themeTokenConfig) TTL() time.Duration {
	return cfg.ttl
}
