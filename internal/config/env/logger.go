package env

import (
	"fmt"
	"os"

	"yaminabe_backend/internal/config"
)

const (
	logEnvEnvName   = "LOG_ENV"
	logLevelEnvName = "LOG_LEVEL"

	defaultLogLevel = "info"
)

type loggerConfig struct {
	level      string
	production bool
}

func NewLoggerConfig() (config.LoggerConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = defaultLogLevel
	}
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	return &loggerConfig{
		level:      level,
		production: os.Getenv(logEnvEnvName) == "production",
	}, nil
}

func (cfg *loggerConfig) Level() string {
	return cfg.level
}

func (cfg *loggerConfig) Production() bool {
	return cfg.production
}
