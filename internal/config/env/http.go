package env

import (
	"net"
	"os"

	"yaminabe_backend/internal/config"
)

const (
	httpHostEnvName  = "HTTP_HOST"
	httpPortEnvName  = "HTTP_PORT"
	staticDirEnvName = "STATIC_DIR"

	defaultHTTPHost = "0.0.0.0"
	defaultHTTPPort = "3000"
)

type httpConfig struct {
	host      string
	port      string
	staticDir string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	host := os.Getenv(httpHostEnvName)
	if len(host) == 0 {
		host = defaultHTTPHost
	}

	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		port = defaultHTTPPort
	}

	return &httpConfig{
		host:      host,
		port:      port,
		staticDir: os.Getenv(staticDirEnvName),
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) StaticDir() string {
	return cfg.staticDir
}
