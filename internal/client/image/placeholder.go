package image

import (
	"context"

	"yaminabe_backend/internal/config"
)

// Placeholder отдаёт одну и ту же заглушку вместо настоящей генерации
type Placeholder struct {
	url string
}

func NewPlaceholder(cfg config.ImageConfig) *Placeholder {
	return &Placeholder{url: cfg.PlaceholderURL()}
}

func (p *Placeholder) Generate(_ context.Context, _ string) (string, error) {
	return p.url, nil
}
