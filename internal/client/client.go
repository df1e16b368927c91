package client

import "context"

// TextGenerator языковая модель: по тексту запроса возвращает текст ответа
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator генератор картинки блюда, возвращает URL изображения
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
