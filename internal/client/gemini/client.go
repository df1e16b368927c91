package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"yaminabe_backend/internal/config"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNoAPIKey     = errors.New("gemini api key is not set")
	ErrNoCandidates = errors.New("gemini returned no candidates")
)

// APIError ошибка, которую вернул сам Gemini в поле error
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error (%d): %s", e.Status, e.Message)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

// Client клиент метода generateContent
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	log        *zap.Logger
}

func NewClient(cfg config.GeminiConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    cfg.BaseURL(),
		model:      cfg.Model(),
		apiKey:     cfg.APIKey(),
		log:        log.Named("gemini"),
	}
}

// Generate отправляет prompt одной репликой и возвращает текст первого кандидата.
// Повторов нет: любая ошибка сразу уходит вызывающему
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if len(c.apiKey) == 0 {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}

	if msg := gjson.GetBytes(raw, "error.message"); msg.Exists() {
		c.log.Warn("gemini api error",
			zap.Int("status", res.StatusCode),
			zap.String("message", msg.String()),
		)
		return "", &APIError{Status: res.StatusCode, Message: msg.String()}
	}
	if res.StatusCode != http.StatusOK {
		return "", &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	}

	text := gjson.GetBytes(raw, "candidates.0.content.parts.0.text")
	if !text.Exists() {
		c.log.Warn("gemini response without candidates", zap.ByteString("body", raw))
		return "", ErrNoCandidates
	}

	return text.String(), nil
}
