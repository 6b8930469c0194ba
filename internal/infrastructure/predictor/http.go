package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"accessibility-bot/internal/domain/port"
)

// HTTPPredictor обращается к внешнему сервису инференса.
type HTTPPredictor struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ port.ScorePredictor = (*HTTPPredictor)(nil)

// NewHTTPPredictor создаёт клиента; timeout ограничивает один запрос.
func NewHTTPPredictor(endpoint, apiKey string, timeout time.Duration) *HTTPPredictor {
	return &HTTPPredictor{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

type predictRequest struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Pixels []float64 `json:"pixels"`
}

type predictResponse struct {
	Score *float64 `json:"score"`
}

// Predict отправляет признаки изображения и возвращает сырую оценку.
func (p *HTTPPredictor) Predict(ctx context.Context, img image.Image) (float64, error) {
	payload := predictRequest{
		Width:  FeatureSide,
		Height: FeatureSide,
		Pixels: Pixels(Features(img)),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if out.Score == nil {
		return 0, fmt.Errorf("decode response: score is missing")
	}

	return *out.Score, nil
}
