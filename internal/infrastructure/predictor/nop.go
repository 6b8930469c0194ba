package predictor

import (
	"context"
	"errors"
	"image"

	"accessibility-bot/internal/domain/port"
)

// ErrNotConfigured модель не подключена.
var ErrNotConfigured = errors.New("score predictor is not configured")

// NopPredictor используется, когда модель не подключена; оценка станет 0.
type NopPredictor struct{}

var _ port.ScorePredictor = NopPredictor{}

func (NopPredictor) Predict(ctx context.Context, img image.Image) (float64, error) {
	_ = ctx
	_ = img
	return 0, ErrNotConfigured
}
