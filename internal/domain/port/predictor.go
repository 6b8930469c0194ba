package port

import (
	"context"
	"image"
)

// ScorePredictor внешняя модель, предсказывающая оценку доступности
type ScorePredictor interface {
	// Predict может вернуть что угодно, результат всегда проходит санитизацию
	Predict(ctx context.Context, img image.Image) (float64, error)
}
