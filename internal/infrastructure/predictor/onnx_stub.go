//go:build !gocv
// +build !gocv

package predictor

import (
	"context"
	"errors"
	"image"
)

// ONNXPredictor заглушка: без тега gocv OpenCV DNN недоступен.
type ONNXPredictor struct{}

// NewONNXPredictor возвращает ошибку, если сборка без тега gocv.
func NewONNXPredictor(modelPath string) (*ONNXPredictor, error) {
	_ = modelPath
	return nil, errors.New("gocv build tag is not enabled")
}

// Predict возвращает ошибку, если сборка без тега gocv.
func (p *ONNXPredictor) Predict(ctx context.Context, img image.Image) (float64, error) {
	_ = ctx
	_ = img
	return 0, errors.New("gocv build tag is not enabled")
}

// Close ничего не делает.
func (p *ONNXPredictor) Close() error {
	return nil
}
