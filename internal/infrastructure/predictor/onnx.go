//go:build gocv
// +build gocv

package predictor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"accessibility-bot/internal/domain/port"
)

// ONNXPredictor регрессионная модель в формате ONNX через OpenCV DNN.
type ONNXPredictor struct {
	net gocv.Net
	mu  sync.Mutex
}

var _ port.ScorePredictor = (*ONNXPredictor)(nil)

// NewONNXPredictor загружает сеть из файла модели.
func NewONNXPredictor(modelPath string) (*ONNXPredictor, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %w", err)
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, errors.New("failed to load network")
	}
	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, fmt.Errorf("set backend: %w", err)
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		net.Close()
		return nil, fmt.Errorf("set target: %w", err)
	}

	return &ONNXPredictor{net: net}, nil
}

// Predict прогоняет 128x128 серое изображение через сеть.
func (p *ONNXPredictor) Predict(ctx context.Context, img image.Image) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	mat, err := gocv.ImageGrayToMatGray(Features(img))
	if err != nil {
		return 0, fmt.Errorf("gray to mat: %w", err)
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0, image.Pt(FeatureSide, FeatureSide), gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	// gocv.Net не потокобезопасен
	p.mu.Lock()
	defer p.mu.Unlock()

	p.net.SetInput(blob, "")
	out := p.net.Forward("")
	defer out.Close()

	if out.Empty() || out.Total() < 1 {
		return 0, errors.New("empty model output")
	}
	return float64(out.GetFloatAt(0, 0)), nil
}

// Close освобождает сеть.
func (p *ONNXPredictor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.net.Close()
}
