package vision

import (
	"image"
	"math"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/domain/port"
)

// Пороги фильтра скриншотов. Подобраны вручную и не настраиваются.
const (
	MinWidth  = 400
	MinHeight = 200

	MinStdDev = 10.0
	MaxStdDev = 90.0

	EdgeLow        = 100
	EdgeHigh       = 200
	MinEdgeDensity = 0.01
	MaxEdgeDensity = 0.15

	TopSliceRatio     = 0.10
	MinTopEdgeDensity = 0.01

	DocEdgeLow  = 75
	DocEdgeHigh = 200
	MaxRectSide = 300
)

// Gate проверяет, похоже ли изображение на скриншот браузера или интерфейса.
type Gate struct{}

// NewGate создаёт фильтр скриншотов.
func NewGate() *Gate {
	return &Gate{}
}

var _ port.ScreenshotGate = (*Gate)(nil)

// IsLikelyUIScreenshot true, если изображение прошло все пять условий.
func (g *Gate) IsLikelyUIScreenshot(img *image.RGBA) bool {
	return g.Check(img) == nil
}

// Check проверяет условия по порядку и останавливается на первом проваленном.
func (g *Gate) Check(img *image.RGBA) error {
	if img == nil {
		return entity.Rejectf("empty image")
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w < MinWidth || h < MinHeight {
		return entity.Rejectf("image is too small (%dx%d)", w, h)
	}

	gray := Grayscale(img)

	std := stdDev(gray)
	if std < MinStdDev || std > MaxStdDev {
		return entity.Rejectf("intensity deviation out of range (std=%.2f)", std)
	}

	density, err := cannyDensity(gray, EdgeLow, EdgeHigh)
	if err != nil {
		return entity.Rejectf("edge detection failed: %v", err)
	}
	if density < MinEdgeDensity || density > MaxEdgeDensity {
		return entity.Rejectf("edge density out of range (density=%.4f)", density)
	}

	top := cropGray(gray, image.Rect(0, 0, w, int(TopSliceRatio*float64(h))))
	topDensity, err := cannyDensity(top, EdgeLow, EdgeHigh)
	if err != nil {
		return entity.Rejectf("edge detection failed: %v", err)
	}
	if topDensity < MinTopEdgeDensity {
		return entity.Rejectf("no browser chrome near the top (density=%.4f)", topDensity)
	}

	boxes, err := documentContours(gray)
	if err != nil {
		return entity.Rejectf("contour extraction failed: %v", err)
	}
	for _, box := range boxes {
		if box.Dx() > MaxRectSide && box.Dy() > MaxRectSide {
			return entity.Rejectf("dominant rectangle looks like a document or photo (%dx%d)", box.Dx(), box.Dy())
		}
	}

	return nil
}

// stdDev стандартное отклонение яркости по всей картинке.
func stdDev(gray *image.Gray) float64 {
	n := len(gray.Pix)
	if n == 0 {
		return 0
	}
	var sum, sumSq float64
	for _, v := range gray.Pix {
		f := float64(v)
		sum += f
		sumSq += f * f
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		return 0
	}
	return math.Sqrt(variance)
}
