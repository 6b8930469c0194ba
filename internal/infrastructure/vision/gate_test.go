package vision

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"accessibility-bot/internal/domain/entity"
)

var (
	background = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	cardColor  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	chrome     = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	panelColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
)

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// mockScreenshot 1920x1080: вкладки и адресная строка сверху, сетка карточек ниже.
// Если panel не пустой, на его месте рисуется крупный прямоугольник.
func mockScreenshot(panel image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	fill(img, img.Bounds(), background)

	for i := 0; i < 8; i++ {
		fill(img, image.Rect(20+i*220, 10, 220+i*220, 40), chrome)
	}
	fill(img, image.Rect(20, 55, 1900, 85), chrome)

	for row := 0; row < 7; row++ {
		for col := 0; col < 10; col++ {
			card := image.Rect(20+col*180, 140+row*130, 170+col*180, 240+row*130)
			if !panel.Empty() && card.Overlaps(panel.Inset(-10)) {
				continue
			}
			fill(img, card, cardColor)
		}
	}

	if !panel.Empty() {
		fill(img, panel, panelColor)
	}
	return img
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, img.Bounds(), c)
	return img
}

func requireRejected(t *testing.T, err error, reason string) {
	t.Helper()
	require.Error(t, err)
	var invalid *entity.InvalidImageError
	require.True(t, errors.As(err, &invalid))
	require.Contains(t, invalid.Reason, reason)
}

func TestGate_AcceptsMockScreenshot(t *testing.T) {
	img := mockScreenshot(image.Rectangle{})
	gray := Grayscale(img)

	std := stdDev(gray)
	require.InDelta(t, 43.5, std, 2)

	density, err := cannyDensity(gray, EdgeLow, EdgeHigh)
	require.NoError(t, err)
	require.Greater(t, density, MinEdgeDensity)
	require.Less(t, density, MaxEdgeDensity)

	require.NoError(t, NewGate().Check(img))
	require.True(t, NewGate().IsLikelyUIScreenshot(img))
}

func TestGate_RejectsSmallImage(t *testing.T) {
	// размер проверяется первым, содержимое роли не играет
	img := mockScreenshot(image.Rectangle{})
	small := ToRGBA(img.SubImage(image.Rect(0, 0, 300, 150)))
	requireRejected(t, NewGate().Check(small), "too small")

	requireRejected(t, NewGate().Check(solid(399, 800, background)), "too small")
	requireRejected(t, NewGate().Check(solid(800, 199, background)), "too small")
}

func TestGate_RejectsSolidColor(t *testing.T) {
	requireRejected(t, NewGate().Check(solid(500, 500, color.RGBA{R: 128, G: 128, B: 128, A: 255})), "deviation")
	requireRejected(t, NewGate().Check(solid(1280, 720, color.RGBA{R: 20, G: 90, B: 200, A: 255})), "deviation")
}

func TestGate_RejectsNoise(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	for i := 0; i < len(img.Pix); i += 4 {
		v := uint8(rng.Intn(256))
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
	}
	requireRejected(t, NewGate().Check(img), "edge density")
}

func TestGate_RejectsMissingTopChrome(t *testing.T) {
	img := mockScreenshot(image.Rectangle{})
	fill(img, image.Rect(0, 0, 1920, 108), background)
	requireRejected(t, NewGate().Check(img), "top")
}

func TestGate_RejectsDominantRectangle(t *testing.T) {
	img := mockScreenshot(image.Rect(700, 400, 1100, 750))
	requireRejected(t, NewGate().Check(img), "dominant rectangle")
}

func TestGate_NilImage(t *testing.T) {
	requireRejected(t, NewGate().Check(nil), "empty")
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(640, 480, background)))

	img, format, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 640, img.Bounds().Dx())
	require.Equal(t, 480, img.Bounds().Dy())

	_, _, err = Decode([]byte("not an image"))
	require.Error(t, err)

	_, _, err = Decode(nil)
	require.Error(t, err)
}

func TestGrayscale_EqualChannels(t *testing.T) {
	gray := Grayscale(solid(4, 4, color.RGBA{R: 77, G: 77, B: 77, A: 255}))
	for _, v := range gray.Pix {
		require.Equal(t, uint8(77), v)
	}
}
