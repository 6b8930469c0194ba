package predictor

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FeatureSide модель обучалась на серых картинках 128x128.
const FeatureSide = 128

// Features сжимает изображение до 128x128 в оттенках серого.
func Features(img image.Image) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, FeatureSide, FeatureSide))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

// Pixels построчно разворачивает признаки в вектор.
func Pixels(gray *image.Gray) []float64 {
	b := gray.Bounds()
	out := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, float64(gray.GrayAt(x, y).Y))
		}
	}
	return out
}
