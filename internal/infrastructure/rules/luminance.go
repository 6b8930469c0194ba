package rules

import (
	"image"
	"math"
)

// TileSize сторона клетки, по которой считаются локальные метрики.
const TileSize = 32

var linearRGB = func() [256]float64 {
	var lut [256]float64
	for i := range lut {
		c := float64(i) / 255
		if c <= 0.04045 {
			lut[i] = c / 12.92
		} else {
			lut[i] = math.Pow((c+0.055)/1.055, 2.4)
		}
	}
	return lut
}()

// relativeLuminance яркость цвета по WCAG 2.x.
func relativeLuminance(r, g, b uint8) float64 {
	return 0.2126*linearRGB[r] + 0.7152*linearRGB[g] + 0.0722*linearRGB[b]
}

// contrastRatio (L1 + 0.05) / (L2 + 0.05), где L1 светлее.
func contrastRatio(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	return (a + 0.05) / (b + 0.05)
}

// tiles делит изображение на клетки TileSize x TileSize; обрезки по краям
// присоединяются, если они не меньше четверти клетки.
func tiles(b image.Rectangle) []image.Rectangle {
	var out []image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y += TileSize {
		if b.Max.Y-y < TileSize/4 && y != b.Min.Y {
			break
		}
		for x := b.Min.X; x < b.Max.X; x += TileSize {
			if b.Max.X-x < TileSize/4 && x != b.Min.X {
				break
			}
			out = append(out, image.Rect(x, y, x+TileSize, y+TileSize).Intersect(b))
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
