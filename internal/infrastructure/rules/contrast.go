package rules

import (
	"errors"
	"sort"

	"accessibility-bot/internal/domain/entity"
)

const (
	// minTileContrast клетки с меньшим контрастом считаются пустым фоном
	minTileContrast = 1.5
	lowPercentile   = 0.05
	highPercentile  = 0.95
)

// ContrastRatio средний коэффициент контраста по клеткам, где есть содержимое.
// Тёмный и светлый уровни клетки: 5-й и 95-й процентили яркости.
func ContrastRatio(in entity.RuleInput) (float64, error) {
	img := in.Image
	if img.Bounds().Empty() {
		return 0, errors.New("empty image")
	}

	var sum float64
	var count int
	lum := make([]float64, 0, TileSize*TileSize)
	for _, t := range tiles(img.Bounds()) {
		lum = lum[:0]
		for y := t.Min.Y; y < t.Max.Y; y++ {
			row := img.Pix[img.PixOffset(t.Min.X, y):]
			for x := 0; x < t.Dx(); x++ {
				lum = append(lum, relativeLuminance(row[x*4], row[x*4+1], row[x*4+2]))
			}
		}
		sort.Float64s(lum)
		n := len(lum) - 1
		ratio := contrastRatio(lum[int(highPercentile*float64(n))], lum[int(lowPercentile*float64(n))])
		if ratio < minTileContrast {
			continue
		}
		sum += ratio
		count++
	}

	if count == 0 {
		return 1, nil
	}
	return round2(sum / float64(count)), nil
}
