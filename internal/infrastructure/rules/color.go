package rules

import (
	"errors"

	"accessibility-bot/internal/domain/entity"
)

const (
	hueBins          = 12
	minSaturation    = 0.35
	minValue         = 0.2
	minBinShare      = 0.02
	minHueContrast   = 1.5
	maxColorOnlyPart = 0.25
)

// ColorUsage ищет клетки, где два цвета различаются только оттенком, а по
// яркости почти одинаковы. Такой сигнал не увидит человек с нарушением
// цветовосприятия. Проверка пройдена, если таких клеток не больше четверти
// от всех многоцветных.
func ColorUsage(in entity.RuleInput) (float64, error) {
	img := in.Image
	if img.Bounds().Empty() {
		return 0, errors.New("empty image")
	}

	var multiColor, colorOnly int
	for _, t := range tiles(img.Bounds()) {
		var counts [hueBins]int
		var lumSum [hueBins]float64
		for y := t.Min.Y; y < t.Max.Y; y++ {
			row := img.Pix[img.PixOffset(t.Min.X, y):]
			for x := 0; x < t.Dx(); x++ {
				r, g, b := row[x*4], row[x*4+1], row[x*4+2]
				bin, ok := hueBin(r, g, b)
				if !ok {
					continue
				}
				counts[bin]++
				lumSum[bin] += relativeLuminance(r, g, b)
			}
		}

		first, second := topTwo(counts)
		minCount := int(minBinShare * float64(t.Dx()*t.Dy()))
		if minCount < 1 {
			minCount = 1
		}
		if counts[first] < minCount || counts[second] < minCount {
			continue
		}

		multiColor++
		l1 := lumSum[first] / float64(counts[first])
		l2 := lumSum[second] / float64(counts[second])
		if contrastRatio(l1, l2) < minHueContrast {
			colorOnly++
		}
	}

	if multiColor == 0 {
		return 1, nil
	}
	return boolValue(float64(colorOnly) <= maxColorOnlyPart*float64(multiColor)), nil
}

// hueBin номер корзины оттенка для насыщенного пикселя.
func hueBin(r, g, b uint8) (int, bool) {
	maxC := max(r, g, b)
	minC := min(r, g, b)
	if maxC == 0 {
		return 0, false
	}
	v := float64(maxC) / 255
	s := float64(maxC-minC) / float64(maxC)
	if s < minSaturation || v < minValue {
		return 0, false
	}

	d := float64(maxC - minC)
	var h float64
	switch maxC {
	case r:
		h = 60 * ((float64(g) - float64(b)) / d)
	case g:
		h = 60 * ((float64(b)-float64(r))/d + 2)
	default:
		h = 60 * ((float64(r)-float64(g))/d + 4)
	}
	if h < 0 {
		h += 360
	}
	bin := int(h / (360 / hueBins))
	if bin >= hueBins {
		bin = hueBins - 1
	}
	return bin, true
}

func topTwo(counts [hueBins]int) (int, int) {
	first, second := 0, 1
	if counts[second] > counts[first] {
		first, second = second, first
	}
	for i := 2; i < hueBins; i++ {
		switch {
		case counts[i] > counts[first]:
			first, second = i, first
		case counts[i] > counts[second]:
			second = i
		}
	}
	return first, second
}
