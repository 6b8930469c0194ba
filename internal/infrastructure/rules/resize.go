package rules

import (
	"errors"
	"sort"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/infrastructure/vision"
)

// Полосы выше maxBandHeight это уже блоки и картинки, а не строки текста.
const (
	inkDelta         = 48
	minRowInk        = 0.005
	minBandHeight    = 2
	maxBandHeight    = 64
	minTextHeight    = 6
	rightStripRatio  = 0.02
	maxOverflowShare = 0.2
)

// TextResize проверяет, что текст переживёт увеличение до 200%.
// Если приложена разметка, запрет масштабирования в viewport сразу провал.
// По картинке ищутся строки текста: слишком мелкий текст или текст,
// упирающийся в правый край, означает, что при увеличении он обрежется.
func TextResize(in entity.RuleInput) (float64, error) {
	if len(in.Markup) > 0 {
		doc, err := parseMarkup(in.Markup)
		if err != nil {
			return 0, err
		}
		if zoomBlocked(doc) {
			return 0, nil
		}
	}

	img := in.Image
	if img.Bounds().Empty() {
		return 0, errors.New("empty image")
	}

	gray := vision.Grayscale(img)
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	bg := int(medianGray(gray.Pix))

	strip := int(rightStripRatio * float64(w))
	if strip < 1 {
		strip = 1
	}

	isInk := func(v uint8) bool {
		d := int(v) - bg
		return d > inkDelta || d < -inkDelta
	}

	inkRow := make([]bool, h)
	edgeRow := make([]bool, h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		n := 0
		for x, v := range row {
			if !isInk(v) {
				continue
			}
			n++
			if x >= w-strip {
				edgeRow[y] = true
			}
		}
		inkRow[y] = float64(n) >= minRowInk*float64(w)
	}

	var heights []int
	var bandRows, overflowRows int
	for y := 0; y < h; {
		if !inkRow[y] {
			y++
			continue
		}
		start := y
		for y < h && inkRow[y] {
			y++
		}
		height := y - start
		if height < minBandHeight || height > maxBandHeight {
			continue
		}
		heights = append(heights, height)
		for i := start; i < y; i++ {
			bandRows++
			if edgeRow[i] {
				overflowRows++
			}
		}
	}

	if len(heights) == 0 {
		return 1, nil
	}

	sort.Ints(heights)
	if heights[(len(heights)-1)/2] < minTextHeight {
		return 0, nil
	}
	if float64(overflowRows) > maxOverflowShare*float64(bandRows) {
		return 0, nil
	}
	return 1, nil
}

// medianGray медиана по гистограмме, её считаем цветом фона.
func medianGray(pix []uint8) uint8 {
	var hist [256]int
	for _, v := range pix {
		hist[v]++
	}
	half := (len(pix) + 1) / 2
	acc := 0
	for v, n := range hist {
		acc += n
		if acc >= half {
			return uint8(v)
		}
	}
	return 255
}
