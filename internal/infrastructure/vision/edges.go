//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"math"
)

// Реализация без OpenCV: повторяет поведение cv::Canny (Sobel 3x3, L1-норма,
// подавление немаксимумов, гистерезис) и cv::GaussianBlur 5x5.

// cannyDensity доля пикселей-границ после детектора Канни.
func cannyDensity(gray *image.Gray, low, high float64) (float64, error) {
	edges := canny(gray, low, high)
	return ratioOfMask(edges), nil
}

// documentContours размывает изображение, ищет границы и возвращает
// габариты внешних контуров.
func documentContours(gray *image.Gray) ([]image.Rectangle, error) {
	blurred := gaussianBlur5(gray)
	edges := canny(blurred, DocEdgeLow, DocEdgeHigh)
	return componentBoxes(edges, blurred.Bounds().Dx(), blurred.Bounds().Dy()), nil
}

// canny возвращает маску границ размером w*h.
func canny(gray *image.Gray, low, high float64) []bool {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil
	}

	at := func(x, y int) int32 {
		x = clampInt(x, 0, w-1)
		y = clampInt(y, 0, h-1)
		return int32(gray.Pix[y*gray.Stride+x])
	}

	gx := make([]int32, w*h)
	gy := make([]int32, w*h)
	mag := make([]int32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			dy := at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			i := y*w + x
			gx[i], gy[i] = dx, dy
			mag[i] = abs32(dx) + abs32(dy)
		}
	}

	m := func(x, y int) int32 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return mag[y*w+x]
	}

	tan22 := math.Tan(math.Pi / 8)
	tan67 := math.Tan(3 * math.Pi / 8)

	// 0 не граница, 1 слабая, 2 сильная
	class := make([]uint8, w*h)
	stack := make([]int, 0, 1024)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := mag[i]
			if float64(v) <= low {
				continue
			}

			ax, ay := float64(abs32(gx[i])), float64(abs32(gy[i]))
			var keep bool
			switch {
			case ay < ax*tan22:
				keep = v > m(x-1, y) && v >= m(x+1, y)
			case ay > ax*tan67:
				keep = v > m(x, y-1) && v >= m(x, y+1)
			default:
				s := 1
				if (gx[i] < 0) != (gy[i] < 0) {
					s = -1
				}
				keep = v > m(x-s, y-1) && v > m(x+s, y+1)
			}
			if !keep {
				continue
			}

			if float64(v) > high {
				class[i] = 2
				stack = append(stack, i)
			} else {
				class[i] = 1
			}
		}
	}

	// Гистерезис: слабые пиксели остаются, только если связаны с сильными.
	edges := make([]bool, w*h)
	for _, i := range stack {
		edges[i] = true
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if class[j] == 1 && !edges[j] {
					edges[j] = true
					stack = append(stack, j)
				}
			}
		}
	}

	return edges
}

// gaussianBlur5 размытие ядром [1 4 6 4 1]/16 по обеим осям (как cv::GaussianBlur
// с ksize=5 и sigma=0), граница отражается без повтора крайнего пикселя.
func gaussianBlur5(gray *image.Gray) *image.Gray {
	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	kernel := [5]int32{1, 4, 6, 4, 1}
	tmp := make([]int32, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			var sum int32
			for k := -2; k <= 2; k++ {
				sum += kernel[k+2] * int32(row[reflect101(x+k, w)])
			}
			tmp[y*w+x] = sum
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum int32
			for k := -2; k <= 2; k++ {
				sum += kernel[k+2] * tmp[reflect101(y+k, h)*w+x]
			}
			out.Pix[y*out.Stride+x] = uint8((sum + 128) >> 8)
		}
	}
	return out
}

// componentBoxes габариты 8-связных компонент маски. Вложенные контуры
// всегда меньше внешних, поэтому для проверки размеров этого достаточно.
func componentBoxes(mask []bool, w, h int) []image.Rectangle {
	visited := make([]bool, len(mask))
	var boxes []image.Rectangle
	stack := make([]int, 0, 256)

	for start, on := range mask {
		if !on || visited[start] {
			continue
		}
		minX, minY := start%w, start/w
		maxX, maxY := minX, minY

		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			minX, maxX = minInt(minX, x), maxInt(maxX, x)
			minY, maxY = minInt(minY, y), maxInt(maxY, y)

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := ny*w + nx
					if mask[j] && !visited[j] {
						visited[j] = true
						stack = append(stack, j)
					}
				}
			}
		}
		boxes = append(boxes, image.Rect(minX, minY, maxX+1, maxY+1))
	}
	return boxes
}

// ratioOfMask доля ненулевых пикселей в маске.
func ratioOfMask(mask []bool) float64 {
	if len(mask) == 0 {
		return 0
	}
	n := 0
	for _, on := range mask {
		if on {
			n++
		}
	}
	return float64(n) / float64(len(mask))
}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
