//go:build !gocv
// +build !gocv

package vision

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanny_StepEdgeIsThin(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x >= 20 {
				gray.Pix[y*gray.Stride+x] = 200
			} else {
				gray.Pix[y*gray.Stride+x] = 50
			}
		}
	}

	edges := canny(gray, EdgeLow, EdgeHigh)
	for y := 0; y < 20; y++ {
		var cols []int
		for x := 0; x < 40; x++ {
			if edges[y*40+x] {
				cols = append(cols, x)
			}
		}
		require.Equal(t, []int{19}, cols, "row %d", y)
	}
}

func TestCanny_FlatImageHasNoEdges(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 30, 30))
	for i := range gray.Pix {
		gray.Pix[i] = 90
	}
	require.Zero(t, ratioOfMask(canny(gray, EdgeLow, EdgeHigh)))
}

func TestGaussianBlur5_KeepsFlatImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 7, 5))
	for i := range gray.Pix {
		gray.Pix[i] = 133
	}
	for _, v := range gaussianBlur5(gray).Pix {
		require.Equal(t, uint8(133), v)
	}
}

func TestComponentBoxes(t *testing.T) {
	w, h := 10, 10
	mask := make([]bool, w*h)
	// диагональ связна по 8 соседям
	for i := 0; i < 4; i++ {
		mask[i*w+i] = true
	}
	mask[8*w+8] = true

	boxes := componentBoxes(mask, w, h)
	require.ElementsMatch(t, []image.Rectangle{
		image.Rect(0, 0, 4, 4),
		image.Rect(8, 8, 9, 9),
	}, boxes)
}

func TestDocumentContours_LargePanel(t *testing.T) {
	img := mockScreenshot(image.Rect(700, 400, 1100, 750))
	boxes, err := documentContours(Grayscale(img))
	require.NoError(t, err)

	found := false
	for _, b := range boxes {
		if b.Dx() > MaxRectSide && b.Dy() > MaxRectSide {
			found = true
		}
	}
	require.True(t, found)
}

func TestReflect101(t *testing.T) {
	require.Equal(t, 1, reflect101(-1, 5))
	require.Equal(t, 2, reflect101(-2, 5))
	require.Equal(t, 3, reflect101(5, 5))
	require.Equal(t, 0, reflect101(-3, 1))
}
