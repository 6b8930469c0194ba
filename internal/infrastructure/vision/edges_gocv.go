//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// cannyDensity доля пикселей-границ после cv::Canny.
func cannyDensity(gray *image.Gray, low, high float64) (float64, error) {
	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return 0, fmt.Errorf("gray to mat: %w", err)
	}
	defer mat.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(mat, &edges, float32(low), float32(high))

	return ratioOfMat(edges), nil
}

// documentContours размывает изображение, ищет границы и возвращает
// габариты внешних контуров.
func documentContours(gray *image.Gray) ([]image.Rectangle, error) {
	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, fmt.Errorf("gray to mat: %w", err)
	}
	defer mat.Close()

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(mat, &blur, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blur, &edges, DocEdgeLow, DocEdgeHigh)

	contours := gocv.FindContours(edges, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	boxes := make([]image.Rectangle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		boxes = append(boxes, gocv.BoundingRect(contours.At(i)))
	}
	return boxes, nil
}

func ratioOfMat(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}
