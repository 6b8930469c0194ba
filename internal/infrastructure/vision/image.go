package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decode превращает байты PNG/JPEG/WebP в *image.RGBA с началом в (0,0).
func Decode(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New("empty image")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return ToRGBA(img), format, nil
}

// ToRGBA всегда возвращает новую копию, исходник не трогаем.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Grayscale переводит в оттенки серого (0.299R + 0.587G + 0.114B).
func Grayscale(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			r, g, bl := uint32(src[x*4]), uint32(src[x*4+1]), uint32(src[x*4+2])
			dst[x] = uint8((299*r + 587*g + 114*bl + 500) / 1000)
		}
	}
	return gray
}

// cropGray копирует прямоугольник в новое изображение с началом в (0,0).
func cropGray(gray *image.Gray, r image.Rectangle) *image.Gray {
	r = r.Intersect(gray.Bounds())
	out := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()], gray.Pix[gray.PixOffset(r.Min.X, r.Min.Y+y):])
	}
	return out
}
