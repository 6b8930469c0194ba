package port

import "image"

// ScreenshotGate фильтр, отсекающий изображения, не похожие на скриншот интерфейса
type ScreenshotGate interface {
	// Check возвращает *entity.InvalidImageError, если изображение отклонено
	Check(img *image.RGBA) error
}
