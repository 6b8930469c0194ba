package entity

import "image"

// Имена проверок в фиксированном порядке вывода.
const (
	CheckContrast   = "contrast"
	CheckColor      = "color"
	CheckTextResize = "text_resize"
	CheckAltText    = "alt_text"
)

// ContrastThreshold минимальный коэффициент контраста по WCAG (4.5:1).
const ContrastThreshold = 4.5

// RuleResult итог четырёх эвристических проверок.
type RuleResult struct {
	Contrast   float64 // коэффициент контраста текста и фона, >= 0
	Color      bool    // информация передаётся не только цветом
	TextResize bool    // текст переживёт увеличение до 200%
	AltText    bool    // у изображений есть альтернативный текст
}

// Map возвращает результат в виде словаря с фиксированными ключами.
func (r RuleResult) Map() map[string]any {
	return map[string]any{
		CheckContrast:   r.Contrast,
		CheckColor:      r.Color,
		CheckTextResize: r.TextResize,
		CheckAltText:    r.AltText,
	}
}

// PassedLabel / PresentLabel нужны для отображения в отчёте и в чате.
func PassedLabel(ok bool) string {
	if ok {
		return "Passed"
	}
	return "Failed"
}

func PresentLabel(ok bool) string {
	if ok {
		return "Present"
	}
	return "Missing"
}

// RuleInput то, что получает каждая проверка. Только для чтения.
type RuleInput struct {
	Image  *image.RGBA
	Markup []byte
}
