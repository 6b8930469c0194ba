package entity

const (
	SuggestAltText    = "Add alt text to all images for screen reader compatibility."
	SuggestContrast   = "Improve contrast between text and background (min 4.5:1)."
	SuggestColor      = "Avoid using color as the only way to convey information."
	SuggestTextResize = "Ensure text can be resized up to 200% without loss of content."
)

// GenerateSuggestions возвращает подсказки для проваленных проверок.
// Порядок фиксирован: alt text, контраст, цвет, масштабирование.
func GenerateSuggestions(r RuleResult) []string {
	suggestions := make([]string, 0, 4)
	if !r.AltText {
		suggestions = append(suggestions, SuggestAltText)
	}
	if r.Contrast < ContrastThreshold {
		suggestions = append(suggestions, SuggestContrast)
	}
	if !r.Color {
		suggestions = append(suggestions, SuggestColor)
	}
	if !r.TextResize {
		suggestions = append(suggestions, SuggestTextResize)
	}
	return suggestions
}
