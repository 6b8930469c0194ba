package report

import (
	"fmt"

	"accessibility-bot/internal/domain/port"
)

// TimeLayout формат времени генерации в отчёте.
const TimeLayout = "2006-01-02 15:04"

// NewRenderer выбирает формат отчёта.
func NewRenderer(format string) (port.ReportRenderer, error) {
	switch format {
	case "html", "":
		return NewHTMLRenderer(), nil
	case "yaml", "yml":
		return NewYAMLRenderer(), nil
	case "pdf":
		return nil, fmt.Errorf("pdf report not yet implemented")
	default:
		return nil, fmt.Errorf("unknown report format: %s", format)
	}
}
