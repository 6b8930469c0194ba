package rules

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseMarkup разбирает HTML страницы, приложенный к скриншоту.
func parseMarkup(markup []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}
	return doc, nil
}

// zoomBlocked true, если meta viewport запрещает увеличение до 200%.
func zoomBlocked(doc *goquery.Document) bool {
	blocked := false
	doc.Find(`meta[name="viewport"]`).Each(func(_ int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		for _, part := range strings.FieldsFunc(content, func(r rune) bool { return r == ',' || r == ';' }) {
			key, value, ok := strings.Cut(part, "=")
			if !ok {
				continue
			}
			key = strings.ToLower(strings.TrimSpace(key))
			value = strings.ToLower(strings.TrimSpace(value))
			switch key {
			case "user-scalable":
				if value == "no" || value == "0" {
					blocked = true
				}
			case "maximum-scale":
				if scale, err := strconv.ParseFloat(value, 64); err == nil && scale < 2 {
					blocked = true
				}
			}
		}
	})
	return blocked
}
