package rules

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"accessibility-bot/internal/domain/entity"
)

// AltText проверяет альтернативный текст по приложенной разметке.
// По одному растру наличие alt не доказать, поэтому без разметки проверка провалена.
// Пустой alt="" допустим: так помечаются декоративные изображения.
func AltText(in entity.RuleInput) (float64, error) {
	if len(in.Markup) == 0 {
		return 0, nil
	}

	doc, err := parseMarkup(in.Markup)
	if err != nil {
		return 0, err
	}

	ok := true
	doc.Find(`img, input[type="image"], area`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if _, has := s.Attr("alt"); !has {
			ok = false
		}
		return ok
	})
	if !ok {
		return 0, nil
	}

	doc.Find(`[role="img"]`).Not("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !hasAccessibleName(s) {
			ok = false
		}
		return ok
	})
	return boolValue(ok), nil
}

func hasAccessibleName(s *goquery.Selection) bool {
	for _, attr := range []string{"aria-label", "aria-labelledby", "title"} {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return strings.TrimSpace(s.ChildrenFiltered("title").Text()) != ""
}
