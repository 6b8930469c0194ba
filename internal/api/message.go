package telegram

import (
	"fmt"
	"path"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"accessibility-bot/internal/domain/entity"
)

type uploadKind int

const (
	uploadScreenshot uploadKind = iota
	uploadMarkup
)

// incomingFile файл из сообщения, который стоит скачать.
type incomingFile struct {
	kind   uploadKind
	fileID string
	size   int
}

// classify определяет, что прислал пользователь: скриншот или HTML.
func classify(msg *tgbotapi.Message) (incomingFile, bool) {
	if len(msg.Photo) > 0 {
		// последний размер самый большой
		photo := msg.Photo[len(msg.Photo)-1]
		return incomingFile{kind: uploadScreenshot, fileID: photo.FileID, size: photo.FileSize}, true
	}

	doc := msg.Document
	if doc == nil {
		return incomingFile{}, false
	}

	file := incomingFile{fileID: doc.FileID, size: doc.FileSize}
	mime := strings.ToLower(doc.MimeType)
	ext := strings.ToLower(path.Ext(doc.FileName))
	switch {
	case mime == "image/png" || mime == "image/jpeg" || mime == "image/webp",
		ext == ".png" || ext == ".jpg" || ext == ".jpeg" || ext == ".webp":
		file.kind = uploadScreenshot
	case mime == "text/html" || mime == "application/xhtml+xml",
		ext == ".html" || ext == ".htm":
		file.kind = uploadMarkup
	default:
		return incomingFile{}, false
	}
	return file, true
}

func formatRejection(err *entity.InvalidImageError) string {
	return fmt.Sprintf("🚫 Это не похоже на скриншот веб-интерфейса.\nПричина: %s\n\nПришлите скриншот страницы в браузере.", err.Reason)
}

// formatReport текст ответа с результатами проверок.
func formatReport(rep *entity.Report) string {
	var sb strings.Builder

	sb.WriteString("📊 Результаты проверки доступности\n\n")
	fmt.Fprintf(&sb, "%s Контраст: %.2f:1 (нужно от %.1f:1)\n",
		mark(rep.Rules.Contrast >= entity.ContrastThreshold), rep.Rules.Contrast, entity.ContrastThreshold)
	fmt.Fprintf(&sb, "%s Использование цвета\n", mark(rep.Rules.Color))
	fmt.Fprintf(&sb, "%s Масштабирование текста\n", mark(rep.Rules.TextResize))
	fmt.Fprintf(&sb, "%s Alt-текст\n\n", mark(rep.Rules.AltText))

	fmt.Fprintf(&sb, "Оценка по правилам: %.2f/100 (%s)\n", rep.Scores.Rule, rep.Grade)
	fmt.Fprintf(&sb, "Оценка модели: %.2f/100\n", rep.Scores.ML)

	if len(rep.Suggestions) == 0 {
		sb.WriteString("\n✅ Замечаний нет.")
		return sb.String()
	}

	sb.WriteString("\n💡 Рекомендации:\n")
	for _, s := range rep.Suggestions {
		sb.WriteString("• ")
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌"
}
