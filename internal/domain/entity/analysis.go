package entity

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// Stage шаг конвейера анализа.
type Stage string

const (
	StageReceived             Stage = "received"
	StageGateEvaluated        Stage = "gate_evaluated"
	StageRejected             Stage = "rejected" // конечное
	StageRulesEvaluated       Stage = "rules_evaluated"
	StageScoresComputed       Stage = "scores_computed"
	StageSuggestionsGenerated Stage = "suggestions_generated"
	StageReportReady          Stage = "report_ready" // конечное
)

// ErrInvalidImage базовая ошибка для отклонённых изображений.
var ErrInvalidImage = errors.New("invalid image")

// InvalidImageError изображение не похоже на скриншот интерфейса.
type InvalidImageError struct {
	Reason string
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("invalid image: %s", e.Reason)
}

func (e *InvalidImageError) Unwrap() error {
	return ErrInvalidImage
}

// Rejectf создаёт InvalidImageError с форматированной причиной.
func Rejectf(format string, args ...any) *InvalidImageError {
	return &InvalidImageError{Reason: fmt.Sprintf(format, args...)}
}

// Upload входные данные одного запуска.
type Upload struct {
	Image  []byte // закодированный PNG/JPEG/WebP
	Markup []byte // необязательная HTML-разметка страницы
}

// Report всё, что нужно для отображения и для документа.
type Report struct {
	Image       *image.RGBA
	Rules       RuleResult
	Scores      ScorePair
	Grade       string
	Suggestions []string
	Stage       Stage
	GeneratedAt time.Time
}

// Artifact готовый документ для скачивания.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}
