package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/domain/port"
	"accessibility-bot/internal/infrastructure/vision"
)

// DefaultPredictTimeout сколько ждём внешнюю модель.
const DefaultPredictTimeout = 10 * time.Second

// AnalysisService конвейер: фильтр -> правила -> оценки -> подсказки.
type AnalysisService struct {
	gate           port.ScreenshotGate
	rules          port.RuleEngine
	predictor      port.ScorePredictor
	renderer       port.ReportRenderer
	predictTimeout time.Duration
	maxUploadBytes int64
	now            func() time.Time
	logger         *slog.Logger
}

// AnalysisOption настройка сервиса анализа.
type AnalysisOption func(*AnalysisService)

// WithPredictTimeout ограничивает вызов модели.
func WithPredictTimeout(d time.Duration) AnalysisOption {
	return func(s *AnalysisService) {
		if d > 0 {
			s.predictTimeout = d
		}
	}
}

// WithMaxUploadBytes отклоняет слишком большие файлы до декодирования.
func WithMaxUploadBytes(n int64) AnalysisOption {
	return func(s *AnalysisService) {
		s.maxUploadBytes = n
	}
}

// WithClock подменяет часы (для отметки времени в отчёте).
func WithClock(now func() time.Time) AnalysisOption {
	return func(s *AnalysisService) {
		s.now = now
	}
}

// WithLogger задаёт логгер.
func WithLogger(logger *slog.Logger) AnalysisOption {
	return func(s *AnalysisService) {
		s.logger = logger
	}
}

// NewAnalysisService создаёт конвейер анализа скриншотов.
func NewAnalysisService(gate port.ScreenshotGate, rules port.RuleEngine, predictor port.ScorePredictor, renderer port.ReportRenderer, opts ...AnalysisOption) *AnalysisService {
	s := &AnalysisService{
		gate:           gate,
		rules:          rules,
		predictor:      predictor,
		renderer:       renderer,
		predictTimeout: DefaultPredictTimeout,
		now:            time.Now,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze выполняет один прогон. Ошибка возвращается только для отклонённого
// изображения (*entity.InvalidImageError); сбои проверок и модели поглощаются.
func (s *AnalysisService) Analyze(ctx context.Context, upload entity.Upload) (*entity.Report, error) {
	if s.gate == nil || s.rules == nil {
		return nil, errors.New("analysis service is not configured")
	}
	s.stage(entity.StageReceived, "bytes", len(upload.Image), "markup", len(upload.Markup) > 0)

	if s.maxUploadBytes > 0 && int64(len(upload.Image)) > s.maxUploadBytes {
		s.stage(entity.StageRejected, "reason", "too large")
		return nil, entity.Rejectf("file is too large (%d bytes, limit %d)", len(upload.Image), s.maxUploadBytes)
	}
	if len(upload.Image) == 0 {
		s.stage(entity.StageRejected, "reason", "empty upload")
		return nil, entity.Rejectf("empty upload")
	}

	img, format, err := vision.Decode(upload.Image)
	if err != nil {
		s.stage(entity.StageRejected, "reason", err.Error())
		return nil, entity.Rejectf("cannot decode image: %v", err)
	}

	if err := s.gate.Check(img); err != nil {
		s.stage(entity.StageRejected, "reason", err.Error())
		var invalid *entity.InvalidImageError
		if errors.As(err, &invalid) {
			return nil, invalid
		}
		return nil, entity.Rejectf("%v", err)
	}
	s.stage(entity.StageGateEvaluated, "format", format, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	results := s.rules.Evaluate(entity.RuleInput{Image: img, Markup: upload.Markup})
	s.stage(entity.StageRulesEvaluated, "contrast", results.Contrast, "color", results.Color,
		"text_resize", results.TextResize, "alt_text", results.AltText)

	scores := entity.ScorePair{
		Rule: entity.ComputeRuleScore(results),
		ML:   s.predict(ctx, img),
	}
	s.stage(entity.StageScoresComputed, "rule", scores.Rule, "ml", scores.ML)

	suggestions := entity.GenerateSuggestions(results)
	s.stage(entity.StageSuggestionsGenerated, "count", len(suggestions))

	report := &entity.Report{
		Image:       img,
		Rules:       results,
		Scores:      scores,
		Grade:       entity.Grade(scores.Rule),
		Suggestions: suggestions,
		Stage:       entity.StageReportReady,
		GeneratedAt: s.now(),
	}
	s.stage(entity.StageReportReady)
	return report, nil
}

// Render собирает документ для скачивания.
func (s *AnalysisService) Render(ctx context.Context, report *entity.Report) (*entity.Artifact, error) {
	if s.renderer == nil {
		return nil, errors.New("report renderer is not configured")
	}
	art, err := s.renderer.Render(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return art, nil
}

// predict вызывает модель с таймаутом; любой сбой превращается в 0.
func (s *AnalysisService) predict(ctx context.Context, img image.Image) (score float64) {
	if s.predictor == nil {
		return 0
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("prediction panicked", "panic", fmt.Sprint(r))
			score = 0
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.predictTimeout)
	defer cancel()

	type result struct {
		score float64
		err   error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("predictor panicked: %v", r)}
			}
		}()
		v, err := s.predictor.Predict(ctx, img)
		done <- result{score: v, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res = result{err: ctx.Err()}
	}
	if res.err != nil {
		s.logger.Warn("prediction failed", "error", res.err)
		return 0
	}

	sanitized := entity.SanitizeExternalScore(res.score)
	if sanitized != res.score {
		s.logger.Warn("prediction sanitized", "raw", res.score, "score", sanitized)
	}
	return sanitized
}

func (s *AnalysisService) stage(stage entity.Stage, attrs ...any) {
	s.logger.Debug("analysis stage", append([]any{"stage", string(stage)}, attrs...)...)
}
