package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"accessibility-bot/config"
	telegram "accessibility-bot/internal/api"
	app "accessibility-bot/internal/application"
	"accessibility-bot/internal/container"
	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/domain/port"
	"accessibility-bot/internal/infrastructure/predictor"
	"accessibility-bot/internal/infrastructure/report"
	"accessibility-bot/internal/infrastructure/rules"
	"accessibility-bot/internal/infrastructure/storage"
	"accessibility-bot/internal/infrastructure/vision"
	"accessibility-bot/internal/logging"
)

func main() {
	analyzePath := flag.String("analyze", "", "проверить один скриншот и выйти")
	markupPath := flag.String("markup", "", "HTML-разметка страницы для -analyze")
	outPath := flag.String("out", "", "куда записать отчёт (по умолчанию имя отчёта в текущей папке)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	scorePredictor, closePredictor, err := newPredictor(cfg.Predictor, logger)
	if err != nil {
		logger.Error("failed to create predictor", "error", err)
		os.Exit(1)
	}
	defer closePredictor()

	renderer, err := report.NewRenderer(cfg.ReportFormat)
	if err != nil {
		logger.Error("failed to create report renderer", "error", err)
		os.Exit(1)
	}

	// Собираем сервисы приложения
	appContainer := container.New(container.Deps{
		Users:     storage.NewMemoryUserRepository(),
		Gate:      vision.NewGate(),
		Rules:     rules.NewEngine(logger, rules.DefaultChecks()...),
		Predictor: scorePredictor,
		Renderer:  renderer,
	},
		app.WithLogger(logger),
		app.WithPredictTimeout(cfg.Predictor.Timeout),
		app.WithMaxUploadBytes(cfg.MaxUploadBytes),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *analyzePath != "" {
		if err := analyzeFile(ctx, appContainer.AnalysisService, *analyzePath, *markupPath, *outPath); err != nil {
			logger.Error("analysis failed", "error", err)
			stop()
			closePredictor()
			os.Exit(1)
		}
		return
	}

	if cfg.TelegramToken == "" {
		logger.Error("TELEGRAM_TOKEN is required")
		os.Exit(1)
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, appContainer, logger, telegram.Options{
		MaxConcurrent:  cfg.MaxConcurrent,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	logger.Info("bot is running", "max_concurrent", cfg.MaxConcurrent, "report_format", cfg.ReportFormat)
	if err := bot.Run(ctx); err != nil {
		logger.Error("bot error", "error", err)
	}
	logger.Info("bot stopped")
}

// newPredictor выбирает модель: ONNX-файл, HTTP-сервис или заглушка.
func newPredictor(cfg config.PredictorConfig, logger *slog.Logger) (port.ScorePredictor, func(), error) {
	switch {
	case cfg.ModelPath != "":
		p, err := predictor.NewONNXPredictor(cfg.ModelPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using onnx predictor", "model", cfg.ModelPath)
		return p, func() { _ = p.Close() }, nil
	case cfg.URL != "":
		logger.Info("using http predictor", "url", cfg.URL)
		return predictor.NewHTTPPredictor(cfg.URL, cfg.APIKey, cfg.Timeout), func() {}, nil
	default:
		logger.Warn("predictor is not configured, ML score will be 0")
		return predictor.NopPredictor{}, func() {}, nil
	}
}

// analyzeFile прогоняет конвейер над локальным файлом и пишет отчёт на диск.
func analyzeFile(ctx context.Context, svc *app.AnalysisService, imagePath, markupPath, outPath string) error {
	image, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	var markup []byte
	if markupPath != "" {
		markup, err = os.ReadFile(markupPath)
		if err != nil {
			return fmt.Errorf("read markup: %w", err)
		}
	}

	rep, err := svc.Analyze(ctx, entity.Upload{Image: image, Markup: markup})
	var invalid *entity.InvalidImageError
	if errors.As(err, &invalid) {
		fmt.Fprintf(os.Stdout, "rejected: %s\n", invalid.Reason)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Contrast Score: %.2f\n", rep.Rules.Contrast)
	fmt.Fprintf(os.Stdout, "Use of Color: %s\n", entity.PassedLabel(rep.Rules.Color))
	fmt.Fprintf(os.Stdout, "Text Resize Support: %s\n", entity.PassedLabel(rep.Rules.TextResize))
	fmt.Fprintf(os.Stdout, "Alt Text Presence: %s\n", entity.PresentLabel(rep.Rules.AltText))
	fmt.Fprintf(os.Stdout, "Rule-Based Score: %.2f/100 (%s)\n", rep.Scores.Rule, rep.Grade)
	fmt.Fprintf(os.Stdout, "ML-Predicted Score: %.2f/100\n", rep.Scores.ML)
	for _, s := range rep.Suggestions {
		fmt.Fprintf(os.Stdout, "- %s\n", s)
	}

	art, err := svc.Render(ctx, rep)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = art.Name
	}
	if err := os.WriteFile(outPath, art.Data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(os.Stdout, "report: %s\n", outPath)
	return nil
}
