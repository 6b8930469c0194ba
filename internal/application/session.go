package app

import (
	"context"
	"errors"
	"sync"

	"accessibility-bot/internal/domain/entity"
)

// ScreenshotService ведёт диалог: разметка (необязательно), затем скриншот.
type ScreenshotService struct {
	users    *UserService
	analysis *AnalysisService
	markup   map[int64][]byte
	mu       sync.Mutex
}

// ScreenshotOutput отчёт и готовый документ.
type ScreenshotOutput struct {
	Report   *entity.Report
	Artifact *entity.Artifact
}

// NewScreenshotService создаёт сервис проверки скриншотов.
func NewScreenshotService(users *UserService, analysis *AnalysisService) *ScreenshotService {
	return &ScreenshotService{
		users:    users,
		analysis: analysis,
		markup:   make(map[int64][]byte),
	}
}

// AcceptMarkup запоминает HTML для следующего скриншота пользователя.
func (s *ScreenshotService) AcceptMarkup(ctx context.Context, userID, chatID int64, markup []byte) (*entity.User, error) {
	if len(markup) == 0 {
		return nil, errors.New("markup is empty")
	}
	s.mu.Lock()
	s.markup[userID] = markup
	s.mu.Unlock()
	return s.users.SetState(ctx, userID, chatID, entity.StateAwaitingScreenshot)
}

// HasMarkup есть ли сохранённая разметка.
func (s *ScreenshotService) HasMarkup(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.markup[userID]) > 0
}

// Cancel сбрасывает разметку и возвращает пользователя в меню.
func (s *ScreenshotService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	s.takeMarkup(userID)
	return s.users.Cancel(ctx, userID, chatID)
}

// ProcessScreenshot анализирует скриншот вместе с сохранённой разметкой.
// Разметка используется один раз. Пользователь в любом случае возвращается в меню.
func (s *ScreenshotService) ProcessScreenshot(ctx context.Context, userID, chatID int64, image []byte) (*ScreenshotOutput, error) {
	if s.analysis == nil {
		return nil, errors.New("analysis service is not configured")
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = s.users.SetState(context.WithoutCancel(ctx), userID, chatID, entity.StateMainMenu)
	}()

	upload := entity.Upload{Image: image, Markup: s.takeMarkup(userID)}
	report, err := s.analysis.Analyze(ctx, upload)
	if err != nil {
		return nil, err
	}

	artifact, err := s.analysis.Render(ctx, report)
	if err != nil {
		// отчёт в чате всё равно можно показать
		return &ScreenshotOutput{Report: report}, err
	}
	return &ScreenshotOutput{Report: report, Artifact: artifact}, nil
}

func (s *ScreenshotService) takeMarkup(userID int64) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.markup[userID]
	delete(s.markup, userID)
	return m
}
