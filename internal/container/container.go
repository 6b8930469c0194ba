package container

import (
	app "accessibility-bot/internal/application"
	"accessibility-bot/internal/domain/port"
)

// Container сервисы приложения, собранные из адаптеров.
type Container struct {
	UserService       *app.UserService
	AnalysisService   *app.AnalysisService
	ScreenshotService *app.ScreenshotService
}

// Deps адаптеры, которые подставляются в конвейер.
type Deps struct {
	Users     port.UserRepository
	Gate      port.ScreenshotGate
	Rules     port.RuleEngine
	Predictor port.ScorePredictor
	Renderer  port.ReportRenderer
}

func New(deps Deps, opts ...app.AnalysisOption) *Container {
	userService := app.NewUserService(deps.Users)
	analysisService := app.NewAnalysisService(deps.Gate, deps.Rules, deps.Predictor, deps.Renderer, opts...)
	screenshotService := app.NewScreenshotService(userService, analysisService)

	return &Container{
		UserService:       userService,
		AnalysisService:   analysisService,
		ScreenshotService: screenshotService,
	}
}
