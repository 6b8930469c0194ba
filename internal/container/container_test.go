package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"accessibility-bot/internal/domain/entity"
	"accessibility-bot/internal/infrastructure/predictor"
	"accessibility-bot/internal/infrastructure/report"
	"accessibility-bot/internal/infrastructure/rules"
	"accessibility-bot/internal/infrastructure/storage"
	"accessibility-bot/internal/infrastructure/vision"
)

func TestNew_WiresServices(t *testing.T) {
	renderer, err := report.NewRenderer("yaml")
	require.NoError(t, err)

	c := New(Deps{
		Users:     storage.NewMemoryUserRepository(),
		Gate:      vision.NewGate(),
		Rules:     rules.NewEngine(nil, rules.DefaultChecks()...),
		Predictor: predictor.NopPredictor{},
		Renderer:  renderer,
	})
	require.NotNil(t, c.UserService)
	require.NotNil(t, c.AnalysisService)
	require.NotNil(t, c.ScreenshotService)

	user, err := c.UserService.BeginCheck(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingScreenshot, user.State)

	_, err = c.AnalysisService.Analyze(context.Background(), entity.Upload{Image: []byte("junk")})
	require.ErrorIs(t, err, entity.ErrInvalidImage)
}
