package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	require.Equal(t, slog.LevelError, levelFromString("ERROR"))
	require.Equal(t, slog.LevelWarn, levelFromString(" warning "))
	require.Equal(t, slog.LevelDebug, levelFromString("debug"))
	require.Equal(t, slog.LevelInfo, levelFromString(""))
}

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "check", "contrast")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "check=contrast")
}
