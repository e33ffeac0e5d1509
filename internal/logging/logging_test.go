package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"", zapcore.WarnLevel},
		{"debug", zapcore.DebugLevel},
		{" INFO ", zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_WritesJSONToFileInProdMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datemate.log")

	logger, err := New(Config{Mode: "prod", Level: "info", Output: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("session_started")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"session_started"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "nope"})
	assert.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DATEMATE_LOG_MODE", "prod")
	t.Setenv("DATEMATE_LOG_LEVEL", "info")
	t.Setenv("DATEMATE_LOG_FILE", "")

	cfg := ConfigFromEnv()
	assert.Equal(t, Config{Mode: "prod", Level: "info"}, cfg)
	assert.Equal(t, "debug", cfg.Verbose().Level)
}
