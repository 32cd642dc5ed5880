package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "mvnscan", configBaseName)
	assert.Equal(t, "mvnscan.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "no-cache", noCacheFlagName)
	assert.Equal(t, "cache-dir", cacheDirFlagName)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "export", exportFlagName)
	assert.Equal(t, "cache.dir", cacheDirConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "classpath.compile", compileClasspathConfigKey)
	assert.Equal(t, "classpath.test", testClasspathConfigKey)
	assert.Equal(t, false, defaultNoCache)
	assert.Equal(t, "MVNSCAN", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty falls back to default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"mixed case", "DeBuG", slog.LevelDebug},
		{"surrounding whitespace", "  info  ", slog.LevelInfo},
		{"numeric level", "-4", slog.LevelDebug},
		{"unknown falls back to default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	configureLogger(logPath, true)

	require.NotNil(t, globalLogger)
	assert.True(t, globalLogger.Enabled(context.Background(), slog.LevelDebug))

	configureLogger(logPath, false)

	require.NotNil(t, globalLogger)
	assert.False(t, globalLogger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, globalLogger.Enabled(context.Background(), slog.LevelInfo))
}
