package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestParseSlogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{" info ", slog.LevelInfo},
		{"-4", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, parseSlogLevel(tc.in, slog.LevelInfo), "parseSlogLevel(%q)", tc.in)
	}
}

func TestLoggingDefaults(t *testing.T) {
	assert.Equal(t, defaultLogFilename, viper.GetString(logFilenameKey))
	assert.Equal(t, defaultLogMaxSize, viper.GetInt(logMaxSizeKey))
	assert.Equal(t, defaultLogMaxBackups, viper.GetInt(logMaxBackupsKey))
	assert.Equal(t, defaultLogMaxAge, viper.GetInt(logMaxAgeKey))
	assert.Equal(t, defaultLogCompress, viper.GetBool(logCompressKey))
}
