package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/account-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name              string
		logLevel          string
		expectedSlogLevel slog.Level
	}{
		{"DebugLevel", "debug", slog.LevelDebug},
		{"InfoLevel", "info", slog.LevelInfo},
		{"WarnLevel", "WARN", slog.LevelWarn},
		{"ErrorLevel", "error", slog.LevelError},
		{"DefaultToInfo", "unknown", slog.LevelInfo},
		{"EmptyToInfo", "", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Logging: config.LoggingConfig{Level: tc.logLevel}}

			logger := NewLogger(cfg)
			require.NotNil(t, logger)

			assert.True(t, logger.Enabled(context.Background(), tc.expectedSlogLevel))
			if tc.expectedSlogLevel > slog.LevelDebug {
				assert.False(t, logger.Enabled(context.Background(), tc.expectedSlogLevel-4))
			}
		})
	}
}

func TestNewLogger_JSONOutputCarriesAppAttributes(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{
		Application: config.ApplicationConfig{Name: "account-ledger", Env: "test"},
		Logging:     config.LoggingConfig{Level: "info", Format: "json"},
	}

	logger := newLogger(cfg, &buf)
	buf.Reset()
	logger.Info("deposit applied", "customer_id", 42)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "deposit applied", line["msg"])
	assert.Equal(t, "account-ledger", line["app"])
	assert.Equal(t, "test", line["env"])
	assert.EqualValues(t, 42, line["customer_id"])
}

func TestNewLogger_TextFormatAndDebugSource(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "debug", Format: "TEXT"}}

	logger := newLogger(cfg, &buf)
	buf.Reset()
	logger.Debug("tick")

	out := buf.String()
	assert.True(t, strings.Contains(out, "msg=tick"), out)
	assert.Contains(t, out, "source=")
}
