package runbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debug("API request", "method", "POST", "request_id", "r1")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("API request failed", "status", 500)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "r1", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, int64(500), entries[3].ContextMap()["status"])
}

func TestNewZapLogger_Nil(t *testing.T) {
	assert.NotPanics(t, func() {
		NewZapLogger(nil).Error("dropped", "k", "v")
	})
}
