package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedAdapter(level zapcore.Level) (*ZapAdapter, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewZapAdapter(zap.New(core)), logs
}

func TestZapAdapter_LevelsAndFields(t *testing.T) {
	adapter, logs := newObservedAdapter(zapcore.DebugLevel)
	ctx := context.Background()

	adapter.Debug(ctx, "debug msg", map[string]interface{}{"path": "a.go"})
	adapter.Info(ctx, "info msg", nil)
	adapter.Warn(ctx, "warn msg", map[string]interface{}{"count": 3})
	adapter.Error(ctx, "error msg", errors.New("boom"), map[string]interface{}{"path": "b.go"})

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "debug msg", entries[0].Message)
	assert.Equal(t, "a.go", entries[0].ContextMap()["path"])

	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Empty(t, entries[1].Context)

	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.EqualValues(t, 3, entries[2].ContextMap()["count"])

	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
	assert.Equal(t, "b.go", entries[3].ContextMap()["path"])
}

func TestZapAdapter_Error_NilError(t *testing.T) {
	adapter, logs := newObservedAdapter(zapcore.ErrorLevel)

	adapter.Error(context.Background(), "failed", nil, nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].ContextMap(), "error")
}

func TestNewFromEnv_DefaultSuppressesInfo(t *testing.T) {
	t.Setenv(EnvLogLevel, "")

	adapter := NewFromEnv()
	require.NotNil(t, adapter)

	// Default level is warn; Info must be a no-op.
	assert.False(t, adapter.log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, adapter.log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFromEnv_DebugLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")

	adapter := NewFromEnv()

	assert.True(t, adapter.log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewFromEnv_InvalidLevelFallsBack(t *testing.T) {
	t.Setenv(EnvLogLevel, "shouting")

	adapter := NewFromEnv()

	assert.False(t, adapter.log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, adapter.log.Core().Enabled(zapcore.WarnLevel))
}
