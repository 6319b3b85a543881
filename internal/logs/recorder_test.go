package logs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestIsValidLevel(t *testing.T) {
	for _, l := range []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal", "WARN", "Error"} {
		assert.True(t, IsValidLevel(l), l)
	}
	for _, l := range []string{"", "  ", "verbose", "critical", "1"} {
		assert.False(t, IsValidLevel(l), l)
	}
}

func TestRecorder_CapturesEntriesAndFields(t *testing.T) {
	rec := NewRecorder(10, zapcore.DebugLevel)
	logger := zap.New(rec).Named("sales").With(zap.String("component", "test"))

	logger.Info("sale created", zap.String("key", "k-1"), zap.Int64("amount", 3))

	got := rec.Query(time.Time{}, time.Time{}, zapcore.DebugLevel)
	require.Len(t, got, 1)
	assert.Equal(t, "info", got[0].Level)
	assert.Equal(t, "sales", got[0].Logger)
	assert.Equal(t, "sale created", got[0].Message)
	assert.Equal(t, map[string]any{"component": "test", "key": "k-1", "amount": int64(3)}, got[0].Fields)
}

func TestRecorder_FiltersByLevel(t *testing.T) {
	rec := NewRecorder(10, zapcore.DebugLevel)
	logger := zap.New(rec)

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	var msgs []string
	for _, r := range rec.Query(time.Time{}, time.Time{}, zapcore.WarnLevel) {
		msgs = append(msgs, r.Message)
	}
	assert.Equal(t, []string{"w", "e"}, msgs)
}

func TestRecorder_FiltersByTime(t *testing.T) {
	rec := NewRecorder(10, zapcore.DebugLevel)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, msg := range []string{"a", "b", "c", "d"} {
		require.NoError(t, rec.Write(zapcore.Entry{Level: zapcore.InfoLevel, Time: base.Add(time.Duration(i) * time.Minute), Message: msg}, nil))
	}

	var msgs []string
	for _, r := range rec.Query(base.Add(time.Minute), base.Add(2*time.Minute), zapcore.InfoLevel) {
		msgs = append(msgs, r.Message)
	}
	assert.Equal(t, []string{"b", "c"}, msgs)
}

func TestRecorder_KeepsMostRecent(t *testing.T) {
	rec := NewRecorder(3, zapcore.DebugLevel)
	logger := zap.New(rec)
	for _, m := range []string{"1", "2", "3", "4", "5"} {
		logger.Info(m)
	}

	var msgs []string
	for _, r := range rec.Query(time.Time{}, time.Time{}, zapcore.DebugLevel) {
		msgs = append(msgs, r.Message)
	}
	assert.Equal(t, []string{"3", "4", "5"}, msgs)
}

func TestRecorder_RespectsEnabler(t *testing.T) {
	rec := NewRecorder(10, zapcore.WarnLevel)
	logger := zap.New(rec)

	logger.Info("dropped")
	logger.Warn("kept")

	got := rec.Query(time.Time{}, time.Time{}, zapcore.DebugLevel)
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].Message)
}

func TestRecorder_EmptyQueryIsNotNil(t *testing.T) {
	rec := NewRecorder(10, zapcore.DebugLevel)
	assert.NotNil(t, rec.Query(time.Time{}, time.Time{}, zapcore.DebugLevel))
}
