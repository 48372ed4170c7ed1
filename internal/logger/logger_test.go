package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		format, level string
		enabled       zapcore.Level
		disabled      zapcore.Level
	}{
		{"text", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"json", "info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"text", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"", "error", zapcore.ErrorLevel, zapcore.WarnLevel},
	} {
		t.Run(tc.format+"/"+tc.level, func(t *testing.T) {
			log, err := New(tc.format, tc.level)
			require.NoError(t, err)
			require.True(t, log.Core().Enabled(tc.enabled))
			require.False(t, log.Core().Enabled(tc.disabled))
		})
	}
}

func TestNewNone(t *testing.T) {
	log, err := New("text", "none")
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewErrors(t *testing.T) {
	_, err := New("text", "loud")
	require.ErrorContains(t, err, "unknown log level")

	_, err = New("text", "fatal")
	require.ErrorContains(t, err, "unknown log level")

	_, err = New("xml", "info")
	require.ErrorContains(t, err, "unknown log format")

	require.Panics(t, func() { MustNew("xml", "info") })
}
