package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("file sink", func(t *testing.T) {
		t.Parallel()
		sink := filepath.Join(t.TempDir(), "lending.log")
		log, err := NewLogger(Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "test")
		require.NoError(t, err)
		log.Info("hello", zap.Int64("loanId", 7))
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(sink)
		require.NoError(t, err)
		require.Contains(t, string(data), `"msg":"hello"`)
		require.Contains(t, string(data), `"logger":"test"`)
		require.Contains(t, string(data), `"loanId":7`)
	})

	t.Run("unwritable sink", func(t *testing.T) {
		t.Parallel()
		sink := filepath.Join(t.TempDir(), "missing", "lending.log")
		log, err := NewLogger(Log{Sink: sink}, "test")
		require.Error(t, err)
		require.Nil(t, log)
	})
}
