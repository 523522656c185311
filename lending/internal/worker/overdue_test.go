package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type notifierFunc func(ctx context.Context) (int, error)

func (f notifierFunc) NotifyOverdue(ctx context.Context) (int, error) { return f(ctx) }

func TestNewOverdue_BadSpec(t *testing.T) {
	t.Parallel()
	_, err := NewOverdue("every tuesday", notifierFunc(func(context.Context) (int, error) { return 0, nil }), zap.NewNop())
	require.Error(t, err)
}

func TestOverdue_Run(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	w, err := NewOverdue("@every 1h", notifierFunc(func(ctx context.Context) (int, error) {
		calls.Add(1)
		_, ok := ctx.Deadline()
		require.True(t, ok)
		if calls.Load() > 1 {
			return 0, errors.New("db down")
		}
		return 2, nil
	}), zap.NewNop())
	require.NoError(t, err)

	w.Run()
	w.Run()
	require.Equal(t, int32(2), calls.Load())
}

func TestOverdue_StartStop(t *testing.T) {
	t.Parallel()
	w, err := NewOverdue("@every 1h", notifierFunc(func(context.Context) (int, error) { return 0, nil }), zap.NewNop())
	require.NoError(t, err)
	w.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, w.Stop(ctx))
}
