package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeGroup struct {
	sarama.ConsumerGroup
	consume func(ctx context.Context) error
	calls   atomic.Int32
}

func (g *fakeGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	g.calls.Add(1)
	return g.consume(ctx)
}

func TestConsume(t *testing.T) {
	RetryInterval = time.Millisecond

	t.Run("keeps consuming after errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		group := &fakeGroup{}
		group.consume = func(context.Context) error {
			if group.calls.Load() >= 3 {
				cancel()
				return nil
			}
			return errors.New("broker not available")
		}

		done := make(chan struct{})
		go func() {
			Consume(ctx, group, nil, zap.NewNop(), ReturnsTopic)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("Consume did not return after cancel")
		}
		require.EqualValues(t, 3, group.calls.Load())
	})

	t.Run("stops when the group is closed", func(t *testing.T) {
		group := &fakeGroup{consume: func(context.Context) error {
			return sarama.ErrClosedConsumerGroup
		}}
		Consume(context.Background(), group, nil, zap.NewNop(), ReturnsTopic)
		require.EqualValues(t, 1, group.calls.Load())
	})

	t.Run("stops on cancel while waiting to retry", func(t *testing.T) {
		RetryInterval = time.Hour
		defer func() { RetryInterval = time.Millisecond }()
		ctx, cancel := context.WithCancel(context.Background())
		group := &fakeGroup{}
		group.consume = func(context.Context) error {
			cancel()
			return errors.New("coordinator not available")
		}
		Consume(ctx, group, nil, zap.NewNop(), ReturnsTopic)
		require.EqualValues(t, 1, group.calls.Load())
	})
}
