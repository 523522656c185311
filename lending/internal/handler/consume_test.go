package handler

import (
	"context"
	"testing"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
)

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func newClaim(values ...string) *fakeClaim {
	messages := make(chan *sarama.ConsumerMessage, len(values))
	for i, value := range values {
		messages <- &sarama.ConsumerMessage{Offset: int64(i), Value: []byte(value)}
	}
	close(messages)
	return &fakeClaim{messages: messages}
}

func TestConsumer_ConsumeClaim(t *testing.T) {
	t.Parallel()
	calls := make(map[int64]int)
	returnLoan := func(_ context.Context, loanID int64) (model.Loan, error) {
		calls[loanID]++
		switch loanID {
		case 2:
			return model.Loan{}, errs.ErrAlreadyReturned
		case 3:
			return model.Loan{}, errs.ErrNotFound
		default:
			return model.Loan{ID: loanID, Status: model.LoanStatusReturned}, nil
		}
	}

	session := &fakeSession{ctx: context.Background()}
	consumer := NewConsumer(returnLoan, zap.NewNop())
	claim := newClaim(`{"loanId":1}`, `{"loanId":2}`, `not json`, `{"loanId":3}`, `{"loanId":4}`)
	require.NoError(t, consumer.ConsumeClaim(session, claim))

	require.Equal(t, []int64{0, 1, 2, 3, 4}, session.marked)
	require.Equal(t, map[int64]int{1: 1, 2: 1, 3: 1, 4: 1}, calls)
}

func TestConsumer_ConsumeClaimStopsOnTransientError(t *testing.T) {
	t.Parallel()
	var calls []int64
	returnLoan := func(_ context.Context, loanID int64) (model.Loan, error) {
		calls = append(calls, loanID)
		if loanID == 10 {
			return model.Loan{}, errors.New("connection reset")
		}
		return model.Loan{ID: loanID, Status: model.LoanStatusReturned}, nil
	}

	session := &fakeSession{ctx: context.Background()}
	consumer := NewConsumer(returnLoan, zap.NewNop())
	claim := newClaim(`{"loanId":9}`, `{"loanId":10}`, `{"loanId":11}`)

	err := consumer.ConsumeClaim(session, claim)
	require.ErrorContains(t, err, "connection reset")

	// nothing at or after the failed offset is marked, so the next session redelivers it
	require.Equal(t, []int64{0}, session.marked)
	require.Equal(t, []int64{9, 10}, calls)
}

func TestConsumer_ConsumeClaimCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := &fakeSession{ctx: ctx}
	consumer := NewConsumer(func(context.Context, int64) (model.Loan, error) {
		t.Fatal("no message expected")
		return model.Loan{}, nil
	}, zap.NewNop())

	require.NoError(t, consumer.ConsumeClaim(session, &fakeClaim{messages: make(chan *sarama.ConsumerMessage)}))
	require.Empty(t, session.marked)
}
