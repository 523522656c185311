package handler

import (
	"context"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/errs"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

type returnLoan func(ctx context.Context, loanID int64) (model.Loan, error)

// Consumer applies returns reported on kafka.ReturnsTopic.
type Consumer struct {
	returnLoanHandler returnLoan
	log               *zap.Logger
}

func NewConsumer(returnLoan returnLoan, log *zap.Logger) *Consumer {
	return &Consumer{
		returnLoanHandler: returnLoan,
		log:               log.Named("consumer"),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			if err := consumer.handle(session.Context(), message); err != nil {
				// Ending the claim makes the group rejoin from the last committed
				// offset, so the failed message comes back before anything after it.
				return err
			}
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

// handle applies one message. Bad payloads and permanent outcomes are logged
// and swallowed; any other failure is returned.
func (consumer *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	var msg kafka.ReturnMessage
	if err := jsoniter.Unmarshal(message.Value, &msg); err != nil {
		consumer.log.Error("bad return message", zap.ByteString("value", message.Value), zap.Error(err))
		return nil
	}
	if _, err := consumer.returnLoanHandler(ctx, msg.LoanID); err != nil {
		switch {
		case errors.Is(err, errs.ErrAlreadyReturned), errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrValidation):
			consumer.log.Warn("return skipped", zap.Int64("loanId", msg.LoanID), zap.Error(err))
			return nil
		default:
			consumer.log.Error("consumer.returnLoanHandler", zap.Int64("loanId", msg.LoanID), zap.Error(err))
			return errors.Wrapf(err, "return loan %d at offset %d", msg.LoanID, message.Offset)
		}
	}
	consumer.log.Debug("Message claimed:", zap.String("value", string(message.Value)), zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
	return nil
}
