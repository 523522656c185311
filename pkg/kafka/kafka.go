package kafka

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	LendingTopic         = "lending.events"
	ReturnsTopic         = "lending.returns"
	LendingConsumerGroup = "lending"
)

type Config struct {
	Enabled bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	Addrs   []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumer(cfg Config, group string) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}

	return sarama.NewConsumerGroup(cfg.Addrs, group, defaultCfg)
}

// RetryInterval is the pause before rejoining the group after a failed session.
var RetryInterval = 5 * time.Second

// Consume blocks until ctx is canceled or the group is closed, rejoining the
// group after every rebalance and every failed session.
func Consume(ctx context.Context, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler, log *zap.Logger, topics ...string) {
	for {
		if err := group.Consume(ctx, topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			log.Error("group.Consume", zap.Strings("topics", topics), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(RetryInterval):
			}
			continue
		}
		if ctx.Err() != nil {
			return
		}
	}
}

type EventType string

const (
	EventRequestSubmitted EventType = "request.submitted"
	EventRequestApproved  EventType = "request.approved"
	EventRequestRejected  EventType = "request.rejected"
	EventLoanIssued       EventType = "loan.issued"
	EventLoanReturned     EventType = "loan.returned"
	EventLoanOverdue      EventType = "loan.overdue"
)

type Event struct {
	ID         string     `json:"id"`
	Type       EventType  `json:"type"`
	OccurredAt time.Time  `json:"occurredAt"`
	BookID     int64      `json:"bookId"`
	StudentID  int64      `json:"studentId"`
	LoanID     int64      `json:"loanId,omitempty"`
	RequestID  int64      `json:"requestId,omitempty"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
}

// ReturnMessage is what return kiosks put on ReturnsTopic.
type ReturnMessage struct {
	LoanID int64 `json:"loanId"`
}
