package publisher

import (
	"context"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	cb "github.com/Astemirdum/lending-service/pkg/circuit_breaker"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kafka publishes lending events keyed by book id, so events for one book keep their order.
type Kafka struct {
	producer sarama.SyncProducer
	topic    string
	cb       cb.CircuitBreaker
	log      *zap.Logger
}

func NewKafka(producer sarama.SyncProducer, topic string, log *zap.Logger) *Kafka {
	return &Kafka{
		producer: producer,
		topic:    topic,
		cb: cb.New(cb.Settings{
			RecordLength:     20,
			Timeout:          10 * time.Second,
			Percentile:       0.5,
			RecoveryRequests: 3,
		}),
		log: log.Named("publisher"),
	}
}

func (p *Kafka) Publish(_ context.Context, event kafka.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "json.Marshal")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.BookID, 10)),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(event.Type)},
		},
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrap(err, "producer.SendMessage")
		}
		p.log.Debug("published",
			zap.String("type", string(event.Type)),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

func (p *Kafka) Close() error {
	return p.producer.Close()
}

// Nop drops events; used when Kafka is disabled.
type Nop struct{}

func (Nop) Publish(context.Context, kafka.Event) error { return nil }
