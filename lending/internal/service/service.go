package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

// Publisher ships domain events after the change they describe has committed.
type Publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

type Service struct {
	log        *zap.Logger
	repo       repository.Repository
	publisher  Publisher
	now        func() time.Time
	loanMonths int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLoanMonths sets the loan period used for approvals and for direct issues without a due date.
func WithLoanMonths(months int) Option {
	return func(s *Service) {
		if months > 0 {
			s.loanMonths = months
		}
	}
}

func NewService(repo repository.Repository, publisher Publisher, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		log:        log.Named("service"),
		repo:       repo,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
		loanMonths: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) dueDate(from time.Time) time.Time {
	return from.AddDate(0, s.loanMonths, 0)
}

// publish is best effort: the operation has already committed, so a failed send is only logged.
func (s *Service) publish(ctx context.Context, event kafka.Event) {
	if s.publisher == nil {
		return
	}
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	event.ID = id.String()
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
