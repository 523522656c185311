package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Notifier interface {
	NotifyOverdue(ctx context.Context) (int, error)
}

// Overdue runs the overdue reminder scan on a cron schedule. Runs never overlap.
type Overdue struct {
	cron     *cron.Cron
	notifier Notifier
	timeout  time.Duration
	log      *zap.Logger
}

func NewOverdue(spec string, notifier Notifier, log *zap.Logger) (*Overdue, error) {
	w := &Overdue{
		notifier: notifier,
		timeout:  time.Minute,
		log:      log.Named("overdue"),
	}
	w.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := w.cron.AddFunc(spec, w.Run); err != nil {
		return nil, errors.Wrapf(err, "cron spec %q", spec)
	}
	return w, nil
}

func (w *Overdue) Start() {
	w.cron.Start()
}

// Stop waits for a running scan to finish or ctx to expire.
func (w *Overdue) Stop(ctx context.Context) error {
	select {
	case <-w.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Overdue) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	n, err := w.notifier.NotifyOverdue(ctx)
	if err != nil {
		w.log.Error("NotifyOverdue", zap.Error(err))
		return
	}
	w.log.Info("overdue scan", zap.Int("loans", n))
}
