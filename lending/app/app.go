package app

import (
	"context"
	stdlog "log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/Astemirdum/lending-service/lending/internal/handler"
	"github.com/Astemirdum/lending-service/lending/internal/publisher"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/lending/internal/repository/memory"
	"github.com/Astemirdum/lending-service/lending/internal/server"
	"github.com/Astemirdum/lending-service/lending/internal/service"
	"github.com/Astemirdum/lending-service/lending/internal/worker"
	"github.com/Astemirdum/lending-service/lending/migrations"
	"github.com/Astemirdum/lending-service/pkg/kafka"
	"github.com/Astemirdum/lending-service/pkg/logger"
	"github.com/Astemirdum/lending-service/pkg/postgres"
)

func Run(cfg config.Config) {
	log, err := logger.NewLogger(cfg.Log, "lending")
	if err != nil {
		stdlog.Fatalf("logger: %v", err)
	}
	defer log.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		repo repository.Repository
		db   *pgxpool.Pool
	)
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Warn("in-memory storage, data is lost on restart")
		repo = memory.New()
	default:
		db, err = postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			log.Fatal("db init", zap.Error(err))
		}
		repo, err = repository.NewRepository(db, log)
		if err != nil {
			log.Fatal("repo", zap.Error(err))
		}
	}

	var (
		pub      service.Publisher = publisher.Nop{}
		producer *publisher.Kafka
		group    sarama.ConsumerGroup
	)
	if cfg.Kafka.Enabled {
		syncProducer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		producer = publisher.NewKafka(syncProducer, kafka.LendingTopic, log)
		pub = producer
	}

	svc := service.NewService(repo, pub, log, service.WithLoanMonths(cfg.Lending.LoanMonths))

	if cfg.Kafka.Enabled {
		group, err = kafka.NewConsumer(cfg.Kafka, kafka.LendingConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		go kafka.Consume(ctx, group, handler.NewConsumer(svc.ReturnLoan, log), log, kafka.ReturnsTopic)
	}

	var overdue *worker.Overdue
	if cfg.Lending.OverdueSpec != "" {
		overdue, err = worker.NewOverdue(cfg.Lending.OverdueSpec, svc, log)
		if err != nil {
			log.Fatal("worker.NewOverdue", zap.Error(err))
		}
		overdue.Start()
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if overdue != nil {
		if err := overdue.Stop(closeCtx); err != nil {
			log.Warn("overdue.Stop", zap.Error(err))
		}
	}
	cancel()
	if group != nil {
		if err := group.Close(); err != nil {
			log.Warn("group.Close", zap.Error(err))
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Warn("producer.Close", zap.Error(err))
		}
	}
	if db != nil {
		db.Close()
	}
	log.Info("Graceful shutdown finished")
}
