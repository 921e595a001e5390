package scheduler

import (
	"CoinVestAPI/internal/adapter"
	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/repository"
	"CoinVestAPI/internal/scheduler/job"
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cfg            *config.AppConfig
	transactions   *repository.TransactionRepository
	cron           *cron.Cron
	storageAdapter *adapter.StorageAdapter
}

func New(cfg *config.AppConfig, pool *pgxpool.Pool, s3Client *s3.Client) *Scheduler {
	return &Scheduler{
		cfg:            cfg,
		transactions:   repository.NewTransactionRepository(pool),
		cron:           cron.New(),
		storageAdapter: adapter.NewStorageAdapter(cfg, s3Client),
	}
}

func (s *Scheduler) Start() {
	slog.Info("Starting Scheduler...")

	s.registerJobs()

	s.cron.Start()
	slog.Info("Scheduler started successfully")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) registerJobs() {
	_, err := s.cron.AddFunc(s.cfg.TransactionExpiryCron, func() {
		slog.Info("Starting Transaction Expiry Job")
		ctx := context.Background()
		if err := job.RunTransactionExpiry(ctx, s.transactions, s.cfg); err != nil {
			slog.Error("Transaction Expiry Job failed", "error", err)
		} else {
			slog.Info("Transaction Expiry Job completed")
		}
	})
	if err != nil {
		slog.Error("Failed to register Transaction Expiry job", "error", err)
	} else {
		slog.Info("Registered Transaction Expiry Job", "schedule", s.cfg.TransactionExpiryCron)
	}

	_, err = s.cron.AddFunc(s.cfg.ProofCleanupCron, func() {
		slog.Info("Starting Proof Cleanup Job")
		ctx := context.Background()
		if err := job.RunProofCleanup(ctx, s.transactions, s.storageAdapter, s.cfg); err != nil {
			slog.Error("Proof Cleanup Job failed", "error", err)
		} else {
			slog.Info("Proof Cleanup Job completed")
		}
	})
	if err != nil {
		slog.Error("Failed to register Proof Cleanup job", "error", err)
	} else {
		slog.Info("Registered Proof Cleanup Job", "schedule", s.cfg.ProofCleanupCron)
	}
}
