package job

import (
	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/repository"
	"context"
	"log/slog"
	"time"
)

// RunTransactionExpiry rejects deposit and withdrawal requests that sat in
// pending longer than the configured window.
func RunTransactionExpiry(ctx context.Context, repo *repository.TransactionRepository, cfg *config.AppConfig) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.TransactionExpiryDays)

	expired, err := repo.ExpireStalePending(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to expire stale transactions", "error", err)
		return err
	}

	if expired > 0 {
		slog.Info("Expired stale pending transactions", "count", expired, "cutoff", cutoff)
	}
	return nil
}
