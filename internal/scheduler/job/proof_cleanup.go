package job

import (
	"CoinVestAPI/internal/adapter"
	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/repository"
	"context"
	"log/slog"
	"time"
)

// RunProofCleanup removes proof objects of rejected transactions once their
// retention window has passed, then clears the stored key.
func RunProofCleanup(ctx context.Context, repo *repository.TransactionRepository, storageAdapter *adapter.StorageAdapter, cfg *config.AppConfig) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -cfg.ProofRetentionDays)

	expired, err := repo.ListExpiredProofs(ctx, cutoff)
	if err != nil {
		slog.Error("Failed to query expired proofs", "error", err)
		return err
	}

	for _, txn := range expired {
		if txn.ProofKey == nil {
			continue
		}

		if err := storageAdapter.Delete(ctx, *txn.ProofKey); err != nil {
			slog.Error("Failed to delete proof object", "transactionID", txn.ID, "key", *txn.ProofKey, "error", err)
			continue
		}

		if err := repo.ClearProof(ctx, txn.ID); err != nil {
			slog.Error("Failed to clear proof key", "transactionID", txn.ID, "error", err)
			continue
		}

		slog.Info("Deleted expired proof", "transactionID", txn.ID)
	}

	return nil
}
