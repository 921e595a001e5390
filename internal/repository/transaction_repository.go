package repository

import (
	"context"
	"time"

	"CoinVestAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool: pool,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO transactions (id, user_id, plan_id, type, amount, status, proof_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		txn.ID, txn.UserID, txn.PlanID, txn.Type, txn.Amount, txn.Status, txn.ProofKey, txn.CreatedAt,
	)
	return err
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, plan_id, type, amount, status, proof_key, created_at, settled_at
		FROM transactions WHERE id = $1`, id,
	).Scan(&t.ID, &t.UserID, &t.PlanID, &t.Type, &t.Amount, &t.Status, &t.ProofKey, &t.CreatedAt, &t.SettledAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List pages newest-first with a (created_at, id) keyset cursor. A nil
// userID lists every user's transactions (admin view).
func (r *TransactionRepository) List(ctx context.Context, userID *uuid.UUID, cursorAt time.Time, cursorID uuid.UUID, limit int) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, plan_id, type, amount, status, proof_key, created_at, settled_at
		FROM transactions
		WHERE ($1::uuid IS NULL OR user_id = $1)
		  AND ($2::timestamptz IS NULL OR (created_at, id) < ($2, $3))
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	var cursorAtArg interface{}
	var cursorIDArg interface{}
	if !cursorAt.IsZero() {
		cursorAtArg = cursorAt
		cursorIDArg = cursorID
	}

	rows, err := r.pool.Query(ctx, query, userID, cursorAtArg, cursorIDArg, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]model.Transaction, 0)
	for rows.Next() {
		var t model.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.PlanID, &t.Type, &t.Amount, &t.Status, &t.ProofKey, &t.CreatedAt, &t.SettledAt)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// Settle moves a pending transaction to a terminal status. Returns false
// when the transaction is not pending (or does not exist).
func (r *TransactionRepository) Settle(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET status = $2, settled_at = $3
		WHERE id = $1 AND status = 'pending'`,
		id, status, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TransactionRepository) AttachProof(ctx context.Context, id uuid.UUID, userID uuid.UUID, proofKey string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET proof_key = $3
		WHERE id = $1 AND user_id = $2 AND type = 'deposit'`,
		id, userID, proofKey,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ExpireStalePending rejects pending transactions created before cutoff.
func (r *TransactionRepository) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET status = 'rejected', settled_at = NOW()
		WHERE status = 'pending' AND created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ListExpiredProofs returns rejected transactions whose proof object is past
// its retention window and still present in storage.
func (r *TransactionRepository) ListExpiredProofs(ctx context.Context, cutoff time.Time) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, plan_id, type, amount, status, proof_key, created_at, settled_at
		FROM transactions
		WHERE status = 'rejected' AND proof_key IS NOT NULL AND settled_at < $1`,
		cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.PlanID, &t.Type, &t.Amount, &t.Status, &t.ProofKey, &t.CreatedAt, &t.SettledAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) ClearProof(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE transactions SET proof_key = NULL WHERE id = $1`, id)
	return err
}
