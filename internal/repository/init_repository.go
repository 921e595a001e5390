package repository

import (
	"errors"

	"CoinVestAPI/internal/adapter"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	User         *UserRepository
	Conversation *ConversationRepository
	Plan         *PlanRepository
	Transaction  *TransactionRepository
	RateLimit    *RateLimitRepository
}

func NewRepository(pool *pgxpool.Pool, redisAdapter *adapter.RedisAdapter) *Repository {
	return &Repository{
		User:         NewUserRepository(pool),
		Conversation: NewConversationRepository(pool),
		Plan:         NewPlanRepository(pool),
		Transaction:  NewTransactionRepository(pool),
		RateLimit:    NewRateLimitRepository(redisAdapter),
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsConstraintViolation reports foreign-key and unique violations, the two
// write failures callers are expected to handle.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503" || pgErr.Code == "23505"
}
