package service

import (
	"context"
	"sync"
	"time"

	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"

	"github.com/google/uuid"
)

// AdminResolver yields the identity that owns the admin side of every
// conversation. Injected so the single-admin assumption lives in one place.
type AdminResolver interface {
	ResolveAdmin(ctx context.Context) (uuid.UUID, error)
}

type UserByEmailLookup interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// EmailAdminResolver resolves the configured ADMIN_EMAIL against the user
// store and memoizes the result briefly, since the admin account does not
// change between requests.
type EmailAdminResolver struct {
	users UserByEmailLookup
	email string

	mu       sync.Mutex
	cachedID uuid.UUID
	cachedAt time.Time
}

const adminResolveMemoTTL = time.Minute

func NewEmailAdminResolver(users UserByEmailLookup, cfg *config.AppConfig) *EmailAdminResolver {
	return &EmailAdminResolver{
		users: users,
		email: cfg.AdminEmail,
	}
}

func (r *EmailAdminResolver) ResolveAdmin(ctx context.Context) (uuid.UUID, error) {
	r.mu.Lock()
	if r.cachedID != uuid.Nil && time.Since(r.cachedAt) < adminResolveMemoTTL {
		id := r.cachedID
		r.mu.Unlock()
		return id, nil
	}
	r.mu.Unlock()

	admin, err := r.users.FindByEmail(ctx, r.email)
	if err != nil {
		return uuid.Nil, helper.NewInternalServerError("Admin account is not provisioned")
	}

	r.mu.Lock()
	r.cachedID = admin.ID
	r.cachedAt = time.Now()
	r.mu.Unlock()

	return admin.ID, nil
}
