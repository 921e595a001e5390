package service

import (
	"context"
	"errors"
	"testing"

	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailLookup struct {
	admin *model.User
	err   error
	calls int
}

func (f *fakeEmailLookup) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.admin, nil
}

func TestResolveAdminMemoizes(t *testing.T) {
	adminID := uuid.New()
	lookup := &fakeEmailLookup{admin: &model.User{ID: adminID, Email: "admin@example.com"}}
	resolver := NewEmailAdminResolver(lookup, &config.AppConfig{AdminEmail: "admin@example.com"})

	for i := 0; i < 3; i++ {
		got, err := resolver.ResolveAdmin(context.Background())
		require.NoError(t, err)
		assert.Equal(t, adminID, got)
	}

	assert.Equal(t, 1, lookup.calls, "the lookup result is memoized")
}

func TestResolveAdminUnprovisioned(t *testing.T) {
	lookup := &fakeEmailLookup{err: errors.New("no rows")}
	resolver := NewEmailAdminResolver(lookup, &config.AppConfig{AdminEmail: "admin@example.com"})

	_, err := resolver.ResolveAdmin(context.Background())
	require.Error(t, err)
}
