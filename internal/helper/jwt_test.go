package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT("test-secret", 3600, userID)
	require.NoError(t, err)

	claims, err := VerifyJWT("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("test-secret", 3600, uuid.New())
	require.NoError(t, err)

	_, err = VerifyJWT("other-secret", token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	token, err := GenerateJWT("test-secret", -60, uuid.New())
	require.NoError(t, err)

	_, err = VerifyJWT("test-secret", token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	_, err := VerifyJWT("test-secret", "not.a.token")
	assert.Error(t, err)
}
