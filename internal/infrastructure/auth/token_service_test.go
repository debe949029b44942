package auth_test

import (
	"testing"
	"time"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour, "pulseboard")
	require.NoError(t, err)

	signed, err := tokens.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", time.Hour, "pulseboard")
	require.NoError(t, err)

	_, err = tokens.Verify("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuing, err := auth.NewTokenService("secret-a", time.Hour, "pulseboard")
	require.NoError(t, err)
	verifying, err := auth.NewTokenService("secret-b", time.Hour, "pulseboard")
	require.NoError(t, err)

	signed, err := issuing.Issue("user-123")
	require.NoError(t, err)

	_, err = verifying.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", -time.Minute, "pulseboard")
	require.NoError(t, err)

	signed, err := tokens.Issue("user-123")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenService("", time.Hour, "pulseboard")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, auth.CheckPassword(hash, "wrong-password"))
}
