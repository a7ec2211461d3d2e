// AngelaMos | 2026
// token_test.go

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casinoremedial/backend/internal/config"
	"github.com/casinoremedial/backend/internal/core"
)

func testJWTConfig(expire time.Duration) config.JWTConfig {
	return config.JWTConfig{
		Secret: "test-signing-secret-at-least-32-bytes!",
		Expire: expire,
		Issuer: "casino-remedial",
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig(time.Hour))
	require.NoError(t, err)

	accountID := uuid.NewString()

	token, err := manager.Issue(accountID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestVerifyRejectsExpired(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig(-time.Minute))
	require.NoError(t, err)

	token, err := manager.Issue(uuid.NewString(), "client")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig(time.Hour))
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := manager.Verify(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer, err := NewTokenManager(testJWTConfig(time.Hour))
	require.NoError(t, err)

	verifier, err := NewTokenManager(config.JWTConfig{
		Secret: "a-completely-different-secret-value!!",
		Expire: time.Hour,
		Issuer: "casino-remedial",
	})
	require.NoError(t, err)

	token, err := issuer.Issue(uuid.NewString(), "client")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokensCarryDistinctIDs(t *testing.T) {
	manager, err := NewTokenManager(testJWTConfig(time.Hour))
	require.NoError(t, err)

	accountID := uuid.NewString()

	first, err := manager.Issue(accountID, "client")
	require.NoError(t, err)
	second, err := manager.Issue(accountID, "client")
	require.NoError(t, err)

	firstClaims, err := manager.Verify(first)
	require.NoError(t, err)
	secondClaims, err := manager.Verify(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
}
