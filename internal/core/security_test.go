// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
	assert.False(t, VerifyPassword(hash, "wrong password"))
}

func TestHashPasswordCost(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
}

func TestHashPasswordDistinctDigests(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)

	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordTimingSafeMissingAccount(t *testing.T) {
	assert.False(t, VerifyPasswordTimingSafe("", "anything", false))
}

func TestVerifyPasswordTimingSafeExistingAccount(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.True(t, VerifyPasswordTimingSafe(hash, "hunter2hunter2", true))
	assert.False(t, VerifyPasswordTimingSafe(hash, "not-it", true))
}

func TestGenerateCodeShape(t *testing.T) {
	for range 100 {
		code, err := GenerateCode()
		require.NoError(t, err)

		assert.Len(t, code, 6)
		assert.Equal(t, "", strings.TrimLeft(code, "0123456789"),
			"code %q contains non-digits", code)
	}
}

func TestCodeExpiry(t *testing.T) {
	before := time.Now().UTC()
	expiry := CodeExpiry(30 * time.Minute)
	after := time.Now().UTC()

	assert.False(t, expiry.Before(before.Add(30*time.Minute)))
	assert.False(t, expiry.After(after.Add(30*time.Minute)))
}
