// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost matches the cost the existing client records were hashed with.
const BcryptCost = 10

// dummyHash is a valid cost-10 digest of an unguessable string. Comparing
// against it keeps the missing-account path as slow as the wrong-password
// path.
var dummyHash = []byte(
	"$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
)

func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

func VerifyPassword(hash, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyPasswordTimingSafe performs a bcrypt compare even when no account was
// found, so login failures take the same time either way.
func VerifyPasswordTimingSafe(hash, plaintext string, accountExists bool) bool {
	if !accountExists {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plaintext))
		return false
	}
	return VerifyPassword(hash, plaintext)
}

// GenerateCode returns a 6-digit one-time code drawn uniformly from
// "000000" through "999999".
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// CodeExpiry returns the absolute expiry for a code issued now.
func CodeExpiry(ttl time.Duration) time.Time {
	return time.Now().UTC().Add(ttl)
}
