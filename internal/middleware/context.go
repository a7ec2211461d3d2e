// AngelaMos | 2026
// context.go

package middleware

import (
	"context"
	"time"
)

type contextKey string

const (
	accountKey   contextKey = "account"
	claimsKey    contextKey = "token_claims"
	requestIDKey contextKey = "request_id"
)

// Account is the authenticated principal attached to the request context.
type Account struct {
	ID         string
	Email      string
	Role       string
	IsVerified bool
}

func (a *Account) IsAdmin() bool {
	return a.Role == "admin"
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	AccountID string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func WithAccount(ctx context.Context, acct *Account) context.Context {
	return context.WithValue(ctx, accountKey, acct)
}

// AccountFromContext returns the authenticated account, or nil when the
// request was not authenticated.
func AccountFromContext(ctx context.Context) *Account {
	acct, _ := ctx.Value(accountKey).(*Account)
	return acct
}

func WithTokenClaims(ctx context.Context, claims *TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// TokenClaimsFromContext returns the verified claims of the session token
// the request authenticated with, or nil.
func TokenClaimsFromContext(ctx context.Context) *TokenClaims {
	claims, _ := ctx.Value(claimsKey).(*TokenClaims)
	return claims
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
