// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/casinoremedial/backend/internal/core"
)

// TokenVerifier checks a raw token string and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// Blacklist reports whether a token ID has been revoked by logout.
type Blacklist interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AccountSource loads the account behind a verified token.
type AccountSource interface {
	AccountByID(ctx context.Context, id string) (*Account, error)
}

type Authenticator struct {
	verifier   TokenVerifier
	blacklist  Blacklist
	accounts   AccountSource
	cookieName string
}

func NewAuthenticator(
	verifier TokenVerifier,
	blacklist Blacklist,
	accounts AccountSource,
	cookieName string,
) *Authenticator {
	return &Authenticator{
		verifier:   verifier,
		blacklist:  blacklist,
		accounts:   accounts,
		cookieName: cookieName,
	}
}

// Middleware authenticates the request from the Authorization header or the
// session cookie, rejects revoked tokens, and attaches the account to the
// context. Unauthenticated requests get a 401.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := a.extractToken(r)
		if raw == "" {
			core.Unauthorized(w, "authentication required")
			return
		}

		claims, err := a.verifier.Verify(raw)
		if err != nil {
			switch {
			case errors.Is(err, core.ErrTokenExpired):
				core.Unauthorized(w, "session expired, please log in again")
			default:
				core.Unauthorized(w, "invalid or malformed token")
			}
			return
		}

		revoked, err := a.blacklist.IsRevoked(r.Context(), claims.TokenID)
		if err != nil {
			core.InternalServerError(w, "")
			return
		}
		if revoked {
			core.Unauthorized(w, "session has been revoked")
			return
		}

		acct, err := a.accounts.AccountByID(r.Context(), claims.AccountID)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				core.Unauthorized(w, "account no longer exists")
				return
			}
			core.InternalServerError(w, "")
			return
		}

		ctx := WithAccount(r.Context(), acct)
		ctx = WithTokenClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := r.Cookie(a.cookieName); err == nil {
		return cookie.Value
	}

	return ""
}
