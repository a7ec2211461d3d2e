// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casinoremedial/backend/internal/core"
)

type fakeVerifier struct {
	claims map[string]*TokenClaims
	err    error
}

func (v *fakeVerifier) Verify(token string) (*TokenClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	claims, ok := v.claims[token]
	if !ok {
		return nil, core.ErrTokenInvalid
	}
	return claims, nil
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return b.revoked[tokenID], nil
}

type fakeAccountSource struct {
	accounts map[string]*Account
}

func (s *fakeAccountSource) AccountByID(_ context.Context, id string) (*Account, error) {
	acct, ok := s.accounts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return acct, nil
}

func authFixture() (*Authenticator, string) {
	acct := &Account{
		ID:         "acct-1",
		Email:      "maria@example.com",
		Role:       "client",
		IsVerified: true,
	}

	verifier := &fakeVerifier{claims: map[string]*TokenClaims{
		"good-token": {
			AccountID: acct.ID,
			Role:      acct.Role,
			TokenID:   "jti-1",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		"revoked-token": {
			AccountID: acct.ID,
			Role:      acct.Role,
			TokenID:   "jti-revoked",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		"orphan-token": {
			AccountID: "gone",
			Role:      "client",
			TokenID:   "jti-2",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}

	blacklist := &fakeBlacklist{revoked: map[string]bool{"jti-revoked": true}}
	accounts := &fakeAccountSource{accounts: map[string]*Account{acct.ID: acct}}

	return NewAuthenticator(verifier, blacklist, accounts, "jwt"), "good-token"
}

func echoAccountHandler(t *testing.T) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acct := AccountFromContext(r.Context())
		require.NotNil(t, acct)
		require.NotNil(t, TokenClaimsFromContext(r.Context()))
		fmt.Fprint(w, acct.ID)
	})
}

func TestAuthenticatorBearerHeader(t *testing.T) {
	authn, token := authFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	authn.Middleware(echoAccountHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acct-1", rec.Body.String())
}

func TestAuthenticatorCookie(t *testing.T) {
	authn, token := authFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	rec := httptest.NewRecorder()

	authn.Middleware(echoAccountHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acct-1", rec.Body.String())
}

func TestAuthenticatorMissingToken(t *testing.T) {
	authn, _ := authFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	authn.Middleware(echoAccountHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorMalformedHeader(t *testing.T) {
	authn, token := authFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()

	authn.Middleware(echoAccountHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	authn, _ := authFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	authn.Middleware(echoAccountHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorRevokedToken(t *testing.T) {
	authn, _ := authFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()

	authn.Middleware(echoAccountHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "revoked")
}

func TestAuthenticatorDeletedAccount(t *testing.T) {
	authn, _ := authFixture()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer orphan-token")
	rec := httptest.NewRecorder()

	authn.Middleware(echoAccountHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
