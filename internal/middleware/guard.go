// AngelaMos | 2026
// guard.go

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casinoremedial/backend/internal/core"
)

// Decision is the outcome of an authorization policy.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Policy decides whether an authenticated account may perform the request.
// Policies never run without an account; Require handles the missing-account
// case as a 401 before consulting them.
type Policy func(acct *Account, r *http.Request) Decision

// Require enforces a policy behind the authenticator: no account means 401,
// a denied decision means 403.
func Require(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acct := AccountFromContext(r.Context())
			if acct == nil {
				core.Unauthorized(w, "authentication required")
				return
			}

			decision := policy(acct, r)
			if !decision.Allowed {
				reason := decision.Reason
				if reason == "" {
					reason = "insufficient permissions"
				}
				core.Forbidden(w, reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly admits administrators.
func AdminOnly(acct *Account, _ *http.Request) Decision {
	if acct.IsAdmin() {
		return Allow()
	}
	return Deny("administrator access required")
}

// OwnerOrAdmin admits administrators and the account whose ID matches the
// named URL parameter.
func OwnerOrAdmin(param string) Policy {
	return func(acct *Account, r *http.Request) Decision {
		if acct.IsAdmin() {
			return Allow()
		}
		if chi.URLParam(r, param) == acct.ID {
			return Allow()
		}
		return Deny("you can only access your own account")
	}
}
