// AngelaMos | 2026
// handler.go

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/casinoremedial/backend/internal/client"
	"github.com/casinoremedial/backend/internal/config"
	"github.com/casinoremedial/backend/internal/core"
	appmiddleware "github.com/casinoremedial/backend/internal/middleware"
)

type Handler struct {
	service    *Service
	validate   *validator.Validate
	cookie     config.CookieConfig
	production bool
}

func NewHandler(
	service *Service,
	cookie config.CookieConfig,
	production bool,
) *Handler {
	return &Handler{
		service:    service,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		cookie:     cookie,
		production: production,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Post("/login", h.Login)

	r.Route("/logout", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/", h.Logout)
		r.Get("/status", h.Status)
		r.Get("/verify", h.VerifyToken)
	})

	r.Route("/verify-email", func(r chi.Router) {
		r.Post("/send", h.SendVerification)
		r.Post("/verify", h.VerifyEmail)
		r.Post("/resend", h.SendVerification)
	})

	r.Route("/recover-password", func(r chi.Router) {
		r.Post("/request", h.RequestRecovery)
		r.Post("/verify-code", h.VerifyRecoveryCode)
		r.Post("/reset", h.ResetPassword)
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	acct, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	h.setSessionCookie(w, token)

	message := "login successful"
	if !acct.IsVerified {
		message = "login successful, your email is not verified yet"
	}

	core.OK(w, message, map[string]any{
		"token":  token,
		"client": client.NewProfile(acct),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := appmiddleware.TokenClaimsFromContext(r.Context())
	if claims == nil {
		core.Unauthorized(w, "authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), claims.TokenID, claims.ExpiresAt); err != nil {
		core.JSONError(w, err)
		return
	}

	h.clearSessionCookie(w)
	core.OK(w, "logout successful", nil)
}

// Status reports who the session belongs to.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	acct := appmiddleware.AccountFromContext(r.Context())
	if acct == nil {
		core.Unauthorized(w, "authentication required")
		return
	}

	core.OK(w, "session active", map[string]any{
		"loggedIn": true,
		"client": map[string]any{
			"id":         acct.ID,
			"email":      acct.Email,
			"role":       acct.Role,
			"isVerified": acct.IsVerified,
		},
	})
}

// VerifyToken confirms the presented token is valid and unrevoked; the
// authenticator has already done the work by the time this runs.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	claims := appmiddleware.TokenClaimsFromContext(r.Context())
	if claims == nil {
		core.Unauthorized(w, "authentication required")
		return
	}

	core.OK(w, "token is valid", map[string]any{
		"valid":     true,
		"expiresAt": claims.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) SendVerification(w http.ResponseWriter, r *http.Request) {
	var req SendVerificationRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.SendVerification(r.Context(), req.Email); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "verification code sent", nil)
}

func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req VerifyEmailRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.VerifyEmail(r.Context(), req.Email, req.Code); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "email verified successfully", nil)
}

func (h *Handler) RequestRecovery(w http.ResponseWriter, r *http.Request) {
	var req RecoveryRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.RequestRecovery(r.Context(), req.Email); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "recovery code sent", nil)
}

func (h *Handler) VerifyRecoveryCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyRecoveryCodeRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.VerifyRecoveryCode(r.Context(), req.Email, req.Code); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "recovery code is valid", nil)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "password reset successfully", nil)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookie.ExpireDays * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
	})
}
