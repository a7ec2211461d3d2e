// AngelaMos | 2026
// handler.go

package client

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/casinoremedial/backend/internal/core"
	appmiddleware "github.com/casinoremedial/backend/internal/middleware"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the client routes. Registration is public; listing is
// admin-only; per-client routes allow the owner or an admin.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/clients", func(r chi.Router) {
		r.Post("/", h.Register)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.With(appmiddleware.Require(appmiddleware.AdminOnly)).
				Get("/", h.List)

			r.Route("/{clientID}", func(r chi.Router) {
				r.Use(appmiddleware.Require(
					appmiddleware.OwnerOrAdmin("clientID"),
				))
				r.Get("/", h.Get)
				r.Put("/", h.Update)
				r.Delete("/", h.Delete)
				r.Put("/password", h.UpdatePassword)
			})
		})
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, mailed, err := h.service.Register(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	message := "client registered, a verification code was sent to your email"
	if !mailed {
		message = "client registered, but the verification email could not be sent"
	}

	core.Created(w, message, map[string]any{
		"client": NewProfile(c),
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.List(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	profiles := make([]Profile, 0, len(clients))
	for i := range clients {
		profiles = append(profiles, NewProfile(&clients[i]))
	}

	core.OK(w, "clients retrieved", map[string]any{
		"count":   len(profiles),
		"clients": profiles,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "client retrieved", map[string]any{
		"client": NewProfile(c),
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "client updated", map[string]any{
		"client": NewProfile(c),
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "client deleted", nil)
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := h.clientID(w, r)
	if !ok {
		return
	}

	var req UpdatePasswordRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.UpdatePassword(
		r.Context(),
		id,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "password updated", nil)
}

func (h *Handler) clientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "clientID")
	if _, err := uuid.Parse(id); err != nil {
		core.JSONError(w, core.InvalidIDError("client"))
		return "", false
	}
	return id, true
}
