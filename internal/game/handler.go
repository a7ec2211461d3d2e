// AngelaMos | 2026
// handler.go

package game

import (
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the catalog routes. Reads are public; mutations are
// admin-only.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/games", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/category/{category}", h.ListByCategory)
		r.Get("/{gameID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(appmiddleware.Require(appmiddleware.AdminOnly))

			r.Post("/", h.Create)
			r.Put("/{gameID}", h.Update)
			r.Patch("/{gameID}/toggle-active", h.ToggleActive)
			r.Delete("/{gameID}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			core.BadRequest(w, "active must be true or false")
			return
		}
		filter.Active = &active
	}

	games, err := h.service.List(r.Context(), filter)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "games retrieved", map[string]any{
		"count": len(games),
		"games": games,
	})
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	games, err := h.service.List(r.Context(), ListFilter{Category: category})
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "games retrieved", map[string]any{
		"count": len(games),
		"games": games,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	g, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "game retrieved", map[string]any{
		"game": g,
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		core.JSONError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	g, err := h.service.Create(r.Context(), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, "game created", map[string]any{
		"game": g,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
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

	g, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "game updated", map[string]any{
		"game": g,
	})
}

func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	g, err := h.service.ToggleActive(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	message := "game deactivated"
	if g.Active {
		message = "game activated"
	}

	core.OK(w, message, map[string]any{
		"game": g,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, "game deleted", nil)
}

func (h *Handler) gameID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "gameID")
	if _, err := uuid.Parse(id); err != nil {
		core.JSONError(w, core.InvalidIDError("game"))
		return "", false
	}
	return id, true
}
