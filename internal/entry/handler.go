// AngelaMos | 2026
// handler.go

package entry

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

const (
	msgSaved   = "Entry saved."
	msgDeleted = "Entry deleted."
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/entries", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListEntries)
		r.Post("/", h.CreateEntry)
		r.Get("/{entryID}", h.GetEntry)
		r.Put("/{entryID}", h.UpdateEntry)
		r.Delete("/{entryID}", h.DeleteEntry)
	})
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	entries, err := h.service.List(r.Context(), identity.Subject())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, ToEntryResponseList(entries))
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	id, ok := entryID(r)
	if !ok {
		core.NotFound(w, "entry")
		return
	}

	entry, err := h.service.Get(r.Context(), identity.Subject(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	core.OK(w, ToEntryResponse(entry))
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.Create(r.Context(), identity.Subject(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.Text(w, http.StatusOK, msgSaved)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	id, ok := entryID(r)
	if !ok {
		core.NotFound(w, "entry")
		return
	}

	if _, err := h.service.Editable(r.Context(), identity.Subject(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if _, err := h.service.Update(r.Context(), identity.Subject(), id, req); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.Text(w, http.StatusOK, msgSaved)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	id, ok := entryID(r)
	if !ok {
		core.NotFound(w, "entry")
		return
	}

	if err := h.service.Delete(r.Context(), identity.Subject(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	core.Text(w, http.StatusOK, msgDeleted)
}

func entryID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "entryID"))
	return id, err == nil
}

// writeError hides whether a foreign entry exists: denial and absence both
// answer 404.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrForbidden):
		core.NotFound(w, "entry")
	default:
		core.InternalServerError(w, r, err)
	}
}
