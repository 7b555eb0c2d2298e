package customers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
)

// Handler exposes the customer roster over HTTP. Mounted on the tenant
// surface only.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, items)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	var in Input
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
