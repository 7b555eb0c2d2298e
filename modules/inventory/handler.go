package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
)

// Handler exposes stock management over HTTP. Mounted on the tenant
// surface only.
type Handler struct {
	categories *Categories
	suppliers  *Suppliers
	parts      *Parts
}

func NewHandler(categories *Categories, suppliers *Suppliers, parts *Parts) *Handler {
	return &Handler{categories: categories, suppliers: suppliers, parts: parts}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.listCategories)
		r.Post("/", h.createCategory)
		r.Get("/{id}", h.getCategory)
		r.Put("/{id}", h.updateCategory)
		r.Delete("/{id}", h.deleteCategory)
	})

	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", h.listSuppliers)
		r.Post("/", h.createSupplier)
		r.Get("/{id}", h.getSupplier)
		r.Put("/{id}", h.updateSupplier)
		r.Delete("/{id}", h.deleteSupplier)
	})

	r.Route("/parts", func(r chi.Router) {
		r.Get("/", h.listParts)
		r.Post("/", h.createPart)
		r.Get("/{id}", h.getPart)
		r.Put("/{id}", h.updatePart)
		r.Post("/{id}/adjust", h.adjustPart)
		r.Delete("/{id}", h.deletePart)
	})

	return r
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var in CategoryInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	cat, err := h.categories.Create(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, cat)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, items)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	cat, err := h.categories.Get(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, cat)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	var in CategoryInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	cat, err := h.categories.Update(r.Context(), id, in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, cat)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var in SupplierInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	sup, err := h.suppliers.Create(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, sup)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	items, err := h.suppliers.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, items)
}

func (h *Handler) getSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	sup, err := h.suppliers.Get(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, sup)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	var in SupplierInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	sup, err := h.suppliers.Update(r.Context(), id, in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, sup)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	if err := h.suppliers.Delete(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) createPart(w http.ResponseWriter, r *http.Request) {
	var in PartInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.parts.Create(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, p)
}

func (h *Handler) listParts(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			core.Error(w, r, core.ErrBadRequest)
			return
		}
		items, err := h.parts.ListByCategory(r.Context(), categoryID)
		if err != nil {
			core.Error(w, r, err)
			return
		}
		core.JSON(w, http.StatusOK, items)
		return
	}

	items, err := h.parts.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, items)
}

func (h *Handler) getPart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	p, err := h.parts.Get(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, p)
}

func (h *Handler) updatePart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	var in PartInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.parts.Update(r.Context(), id, in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, p)
}

func (h *Handler) adjustPart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	var in struct {
		Delta int `json:"delta"`
	}
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	p, err := h.parts.Adjust(r.Context(), id, in.Delta)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, p)
}

func (h *Handler) deletePart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	if err := h.parts.Delete(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
