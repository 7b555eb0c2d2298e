package workshop

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
)

// Handler exposes the service catalog and vehicle records over HTTP.
// Mounted on the tenant surface only.
type Handler struct {
	catalog  *Catalog
	vehicles *Vehicles
}

func NewHandler(catalog *Catalog, vehicles *Vehicles) *Handler {
	return &Handler{catalog: catalog, vehicles: vehicles}
}

func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.listServices)
		r.Post("/", h.createService)
		r.Get("/{id}", h.getService)
		r.Put("/{id}", h.updateService)
		r.Delete("/{id}", h.deleteService)
	})

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", h.listVehicles)
		r.Post("/", h.createVehicle)
		r.Get("/{id}", h.getVehicle)
		r.Put("/{id}", h.updateVehicle)
		r.Delete("/{id}", h.deleteVehicle)
	})

	return r
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	var in ServiceInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	svc, err := h.catalog.Create(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, svc)
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, items)
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	svc, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, svc)
}

func (h *Handler) updateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	var in ServiceInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	svc, err := h.catalog.Update(r.Context(), id, in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, svc)
}

func (h *Handler) deleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	var in VehicleInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	v, err := h.vehicles.Create(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, v)
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			core.Error(w, r, core.ErrBadRequest)
			return
		}
		items, err := h.vehicles.ListByCustomer(r.Context(), customerID)
		if err != nil {
			core.Error(w, r, err)
			return
		}
		core.JSON(w, http.StatusOK, items)
		return
	}

	items, err := h.vehicles.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, items)
}

func (h *Handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	v, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, v)
}

func (h *Handler) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	var in VehicleInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	v, err := h.vehicles.Update(r.Context(), id, in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, v)
}

func (h *Handler) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	if err := h.vehicles.Delete(r.Context(), id); err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
