package identity

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
)

// Handler exposes authentication and principal management over HTTP.
type Handler struct {
	svc    *Service
	tokens *TokenIssuer
}

func NewHandler(svc *Service, tokens *TokenIssuer) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// AuthRouter mounts the endpoints that work in both scopes: login resolves
// against whatever scope the request arrived in.
func (h *Handler) AuthRouter() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.login)
	r.Post("/register", h.registerPlatform)
	return r
}

// EmployeeRouter mounts tenant-only principal management; the server wraps
// it with tenant.RequireTenant and the Authenticator.
func (h *Handler) EmployeeRouter() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.listEmployees)
	r.Post("/", h.provisionEmployee)
	r.Post("/{id}/deactivate", h.deactivateEmployee)
	return r
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	u, token, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.Error(w, r, core.ErrUnauthorized)
			return
		}
		core.Error(w, r, err)
		return
	}

	core.JSON(w, http.StatusOK, loginResponse{User: u, Token: token})
}

func (h *Handler) registerPlatform(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	u, err := h.svc.RegisterPlatform(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, u)
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListEmployees(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, users)
}

func (h *Handler) provisionEmployee(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := core.Decode(r, &in); err != nil {
		core.Error(w, r, err)
		return
	}

	u, err := h.svc.ProvisionEmployee(r.Context(), in)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusCreated, u)
}

func (h *Handler) deactivateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.Error(w, r, core.ErrBadRequest)
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			core.Error(w, r, core.ErrNotFound)
			return
		}
		core.Error(w, r, err)
		return
	}
	core.JSON(w, http.StatusOK, map[string]any{"deactivated": true})
}
