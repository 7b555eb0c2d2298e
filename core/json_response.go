package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net/http"

	"github.com/gadisewa/backend/pkg/metrics"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/tenant"
	"github.com/gadisewa/backend/pkg/validator"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// JSON writes a success response with the given status and payload.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{Data: data})
}

// Error writes an error response, translating the error taxonomy to HTTP:
//
//   - ValidationError (uniqueness collisions included) -> 422 with the
//     conflicting fields named
//   - tenant.ErrTenantNotFound -> uniform 404
//   - tenant.ErrNoTenantInContext, scope.ErrMissingTenantScope -> 403;
//     a missing scope is a contract violation and is logged at error level
//   - HTTPError -> its own status
//   - anything else -> opaque 500
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{Code: "internal_server_error"}

	var valErr ValidationError
	var ruleErrs validator.ValidationErrors
	var httpErr HTTPError

	switch {
	case errors.As(err, &valErr):
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		if len(valErr) > 0 {
			detail.Details = make(map[string][]string)
			maps.Copy(detail.Details, valErr)
		}
	case errors.As(err, &ruleErrs):
		status = http.StatusUnprocessableEntity
		detail.Code = "validation_error"
		detail.Details = make(map[string][]string)
		for _, field := range ruleErrs.Fields() {
			detail.Details[field] = ruleErrs.Get(field)
		}
	case errors.Is(err, tenant.ErrTenantNotFound):
		status = http.StatusNotFound
		detail.Code = "not_found"
	case errors.Is(err, scope.ErrMissingTenantScope), errors.Is(err, tenant.ErrNoTenantInContext):
		status = http.StatusForbidden
		detail.Code = "forbidden"
		metrics.TenantScopeMissingTotal.Inc()
		slog.ErrorContext(r.Context(), "tenant scope missing on guarded access",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	case errors.Is(err, scope.ErrNotFound):
		status = http.StatusNotFound
		detail.Code = "not_found"
	case errors.As(err, &httpErr):
		status = httpErr.Code
		detail.Code = httpErr.Key
	default:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	detail.Message = http.StatusText(status)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{Error: detail})
}

// Decode reads a JSON request body into dst, limiting the body size to
// keep malformed clients from exhausting memory.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return ErrBadRequest
	}
	return nil
}
