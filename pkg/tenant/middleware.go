package tenant

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gadisewa/backend/pkg/metrics"
)

// Middleware resolves the tenant for every inbound request and attaches it
// to the request context. Requests whose host yields no usable label pass
// through at platform scope; a label that does not match an active tenant
// terminates the request with a uniform not-found before any guarded data
// access can run.
func Middleware(resolver Resolver, directory Directory, opts ...Option) func(http.Handler) http.Handler {
	cfg := &options{
		cache:        NewInMemoryCache(),
		cacheTTL:     time.Minute,
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			label := resolver.Resolve(r)
			if label == "" {
				// Platform scope: no tenant attached, downstream code that
				// requires one fails closed.
				metrics.TenantResolutionsTotal.WithLabelValues("platform").Inc()
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := cfg.cache.Get(r.Context(), label); ok {
				if !cached.Active {
					metrics.TenantResolutionsTotal.WithLabelValues("not_found").Inc()
					cfg.errorHandler(w, r, ErrTenantNotFound)
					return
				}
				metrics.TenantResolutionsTotal.WithLabelValues("resolved").Inc()
				next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), cached)))
				return
			}

			t, err := directory.FindActiveBySubdomain(r.Context(), label)
			if err != nil {
				metrics.TenantResolutionsTotal.WithLabelValues("not_found").Inc()
				cfg.errorHandler(w, r, err)
				return
			}

			metrics.TenantResolutionsTotal.WithLabelValues("resolved").Inc()
			cfg.cache.Set(r.Context(), label, t, cfg.cacheTTL)
			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

// RequireTenant protects routes that only make sense inside a tenant.
// A missing tenant here is a permission failure, not a not-found: the
// route exists, the caller reached it outside any garage.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				errorHandler(w, r, ErrNoTenantInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, ErrNoTenantInContext):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
