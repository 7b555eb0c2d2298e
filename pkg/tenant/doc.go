// Package tenant resolves which garage a request belongs to and carries
// that decision through the request's lifetime.
//
// The package is built around three pieces:
//
//  1. Resolver - maps the Host header to a candidate subdomain label, or to
//     platform scope for apex domains, reserved labels, and malformed hosts
//  2. Directory - the authoritative, active-only lookup of tenant records
//  3. Middleware - orchestrates resolution, caching, and context attachment
//     once per request, before any tenant-scoped data access can run
//
// Scope rules are strict by design: a request is either bound to exactly
// one active tenant or runs at platform scope, the attached value is
// immutable for the rest of the request, and an unresolvable subdomain
// terminates the request with a uniform not-found that does not reveal
// whether the tenant exists or is merely deactivated.
//
// # Usage
//
//	var cfg tenant.Config
//	config.MustLoad(&cfg)
//
//	mw := tenant.Middleware(tenant.NewSubdomainResolver(cfg), directory,
//		tenant.WithCacheTTL(cfg.CacheTTL),
//		tenant.WithSkipPaths("/health", "/metrics"),
//	)
//	router.Use(mw)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// platform scope
//		}
//		_ = t
//	}
package tenant
