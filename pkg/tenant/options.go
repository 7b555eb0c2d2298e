package tenant

import "time"

// options holds middleware configuration.
type options struct {
	cache        Cache
	cacheTTL     time.Duration
	errorHandler ErrorHandler
	skipPaths    []string
}

// Option configures the middleware.
type Option func(*options)

// WithCache sets a custom cache implementation.
func WithCache(cache Cache) Option {
	return func(o *options) {
		if cache != nil {
			o.cache = cache
		}
	}
}

// WithCacheTTL bounds how long a resolved tenant may be served from cache.
// Keep it short: deactivation must take effect quickly.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(o *options) {
		if handler != nil {
			o.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass tenant resolution entirely,
// e.g. health and metrics endpoints.
func WithSkipPaths(paths ...string) Option {
	return func(o *options) {
		o.skipPaths = append(o.skipPaths, paths...)
	}
}
