package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when a subdomain does not map to any
	// active tenant. Inactive tenants produce the same error on purpose:
	// the response must not reveal whether the subdomain exists.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoTenantInContext is returned when a tenant-required code path
	// runs without a resolved tenant. This is a wiring defect, not a user
	// error, and is always fatal to the request.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
