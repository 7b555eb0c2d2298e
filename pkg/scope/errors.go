package scope

import "errors"

var (
	// ErrMissingTenantScope is returned when a tenant-scoped operation is
	// attempted without a concrete tenant filter. This is a programming
	// contract violation: it is logged at error severity, surfaced to the
	// client as a permission failure, and never silently defaulted to
	// "all tenants".
	ErrMissingTenantScope = errors.New("tenant scope missing for tenant-scoped operation")

	// ErrNotFound is returned when no row matches within the tenant scope.
	ErrNotFound = errors.New("record not found")
)
