package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant carries the minimal garage information needed for request-scoped
// operations. The full garage record (contact fields, working hours, etc.)
// lives in the garages module; this value is what gets attached to every
// request and read by downstream data access.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Subdomain string    `json:"subdomain"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Directory is the authoritative lookup for tenant records.
//
// FindActiveBySubdomain matches the label case-insensitively and only
// returns active tenants. Inactive and nonexistent tenants are both
// reported as ErrTenantNotFound so callers cannot tell them apart.
type Directory interface {
	FindActiveBySubdomain(ctx context.Context, label string) (*Tenant, error)
}
