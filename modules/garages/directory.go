package garages

import (
	"context"

	"github.com/gadisewa/backend/pkg/tenant"
)

// Directory adapts the garage store to the tenant.Directory interface used
// by the resolution middleware. Only the minimal request-scoped view of the
// garage leaves this boundary.
type Directory struct {
	storage Storage
}

func NewDirectory(storage Storage) *Directory {
	return &Directory{storage: storage}
}

func (d *Directory) FindActiveBySubdomain(ctx context.Context, label string) (*tenant.Tenant, error) {
	g, err := d.storage.GetActiveBySubdomain(ctx, label)
	if err != nil {
		return nil, err
	}
	return &tenant.Tenant{
		ID:        g.ID,
		Subdomain: g.Subdomain,
		Name:      g.Name,
		Active:    g.Active,
		CreatedAt: g.CreatedAt,
	}, nil
}
