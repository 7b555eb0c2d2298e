// Package garages is the platform-scope administration module for tenants.
// It owns the authoritative garage records behind the tenant directory:
// creation, the globally unique identity fields, and soft deactivation.
package garages

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Garage types offered at registration.
const (
	TypeAutoRepair   = "auto-repair"
	TypeBodyShop     = "body-shop"
	TypeMultiService = "multi-service"
)

// Garage is the full tenant record. Every contact and registration field is
// globally unique across the platform; the subdomain is additionally the
// resolution key and immutable after creation.
type Garage struct {
	ID                 uuid.UUID       `db:"id" json:"id"`
	Name               string          `db:"name" json:"name"`
	Subdomain          string          `db:"subdomain" json:"subdomain"`
	RegistrationNumber string          `db:"registration_number" json:"registration_number"`
	TaxPanNumber       string          `db:"tax_pan_number" json:"tax_pan_number"`
	GarageType         string          `db:"garage_type" json:"garage_type"`
	StreetAddress      string          `db:"street_address" json:"street_address"`
	City               string          `db:"city" json:"city"`
	PostalCode         string          `db:"postal_code" json:"postal_code"`
	PhoneNumber        string          `db:"phone_number" json:"phone_number"`
	EmailAddress       string          `db:"email_address" json:"email_address"`
	WorkingHours       json.RawMessage `db:"working_hours" json:"working_hours,omitempty"`
	Active             bool            `db:"is_active" json:"is_active"`
	CreatedAt          time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at" json:"updated_at"`
}

// Storage is the persistence surface for garage records. Garages are not
// tenant-scoped themselves (they ARE the tenants), so this is a plain
// repository rather than a guarded collection.
type Storage interface {
	Create(ctx context.Context, g *Garage) error
	GetByID(ctx context.Context, id uuid.UUID) (*Garage, error)
	GetActiveBySubdomain(ctx context.Context, label string) (*Garage, error)
	List(ctx context.Context) ([]Garage, error)

	// Deactivate soft-disables the garage; historical scoped data is kept.
	Deactivate(ctx context.Context, id uuid.UUID) error

	ExistsBy(ctx context.Context, column string, value any) (bool, error)
}
