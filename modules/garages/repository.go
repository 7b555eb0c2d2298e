package garages

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gadisewa/backend/pkg/tenant"
)

const garageColumns = `id, name, subdomain, registration_number, tax_pan_number, garage_type,
	street_address, city, postal_code, phone_number, email_address, working_hours,
	is_active, created_at, updated_at`

// Repository persists garages in Postgres.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, g *Garage) error {
	q := fmt.Sprintf(`INSERT INTO garages
		(id, name, subdomain, registration_number, tax_pan_number, garage_type,
		 street_address, city, postal_code, phone_number, email_address, working_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s`, garageColumns)

	rows, err := r.db.Query(ctx, q,
		g.ID, g.Name, g.Subdomain, g.RegistrationNumber, g.TaxPanNumber, g.GarageType,
		g.StreetAddress, g.City, g.PostalCode, g.PhoneNumber, g.EmailAddress, g.WorkingHours,
	)
	if err != nil {
		return fmt.Errorf("create garage: %w", err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Garage])
	if err != nil {
		return fmt.Errorf("create garage: %w", err)
	}
	*g = created
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Garage, error) {
	q := fmt.Sprintf("SELECT %s FROM garages WHERE id = $1", garageColumns)
	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("get garage: %w", err)
	}
	g, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Garage])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get garage: %w", err)
	}
	return &g, nil
}

// GetActiveBySubdomain matches case-insensitively and only returns active
// garages. Inactive garages are reported as not found; callers must not be
// able to tell the difference.
func (r *Repository) GetActiveBySubdomain(ctx context.Context, label string) (*Garage, error) {
	q := fmt.Sprintf("SELECT %s FROM garages WHERE lower(subdomain) = lower($1) AND is_active", garageColumns)
	rows, err := r.db.Query(ctx, q, label)
	if err != nil {
		return nil, fmt.Errorf("get garage by subdomain: %w", err)
	}
	g, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Garage])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get garage by subdomain: %w", err)
	}
	return &g, nil
}

func (r *Repository) List(ctx context.Context) ([]Garage, error) {
	q := fmt.Sprintf("SELECT %s FROM garages ORDER BY created_at DESC", garageColumns)
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list garages: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[Garage])
	if err != nil {
		return nil, fmt.Errorf("list garages: %w", err)
	}
	return items, nil
}

func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "UPDATE garages SET is_active = false, updated_at = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate garage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tenant.ErrTenantNotFound
	}
	return nil
}

func (r *Repository) ExistsBy(ctx context.Context, column string, value any) (bool, error) {
	q := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM garages WHERE %s = $1)", column)
	rows, err := r.db.Query(ctx, q, value)
	if err != nil {
		return false, fmt.Errorf("garage exists by %s: %w", column, err)
	}
	found, err := pgx.CollectOneRow(rows, pgx.RowTo[bool])
	if err != nil {
		return false, fmt.Errorf("garage exists by %s: %w", column, err)
	}
	return found, nil
}
