// Package workshop covers the day-to-day shop floor entities: the catalog
// of services a garage offers and the vehicles it works on. Both live
// behind scoped collections, one garage each.
package workshop

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/logger"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/validator"
)

const servicesTable = "services"

var serviceColumns = []string{
	"id", "garage_id", "name", "description", "labor_rate",
	"estimated_minutes", "created_at", "updated_at",
}

// Service is one offering in a garage's catalog. Names are unique within a
// garage; two garages can offer "Oil Change" independently.
type Service struct {
	ID               uuid.UUID `db:"id"                json:"id"`
	GarageID         uuid.UUID `db:"garage_id"         json:"garage_id"`
	Name             string    `db:"name"              json:"name"`
	Description      string    `db:"description"       json:"description"`
	LaborRate        float64   `db:"labor_rate"        json:"labor_rate"`
	EstimatedMinutes int       `db:"estimated_minutes" json:"estimated_minutes"`
	CreatedAt        time.Time `db:"created_at"        json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"        json:"updated_at"`
}

// Catalog manages a garage's service offerings.
type Catalog struct {
	collection *scope.Collection[Service]
	log        *slog.Logger
}

func NewCatalog(db scope.DB, log *slog.Logger) *Catalog {
	return &Catalog{
		collection: scope.NewCollection[Service](db, servicesTable, serviceColumns...),
		log:        log,
	}
}

// ServiceInput carries a catalog create/update request.
type ServiceInput struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	LaborRate        float64 `json:"labor_rate"`
	EstimatedMinutes int     `json:"estimated_minutes"`
}

func (in ServiceInput) validate() error {
	return validator.Apply(
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, 255),
		validator.NonNegative("labor_rate", in.LaborRate),
		validator.NonNegative("estimated_minutes", in.EstimatedMinutes),
	)
}

func (in ServiceInput) row() scope.Row {
	return scope.Row{
		"name":              in.Name,
		"description":       in.Description,
		"labor_rate":        in.LaborRate,
		"estimated_minutes": in.EstimatedMinutes,
	}
}

func (s *Catalog) Create(ctx context.Context, in ServiceInput) (Service, error) {
	var zero Service

	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.Exists(ctx, "name", in.Name); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("name")
	}

	created, err := c.Insert(ctx, in.row())
	if err != nil {
		return zero, serviceDuplicate(err)
	}

	s.log.InfoContext(ctx, "service added to catalog",
		logger.GarageID(c.TenantID().String()),
		slog.String("service_id", created.ID.String()),
		slog.String("name", created.Name),
	)
	return created, nil
}

func (s *Catalog) Update(ctx context.Context, id uuid.UUID, in ServiceInput) (Service, error) {
	var zero Service

	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.ExistsExcept(ctx, "name", in.Name, id); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("name")
	}

	updated, err := c.Update(ctx, id, in.row())
	if err != nil {
		return zero, serviceDuplicate(err)
	}
	return updated, nil
}

func (s *Catalog) Get(ctx context.Context, id uuid.UUID) (Service, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return Service{}, err
	}
	return c.Get(ctx, id)
}

func (s *Catalog) List(ctx context.Context) ([]Service, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (s *Catalog) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return err
	}
	return c.Delete(ctx, id)
}

func serviceDuplicate(err error) error {
	if pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == "uq_services_name_per_garage" {
		return core.FieldCollision("name")
	}
	return err
}
