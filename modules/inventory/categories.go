// Package inventory manages per-garage stock: part categories, suppliers
// and the parts themselves. All three tables sit behind scoped
// collections.
package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/validator"
)

const categoriesTable = "categories"

var categoryColumns = []string{
	"id", "garage_id", "name", "description", "created_at", "updated_at",
}

// Category groups parts. Names are unique within a garage.
type Category struct {
	ID          uuid.UUID `db:"id"          json:"id"`
	GarageID    uuid.UUID `db:"garage_id"   json:"garage_id"`
	Name        string    `db:"name"        json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}

// Categories manages a garage's part categories.
type Categories struct {
	collection *scope.Collection[Category]
	log        *slog.Logger
}

func NewCategories(db scope.DB, log *slog.Logger) *Categories {
	return &Categories{
		collection: scope.NewCollection[Category](db, categoriesTable, categoryColumns...),
		log:        log,
	}
}

// CategoryInput carries a category create/update request.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (in CategoryInput) validate() error {
	return validator.Apply(
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, 255),
	)
}

func (in CategoryInput) row() scope.Row {
	return scope.Row{
		"name":        in.Name,
		"description": in.Description,
	}
}

func (s *Categories) Create(ctx context.Context, in CategoryInput) (Category, error) {
	var zero Category

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
		return zero, categoryDuplicate(err)
	}
	return created, nil
}

func (s *Categories) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (Category, error) {
	var zero Category

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
		return zero, categoryDuplicate(err)
	}
	return updated, nil
}

func (s *Categories) Get(ctx context.Context, id uuid.UUID) (Category, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return Category{}, err
	}
	return c.Get(ctx, id)
}

func (s *Categories) List(ctx context.Context) ([]Category, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (s *Categories) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return err
	}
	return c.Delete(ctx, id)
}

func categoryDuplicate(err error) error {
	if pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == "uq_categories_name_per_garage" {
		return core.FieldCollision("name")
	}
	return err
}
