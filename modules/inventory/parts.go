package inventory

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/logger"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/validator"
)

const partsTable = "parts"

var partColumns = []string{
	"id", "garage_id", "category_id", "supplier_id", "sku", "name",
	"description", "cost_price", "selling_price", "quantity",
	"reorder_level", "created_at", "updated_at",
}

// Part is a stocked item. The SKU is the natural key within a garage.
// Category and supplier references are optional and must belong to the
// same garage.
type Part struct {
	ID           uuid.UUID  `db:"id"            json:"id"`
	GarageID     uuid.UUID  `db:"garage_id"     json:"garage_id"`
	CategoryID   *uuid.UUID `db:"category_id"   json:"category_id,omitempty"`
	SupplierID   *uuid.UUID `db:"supplier_id"   json:"supplier_id,omitempty"`
	SKU          string     `db:"sku"           json:"sku"`
	Name         string     `db:"name"          json:"name"`
	Description  string     `db:"description"   json:"description"`
	CostPrice    float64    `db:"cost_price"    json:"cost_price"`
	SellingPrice float64    `db:"selling_price" json:"selling_price"`
	Quantity     int        `db:"quantity"      json:"quantity"`
	ReorderLevel int        `db:"reorder_level" json:"reorder_level"`
	CreatedAt    time.Time  `db:"created_at"    json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"    json:"updated_at"`
}

// Parts manages a garage's stock.
type Parts struct {
	collection *scope.Collection[Part]
	log        *slog.Logger
}

func NewParts(db scope.DB, log *slog.Logger) *Parts {
	return &Parts{
		collection: scope.NewCollection[Part](db, partsTable, partColumns...),
		log:        log,
	}
}

// PartInput carries a part create/update request.
type PartInput struct {
	CategoryID   *uuid.UUID `json:"category_id"`
	SupplierID   *uuid.UUID `json:"supplier_id"`
	SKU          string     `json:"sku"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	CostPrice    float64    `json:"cost_price"`
	SellingPrice float64    `json:"selling_price"`
	Quantity     int        `json:"quantity"`
	ReorderLevel int        `json:"reorder_level"`
}

func (in *PartInput) sanitize() {
	in.SKU = strings.ToUpper(strings.TrimSpace(in.SKU))
}

func (in PartInput) validate() error {
	return validator.Apply(
		validator.Required("sku", in.SKU),
		validator.MaxLen("sku", in.SKU, 64),
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, 255),
		validator.NonNegative("cost_price", in.CostPrice),
		validator.NonNegative("selling_price", in.SellingPrice),
		validator.NonNegative("quantity", in.Quantity),
		validator.NonNegative("reorder_level", in.ReorderLevel),
	)
}

func (in PartInput) row() scope.Row {
	return scope.Row{
		"category_id":   in.CategoryID,
		"supplier_id":   in.SupplierID,
		"sku":           in.SKU,
		"name":          in.Name,
		"description":   in.Description,
		"cost_price":    in.CostPrice,
		"selling_price": in.SellingPrice,
		"quantity":      in.Quantity,
		"reorder_level": in.ReorderLevel,
	}
}

func (s *Parts) Create(ctx context.Context, in PartInput) (Part, error) {
	var zero Part

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.Exists(ctx, "sku", in.SKU); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("sku")
	}

	created, err := c.Insert(ctx, in.row())
	if err != nil {
		return zero, partWriteError(err)
	}

	s.log.InfoContext(ctx, "part added to stock",
		logger.GarageID(c.TenantID().String()),
		slog.String("part_id", created.ID.String()),
		slog.String("sku", created.SKU),
	)
	return created, nil
}

func (s *Parts) Update(ctx context.Context, id uuid.UUID, in PartInput) (Part, error) {
	var zero Part

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	if taken, err := c.ExistsExcept(ctx, "sku", in.SKU, id); err != nil {
		return zero, err
	} else if taken {
		return zero, core.FieldCollision("sku")
	}

	updated, err := c.Update(ctx, id, in.row())
	if err != nil {
		return zero, partWriteError(err)
	}
	return updated, nil
}

// Adjust changes the on-hand quantity by delta. Negative results are
// rejected so stock never goes below zero.
func (s *Parts) Adjust(ctx context.Context, id uuid.UUID, delta int) (Part, error) {
	var zero Part

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	p, err := c.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	next := p.Quantity + delta
	if next < 0 {
		return zero, validator.ValidationErrors{{
			Field:   "quantity",
			Message: "cannot go below zero",
		}}
	}

	return c.Update(ctx, id, scope.Row{"quantity": next})
}

func (s *Parts) Get(ctx context.Context, id uuid.UUID) (Part, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return Part{}, err
	}
	return c.Get(ctx, id)
}

func (s *Parts) List(ctx context.Context) ([]Part, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

// ListByCategory returns the parts filed under one category.
func (s *Parts) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]Part, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListBy(ctx, "category_id", categoryID)
}

func (s *Parts) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return err
	}
	return c.Delete(ctx, id)
}

func partWriteError(err error) error {
	if pg.IsDuplicateKeyError(err) && pg.ConstraintName(err) == "uq_parts_sku_per_garage" {
		return core.FieldCollision("sku")
	}
	if pg.IsForeignKeyViolationError(err) {
		return validator.ValidationErrors{{
			Field:   "category_id",
			Message: "referenced record does not exist in this garage",
		}}
	}
	return err
}
