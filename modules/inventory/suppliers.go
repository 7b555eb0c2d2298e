package inventory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/sanitizer"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/validator"
)

const suppliersTable = "suppliers"

var supplierColumns = []string{
	"id", "garage_id", "name", "contact_person", "phone_number",
	"email_address", "street_address", "city", "created_at", "updated_at",
}

// supplierUniqueFields maps supplier constraint names to fields.
var supplierUniqueFields = map[string]string{
	"uq_suppliers_name_per_garage":  "name",
	"uq_suppliers_phone_per_garage": "phone_number",
	"uq_suppliers_email_per_garage": "email_address",
}

// Supplier is a parts vendor of one garage. Name and phone are unique
// within the garage, the email only when one is recorded.
type Supplier struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	GarageID      uuid.UUID `db:"garage_id"      json:"garage_id"`
	Name          string    `db:"name"           json:"name"`
	ContactPerson string    `db:"contact_person" json:"contact_person"`
	PhoneNumber   string    `db:"phone_number"   json:"phone_number"`
	EmailAddress  *string   `db:"email_address"  json:"email_address,omitempty"`
	StreetAddress string    `db:"street_address" json:"street_address"`
	City          string    `db:"city"           json:"city"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}

// Suppliers manages a garage's vendors.
type Suppliers struct {
	collection *scope.Collection[Supplier]
	log        *slog.Logger
}

func NewSuppliers(db scope.DB, log *slog.Logger) *Suppliers {
	return &Suppliers{
		collection: scope.NewCollection[Supplier](db, suppliersTable, supplierColumns...),
		log:        log,
	}
}

// SupplierInput carries a supplier create/update request.
type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	PhoneNumber   string `json:"phone_number"`
	EmailAddress  string `json:"email_address"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
}

func (in *SupplierInput) sanitize() {
	in.PhoneNumber = sanitizer.NormalizePhone(in.PhoneNumber)
	in.EmailAddress = sanitizer.NormalizeEmail(in.EmailAddress)
}

func (in SupplierInput) validate() error {
	return validator.Apply(
		validator.Required("name", in.Name),
		validator.MaxLen("name", in.Name, 255),
		validator.Required("phone_number", in.PhoneNumber),
		validator.NepaliPhone("phone_number", in.PhoneNumber),
		validator.OptionalEmail("email_address", in.EmailAddress),
	)
}

func (in SupplierInput) row() scope.Row {
	return scope.Row{
		"name":           in.Name,
		"contact_person": in.ContactPerson,
		"phone_number":   in.PhoneNumber,
		"email_address":  nullable(in.EmailAddress),
		"street_address": in.StreetAddress,
		"city":           in.City,
	}
}

// uniqueColumns lists the precheck columns for this input; the email check
// only applies when a value is present.
func (in SupplierInput) uniqueColumns() map[string]any {
	cols := map[string]any{
		"name":         in.Name,
		"phone_number": in.PhoneNumber,
	}
	if in.EmailAddress != "" {
		cols["email_address"] = in.EmailAddress
	}
	return cols
}

func (s *Suppliers) Create(ctx context.Context, in SupplierInput) (Supplier, error) {
	var zero Supplier

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	for column, value := range in.uniqueColumns() {
		if taken, err := c.Exists(ctx, column, value); err != nil {
			return zero, err
		} else if taken {
			return zero, core.FieldCollision(column)
		}
	}

	created, err := c.Insert(ctx, in.row())
	if err != nil {
		return zero, supplierDuplicate(err)
	}
	return created, nil
}

func (s *Suppliers) Update(ctx context.Context, id uuid.UUID, in SupplierInput) (Supplier, error) {
	var zero Supplier

	in.sanitize()
	if err := in.validate(); err != nil {
		return zero, err
	}

	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return zero, err
	}

	for column, value := range in.uniqueColumns() {
		if taken, err := c.ExistsExcept(ctx, column, value, id); err != nil {
			return zero, err
		} else if taken {
			return zero, core.FieldCollision(column)
		}
	}

	updated, err := c.Update(ctx, id, in.row())
	if err != nil {
		return zero, supplierDuplicate(err)
	}
	return updated, nil
}

func (s *Suppliers) Get(ctx context.Context, id uuid.UUID) (Supplier, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return Supplier{}, err
	}
	return c.Get(ctx, id)
}

func (s *Suppliers) List(ctx context.Context) ([]Supplier, error) {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return nil, err
	}
	return c.List(ctx)
}

func (s *Suppliers) Delete(ctx context.Context, id uuid.UUID) error {
	c, err := s.collection.ForRequest(ctx)
	if err != nil {
		return err
	}
	return c.Delete(ctx, id)
}

func supplierDuplicate(err error) error {
	if pg.IsDuplicateKeyError(err) {
		if field, ok := supplierUniqueFields[pg.ConstraintName(err)]; ok {
			return core.FieldCollision(field)
		}
	}
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
