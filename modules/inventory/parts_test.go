package inventory_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadisewa/backend/modules/inventory"
	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/tenant"
	"github.com/gadisewa/backend/pkg/validator"
)

var errProbe = errors.New("probe")

type recordingDB struct {
	queries []string
	args    [][]any
}

func (db *recordingDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.queries = append(db.queries, sql)
	db.args = append(db.args, args)
	return nil, errProbe
}

func (db *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.queries = append(db.queries, sql)
	db.args = append(db.args, args)
	return pgconn.CommandTag{}, errProbe
}

func testLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func tenantCtx() context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{ID: uuid.New(), Active: true})
}

func validPart() inventory.PartInput {
	return inventory.PartInput{
		SKU:          "flt-oil-01",
		Name:         "Oil Filter",
		CostPrice:    450,
		SellingPrice: 650,
		Quantity:     12,
		ReorderLevel: 3,
	}
}

func TestPartsFailClosedWithoutTenant(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	svc := inventory.NewParts(db, testLogger())

	_, err := svc.Create(context.Background(), validPart())
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = svc.Adjust(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	assert.Empty(t, db.queries)
}

func TestPartValidation(t *testing.T) {
	t.Parallel()

	svc := inventory.NewParts(&recordingDB{}, testLogger())

	tests := []struct {
		name   string
		mutate func(*inventory.PartInput)
		field  string
	}{
		{name: "missing sku", mutate: func(in *inventory.PartInput) { in.SKU = " " }, field: "sku"},
		{name: "missing name", mutate: func(in *inventory.PartInput) { in.Name = "" }, field: "name"},
		{name: "negative cost", mutate: func(in *inventory.PartInput) { in.CostPrice = -1 }, field: "cost_price"},
		{name: "negative quantity", mutate: func(in *inventory.PartInput) { in.Quantity = -1 }, field: "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validPart()
			tt.mutate(&in)

			_, err := svc.Create(tenantCtx(), in)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.True(t, errs.Has(tt.field))
		})
	}
}

func TestPartSKUNormalized(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	_, err := inventory.NewParts(db, testLogger()).Create(tenantCtx(), validPart())
	require.ErrorIs(t, err, errProbe)

	// The SKU pre-check uses the canonical uppercase form.
	require.NotEmpty(t, db.args)
	assert.Equal(t, "FLT-OIL-01", db.args[0][1])
}

func TestSupplierUniquePrechecksSkipBlankEmail(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	svc := inventory.NewSuppliers(db, testLogger())

	in := inventory.SupplierInput{
		Name:        "Everest Spares",
		PhoneNumber: "9812345678",
	}
	_, err := svc.Create(tenantCtx(), in)
	require.ErrorIs(t, err, errProbe)

	for _, q := range db.queries {
		assert.NotContains(t, q, "email_address = ")
	}
}

func TestCategoryNameRequired(t *testing.T) {
	t.Parallel()

	svc := inventory.NewCategories(&recordingDB{}, testLogger())
	_, err := svc.Create(tenantCtx(), inventory.CategoryInput{Description: "misc"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.True(t, errs.Has("name"))
}
