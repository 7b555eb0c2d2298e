package customers_test

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

	"github.com/gadisewa/backend/modules/customers"
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

func newTestService(db *recordingDB) *customers.Service {
	return customers.NewService(db, slog.New(slog.DiscardHandler))
}

func validInput() customers.Input {
	return customers.Input{
		FullName:    "Hari Gurung",
		PhoneNumber: "9812345678",
		City:        "Pokhara",
	}
}

func TestCustomerServiceFailsClosedWithoutTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := &recordingDB{}
	svc := newTestService(db)

	_, err := svc.Create(ctx, validInput())
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = svc.Update(ctx, uuid.New(), validInput())
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	err = svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	assert.Empty(t, db.queries, "no statement may run without a tenant")
}

func TestCustomerValidation(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	ctx := tenant.WithTenant(context.Background(), &tenant.Tenant{ID: tenantID, Active: true})

	tests := []struct {
		name   string
		mutate func(*customers.Input)
		field  string
	}{
		{
			name:   "missing name",
			mutate: func(in *customers.Input) { in.FullName = " " },
			field:  "full_name",
		},
		{
			name:   "invalid phone",
			mutate: func(in *customers.Input) { in.PhoneNumber = "12345" },
			field:  "phone_number",
		},
		{
			name:   "invalid email when present",
			mutate: func(in *customers.Input) { in.EmailAddress = "nope" },
			field:  "email_address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := &recordingDB{}
			in := validInput()
			tt.mutate(&in)

			_, err := newTestService(db).Create(ctx, in)
			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.True(t, errs.Has(tt.field))
			assert.Empty(t, db.queries)
		})
	}
}

func TestCustomerCreateScopesQueries(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	ctx := tenant.WithTenant(context.Background(), &tenant.Tenant{ID: tenantID, Active: true})

	db := &recordingDB{}
	_, err := newTestService(db).Create(ctx, validInput())
	require.ErrorIs(t, err, errProbe)

	// The first statement is the phone uniqueness pre-check, already
	// filtered by the request's garage.
	require.NotEmpty(t, db.queries)
	assert.Contains(t, db.queries[0], "garage_id = $1")
	assert.Equal(t, tenantID, db.args[0][0])
}

func TestCustomerBlankEmailSkipsUniquenessCheck(t *testing.T) {
	t.Parallel()

	ctx := tenant.WithTenant(context.Background(), &tenant.Tenant{ID: uuid.New(), Active: true})
	db := &recordingDB{}

	in := validInput()
	in.EmailAddress = ""
	_, err := newTestService(db).Create(ctx, in)
	require.ErrorIs(t, err, errProbe)

	for _, q := range db.queries {
		assert.NotContains(t, q, "email_address = ", "blank emails must not be uniqueness-checked")
	}
}
