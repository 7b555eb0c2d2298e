package scope_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadisewa/backend/pkg/scope"
	"github.com/gadisewa/backend/pkg/tenant"
)

var errProbe = errors.New("probe")

// recordingDB captures every statement and fails it, so tests can assert
// on the generated SQL without a live database.
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

type record struct {
	ID        uuid.UUID `db:"id"`
	GarageID  uuid.UUID `db:"garage_id"`
	Name      string    `db:"name"`
	CreatedAt string    `db:"created_at"`
}

func newTestCollection(db scope.DB) *scope.Collection[record] {
	return scope.NewCollection[record](db, "records", "id", "garage_id", "name", "created_at")
}

func TestCollectionFailsClosedWithoutTenant(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := &recordingDB{}
	c := newTestCollection(db)

	_, err := c.List(ctx, uuid.Nil)
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = c.ListBy(ctx, uuid.Nil, "name", "x")
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = c.Get(ctx, uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = c.FindOneBy(ctx, uuid.Nil, "name", "x")
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = c.Exists(ctx, uuid.Nil, "name", "x")
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = c.Insert(ctx, uuid.Nil, scope.Row{"name": "x"})
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	_, err = c.Update(ctx, uuid.Nil, uuid.New(), scope.Row{"name": "x"})
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	err = c.Delete(ctx, uuid.Nil, uuid.New())
	assert.ErrorIs(t, err, scope.ErrMissingTenantScope)

	// None of the refused operations may reach the database.
	assert.Empty(t, db.queries)
}

func TestCollectionInjectsTenantFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tenantID := uuid.New()
	id := uuid.New()

	t.Run("list", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		_, err := newTestCollection(db).List(ctx, tenantID)
		require.ErrorIs(t, err, errProbe)

		require.Len(t, db.queries, 1)
		assert.Contains(t, db.queries[0], "WHERE garage_id = $1")
		assert.Equal(t, []any{tenantID}, db.args[0])
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		_, err := newTestCollection(db).Get(ctx, tenantID, id)
		require.ErrorIs(t, err, errProbe)

		assert.Contains(t, db.queries[0], "WHERE garage_id = $1 AND id = $2")
		assert.Equal(t, []any{tenantID, id}, db.args[0])
	})

	t.Run("insert sets tenant column first", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		_, err := newTestCollection(db).Insert(ctx, tenantID, scope.Row{"name": "Oil Change"})
		require.ErrorIs(t, err, errProbe)

		assert.Contains(t, db.queries[0], "INSERT INTO records (garage_id, name)")
		assert.Equal(t, []any{tenantID, "Oil Change"}, db.args[0])
	})

	t.Run("update scoped by tenant and id", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		_, err := newTestCollection(db).Update(ctx, tenantID, id, scope.Row{"name": "New"})
		require.ErrorIs(t, err, errProbe)

		assert.Contains(t, db.queries[0], "WHERE garage_id = $2 AND id = $3")
		assert.Equal(t, []any{"New", tenantID, id}, db.args[0])
	})

	t.Run("delete scoped by tenant and id", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		err := newTestCollection(db).Delete(ctx, tenantID, id)
		require.ErrorIs(t, err, errProbe)

		assert.Contains(t, db.queries[0], "WHERE garage_id = $1 AND id = $2")
		assert.Equal(t, []any{tenantID, id}, db.args[0])
	})

	t.Run("exists except excludes the row itself", func(t *testing.T) {
		t.Parallel()

		db := &recordingDB{}
		_, err := newTestCollection(db).ExistsExcept(ctx, tenantID, "name", "x", id)
		require.ErrorIs(t, err, errProbe)

		assert.Contains(t, db.queries[0], "AND id <> $3")
		assert.Equal(t, []any{tenantID, "x", id}, db.args[0])
	})
}

func TestScopedBinding(t *testing.T) {
	t.Parallel()

	db := &recordingDB{}
	c := newTestCollection(db)

	t.Run("for tenant rejects zero id", func(t *testing.T) {
		t.Parallel()

		_, err := c.ForTenant(uuid.Nil)
		assert.ErrorIs(t, err, scope.ErrMissingTenantScope)
	})

	t.Run("for request without tenant fails closed", func(t *testing.T) {
		t.Parallel()

		_, err := c.ForRequest(context.Background())
		assert.ErrorIs(t, err, scope.ErrMissingTenantScope)
	})

	t.Run("for request binds the resolved tenant", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		ctx := tenant.WithTenant(context.Background(), &tenant.Tenant{ID: tenantID, Active: true})

		s, err := c.ForRequest(ctx)
		require.NoError(t, err)
		assert.Equal(t, tenantID, s.TenantID())
	})

	t.Run("bound accessor carries the filter", func(t *testing.T) {
		t.Parallel()

		tenantID := uuid.New()
		db := &recordingDB{}
		s, err := newTestCollection(db).ForTenant(tenantID)
		require.NoError(t, err)

		_, err = s.List(context.Background())
		require.ErrorIs(t, err, errProbe)
		assert.Equal(t, []any{tenantID}, db.args[0])
	})
}
