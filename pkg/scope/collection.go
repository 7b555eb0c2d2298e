package scope

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the querying surface the guard needs. *pgxpool.Pool satisfies it;
// tests substitute fakes.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// tenantColumn is the mandatory owning-garage column on every scoped table.
const tenantColumn = "garage_id"

// Row holds column values for inserts and updates. The tenant column is
// injected by the collection and must not appear here.
type Row map[string]any

// Collection is the only handle feature code gets for a tenant-scoped
// table. Every operation requires a concrete tenant ID; there is no
// unscoped read shape at all.
//
// T must be a struct with `db` tags matching the selected columns.
type Collection[T any] struct {
	db      DB
	table   string
	columns string
}

// NewCollection builds a guarded collection over the given table. The
// column list is the select/RETURNING set and must include the tenant
// column so scanned entities carry their owner.
func NewCollection[T any](db DB, table string, columns ...string) *Collection[T] {
	return &Collection[T]{
		db:      db,
		table:   table,
		columns: strings.Join(columns, ", "),
	}
}

// List returns all rows belonging to the tenant, newest first.
// Fails closed with ErrMissingTenantScope when no tenant is supplied.
func (c *Collection[T]) List(ctx context.Context, tenantID uuid.UUID) ([]T, error) {
	if tenantID == uuid.Nil {
		return nil, ErrMissingTenantScope
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY created_at DESC", c.columns, c.table, tenantColumn)
	rows, err := c.db.Query(ctx, q, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.table, err)
	}
	return items, nil
}

// ListBy returns the tenant's rows matching column = value, newest first.
func (c *Collection[T]) ListBy(ctx context.Context, tenantID uuid.UUID, column string, value any) ([]T, error) {
	if tenantID == uuid.Nil {
		return nil, ErrMissingTenantScope
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY created_at DESC",
		c.columns, c.table, tenantColumn, column)
	rows, err := c.db.Query(ctx, q, tenantID, value)
	if err != nil {
		return nil, fmt.Errorf("list %s by %s: %w", c.table, column, err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("list %s by %s: %w", c.table, column, err)
	}
	return items, nil
}

// Get returns the row with the given ID within the tenant scope.
func (c *Collection[T]) Get(ctx context.Context, tenantID, id uuid.UUID) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrMissingTenantScope
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND id = $2", c.columns, c.table, tenantColumn)
	rows, err := c.db.Query(ctx, q, tenantID, id)
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", c.table, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("get %s: %w", c.table, err)
	}
	return item, nil
}

// FindOneBy returns the single row matching column = value within the
// tenant scope. Uniqueness constraints guarantee at most one match for
// natural keys.
func (c *Collection[T]) FindOneBy(ctx context.Context, tenantID uuid.UUID, column string, value any) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrMissingTenantScope
	}
	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2", c.columns, c.table, tenantColumn, column)
	rows, err := c.db.Query(ctx, q, tenantID, value)
	if err != nil {
		return zero, fmt.Errorf("find %s by %s: %w", c.table, column, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("find %s by %s: %w", c.table, column, err)
	}
	return item, nil
}

// Exists reports whether any row within the tenant scope has column = value.
// Used by the validation layer of the uniqueness enforcer; the storage
// constraint remains the authority under concurrent writes.
func (c *Collection[T]) Exists(ctx context.Context, tenantID uuid.UUID, column string, value any) (bool, error) {
	return c.exists(ctx, tenantID, column, value, uuid.Nil)
}

// ExistsExcept is Exists minus one row, for update-time checks where the
// record may keep its own value.
func (c *Collection[T]) ExistsExcept(ctx context.Context, tenantID uuid.UUID, column string, value any, exceptID uuid.UUID) (bool, error) {
	return c.exists(ctx, tenantID, column, value, exceptID)
}

func (c *Collection[T]) exists(ctx context.Context, tenantID uuid.UUID, column string, value any, exceptID uuid.UUID) (bool, error) {
	if tenantID == uuid.Nil {
		return false, ErrMissingTenantScope
	}
	q := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2", c.table, tenantColumn, column)
	args := []any{tenantID, value}
	if exceptID != uuid.Nil {
		q += " AND id <> $3"
		args = append(args, exceptID)
	}
	q += ")"

	rows, err := c.db.Query(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("exists %s.%s: %w", c.table, column, err)
	}
	found, err := pgx.CollectOneRow(rows, pgx.RowTo[bool])
	if err != nil {
		return false, fmt.Errorf("exists %s.%s: %w", c.table, column, err)
	}
	return found, nil
}

// Insert creates a row owned by the tenant and returns it. The tenant
// column is always set by the guard, never by the caller.
func (c *Collection[T]) Insert(ctx context.Context, tenantID uuid.UUID, row Row) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrMissingTenantScope
	}

	cols := sortedKeys(row)
	names := make([]string, 0, len(cols)+1)
	placeholders := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)

	names = append(names, tenantColumn)
	placeholders = append(placeholders, "$1")
	args = append(args, tenantID)

	for i, col := range cols {
		names = append(names, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, row[col])
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		c.table, strings.Join(names, ", "), strings.Join(placeholders, ", "), c.columns)

	rows, err := c.db.Query(ctx, q, args...)
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", c.table, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", c.table, err)
	}
	return item, nil
}

// Update modifies the row with the given ID within the tenant scope and
// returns the updated record. Rows outside the scope are invisible.
func (c *Collection[T]) Update(ctx context.Context, tenantID, id uuid.UUID, row Row) (T, error) {
	var zero T
	if tenantID == uuid.Nil {
		return zero, ErrMissingTenantScope
	}

	cols := sortedKeys(row)
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+2)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, row[col])
	}
	sets = append(sets, "updated_at = now()")

	q := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d AND id = $%d RETURNING %s",
		c.table, strings.Join(sets, ", "), tenantColumn, len(cols)+1, len(cols)+2, c.columns)
	args = append(args, tenantID, id)

	rows, err := c.db.Query(ctx, q, args...)
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", c.table, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, fmt.Errorf("update %s: %w", c.table, err)
	}
	return item, nil
}

// Delete removes the row with the given ID within the tenant scope.
func (c *Collection[T]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if tenantID == uuid.Nil {
		return ErrMissingTenantScope
	}
	q := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND id = $2", c.table, tenantColumn)
	tag, err := c.db.Exec(ctx, q, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
