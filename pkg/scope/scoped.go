package scope

import (
	"context"

	"github.com/google/uuid"

	"github.com/gadisewa/backend/pkg/tenant"
)

// Scoped is a collection accessor bound to one tenant. It behaves like an
// ordinary collection but carries the tenant filter by construction, so
// code holding a Scoped cannot omit it.
type Scoped[T any] struct {
	c        *Collection[T]
	tenantID uuid.UUID
}

// ForTenant binds the collection to a specific tenant. A zero tenant ID is
// rejected immediately rather than producing an accessor that would fail
// on first use.
func (c *Collection[T]) ForTenant(tenantID uuid.UUID) (*Scoped[T], error) {
	if tenantID == uuid.Nil {
		return nil, ErrMissingTenantScope
	}
	return &Scoped[T]{c: c, tenantID: tenantID}, nil
}

// ForRequest binds the collection to the tenant resolved for the current
// request. Returns ErrMissingTenantScope when the request runs at platform
// scope; callers must treat that as a permission failure, never as license
// to read across tenants.
func (c *Collection[T]) ForRequest(ctx context.Context) (*Scoped[T], error) {
	id, ok := tenant.IDFromContext(ctx)
	if !ok {
		return nil, ErrMissingTenantScope
	}
	return c.ForTenant(id)
}

// TenantID returns the tenant this accessor is bound to.
func (s *Scoped[T]) TenantID() uuid.UUID { return s.tenantID }

func (s *Scoped[T]) List(ctx context.Context) ([]T, error) {
	return s.c.List(ctx, s.tenantID)
}

func (s *Scoped[T]) ListBy(ctx context.Context, column string, value any) ([]T, error) {
	return s.c.ListBy(ctx, s.tenantID, column, value)
}

func (s *Scoped[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return s.c.Get(ctx, s.tenantID, id)
}

func (s *Scoped[T]) FindOneBy(ctx context.Context, column string, value any) (T, error) {
	return s.c.FindOneBy(ctx, s.tenantID, column, value)
}

func (s *Scoped[T]) Exists(ctx context.Context, column string, value any) (bool, error) {
	return s.c.Exists(ctx, s.tenantID, column, value)
}

func (s *Scoped[T]) ExistsExcept(ctx context.Context, column string, value any, exceptID uuid.UUID) (bool, error) {
	return s.c.ExistsExcept(ctx, s.tenantID, column, value, exceptID)
}

func (s *Scoped[T]) Insert(ctx context.Context, row Row) (T, error) {
	return s.c.Insert(ctx, s.tenantID, row)
}

func (s *Scoped[T]) Update(ctx context.Context, id uuid.UUID, row Row) (T, error) {
	return s.c.Update(ctx, s.tenantID, id, row)
}

func (s *Scoped[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.c.Delete(ctx, s.tenantID, id)
}
