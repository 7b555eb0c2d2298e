package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadisewa/backend/pkg/tenant"
)

func TestInMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		want := &tenant.Tenant{ID: uuid.New(), Subdomain: "acme", Active: true}

		cache.Set(ctx, "acme", want, time.Minute)
		got, ok := cache.Get(ctx, "acme")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		_, ok := cache.Get(ctx, "unknown")
		assert.False(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		cache.Set(ctx, "acme", &tenant.Tenant{Subdomain: "acme"}, time.Millisecond)

		time.Sleep(5 * time.Millisecond)
		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		cache := tenant.NewInMemoryCache()
		cache.Set(ctx, "acme", &tenant.Tenant{Subdomain: "acme"}, time.Minute)
		cache.Delete(ctx, "acme")

		_, ok := cache.Get(ctx, "acme")
		assert.False(t, ok)
	})
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cache := tenant.NewNoOpCache()

	cache.Set(ctx, "acme", &tenant.Tenant{Subdomain: "acme"}, time.Minute)
	_, ok := cache.Get(ctx, "acme")
	assert.False(t, ok)
}
