package identity_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gadisewa/backend/modules/identity"
	"github.com/gadisewa/backend/pkg/tenant"
)

func TestAuthenticatorScopePinning(t *testing.T) {
	t.Parallel()

	issuer := newIssuer("test-secret", time.Hour)
	garageA := uuid.New()
	garageB := uuid.New()

	platformToken, err := issuer.Issue(&identity.User{ID: uuid.New(), Email: "owner@example.com"})
	require.NoError(t, err)
	garageToken, err := issuer.Issue(&identity.User{ID: uuid.New(), Email: "tech@example.com", GarageID: &garageA})
	require.NoError(t, err)

	handler := identity.Authenticator(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := identity.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.NotNil(t, claims)
	}))

	serve := func(token string, garageID *uuid.UUID) int {
		req := httptest.NewRequest("GET", "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if garageID != nil {
			ctx := tenant.WithTenant(req.Context(), &tenant.Tenant{ID: *garageID, Active: true})
			req = req.WithContext(ctx)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("platform token on platform surface", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusOK, serve(platformToken, nil))
	})

	t.Run("garage token on its own garage", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusOK, serve(garageToken, &garageA))
	})

	t.Run("platform token rejected on garage surface", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusUnauthorized, serve(platformToken, &garageA))
	})

	t.Run("garage token rejected on platform surface", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusUnauthorized, serve(garageToken, nil))
	})

	t.Run("garage token rejected on another garage", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusUnauthorized, serve(garageToken, &garageB))
	})

	t.Run("missing token rejected", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, http.StatusUnauthorized, serve("", nil))
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Token "+platformToken)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
