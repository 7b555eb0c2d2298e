package identity_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/modules/identity"
	"github.com/gadisewa/backend/pkg/tenant"
)

// fakeStorage keeps principals in memory with the same dual-scope lookup
// contract as the Postgres repository.
type fakeStorage struct {
	users []*identity.User
}

func sameScope(u *identity.User, garageID *uuid.UUID) bool {
	if garageID == nil {
		return u.GarageID == nil
	}
	return u.GarageID != nil && *u.GarageID == *garageID
}

func (s *fakeStorage) Create(_ context.Context, u *identity.User) error {
	clone := *u
	clone.Active = true
	s.users = append(s.users, &clone)
	return nil
}

func (s *fakeStorage) GetByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (s *fakeStorage) FindActiveByEmail(_ context.Context, email string, garageID *uuid.UUID) (*identity.User, error) {
	for _, u := range s.users {
		if u.Email == email && u.Active && sameScope(u, garageID) {
			return u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (s *fakeStorage) ExistsBy(_ context.Context, column, value string, garageID *uuid.UUID) (bool, error) {
	for _, u := range s.users {
		if !sameScope(u, garageID) {
			continue
		}
		switch column {
		case "email":
			if u.Email == value {
				return true, nil
			}
		case "username":
			if u.Username == value {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *fakeStorage) ListByGarage(_ context.Context, garageID uuid.UUID) ([]identity.User, error) {
	var out []identity.User
	for _, u := range s.users {
		if u.GarageID != nil && *u.GarageID == garageID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *fakeStorage) Deactivate(_ context.Context, id uuid.UUID) error {
	for _, u := range s.users {
		if u.ID == id {
			u.Active = false
			return nil
		}
	}
	return identity.ErrUserNotFound
}

func newTestService(storage *fakeStorage) *identity.Service {
	tokens := identity.NewTokenIssuer(identity.Config{
		Secret:   "test-secret-do-not-use",
		TokenTTL: time.Hour,
		Issuer:   "gadisewa",
	})
	log := slog.New(slog.DiscardHandler)
	return identity.NewService(storage, tokens, log, identity.WithBcryptCost(bcrypt.MinCost))
}

func seedUser(t *testing.T, storage *fakeStorage, email, password string, garageID *uuid.UUID) *identity.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &identity.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     email,
		PasswordHash: hash,
		GarageID:     garageID,
		Active:       true,
	}
	storage.users = append(storage.users, u)
	return u
}

func tenantCtx(garageID uuid.UUID) context.Context {
	return tenant.WithTenant(context.Background(), &tenant.Tenant{ID: garageID, Active: true})
}

func TestAuthenticateDualScope(t *testing.T) {
	t.Parallel()

	garageA := uuid.New()
	garageB := uuid.New()

	storage := &fakeStorage{}
	platformUser := seedUser(t, storage, "owner@example.com", "platform-pass", nil)
	garageUser := seedUser(t, storage, "owner@example.com", "garage-pass", &garageA)

	svc := newTestService(storage)

	t.Run("platform scope resolves the platform principal", func(t *testing.T) {
		t.Parallel()

		u, err := svc.Authenticate(context.Background(), "owner@example.com", "platform-pass")
		require.NoError(t, err)
		assert.Equal(t, platformUser.ID, u.ID)
	})

	t.Run("tenant scope resolves the garage principal", func(t *testing.T) {
		t.Parallel()

		u, err := svc.Authenticate(tenantCtx(garageA), "owner@example.com", "garage-pass")
		require.NoError(t, err)
		assert.Equal(t, garageUser.ID, u.ID)
	})

	t.Run("no fallback from tenant to platform", func(t *testing.T) {
		t.Parallel()

		// The platform password is valid at platform scope only; inside a
		// garage it must fail even though the email exists there too.
		_, err := svc.Authenticate(tenantCtx(garageA), "owner@example.com", "platform-pass")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("no fallback from platform to tenant", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Authenticate(context.Background(), "owner@example.com", "garage-pass")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("wrong garage fails", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Authenticate(tenantCtx(garageB), "owner@example.com", "garage-pass")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("email is normalized before lookup", func(t *testing.T) {
		t.Parallel()

		u, err := svc.Authenticate(context.Background(), "  Owner@Example.COM ", "platform-pass")
		require.NoError(t, err)
		assert.Equal(t, platformUser.ID, u.ID)
	})
}

func TestAuthenticateInactive(t *testing.T) {
	t.Parallel()

	storage := &fakeStorage{}
	u := seedUser(t, storage, "gone@example.com", "some-pass", nil)
	u.Active = false

	svc := newTestService(storage)
	_, err := svc.Authenticate(context.Background(), "gone@example.com", "some-pass")
	assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
}

func TestRegisterPlatform(t *testing.T) {
	t.Parallel()

	input := identity.RegisterInput{
		Email:     "owner@example.com",
		Username:  "owner",
		FirstName: "Sita",
		LastName:  "Shrestha",
		Password:  "correct horse battery",
	}

	t.Run("creates platform principal", func(t *testing.T) {
		t.Parallel()

		storage := &fakeStorage{}
		u, err := newTestService(storage).RegisterPlatform(context.Background(), input)
		require.NoError(t, err)
		assert.Nil(t, u.GarageID)
		assert.True(t, u.IsPlatform())
	})

	t.Run("refused on a garage subdomain", func(t *testing.T) {
		t.Parallel()

		storage := &fakeStorage{}
		_, err := newTestService(storage).RegisterPlatform(tenantCtx(uuid.New()), input)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("duplicate platform email collides", func(t *testing.T) {
		t.Parallel()

		storage := &fakeStorage{}
		seedUser(t, storage, "owner@example.com", "x", nil)

		_, err := newTestService(storage).RegisterPlatform(context.Background(), input)
		var valErr core.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.True(t, valErr.Has("email"))
	})

	t.Run("same email in a garage does not collide", func(t *testing.T) {
		t.Parallel()

		garageID := uuid.New()
		storage := &fakeStorage{}
		seedUser(t, storage, "owner@example.com", "x", &garageID)

		_, err := newTestService(storage).RegisterPlatform(context.Background(), input)
		assert.NoError(t, err)
	})

	t.Run("short password rejected", func(t *testing.T) {
		t.Parallel()

		bad := input
		bad.Password = "short"
		_, err := newTestService(&fakeStorage{}).RegisterPlatform(context.Background(), bad)
		assert.Error(t, err)
	})
}

func TestProvisionEmployee(t *testing.T) {
	t.Parallel()

	input := identity.RegisterInput{
		Email:     "tech@example.com",
		Username:  "tech",
		FirstName: "Ram",
		LastName:  "Thapa",
		Password:  "workshop floor 9",
		Role:      identity.RoleTechnician,
	}

	t.Run("requires a tenant", func(t *testing.T) {
		t.Parallel()

		_, err := newTestService(&fakeStorage{}).ProvisionEmployee(context.Background(), input)
		assert.ErrorIs(t, err, tenant.ErrNoTenantInContext)
	})

	t.Run("pins the employee to the current garage", func(t *testing.T) {
		t.Parallel()

		garageID := uuid.New()
		storage := &fakeStorage{}
		u, err := newTestService(storage).ProvisionEmployee(tenantCtx(garageID), input)
		require.NoError(t, err)
		require.NotNil(t, u.GarageID)
		assert.Equal(t, garageID, *u.GarageID)
		assert.Equal(t, identity.RoleTechnician, u.Role)
	})

	t.Run("same email in another garage does not collide", func(t *testing.T) {
		t.Parallel()

		otherGarage := uuid.New()
		storage := &fakeStorage{}
		seedUser(t, storage, "tech@example.com", "x", &otherGarage)

		_, err := newTestService(storage).ProvisionEmployee(tenantCtx(uuid.New()), input)
		assert.NoError(t, err)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		t.Parallel()

		bad := input
		bad.Role = "OWNER"
		_, err := newTestService(&fakeStorage{}).ProvisionEmployee(tenantCtx(uuid.New()), bad)
		assert.Error(t, err)
	})
}

func TestDeactivateOwnershipCheck(t *testing.T) {
	t.Parallel()

	garageA := uuid.New()
	garageB := uuid.New()

	storage := &fakeStorage{}
	victim := seedUser(t, storage, "tech@example.com", "x", &garageA)
	svc := newTestService(storage)

	t.Run("another garage cannot deactivate", func(t *testing.T) {
		t.Parallel()

		err := svc.Deactivate(tenantCtx(garageB), victim.ID)
		assert.ErrorIs(t, err, identity.ErrUserNotFound)
	})

	t.Run("owning garage can", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, svc.Deactivate(tenantCtx(garageA), victim.ID))
		assert.False(t, victim.Active)
	})
}
