package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gadisewa/backend/core"
	"github.com/gadisewa/backend/pkg/logger"
	"github.com/gadisewa/backend/pkg/metrics"
	"github.com/gadisewa/backend/pkg/pg"
	"github.com/gadisewa/backend/pkg/sanitizer"
	"github.com/gadisewa/backend/pkg/tenant"
	"github.com/gadisewa/backend/pkg/validator"
)

// uniqueFields maps user-table constraint names to the conflicting field.
// Both the per-garage and the platform-global constraints resolve to the
// same user-facing field name.
var uniqueFields = map[string]string{
	"uq_users_email_per_garage":    "email",
	"uq_users_username_per_garage": "username",
	"uq_users_email_global":        "email",
	"uq_users_username_global":     "username",
}

// Service authenticates and provisions principals.
type Service struct {
	storage    Storage
	tokens     *TokenIssuer
	bcryptCost int
	log        *slog.Logger
}

type Option func(*Service)

// WithBcryptCost overrides the password hashing cost, mainly for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func NewService(storage Storage, tokens *TokenIssuer, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Authenticate verifies the credential against exactly the scope resolved
// for this request: the garage from the context, or the platform universe
// when no tenant is attached. All failures collapse to
// ErrInvalidCredentials so callers cannot learn which scope, if any, the
// email exists in.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	metrics.AuthAttemptsTotal.Inc()
	email = sanitizer.NormalizeEmail(email)

	var garageID *uuid.UUID
	if id, ok := tenant.IDFromContext(ctx); ok {
		garageID = &id
	}

	u, err := s.storage.FindActiveByEmail(ctx, email, garageID)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		metrics.AuthFailuresTotal.Inc()
		// Burn a comparison anyway so the response time does not reveal
		// whether the email exists in this scope.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		metrics.AuthFailuresTotal.Inc()
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

// dummyHash is a bcrypt hash of an unused random value, compared against
// when the principal lookup misses.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Login authenticates and issues a session token bound to the same scope
// the credential was verified in.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", err
	}

	s.log.InfoContext(ctx, "user logged in", logger.UserID(u.ID.String()))
	return u, token, nil
}

// RegisterInput carries a principal registration request.
type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"`
}

// RegisterPlatform creates a platform-scope principal. Email and username
// must be unique across the whole platform universe; tenant-scoped
// principals with the same identifiers do not conflict. Refused on garage
// subdomains: platform accounts are only created on the platform surface.
func (s *Service) RegisterPlatform(ctx context.Context, in RegisterInput) (*User, error) {
	if _, ok := tenant.IDFromContext(ctx); ok {
		return nil, core.ErrForbidden
	}
	return s.register(ctx, in, nil, "")
}

// ProvisionEmployee creates a principal inside the garage resolved for this
// request. The identifiers need only be free within that garage.
func (s *Service) ProvisionEmployee(ctx context.Context, in RegisterInput) (*User, error) {
	garageID, ok := tenant.IDFromContext(ctx)
	if !ok {
		return nil, tenant.ErrNoTenantInContext
	}

	role := in.Role
	switch role {
	case RoleTechnician, RoleAdvisor, RoleAdmin:
	default:
		return nil, validator.ValidationErrors{{Field: "role", Message: "must be one of TECH, ADVISOR, ADMIN"}}
	}

	return s.register(ctx, in, &garageID, role)
}

func (s *Service) register(ctx context.Context, in RegisterInput, garageID *uuid.UUID, role string) (*User, error) {
	in.Email = sanitizer.NormalizeEmail(in.Email)

	if err := validator.Apply(
		validator.ValidEmail("email", in.Email),
		validator.Required("username", in.Username),
		validator.Required("first_name", in.FirstName),
		validator.Required("last_name", in.LastName),
		validator.MinLen("password", in.Password, 8),
		validator.MaxLen("password", in.Password, 128),
	); err != nil {
		return nil, err
	}

	for column, value := range map[string]string{
		"email":    in.Email,
		"username": in.Username,
	} {
		taken, err := s.storage.ExistsBy(ctx, column, value, garageID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, core.FieldCollision(column)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        in.Email,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		GarageID:     garageID,
		Role:         role,
	}

	if err := s.storage.Create(ctx, u); err != nil {
		if pg.IsDuplicateKeyError(err) {
			if field, ok := uniqueFields[pg.ConstraintName(err)]; ok {
				return nil, core.FieldCollision(field)
			}
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "user created", logger.UserID(u.ID.String()))
	return u, nil
}

// ListEmployees returns the principals of the garage resolved for this request.
func (s *Service) ListEmployees(ctx context.Context) ([]User, error) {
	garageID, ok := tenant.IDFromContext(ctx)
	if !ok {
		return nil, tenant.ErrNoTenantInContext
	}
	return s.storage.ListByGarage(ctx, garageID)
}

// Deactivate soft-disables a principal of the current garage.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	garageID, ok := tenant.IDFromContext(ctx)
	if !ok {
		return tenant.ErrNoTenantInContext
	}

	u, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// A garage may only manage its own principals.
	if u.GarageID == nil || *u.GarageID != garageID {
		return ErrUserNotFound
	}

	return s.storage.Deactivate(ctx, id)
}
