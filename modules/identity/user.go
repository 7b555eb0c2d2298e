// Package identity authenticates principals against exactly one scope.
//
// The same email may belong to one principal per garage and to one more at
// platform scope; these are deliberately different principals. Lookup never
// falls back from tenant scope to platform scope or vice versa - that
// cross-scope match is precisely the isolation bug this package exists to
// prevent.
package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles an employee may hold within a garage.
const (
	RoleTechnician = "TECH"
	RoleAdvisor    = "ADVISOR"
	RoleAdmin      = "ADMIN"
)

// User is an authenticatable principal. GarageID nil means platform scope:
// the email and username are then unique across all platform principals.
// With GarageID set they are unique only within that garage.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Username     string     `db:"username" json:"username"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	PasswordHash []byte     `db:"password_hash" json:"-"`
	GarageID     *uuid.UUID `db:"garage_id" json:"garage_id,omitempty"`
	Role         string     `db:"role" json:"role,omitempty"`
	Active       bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsPlatform reports whether the principal lives at platform scope.
func (u *User) IsPlatform() bool { return u.GarageID == nil }

// Storage is the persistence surface for principals. Every lookup takes
// the scope explicitly: a nil garageID addresses the platform universe,
// anything else addresses exactly that garage. There is no method that
// searches both.
type Storage interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindActiveByEmail(ctx context.Context, email string, garageID *uuid.UUID) (*User, error)
	ExistsBy(ctx context.Context, column, value string, garageID *uuid.UUID) (bool, error)
	ListByGarage(ctx context.Context, garageID uuid.UUID) ([]User, error)

	// Deactivate soft-disables the principal, preserving referential history.
	Deactivate(ctx context.Context, id uuid.UUID) error
}
