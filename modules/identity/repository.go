package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, username, first_name, last_name, password_hash,
	garage_id, role, is_active, created_at, updated_at`

// Repository persists principals in Postgres. The users table is special:
// it spans both identity universes, so it is not behind the scope guard.
// Every query here must therefore carry an explicit garage_id predicate -
// either "= $n" or "IS NULL", never unconstrained.
type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	q := fmt.Sprintf(`INSERT INTO users
		(id, email, username, first_name, last_name, password_hash, garage_id, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, userColumns)

	rows, err := r.db.Query(ctx, q,
		u.ID, u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.GarageID, u.Role,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[User])
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	*u = created
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	q := fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns)
	rows, err := r.db.Query(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// FindActiveByEmail looks up the single active principal with this email in
// exactly one scope. garageID nil addresses the platform universe.
func (r *Repository) FindActiveByEmail(ctx context.Context, email string, garageID *uuid.UUID) (*User, error) {
	var (
		q    string
		args []any
	)
	if garageID == nil {
		q = fmt.Sprintf("SELECT %s FROM users WHERE email = $1 AND garage_id IS NULL AND is_active", userColumns)
		args = []any{email}
	} else {
		q = fmt.Sprintf("SELECT %s FROM users WHERE email = $1 AND garage_id = $2 AND is_active", userColumns)
		args = []any{email, *garageID}
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *Repository) ExistsBy(ctx context.Context, column, value string, garageID *uuid.UUID) (bool, error) {
	var (
		q    string
		args []any
	)
	if garageID == nil {
		q = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM users WHERE %s = $1 AND garage_id IS NULL)", column)
		args = []any{value}
	} else {
		q = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM users WHERE %s = $1 AND garage_id = $2)", column)
		args = []any{value, *garageID}
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("user exists by %s: %w", column, err)
	}
	found, err := pgx.CollectOneRow(rows, pgx.RowTo[bool])
	if err != nil {
		return false, fmt.Errorf("user exists by %s: %w", column, err)
	}
	return found, nil
}

func (r *Repository) ListByGarage(ctx context.Context, garageID uuid.UUID) ([]User, error) {
	q := fmt.Sprintf("SELECT %s FROM users WHERE garage_id = $1 ORDER BY created_at DESC", userColumns)
	rows, err := r.db.Query(ctx, q, garageID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[User])
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "UPDATE users SET is_active = false, updated_at = now() WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
