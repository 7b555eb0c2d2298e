// Package customers manages the per-garage customer roster. Every record
// lives inside one garage; the scoped collection guarantees no operation
// can read or write across the boundary.
package customers

import (
	"time"

	"github.com/google/uuid"
)

// Table and column layout used by the scoped collection.
const (
	Table = "customers"
)

// Columns is the full select set. RowToStructByName matches these against
// the db tags on Customer.
var Columns = []string{
	"id", "garage_id", "full_name", "phone_number", "email_address",
	"street_address", "city", "notes", "created_at", "updated_at",
}

// Customer is a garage client. The phone number is the natural key within
// a garage; the email is optional and only unique when present.
type Customer struct {
	ID            uuid.UUID `db:"id"             json:"id"`
	GarageID      uuid.UUID `db:"garage_id"      json:"garage_id"`
	FullName      string    `db:"full_name"      json:"full_name"`
	PhoneNumber   string    `db:"phone_number"   json:"phone_number"`
	EmailAddress  *string   `db:"email_address"  json:"email_address,omitempty"`
	StreetAddress string    `db:"street_address" json:"street_address"`
	City          string    `db:"city"           json:"city"`
	Notes         string    `db:"notes"          json:"notes"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}
