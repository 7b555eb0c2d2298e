package identity

import "errors"

var (
	// ErrInvalidCredentials covers every authentication failure mode:
	// unknown email, wrong password, inactive account, and credentials
	// that exist in a different scope. Collapsing them prevents probing
	// which scope an identifier belongs to.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned for direct principal lookups by ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrTokenInvalid is returned when a session token fails verification
	// or its scope does not match the request's resolved tenant.
	ErrTokenInvalid = errors.New("invalid token")
)
