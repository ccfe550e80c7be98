package account

import (
	"errors"

	"github.com/google/uuid"
)

// Account is the owning identity for a timer, vault, and beneficiaries.
// Authentication and password handling live outside this service.
type Account struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Active bool      `json:"active"`
}

var (
	// ErrNotFound is returned when no account exists for the identifier.
	ErrNotFound = errors.New("account: not found")
	// ErrAlreadyExists is returned when the email is already registered.
	ErrAlreadyExists = errors.New("account: already exists")
	// ErrInvalidEmail is returned for an empty email.
	ErrInvalidEmail = errors.New("account: email is required")
)
