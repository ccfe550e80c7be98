package beneficiary

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Beneficiary is a contact notified when the owner's timer triggers.
type Beneficiary struct {
	ID    uuid.UUID `json:"id"`
	Owner string    `json:"owner"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

var (
	// ErrNotFound is returned when the beneficiary does not exist for the owner.
	ErrNotFound = errors.New("beneficiary: not found")
	// ErrInvalidEmail is returned for an empty email address.
	ErrInvalidEmail = errors.New("beneficiary: email is required")
)

// Reader is all the trigger path needs: the registered beneficiaries for an
// owner, read-only.
type Reader interface {
	ListByOwner(ctx context.Context, owner string) ([]Beneficiary, error)
}

// Store is the full CRUD surface consumed by the HTTP layer and the
// account-destroy cascade.
type Store interface {
	Reader
	Add(ctx context.Context, owner, email, name string) (Beneficiary, error)
	Get(ctx context.Context, owner string, id uuid.UUID) (Beneficiary, error)
	Update(ctx context.Context, owner string, id uuid.UUID, email, name string) (Beneficiary, error)
	Remove(ctx context.Context, owner string, id uuid.UUID) error
	RemoveByOwner(ctx context.Context, owner string) error
}
