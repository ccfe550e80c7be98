package vault

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Snapshot is the client-encrypted blob stored for an account. The server
// never decrypts or inspects EncryptedData; ClientSalt is key-derivation
// material the client stored alongside it.
type Snapshot struct {
	ID            uuid.UUID `json:"id"`
	Owner         string    `json:"owner"`
	Name          string    `json:"name"`
	EncryptedData string    `json:"encrypted_data"`
	ClientSalt    string    `json:"client_salt"`
}

// ErrNotFound is returned when the owner has no vault.
var ErrNotFound = errors.New("vault: not found")

// Reader is the read-only view the trigger path consumes.
type Reader interface {
	// Snapshot returns the owner's vault; present is false when the owner
	// never stored one, which is not an error.
	Snapshot(ctx context.Context, owner string) (snap Snapshot, present bool, err error)
}

// Store adds the write surface consumed by the HTTP layer and the
// account-destroy cascade. One vault per account: Put is an upsert.
type Store interface {
	Reader
	Put(ctx context.Context, owner, name, encryptedData, clientSalt string) (Snapshot, error)
	Delete(ctx context.Context, owner string) error
}
