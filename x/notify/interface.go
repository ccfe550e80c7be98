package notify

import (
	"context"

	"github.com/vaultguard/sentinel/x/beneficiary"
	"github.com/vaultguard/sentinel/x/vault"
)

// Payload is what a beneficiary receives when a timer triggers: the owner's
// identity and the opaque encrypted vault, if one exists. Decryption is
// entirely out-of-band; no key material ever reaches this service.
type Payload struct {
	Owner string
	Vault *vault.Snapshot
}

// Notifier delivers a trigger notification to a single beneficiary.
// Retry and queuing semantics belong to the implementation, not the caller.
type Notifier interface {
	Notify(ctx context.Context, to beneficiary.Beneficiary, payload Payload) error
}
