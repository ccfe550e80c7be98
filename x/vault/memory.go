package vault

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ Store = (*Memory)(nil)

// Memory implements an in-memory Store keyed by owner.
type Memory struct {
	mu      sync.RWMutex
	byOwner map[string]Snapshot
	log     zerolog.Logger
}

// NewMemory returns a configured Memory store.
func NewMemory(log zerolog.Logger) *Memory {
	return &Memory{
		byOwner: make(map[string]Snapshot),
		log:     log.With().Str("component", "vault-store").Logger(),
	}
}

func (m *Memory) Snapshot(_ context.Context, owner string) (Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, ok := m.byOwner[owner]
	return snap, ok, nil
}

func (m *Memory) Put(_ context.Context, owner, name, encryptedData, clientSalt string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.byOwner[owner]
	if !ok {
		snap = Snapshot{ID: uuid.New(), Owner: owner}
	}
	snap.Name = name
	snap.EncryptedData = encryptedData
	snap.ClientSalt = clientSalt
	m.byOwner[owner] = snap

	m.log.Info().
		Str("owner", owner).
		Str("vault_id", snap.ID.String()).
		Bool("created", !ok).
		Msg("vault stored")

	return snap, nil
}

func (m *Memory) Delete(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byOwner[owner]; !ok {
		return ErrNotFound
	}
	delete(m.byOwner, owner)
	return nil
}
