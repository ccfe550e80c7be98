package beneficiary

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ Store = (*Memory)(nil)

// Memory implements an in-memory Store keyed by owner.
type Memory struct {
	mu      sync.RWMutex
	byOwner map[string]map[uuid.UUID]Beneficiary
	log     zerolog.Logger
}

// NewMemory returns a configured Memory store.
func NewMemory(log zerolog.Logger) *Memory {
	return &Memory{
		byOwner: make(map[string]map[uuid.UUID]Beneficiary),
		log:     log.With().Str("component", "beneficiary-store").Logger(),
	}
}

func (m *Memory) ListByOwner(_ context.Context, owner string) ([]Beneficiary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set, ok := m.byOwner[owner]
	if !ok {
		return nil, nil
	}
	out := make([]Beneficiary, 0, len(set))
	for _, b := range set {
		out = append(out, b)
	}
	return out, nil
}

func (m *Memory) Add(_ context.Context, owner, email, name string) (Beneficiary, error) {
	if strings.TrimSpace(email) == "" {
		return Beneficiary{}, ErrInvalidEmail
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.byOwner[owner] == nil {
		m.byOwner[owner] = make(map[uuid.UUID]Beneficiary)
	}

	b := Beneficiary{
		ID:    uuid.New(),
		Owner: owner,
		Email: email,
		Name:  name,
	}
	m.byOwner[owner][b.ID] = b

	m.log.Info().Str("owner", owner).Str("beneficiary_id", b.ID.String()).Msg("beneficiary added")
	return b, nil
}

func (m *Memory) Get(_ context.Context, owner string, id uuid.UUID) (Beneficiary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.byOwner[owner][id]
	if !ok {
		return Beneficiary{}, ErrNotFound
	}
	return b, nil
}

func (m *Memory) Update(_ context.Context, owner string, id uuid.UUID, email, name string) (Beneficiary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.byOwner[owner][id]
	if !ok {
		return Beneficiary{}, ErrNotFound
	}
	if email != "" {
		b.Email = email
	}
	if name != "" {
		b.Name = name
	}
	m.byOwner[owner][id] = b
	return b, nil
}

func (m *Memory) Remove(_ context.Context, owner string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byOwner[owner][id]; !ok {
		return ErrNotFound
	}
	delete(m.byOwner[owner], id)
	return nil
}

func (m *Memory) RemoveByOwner(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byOwner, owner)
	return nil
}
