package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vaultguard/sentinel/x/beneficiary"
	"github.com/vaultguard/sentinel/x/timer"
	"github.com/vaultguard/sentinel/x/vault"
)

// Service owns the account lifecycle. Creating an account creates the
// account's timer exactly once with the default window; destroying an
// account cascades to the timer, vault, and beneficiaries.
type Service struct {
	mu      sync.RWMutex
	byID    map[string]Account
	byEmail map[string]string

	timers        timer.Store
	vaults        vault.Store
	beneficiaries beneficiary.Store
	log           zerolog.Logger
}

func NewService(
	timers timer.Store,
	vaults vault.Store,
	beneficiaries beneficiary.Store,
	log zerolog.Logger,
) *Service {
	return &Service{
		byID:          make(map[string]Account),
		byEmail:       make(map[string]string),
		timers:        timers,
		vaults:        vaults,
		beneficiaries: beneficiaries,
		log:           log.With().Str("component", "account").Logger(),
	}
}

// Create registers a new account and its timer with the default window.
func (s *Service) Create(ctx context.Context, email string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Account{}, ErrInvalidEmail
	}

	s.mu.Lock()
	if _, ok := s.byEmail[email]; ok {
		s.mu.Unlock()
		return Account{}, ErrAlreadyExists
	}
	acc := Account{ID: uuid.New(), Email: email, Active: true}
	s.byID[acc.ID.String()] = acc
	s.byEmail[email] = acc.ID.String()
	s.mu.Unlock()

	if _, err := s.timers.Create(ctx, acc.ID.String(), timer.DefaultTimeoutDays); err != nil {
		// Roll the registration back so a retry can succeed.
		s.mu.Lock()
		delete(s.byID, acc.ID.String())
		delete(s.byEmail, email)
		s.mu.Unlock()
		return Account{}, fmt.Errorf("account: create timer for %s: %w", acc.ID, err)
	}

	s.log.Info().Str("owner", acc.ID.String()).Str("email", email).Msg("account created")
	return acc, nil
}

// Get returns the account for the owner identifier.
func (s *Service) Get(_ context.Context, owner string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[owner]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

// Destroy removes the account and everything it owns. The timer is destroyed
// with the account; there is no other path that deletes a timer.
func (s *Service) Destroy(ctx context.Context, owner string) error {
	s.mu.Lock()
	acc, ok := s.byID[owner]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.byID, owner)
	delete(s.byEmail, acc.Email)
	s.mu.Unlock()

	if err := s.vaults.Delete(ctx, owner); err != nil && !errors.Is(err, vault.ErrNotFound) {
		return fmt.Errorf("account: destroy vault for %s: %w", owner, err)
	}
	if err := s.beneficiaries.RemoveByOwner(ctx, owner); err != nil {
		return fmt.Errorf("account: destroy beneficiaries for %s: %w", owner, err)
	}
	if err := s.timers.Delete(ctx, owner); err != nil && !errors.Is(err, timer.ErrNotFound) {
		return fmt.Errorf("account: destroy timer for %s: %w", owner, err)
	}

	s.log.Info().Str("owner", owner).Msg("account destroyed")
	return nil
}
