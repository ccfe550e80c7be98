package sweeper

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaultguard/sentinel/x/beneficiary"
	"github.com/vaultguard/sentinel/x/notify"
	"github.com/vaultguard/sentinel/x/timer"
	"github.com/vaultguard/sentinel/x/vault"
)

// DefaultDispatchTimeout bounds a single notification dispatch so one slow
// delivery cannot stall the rest of the pass.
const DefaultDispatchTimeout = 10 * time.Second

// Config captures all dependencies needed to build the Sweeper.
type Config struct {
	Logger zerolog.Logger

	Timers        timer.Store
	Beneficiaries beneficiary.Reader
	Vaults        vault.Reader
	Notifier      notify.Notifier

	// DispatchTimeout is the per-notification delivery bound.
	DispatchTimeout time.Duration
	// Now returns the current time. Useful for deterministic tests.
	// Defaults to time.Now if nil.
	Now func() time.Time
	// Metrics defaults to a fresh set registered on the shared registry.
	Metrics *Metrics
}

func (cfg *Config) apply() error {
	if cfg.Logger.GetLevel() == zerolog.NoLevel {
		cfg.Logger = zerolog.Nop()
	}
	if cfg.Timers == nil {
		return errors.New("sweeper: timer store is required")
	}
	if cfg.Beneficiaries == nil {
		return errors.New("sweeper: beneficiary reader is required")
	}
	if cfg.Vaults == nil {
		return errors.New("sweeper: vault reader is required")
	}
	if cfg.Notifier == nil {
		return errors.New("sweeper: notifier is required")
	}
	if cfg.DispatchTimeout <= 0 {
		cfg.DispatchTimeout = DefaultDispatchTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	return nil
}
