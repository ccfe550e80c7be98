package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaultguard/sentinel/x/beneficiary"
	"github.com/vaultguard/sentinel/x/notify"
	"github.com/vaultguard/sentinel/x/timer"
	"github.com/vaultguard/sentinel/x/vault"
)

// Coordinator drives the one-time trigger transition for a single expired
// timer: it gathers the notification payload, performs the conditional
// status write, and dispatches to each beneficiary.
type Coordinator struct {
	timers        timer.Store
	beneficiaries beneficiary.Reader
	vaults        vault.Reader
	notifier      notify.Notifier

	dispatchTimeout time.Duration
	metrics         *Metrics
	log             zerolog.Logger
}

func newCoordinator(cfg Config) *Coordinator {
	return &Coordinator{
		timers:          cfg.Timers,
		beneficiaries:   cfg.Beneficiaries,
		vaults:          cfg.Vaults,
		notifier:        cfg.Notifier,
		dispatchTimeout: cfg.DispatchTimeout,
		metrics:         cfg.Metrics,
		log:             cfg.Logger.With().Str("component", "trigger-coordinator").Logger(),
	}
}

// Process attempts the trigger transition for the candidate the sweep
// observed. The returned error is non-nil only for OutcomeFailed and covers
// collaborator reads and the store write; notification delivery failures are
// reported via logs and metrics but never fail the candidate, because the
// TRIGGERED transition is irreversible once committed.
func (c *Coordinator) Process(ctx context.Context, t timer.Timer) (Outcome, error) {
	// Gather the payload before the transition: if these reads fail, the
	// timer must stay ACTIVE so the next pass can retry.
	recipients, err := c.beneficiaries.ListByOwner(ctx, t.Owner)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("list beneficiaries for %s: %w", t.Owner, err)
	}

	snap, present, err := c.vaults.Snapshot(ctx, t.Owner)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("read vault for %s: %w", t.Owner, err)
	}

	ok, err := c.timers.TryTrigger(ctx, t.Owner, t.Deadline)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("trigger %s: %w", t.Owner, err)
	}
	if !ok {
		// A heartbeat committed between the sweep's read and this write.
		c.log.Info().
			Str("owner", t.Owner).
			Time("observed_deadline", t.Deadline).
			Msg("trigger skipped, timer renewed concurrently")
		return OutcomeSkippedRace, nil
	}

	payload := notify.Payload{Owner: t.Owner}
	if present {
		payload.Vault = &snap
	}

	sent, failed := c.dispatch(ctx, recipients, payload)

	c.log.Info().
		Str("owner", t.Owner).
		Int("beneficiaries", len(recipients)).
		Int("sent", sent).
		Int("failed", failed).
		Bool("vault_present", present).
		Msg("timer triggered and notifications dispatched")

	return OutcomeTriggered, nil
}

// dispatch sends one notification per beneficiary. Failures are partial and
// best-effort; they are surfaced for operator follow-up, never rolled back.
func (c *Coordinator) dispatch(ctx context.Context, recipients []beneficiary.Beneficiary, payload notify.Payload) (sent, failed int) {
	for _, b := range recipients {
		dispatchCtx, cancel := context.WithTimeout(ctx, c.dispatchTimeout)
		err := c.notifier.Notify(dispatchCtx, b, payload)
		cancel()

		c.metrics.RecordNotification(err == nil)
		if err != nil {
			failed++
			c.log.Error().
				Err(err).
				Str("owner", payload.Owner).
				Str("beneficiary_email", b.Email).
				Msg("notification dispatch failed")
			continue
		}
		sent++
	}
	return sent, failed
}
