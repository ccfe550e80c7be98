package timer

import (
	"context"
	"time"
)

// Store persists one timer per account and provides the mutations the
// heartbeat and sweep paths need. Implementations must keep the
// Deadline == LastCheckin + Window(TimeoutDays) invariant on every write,
// and TryTrigger must be atomic with its precondition check.
type Store interface {
	// Create registers a new ACTIVE timer for owner. ErrAlreadyExists when a
	// timer already exists, ErrInvalidTimeout for timeoutDays <= 0.
	Create(ctx context.Context, owner string, timeoutDays int) (Timer, error)

	// Get returns the owner's timer or ErrNotFound.
	Get(ctx context.Context, owner string) (Timer, error)

	// Renew sets LastCheckin to the current time and recomputes the deadline
	// from the stored TimeoutDays. ErrNotFound when no timer exists.
	Renew(ctx context.Context, owner string) (Timer, error)

	// SetTimeout changes the renewal window and restarts the countdown from
	// the moment of the change, not from the previous check-in.
	SetTimeout(ctx context.Context, owner string, timeoutDays int) (Timer, error)

	// ListExpired returns every ACTIVE timer whose deadline is before now.
	// Order is unspecified.
	ListExpired(ctx context.Context, now time.Time) ([]Timer, error)

	// TryTrigger transitions ACTIVE -> TRIGGERED only if the stored deadline
	// still equals expectedDeadline, is not in the future, and the status is
	// still ACTIVE at the moment of the write. Returns false without error
	// when the condition no longer holds, e.g. a concurrent renewal moved the
	// deadline.
	TryTrigger(ctx context.Context, owner string, expectedDeadline time.Time) (bool, error)

	// Delete removes the owner's timer. Used only by the account-destroy
	// cascade. ErrNotFound when no timer exists.
	Delete(ctx context.Context, owner string) error
}
