package timer

import "time"

// Status is the lifecycle state of a timer.
type Status string

const (
	// StatusActive means the timer is counting down and can still be renewed.
	StatusActive Status = "ACTIVE"
	// StatusTriggered is terminal; no path returns a timer to ACTIVE.
	StatusTriggered Status = "TRIGGERED"
)

// DefaultTimeoutDays is the renewal window assigned when an account is created.
const DefaultTimeoutDays = 30

// Timer tracks the dead man's switch deadline for a single account.
// Deadline always equals LastCheckin + Window(TimeoutDays).
type Timer struct {
	Owner       string    `json:"owner"`
	Status      Status    `json:"status"`
	TimeoutDays int       `json:"timeout_days"`
	LastCheckin time.Time `json:"last_checkin"`
	Deadline    time.Time `json:"deadline"`
}

// Window converts a timeout in days to the corresponding duration.
func Window(timeoutDays int) time.Duration {
	return time.Duration(timeoutDays) * 24 * time.Hour
}

// Expired reports whether the timer is eligible for triggering at now.
func (t Timer) Expired(now time.Time) bool {
	return t.Status == StatusActive && t.Deadline.Before(now)
}
