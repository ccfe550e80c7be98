package timer

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var _ Store = (*Memory)(nil)

// Memory implements an in-memory Store; suitable for tests and
// single-instance deployments. The mutex makes every mutation atomic with
// its precondition check, which is what closes the renewal-vs-sweep race in
// TryTrigger.
type Memory struct {
	mu     sync.RWMutex
	timers map[string]Timer
	log    zerolog.Logger
	now    func() time.Time
}

// NewMemory returns a configured Memory store.
func NewMemory(log zerolog.Logger) *Memory {
	return &Memory{
		timers: make(map[string]Timer),
		log:    log.With().Str("component", "timer-store").Logger(),
		now:    time.Now,
	}
}

// WithNow overrides the clock. Useful for deterministic tests.
func (m *Memory) WithNow(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Create(_ context.Context, owner string, timeoutDays int) (Timer, error) {
	if timeoutDays <= 0 {
		return Timer{}, ErrInvalidTimeout
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.timers[owner]; ok {
		return Timer{}, ErrAlreadyExists
	}

	now := m.now()
	t := Timer{
		Owner:       owner,
		Status:      StatusActive,
		TimeoutDays: timeoutDays,
		LastCheckin: now,
		Deadline:    now.Add(Window(timeoutDays)),
	}
	m.timers[owner] = t

	m.log.Info().
		Str("owner", owner).
		Int("timeout_days", timeoutDays).
		Time("deadline", t.Deadline).
		Msg("timer created")

	return t, nil
}

func (m *Memory) Get(_ context.Context, owner string) (Timer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.timers[owner]
	if !ok {
		return Timer{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) Renew(_ context.Context, owner string) (Timer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.timers[owner]
	if !ok {
		return Timer{}, ErrNotFound
	}

	now := m.now()
	t.LastCheckin = now
	t.Deadline = now.Add(Window(t.TimeoutDays))
	m.timers[owner] = t

	return t, nil
}

func (m *Memory) SetTimeout(_ context.Context, owner string, timeoutDays int) (Timer, error) {
	if timeoutDays <= 0 {
		return Timer{}, ErrInvalidTimeout
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.timers[owner]
	if !ok {
		return Timer{}, ErrNotFound
	}

	// Changing the window restarts the countdown from this moment, not from
	// the previous check-in.
	now := m.now()
	t.TimeoutDays = timeoutDays
	t.LastCheckin = now
	t.Deadline = now.Add(Window(timeoutDays))
	m.timers[owner] = t

	m.log.Info().
		Str("owner", owner).
		Int("timeout_days", timeoutDays).
		Time("deadline", t.Deadline).
		Msg("timer window updated")

	return t, nil
}

func (m *Memory) ListExpired(_ context.Context, now time.Time) ([]Timer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Timer
	for _, t := range m.timers {
		if t.Expired(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Memory) TryTrigger(_ context.Context, owner string, expectedDeadline time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.timers[owner]
	if !ok {
		return false, ErrNotFound
	}
	if t.Status != StatusActive {
		return false, nil
	}
	if !t.Deadline.Equal(expectedDeadline) {
		// A renewal committed after the sweep observed this timer.
		return false, nil
	}
	if t.Deadline.After(m.now()) {
		return false, nil
	}

	t.Status = StatusTriggered
	m.timers[owner] = t

	m.log.Info().
		Str("owner", owner).
		Time("deadline", t.Deadline).
		Msg("timer triggered")

	return true, nil
}

func (m *Memory) Delete(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.timers[owner]; !ok {
		return ErrNotFound
	}
	delete(m.timers, owner)
	return nil
}
