package timer

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*Memory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	log := zerolog.New(io.Discard)
	return NewMemory(log).WithNow(clock.Now), clock
}

func TestCreateComputesDeadlineFromWindow(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	for _, days := range []int{1, 7, 30, 365} {
		owner := fmt.Sprintf("owner-%d", days)
		created, err := store.Create(ctx, owner, days)
		require.NoError(t, err)
		require.Equal(t, StatusActive, created.Status)
		require.Equal(t, clock.Now(), created.LastCheckin)
		require.Equal(t, created.LastCheckin.Add(Window(days)), created.Deadline)
	}
}

func TestCreateRejectsDuplicateOwner(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "alice", 30)
	require.NoError(t, err)

	_, err = store.Create(ctx, "alice", 10)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCreateRejectsNonPositiveWindow(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "alice", 0)
	require.ErrorIs(t, err, ErrInvalidTimeout)
	_, err = store.Create(ctx, "alice", -3)
	require.ErrorIs(t, err, ErrInvalidTimeout)

	_, err = store.Get(ctx, "alice")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRenewAdvancesDeadlineFromNow(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "alice", 30)
	require.NoError(t, err)

	clock.Advance(10 * 24 * time.Hour)
	renewed, err := store.Renew(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, clock.Now(), renewed.LastCheckin)
	require.Equal(t, clock.Now().Add(Window(30)), renewed.Deadline)
}

func TestRenewAfterDeadlinePassedStillRenews(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "alice", 1)
	require.NoError(t, err)

	// Past the deadline but not yet triggered: a heartbeat still wins.
	clock.Advance(49 * time.Hour)
	renewed, err := store.Renew(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, StatusActive, renewed.Status)
	require.Equal(t, clock.Now().Add(Window(1)), renewed.Deadline)

	expired, err := store.ListExpired(ctx, clock.Now())
	require.NoError(t, err)
	require.Empty(t, expired)
}

func TestRenewUnknownOwner(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)

	_, err := store.Renew(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetTimeoutRestartsCountdownFromNow(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "alice", 30)
	require.NoError(t, err)

	clock.Advance(20 * 24 * time.Hour)
	updated, err := store.SetTimeout(ctx, "alice", 7)
	require.NoError(t, err)
	require.Equal(t, 7, updated.TimeoutDays)
	// Countdown restarts relative to the change, not the old check-in.
	require.Equal(t, clock.Now().Add(Window(7)), updated.Deadline)
}

func TestSetTimeoutInvalidLeavesTimerUnchanged(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "alice", 30)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	for _, days := range []int{0, -1, -30} {
		_, err := store.SetTimeout(ctx, "alice", days)
		require.ErrorIs(t, err, ErrInvalidTimeout)
	}

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestListExpiredFiltersStatusAndDeadline(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "expired", 1)
	require.NoError(t, err)
	_, err = store.Create(ctx, "fresh", 30)
	require.NoError(t, err)
	expiredTimer, err := store.Get(ctx, "expired")
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)

	expired, err := store.ListExpired(ctx, clock.Now())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, "expired", expired[0].Owner)

	// Triggered timers never come back as candidates.
	ok, err := store.TryTrigger(ctx, "expired", expiredTimer.Deadline)
	require.NoError(t, err)
	require.True(t, ok)

	expired, err = store.ListExpired(ctx, clock.Now())
	require.NoError(t, err)
	require.Empty(t, expired)
}

func TestTryTriggerHappyPath(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "alice", 1)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	ok, err := store.TryTrigger(ctx, "alice", created.Deadline)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, StatusTriggered, got.Status)
}

func TestTryTriggerLosesToConcurrentRenewal(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "alice", 1)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)

	// Sweep observed the expired deadline, then a heartbeat committed first.
	_, err = store.Renew(ctx, "alice")
	require.NoError(t, err)

	ok, err := store.TryTrigger(ctx, "alice", created.Deadline)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, StatusActive, got.Status)
	require.Equal(t, clock.Now().Add(Window(1)), got.Deadline)
}

func TestTryTriggerRefusesFutureDeadline(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "alice", 30)
	require.NoError(t, err)

	ok, err := store.TryTrigger(ctx, "alice", created.Deadline)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTryTriggerIsTerminal(t *testing.T) {
	t.Parallel()
	store, clock := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "alice", 1)
	require.NoError(t, err)

	clock.Advance(25 * time.Hour)
	ok, err := store.TryTrigger(ctx, "alice", created.Deadline)
	require.NoError(t, err)
	require.True(t, ok)

	// Second attempt with the same observation is a no-op.
	ok, err = store.TryTrigger(ctx, "alice", created.Deadline)
	require.NoError(t, err)
	require.False(t, ok)

	// A late renewal does not resurrect a triggered timer.
	_, err = store.Renew(ctx, "alice")
	require.NoError(t, err)
	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, StatusTriggered, got.Status)
}

func TestDeleteCascade(t *testing.T) {
	t.Parallel()
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, "alice", 30)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "alice"))
	_, err = store.Get(ctx, "alice")
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, "alice"), ErrNotFound)
}
