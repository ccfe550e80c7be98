package hourrunner

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestLocalRunnerFiresOnAlignedBoundaries(t *testing.T) {
	t.Parallel()

	const interval = 20 * time.Millisecond
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).Add(7 * time.Millisecond)

	var (
		mu      sync.Mutex
		current = base
	)
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	setNow := func(t time.Time) {
		mu.Lock()
		current = t
		mu.Unlock()
	}

	events := make(chan RunInfo, 10)
	runner := NewLocalRunner(Config{
		Handler: func(ctx context.Context, info RunInfo) error {
			events <- info
			// Move the clock past the boundary that just fired so the next
			// computed run is the following boundary.
			setNow(info.ScheduledAt.Add(5 * time.Millisecond))
			return nil
		},
		Interval: interval,
		Now:      now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, runner.Start(ctx))
	defer runner.Stop(context.Background())

	var prev RunInfo
	for i := 0; i < 3; i++ {
		select {
		case info := <-events:
			require.Zero(t, info.ScheduledAt.UnixNano()%int64(interval),
				"run must be aligned to an interval boundary")
			if i > 0 {
				require.Equal(t, prev.RunID+1, info.RunID)
				require.Equal(t, prev.ScheduledAt.Add(interval), info.ScheduledAt)
			}
			prev = info
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for run %d", i)
		}
	}
}

func TestLocalRunnerCoalescesMissedRuns(t *testing.T) {
	t.Parallel()

	const interval = 20 * time.Millisecond
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).Add(3 * time.Millisecond)

	var (
		mu      sync.Mutex
		current = base
	)
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}

	events := make(chan RunInfo, 10)
	first := true
	runner := NewLocalRunner(Config{
		Handler: func(ctx context.Context, info RunInfo) error {
			events <- info
			mu.Lock()
			if first {
				// Simulate a long stall: jump several boundaries ahead.
				current = info.ScheduledAt.Add(4*interval + 5*time.Millisecond)
				first = false
			} else {
				current = info.ScheduledAt.Add(5 * time.Millisecond)
			}
			mu.Unlock()
			return nil
		},
		Interval: interval,
		Now:      now,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, runner.Start(ctx))
	defer runner.Stop(context.Background())

	var firstInfo, second RunInfo
	select {
	case firstInfo = <-events:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for first run")
	}
	select {
	case second = <-events:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for post-stall run")
	}

	// The skipped boundaries collapse into one run, they are not replayed.
	require.Equal(t, firstInfo.RunID+5, second.RunID)
	select {
	case extra := <-events:
		require.Greater(t, extra.RunID, second.RunID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalRunnerNeverOverlapsRuns(t *testing.T) {
	t.Parallel()

	const interval = 10 * time.Millisecond

	var (
		inFlight  atomic.Int32
		maxSeen   atomic.Int32
		runsTotal atomic.Int32
	)

	runner := NewLocalRunner(Config{
		Handler: func(ctx context.Context, info RunInfo) error {
			cur := inFlight.Add(1)
			if cur > maxSeen.Load() {
				maxSeen.Store(cur)
			}
			// Handler deliberately outlasts the interval.
			time.Sleep(3 * interval)
			inFlight.Add(-1)
			runsTotal.Add(1)
			return nil
		},
		Interval: interval,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, runner.Start(ctx))

	time.Sleep(10 * interval)
	require.NoError(t, runner.Stop(context.Background()))

	require.GreaterOrEqual(t, runsTotal.Load(), int32(1))
	require.Equal(t, int32(1), maxSeen.Load(), "runs must never overlap")
}

func TestLocalRunnerStopWaitsForInFlightRun(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})

	runner := NewLocalRunner(Config{
		Handler: func(ctx context.Context, info RunInfo) error {
			close(started)
			<-release
			close(finished)
			return nil
		},
		Interval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, runner.Start(ctx))

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for run to start")
	}

	stopDone := make(chan struct{})
	go func() {
		_ = runner.Stop(context.Background())
		close(stopDone)
	}()

	select {
	case <-stopDone:
		t.Fatal("Stop returned while a run was still in flight")
	case <-time.After(30 * time.Millisecond):
	}

	close(release)

	select {
	case <-stopDone:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the run finished")
	}
	<-finished
}

func TestLocalRunnerStartWithoutHandlerPanics(t *testing.T) {
	t.Parallel()

	runner := NewLocalRunner(DefaultConfig(testLogger()))
	require.Panics(t, func() {
		_ = runner.Start(context.Background())
	})
}

func TestNextRunAlignment(t *testing.T) {
	t.Parallel()

	runner := NewLocalRunner(DefaultConfig(testLogger())).(*LocalRunner)

	at := time.Date(2026, 3, 1, 10, 17, 42, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC), runner.NextRun(at))

	// Exactly on the boundary schedules the following one.
	onBoundary := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), runner.NextRun(onBoundary))
}
