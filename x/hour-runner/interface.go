package hourrunner

import (
	"context"
	"time"
)

// Runner invokes the handler once per interval boundary.
type Runner interface {
	SetHandler(Callback)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	// NextRun returns the first run time strictly after t.
	NextRun(t time.Time) time.Time
}

// Callback is the hook invoked by Runner for each scheduled run.
type Callback func(context.Context, RunInfo) error

// RunInfo describes one scheduled run and is provided to the Callback hook.
type RunInfo struct {
	// RunID counts interval boundaries since the Unix epoch, so it is stable
	// across restarts.
	RunID       uint64
	ScheduledAt time.Time
}
