package hourrunner

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LocalRunner implements Runner against the local clock. Runs fire at
// wall-clock multiples of the interval (top of the hour by default). The
// handler is invoked synchronously inside the run loop, so a new run can
// never start before the previous one has finished; runs missed while a
// handler was busy coalesce into the next single invocation.
type LocalRunner struct {
	// Log and lifecycle
	log     zerolog.Logger
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
	// Handler
	handler Callback
	// Time management
	interval time.Duration
	now      func() time.Time
}

// NewLocalRunner constructs a LocalRunner using local time.
// If cfg.Handler is nil, SetHandler must be called before Start.
func NewLocalRunner(cfg Config) Runner {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}

	return &LocalRunner{
		handler:  cfg.Handler,
		interval: cfg.Interval,
		now:      cfg.Now,
		log:      cfg.Logger,
	}
}

// SetHandler sets the handler invoked on each run.
// It should be called before Start; otherwise Start will panic.
func (r *LocalRunner) SetHandler(handler Callback) {
	r.handler = handler
}

// Start begins emitting runs until the context is canceled or Stop is called.
func (r *LocalRunner) Start(ctx context.Context) error {
	if r.handler == nil {
		panic("hourrunner: LocalRunner requires a handler to start")
	}

	if r.started {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.started = true

	go r.run(runCtx)
	return nil
}

// Stop halts the runner. It waits for an in-flight handler invocation to
// return, or for ctx to expire, whichever comes first; the handler is
// responsible for finishing its current unit of work when its context is
// canceled.
func (r *LocalRunner) Stop(ctx context.Context) error {
	if !r.started {
		return nil
	}

	r.started = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-r.done:
	case <-ctx.Done():
	}
	return nil
}

// run fires the handler at each interval boundary. The boundary for the
// next run is always recomputed from the clock after the handler returns,
// which is what coalesces any runs missed while the handler was busy.
func (r *LocalRunner) run(ctx context.Context) {
	defer close(r.done)

	next := r.NextRun(r.now())
	timer := time.NewTimer(r.delayUntil(next))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			id := r.runID(next)
			if err := r.handler(ctx, RunInfo{RunID: id, ScheduledAt: next}); err != nil {
				r.log.Error().Err(err).Uint64("run_id", id).Msg("run handler returned error")
			}
			next = r.NextRun(r.now())
			timer.Reset(r.delayUntil(next))
		}
	}
}

// NextRun returns the first interval boundary strictly after t.
func (r *LocalRunner) NextRun(t time.Time) time.Time {
	return t.Truncate(r.interval).Add(r.interval)
}

func (r *LocalRunner) delayUntil(next time.Time) time.Duration {
	delay := next.Sub(r.now())
	if delay < 0 {
		delay = 0
	}
	return delay
}

func (r *LocalRunner) runID(t time.Time) uint64 {
	return uint64(t.UnixNano()) / uint64(r.interval)
}
