package sweeper

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vaultguard/sentinel/x/timer"
)

// Summary is the accounting for one sweep pass.
type Summary struct {
	Processed   int `json:"processed"`
	Triggered   int `json:"triggered"`
	SkippedRace int `json:"skipped_race"`
	Failed      int `json:"failed"`
}

// Sweeper scans for expired, untriggered timers and hands each candidate to
// the trigger coordinator. One candidate's failure never aborts the rest of
// the pass; failed candidates stay ACTIVE and are picked up again next pass.
type Sweeper struct {
	timers      timer.Store
	coordinator *Coordinator

	now     func() time.Time
	metrics *Metrics
	log     zerolog.Logger
}

// New builds a Sweeper and its coordinator from cfg.
func New(cfg Config) (*Sweeper, error) {
	if err := cfg.apply(); err != nil {
		return nil, err
	}

	return &Sweeper{
		timers:      cfg.Timers,
		coordinator: newCoordinator(cfg),
		now:         cfg.Now,
		metrics:     cfg.Metrics,
		log:         cfg.Logger.With().Str("component", "sweeper").Logger(),
	}, nil
}

// RunPass executes a single sweep. Cancellation is honored between
// candidates; the in-flight candidate always runs to completion so a
// half-processed trigger is never abandoned mid-dispatch.
func (s *Sweeper) RunPass(ctx context.Context) Summary {
	start := time.Now()
	now := s.now()

	var sum Summary

	candidates, err := s.timers.ListExpired(ctx, now)
	if err != nil {
		// The pass has no caller to report to; log and let the scheduler
		// retry on the next run.
		s.log.Error().Err(err).Time("now", now).Msg("listing expired timers failed")
		return sum
	}

	s.metrics.CandidatesPerPass.Observe(float64(len(candidates)))

	for _, cand := range candidates {
		select {
		case <-ctx.Done():
			s.log.Warn().
				Int("remaining", len(candidates)-sum.Processed).
				Msg("sweep pass interrupted by shutdown")
			return s.finish(start, sum)
		default:
		}

		sum.Processed++
		outcome, err := s.coordinator.Process(ctx, cand)
		s.metrics.RecordOutcome(outcome)

		switch outcome {
		case OutcomeTriggered:
			sum.Triggered++
		case OutcomeSkippedRace:
			sum.SkippedRace++
		case OutcomeFailed:
			sum.Failed++
			s.log.Error().
				Err(err).
				Str("owner", cand.Owner).
				Msg("candidate processing failed, will retry next pass")
		}
	}

	return s.finish(start, sum)
}

func (s *Sweeper) finish(start time.Time, sum Summary) Summary {
	s.metrics.PassesTotal.Inc()
	s.metrics.PassDuration.Observe(time.Since(start).Seconds())

	s.log.Info().
		Int("processed", sum.Processed).
		Int("triggered", sum.Triggered).
		Int("skipped_race", sum.SkippedRace).
		Int("failed", sum.Failed).
		Dur("duration", time.Since(start)).
		Msg("sweep pass complete")

	return sum
}
