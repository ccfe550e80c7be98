package heartbeat

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vaultguard/sentinel/x/timer"
)

// Service handles explicit owner check-ins. Each check-in advances the
// deadline to "timeout_days from now" via the store's Renew.
type Service struct {
	timers timer.Store
	log    zerolog.Logger
}

func NewService(timers timer.Store, log zerolog.Logger) *Service {
	return &Service{
		timers: timers,
		log:    log.With().Str("component", "heartbeat").Logger(),
	}
}

// Checkin renews the owner's timer. A missing timer is an invariant
// violation (account creation always creates one); it is logged and surfaced
// as timer.ErrNotFound rather than silently creating a timer.
func (s *Service) Checkin(ctx context.Context, owner string) (timer.Timer, error) {
	t, err := s.timers.Renew(ctx, owner)
	if err != nil {
		if errors.Is(err, timer.ErrNotFound) {
			s.log.Error().Str("owner", owner).Msg("check-in for owner without a timer")
			return timer.Timer{}, err
		}
		return timer.Timer{}, fmt.Errorf("heartbeat: renew %s: %w", owner, err)
	}

	s.log.Debug().
		Str("owner", owner).
		Time("last_checkin", t.LastCheckin).
		Time("deadline", t.Deadline).
		Msg("check-in accepted")

	return t, nil
}
