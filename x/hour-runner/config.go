package hourrunner

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval is the sweep cadence: one run at the top of every hour.
const DefaultInterval = time.Hour

// Config configures a Runner.
type Config struct {
	// Handler is the function invoked at each interval boundary.
	// If nil, SetHandler must be called before Start.
	Handler Callback
	// Interval is the run cadence; runs are aligned to wall-clock multiples
	// of it. Defaults to DefaultInterval.
	Interval time.Duration
	// Now returns the current time. Useful for deterministic tests.
	// Defaults to time.Now if nil.
	Now    func() time.Time
	Logger zerolog.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig(logger zerolog.Logger) Config {
	return Config{
		Handler:  nil, // Set later by an upper layer
		Interval: DefaultInterval,
		Now:      time.Now,
		Logger:   logger.With().Str("component", "hour-runner").Logger(),
	}
}
