package sweeper

// Outcome classifies the result of processing one expired-timer candidate.
type Outcome int

const (
	// OutcomeTriggered means the timer transitioned to TRIGGERED and
	// notifications were dispatched.
	OutcomeTriggered Outcome = iota
	// OutcomeSkippedRace means a concurrent renewal committed before the
	// trigger write; nothing was sent and the timer stays ACTIVE.
	OutcomeSkippedRace
	// OutcomeFailed means a collaborator read or the store write itself
	// failed; the candidate is retried on the next pass.
	OutcomeFailed
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeTriggered:
		return "triggered"
	case OutcomeSkippedRace:
		return "skipped_race"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
