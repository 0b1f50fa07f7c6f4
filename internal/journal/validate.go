package journal

import (
	"fmt"
	"time"
)

// ValidateSimulation walks a parsed input script and enforces spec.md §4.1's
// phase invariant: Input timestamps are non-decreasing within a phase;
// WaitBarrier and Sleep start a new phase (reset to zero); Marker does not
// touch the phase cursor.
func ValidateSimulation(events []SimulationEvent) error {
	var lastTimestamp time.Duration
	for _, e := range events {
		switch e.Kind {
		case SimInput:
			if e.Timestamp < lastTimestamp {
				return fmt.Errorf("invalid timestamp for input event %q: expected %v >= %v: %w",
					e.Data, e.Timestamp, lastTimestamp, ErrMalformed)
			}
			lastTimestamp = e.Timestamp
		case SimWaitBarrier, SimSleep:
			lastTimestamp = 0
		case SimMarker:
			// no-op
		default:
			return fmt.Errorf("unknown simulation event kind %v: %w", e.Kind, ErrMalformed)
		}
	}
	return nil
}
