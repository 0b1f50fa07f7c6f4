// Package replay plays a recorded journal's Output events back to stdout,
// either paced in real time or one frame at a time under external control.
package replay

import (
	"fmt"
	"time"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/stdoutsink"
)

// RealtimeConfig controls a real-time playback run.
type RealtimeConfig struct {
	Events           []journal.TimedEvent
	MaxAccuracyDelta time.Duration
}

// Realtime writes cfg.Events' Output payloads to stdout, sleeping between
// writes to reproduce the recorded timing. If playback falls behind
// schedule by more than MaxAccuracyDelta it aborts rather than silently
// drift further out of sync.
func Realtime(cfg RealtimeConfig) error {
	sink := stdoutsink.New()
	events := journal.FilterOutputEvents(cfg.Events)

	var lastTimestamp time.Duration
	for _, te := range events {
		begin := time.Now()
		if te.Timestamp >= lastTimestamp {
			time.Sleep(te.Timestamp - lastTimestamp)
		} else {
			delta := lastTimestamp - te.Timestamp
			if delta > cfg.MaxAccuracyDelta {
				return fmt.Errorf("playback too slow: maximum delta %v, actual delta %v", cfg.MaxAccuracyDelta, delta)
			}
		}
		if err := sink.Write(te.Event.Data); err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}
		lastTimestamp += time.Since(begin)
	}
	return nil
}
