package replay

import (
	"fmt"

	"github.com/mtjhrc/termrec/internal/eventpipe"
	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/stdoutsink"
)

// ControlledConfig wires the two named pipes an external driver (the
// frame materializer) uses to step through a recording one Output event
// at a time.
type ControlledConfig struct {
	Events            []journal.TimedEvent
	WriteEventPath    string
	FinishedEventPath string
}

// Controlled blocks on WriteEventPath before writing each Output event to
// stdout, then signals FinishedEventPath once the write lands. It performs
// one extra trailing wait after the last event so the driver can
// synchronize on end-of-recording without racing the writer's exit.
func Controlled(cfg ControlledConfig) error {
	writeEvent, err := eventpipe.Connect(cfg.WriteEventPath)
	if err != nil {
		return fmt.Errorf("connect write-event pipe: %w", err)
	}
	defer writeEvent.Close()

	finishedEvent, err := eventpipe.Connect(cfg.FinishedEventPath)
	if err != nil {
		return fmt.Errorf("connect finished-event pipe: %w", err)
	}
	defer finishedEvent.Close()

	sink := stdoutsink.New()
	events := journal.FilterOutputEvents(cfg.Events)

	for _, te := range events {
		if err := writeEvent.Wait(); err != nil {
			return fmt.Errorf("wait for write-event: %w", err)
		}
		if err := sink.Write(te.Event.Data); err != nil {
			return fmt.Errorf("write to stdout: %w", err)
		}
		if err := finishedEvent.Signal(); err != nil {
			return fmt.Errorf("signal finished-event: %w", err)
		}
	}
	if err := writeEvent.Wait(); err != nil {
		return fmt.Errorf("wait for trailing write-event: %w", err)
	}
	return nil
}
