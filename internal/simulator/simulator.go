// Package simulator drives a scripted input script into a running PTY,
// pacing keystrokes against the script's timestamps and blocking on
// wait-barriers until their needle appears in the PTY's own output.
package simulator

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/logger"
)

// Simulator replays a SimulationEvent script against an output writer (the
// PTY master), consuming a concurrently-fed copy of the PTY's output to
// satisfy wait-barriers.
type Simulator struct {
	start   time.Time
	out     io.Writer
	events  []journal.SimulationEvent
	verbose bool

	mu     sync.Mutex
	cond   *sync.Cond
	queue  [][]byte
	ended  bool
}

// New builds a simulator that will write keystrokes to out and match
// barriers against data later delivered via Feed.
func New(start time.Time, out io.Writer, events []journal.SimulationEvent, verbose bool) *Simulator {
	s := &Simulator{start: start, out: out, events: events, verbose: verbose}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Feed delivers a chunk of freshly-read PTY output to the simulator's
// barrier matcher. Safe to call from the PTY reader goroutine.
func (s *Simulator) Feed(data []byte) {
	s.mu.Lock()
	s.queue = append(s.queue, data)
	s.mu.Unlock()
	s.cond.Signal()
}

// Close signals that no more output will arrive (the recorded process
// exited); a Simulator blocked in a wait-barrier gives up and returns early.
func (s *Simulator) Close() {
	s.mu.Lock()
	s.ended = true
	s.mu.Unlock()
	s.cond.Signal()
}

// Run executes the script to completion (or until Close cuts short a
// pending wait-barrier) and returns the InputRealized/BarrierUnlocked/
// SleepFinished/Marker events it generated, timestamped against start.
func (s *Simulator) Run() ([]journal.TimedEvent, error) {
	var recorded []journal.TimedEvent
	var collected []byte
	var lastTimestamp time.Duration

	for _, event := range s.events {
		switch event.Kind {
		case journal.SimInput:
			begin := time.Now()
			if event.Timestamp >= lastTimestamp {
				time.Sleep(event.Timestamp - lastTimestamp)
			} else {
				logger.Warn("input thread is behind", "behind_by", lastTimestamp-event.Timestamp)
			}
			if _, err := s.out.Write(event.Data); err != nil {
				return recorded, err
			}
			recorded = append(recorded, journal.TimedEvent{
				Timestamp: time.Since(s.start),
				Event:     journal.InputRealizedEvent(event.Data),
			})
			lastTimestamp += time.Since(begin)

		case journal.SimWaitBarrier:
			if s.verbose {
				logger.Debug("wait", "needle", string(event.Data))
			}
			if !s.blockUntilFoundNeedle(&collected, event.Data) {
				return recorded, nil
			}
			recorded = append(recorded, journal.TimedEvent{
				Timestamp: time.Since(s.start),
				Event:     journal.BarrierUnlockedEvent(event.Data),
			})
			lastTimestamp = 0

		case journal.SimSleep:
			time.Sleep(event.Duration)
			recorded = append(recorded, journal.TimedEvent{
				Timestamp: time.Since(s.start),
				Event:     journal.SleepFinishedEvent(event.Duration),
			})
			lastTimestamp = 0

		case journal.SimMarker:
			recorded = append(recorded, journal.TimedEvent{
				Timestamp: time.Since(s.start),
				Event:     journal.MarkerEvent(event.Data),
			})
		}
	}
	return recorded, nil
}

// blockUntilFoundNeedle drains queued PTY output into collected until
// needle appears, trimming collected up to and including the match.
// Returns false if the PTY closed before the needle ever appeared.
func (s *Simulator) blockUntilFoundNeedle(collected *[]byte, needle []byte) bool {
	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.ended {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			logger.Warn("quit before barrier unlocked")
			return false
		}
		data := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		*collected = append(*collected, data...)
		if idx := bytes.Index(*collected, needle); idx >= 0 {
			if s.verbose {
				logger.Debug("barrier needle found", "needle", string(needle))
			}
			*collected = (*collected)[idx+len(needle):]
			return true
		}
		if s.verbose {
			logger.Debug("barrier needle not yet found", "needle", string(needle))
		}
	}
}
