// Package recorder runs a command inside a PTY and captures every byte it
// writes as a termrec journal, optionally driven by a scripted input
// simulation running concurrently.
package recorder

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/logger"
	"github.com/mtjhrc/termrec/internal/simulator"
)

// terminalSize is the fixed PTY geometry every recording runs under, so
// recorded frames are reproducible across machines.
var terminalSize = &pty.Winsize{Rows: 24, Cols: 80}

// Config describes one recording run.
type Config struct {
	Command        []string
	ChildStderr    io.Writer
	InputEvents    []journal.SimulationEvent
	ReadBufferSize int
	Verbose        bool
}

// recording accumulates (timestamp, event) pairs under a mutex, since the
// PTY reader and the input simulator both append concurrently.
type recording struct {
	mu     sync.Mutex
	start  time.Time
	events []journal.TimedEvent
}

func (r *recording) append(event journal.RecordingEvent) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts := time.Since(r.start)
	r.events = append(r.events, journal.TimedEvent{Timestamp: ts, Event: event})
	return ts
}

// Run starts command under a PTY, records its output, drives any scripted
// input concurrently, and returns the merged, timestamp-sorted journal.
func Run(ctx context.Context, cfg Config) ([]journal.TimedEvent, error) {
	if cfg.ReadBufferSize <= 0 {
		cfg.ReadBufferSize = 4 * 1024 * 1024
	}

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	if cfg.ChildStderr != nil {
		cmd.Stderr = cfg.ChildStderr
	}

	ptmx, err := pty.StartWithSize(cmd, terminalSize)
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}

	rec := &recording{start: time.Now()}

	g, ctx := errgroup.WithContext(ctx)

	var sim *simulator.Simulator
	if len(cfg.InputEvents) > 0 {
		sim = simulator.New(rec.start, ptmx, cfg.InputEvents, cfg.Verbose)
		g.Go(func() error {
			events, err := sim.Run()
			rec.mu.Lock()
			rec.events = append(rec.events, events...)
			rec.mu.Unlock()
			return err
		})
	}

	g.Go(func() error {
		return readLoop(ptmx, rec, cfg.ReadBufferSize, sim)
	})

	g.Go(func() error {
		err := cmd.Wait()
		ptmx.Close()
		if err != nil {
			if _, ok := err.(*exec.ExitError); ok {
				// The child's own exit status is not a recorder failure.
				return nil
			}
			return fmt.Errorf("wait for child: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortByTimestamp(rec.events)
	return rec.events, nil
}

// readLoop drains the PTY master until the child exits and its slave side
// closes, forwarding each chunk both into the journal and, when a
// simulation is in progress, to its wait-barrier matcher. Any read error
// ends the loop cleanly: a PTY master read on the child's exit classically
// surfaces as EIO rather than EOF, and Run's own concurrent ptmx.Close can
// race that exit and surface as os.ErrClosed instead — neither is a
// recorder failure.
func readLoop(ptmx io.Reader, rec *recording, bufSize int, sim *simulator.Simulator) error {
	buf := make([]byte, bufSize)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			rec.append(journal.OutputEvent(data))
			logger.Debug("pty output", "bytes", n)
			if sim != nil {
				sim.Feed(data)
			}
		}
		if err != nil {
			if sim != nil {
				sim.Close()
			}
			return nil
		}
	}
}

func sortByTimestamp(events []journal.TimedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
}
