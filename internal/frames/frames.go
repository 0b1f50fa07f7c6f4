// Package frames materializes a recording's Output events into individual
// frame files by driving an external terminal emulator (tmux) one event at
// a time through a pair of named-pipe event files.
package frames

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mtjhrc/termrec/internal/eventpipe"
	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/logger"
)

// Config describes one transform run.
type Config struct {
	// RecordingPath is the termrec/asciinema recording to replay.
	RecordingPath string
	// OutputDir receives the event pipes and frame_<micros> files; must
	// already exist.
	OutputDir string
	// SelfExe is the path to this termrec binary, re-invoked inside tmux as
	// `controlled-play`.
	SelfExe string
	// TmuxBin names the tmux binary (normally just "tmux").
	TmuxBin string
	// SessionName is the detached tmux session transform creates and tears
	// down.
	SessionName string
}

// Transform drives tmux through the recording's Output events, writing one
// frame_<timestamp_micros> file per event into OutputDir.
func Transform(cfg Config, events []journal.TimedEvent) error {
	info, err := os.Stat(cfg.OutputDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("output %q is not a directory", cfg.OutputDir)
	}

	writeEvent, err := eventpipe.Create(filepath.Join(cfg.OutputDir, ".termrec-write-event"))
	if err != nil {
		return fmt.Errorf("create write-event pipe: %w", err)
	}
	defer writeEvent.Close()

	finishedEvent, err := eventpipe.Create(filepath.Join(cfg.OutputDir, ".termrec-finished-event"))
	if err != nil {
		return fmt.Errorf("create finished-event pipe: %w", err)
	}
	defer finishedEvent.Close()

	outputEvents := journal.FilterOutputEvents(events)

	createSession := exec.Command(cfg.TmuxBin,
		"new-session", "-P", "-s", cfg.SessionName, "-d", "--",
		cfg.SelfExe, "controlled-play",
		"--write-event", writeEvent.Path(),
		"--finished-event", finishedEvent.Path(),
		cfg.RecordingPath,
	)
	out, err := createSession.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to create tmux session: %w (%s)", err, out)
	}
	defer func() {
		if err := exec.Command(cfg.TmuxBin, "kill-session", "-t", cfg.SessionName).Run(); err != nil {
			logger.Warn("failed to tear down tmux session", "session", cfg.SessionName, "err", err)
		}
	}()

	for _, te := range outputEvents {
		if err := writeEvent.Signal(); err != nil {
			return fmt.Errorf("signal write-event: %w", err)
		}
		if err := finishedEvent.Wait(); err != nil {
			return fmt.Errorf("wait for finished-event: %w", err)
		}

		frameTimestamp := te.Timestamp.Microseconds()
		framePath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%d", frameTimestamp))
		frameFile, err := os.Create(framePath)
		if err != nil {
			return fmt.Errorf("create output frame file: %w", err)
		}

		capture := exec.Command(cfg.TmuxBin, "capture-pane", "-p", "-e", "-J", "-t", cfg.SessionName)
		capture.Stdout = frameFile
		captureErr := capture.Run()
		frameFile.Close()
		if captureErr != nil {
			return fmt.Errorf("failed to capture frame using tmux: %w", captureErr)
		}
	}
	return writeEvent.Signal()
}
