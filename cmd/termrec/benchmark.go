package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtjhrc/termrec/internal/benchstore"
	"github.com/mtjhrc/termrec/internal/frames"
	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/logger"
	"github.com/mtjhrc/termrec/internal/measure"
	"github.com/mtjhrc/termrec/internal/recorder"
)

const defaultBenchmarkRecordingDir = "/tmp/termrec-benchmark"

func benchmarkCmd() *cobra.Command {
	var (
		inputPath    string
		samples      uint32
		recordingDir string
		fromEvent    string
		toFrame      string
		humanUnits   bool
	)

	cmd := &cobra.Command{
		Use:   "benchmark -- <command> [args...]",
		Short: "Run a command repeatedly and measure the latency from an event to a reference frame",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(recordingDir); err == nil {
				return fmt.Errorf("recording directory %q exists, remove it or use a different --recording-dir", recordingDir)
			}

			from, err := journal.ParseEventArg(fromEvent)
			if err != nil {
				return fmt.Errorf("invalid --from-event: %w", err)
			}
			referenceFrame, err := os.ReadFile(toFrame)
			if err != nil {
				return fmt.Errorf("failed to read reference frame (--to-frame): %w", err)
			}

			var inputEvents []journal.SimulationEvent
			if inputPath != "" {
				inputEvents, err = journal.LoadInput(inputPath)
				if err != nil {
					return fmt.Errorf("failed to load input: %w", err)
				}
			}

			selfExe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get current executable path: %w", err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := benchstore.Open(cfg.BenchstorePath)
			if err != nil {
				return err
			}
			defer store.Close()

			runID, err := store.NewRun(strings.Join(args, " "))
			if err != nil {
				return err
			}

			predicate := measure.ExactFrame(referenceFrame, false)

			for i := uint32(0); i < samples; i++ {
				if err := os.MkdirAll(recordingDir, 0755); err != nil {
					return fmt.Errorf("create recording dir: %w", err)
				}

				events, err := recorder.Run(context.Background(), recorder.Config{
					Command:        args,
					InputEvents:    inputEvents,
					ReadBufferSize: cfg.PTYReadBufferSize,
				})
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}

				recordingPath := filepath.Join(recordingDir, "recording.termrec")
				if err := journal.SaveRecording(recordingPath, events); err != nil {
					return fmt.Errorf("sample %d: save recording: %w", i, err)
				}

				if err := frames.Transform(frames.Config{
					RecordingPath: recordingPath,
					OutputDir:     recordingDir,
					SelfExe:       selfExe,
					TmuxBin:       cfg.EmulatorBin,
					SessionName:   cfg.TmuxSessionName,
				}, events); err != nil {
					return fmt.Errorf("sample %d: transform: %w", i, err)
				}

				delta, err := measure.FromEventToFrame(events, from, recordingDir, predicate)
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}

				if err := store.RecordSample(runID, int(i), delta); err != nil {
					return fmt.Errorf("sample %d: record sample: %w", i, err)
				}

				if humanUnits {
					fmt.Println(delta)
				} else {
					fmt.Println(humanize.Comma(delta.Microseconds()))
				}

				if err := os.RemoveAll(recordingDir); err != nil {
					return fmt.Errorf("failed to delete recording tmp directory: %w", err)
				}
			}

			logger.Info("benchmark complete", "run_id", runID, "samples", samples)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input keystrokes to simulate")
	cmd.Flags().Uint32VarP(&samples, "samples", "n", 0, "number of samples to record")
	cmd.Flags().StringVarP(&recordingDir, "recording-dir", "d", defaultBenchmarkRecordingDir, "scratch directory for each sample's recording")
	cmd.Flags().StringVarP(&fromEvent, "from-event", "f", "", "the event to measure time from")
	cmd.Flags().StringVarP(&toFrame, "to-frame", "t", "", "path to a reference frame file to measure up to")
	cmd.Flags().BoolVarP(&humanUnits, "human-units", "u", false, "print in automatically selected human units instead of microseconds")
	cmd.MarkFlagRequired("samples")
	cmd.MarkFlagRequired("from-event")
	cmd.MarkFlagRequired("to-frame")

	return cmd
}
