package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mtjhrc/termrec/internal/frames"
	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/recorder"
)

func recordCmd() *cobra.Command {
	var (
		inputPath   string
		verbose     bool
		childStderr string
		output      string
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "record -- <command> [args...]",
		Short: "Run a program and record its terminal IO",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (output == "") == (outputDir == "") {
				return fmt.Errorf("exactly one of --output or --output-dir is required")
			}

			var inputEvents []journal.SimulationEvent
			if inputPath != "" {
				events, err := journal.LoadInput(inputPath)
				if err != nil {
					return fmt.Errorf("failed to load input: %w", err)
				}
				inputEvents = events
			}

			var stderrFile *os.File
			if childStderr != "" {
				f, err := os.OpenFile(childStderr, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
				if err != nil {
					return fmt.Errorf("failed to open child stderr: %w", err)
				}
				defer f.Close()
				stderrFile = f
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			recordingPath := output
			if outputDir != "" {
				if err := os.Mkdir(outputDir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				recordingPath = filepath.Join(outputDir, "recording.termrec")
			}

			events, err := recorder.Run(context.Background(), recorder.Config{
				Command:        args,
				ChildStderr:    stderrFile,
				InputEvents:    inputEvents,
				ReadBufferSize: cfg.PTYReadBufferSize,
				Verbose:        verbose,
			})
			if err != nil {
				return err
			}

			if err := journal.SaveRecording(recordingPath, events); err != nil {
				return fmt.Errorf("save recording: %w", err)
			}

			if outputDir == "" {
				return nil
			}

			selfExe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get current executable path: %w", err)
			}
			return frames.Transform(frames.Config{
				RecordingPath: recordingPath,
				OutputDir:     outputDir,
				SelfExe:       selfExe,
				TmuxBin:       cfg.EmulatorBin,
				SessionName:   cfg.TmuxSessionName,
			}, events)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input keystrokes to simulate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log barrier matching details")
	cmd.Flags().StringVar(&childStderr, "child-stderr", "", "redirect child stderr to a file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file to save the recording to")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "output directory for the recording and its individual frames")

	return cmd
}
