package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtjhrc/termrec/internal/frames"
	"github.com/mtjhrc/termrec/internal/journal"
)

func transformCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "transform <recording>",
		Short: "Transform a termrec recording into individual frame files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := journal.LoadRecording(args[0])
			if err != nil {
				return fmt.Errorf("failed to load recording: %w", err)
			}

			selfExe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get current executable path: %w", err)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return frames.Transform(frames.Config{
				RecordingPath: args[0],
				OutputDir:     outputDir,
				SelfExe:       selfExe,
				TmuxBin:       cfg.EmulatorBin,
				SessionName:   cfg.TmuxSessionName,
			}, events)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory to write the event pipes and frame files into")
	cmd.MarkFlagRequired("output-dir")
	return cmd
}
