package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/replay"
)

func playCmd() *cobra.Command {
	var maxAccuracyDeltaUs uint64

	cmd := &cobra.Command{
		Use:   "play <recording>",
		Short: "Replay a saved termrec recording in real time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := journal.LoadRecording(args[0])
			if err != nil {
				return fmt.Errorf("failed to load recording: %w", err)
			}

			maxAccuracyDelta := time.Duration(maxAccuracyDeltaUs) * time.Microsecond
			if !cmd.Flags().Changed("max-accuracy-delta-us") {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				maxAccuracyDelta = time.Duration(cfg.MaxAccuracyDelta)
			}

			return replay.Realtime(replay.RealtimeConfig{
				Events:           events,
				MaxAccuracyDelta: maxAccuracyDelta,
			})
		},
	}
	cmd.Flags().Uint64VarP(&maxAccuracyDeltaUs, "max-accuracy-delta-us", "m", 1000, "maximum allowed playback delay, in microseconds (overrides config file)")
	return cmd
}
