package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/replay"
)

func controlledPlayCmd() *cobra.Command {
	var writeEvent, finishedEvent string

	cmd := &cobra.Command{
		Use:   "controlled-play <recording>",
		Short: "Play a recording frame-by-frame, driven by an external process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := journal.LoadRecording(args[0])
			if err != nil {
				return fmt.Errorf("failed to load recording: %w", err)
			}
			return replay.Controlled(replay.ControlledConfig{
				Events:            events,
				WriteEventPath:    writeEvent,
				FinishedEventPath: finishedEvent,
			})
		},
	}
	cmd.Flags().StringVar(&writeEvent, "write-event", "", "path to the write-event named pipe")
	cmd.Flags().StringVar(&finishedEvent, "finished-event", "", "path to the finished-event named pipe")
	cmd.MarkFlagRequired("write-event")
	cmd.MarkFlagRequired("finished-event")
	return cmd
}
