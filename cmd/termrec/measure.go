package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/measure"
)

func measureCmd() *cobra.Command {
	var (
		recordingDir      string
		beforeEvent       string
		afterEvent        string
		fromEvent         string
		deleteMoshPredict bool
		toFrame           string
		toFrameWithText   string
		toEvent           string
		humanUnits        bool
	)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Measure the time between events in a recording",
		RunE: func(cmd *cobra.Command, args []string) error {
			set := 0
			for _, s := range []string{toFrame, toFrameWithText, toEvent} {
				if s != "" {
					set++
				}
			}
			if set != 1 {
				return fmt.Errorf("exactly one of --to-frame, --to-frame-with-text, --to-event is required")
			}

			events, err := journal.LoadRecording(filepath.Join(recordingDir, "recording.termrec"))
			if err != nil {
				return fmt.Errorf("failed to load recording: %w", err)
			}

			var after, before *journal.RecordingEvent
			if afterEvent != "" {
				e, err := journal.ParseEventArg(afterEvent)
				if err != nil {
					return fmt.Errorf("invalid --after-event: %w", err)
				}
				after = &e
			}
			if beforeEvent != "" {
				e, err := journal.ParseEventArg(beforeEvent)
				if err != nil {
					return fmt.Errorf("invalid --before-event: %w", err)
				}
				before = &e
			}
			from, err := journal.ParseEventArg(fromEvent)
			if err != nil {
				return fmt.Errorf("invalid --from-event: %w", err)
			}

			windowed := measure.Window(events, after, before)

			var delta time.Duration
			if toEvent != "" {
				to, err := journal.ParseEventArg(toEvent)
				if err != nil {
					return fmt.Errorf("invalid --to-event: %w", err)
				}
				delta, err = measure.FromEventToEvent(windowed, from, to)
				if err != nil {
					return err
				}
			} else {
				var predicate measure.FramePredicate
				switch {
				case toFrame != "":
					reference, err := os.ReadFile(toFrame)
					if err != nil {
						return fmt.Errorf("specified --to-frame file does not exist: %w", err)
					}
					predicate = measure.ExactFrame(reference, deleteMoshPredict)
				case toFrameWithText != "":
					predicate = measure.ContainsText([]byte(toFrameWithText), deleteMoshPredict)
				}
				delta, err = measure.FromEventToFrame(windowed, from, recordingDir, predicate)
				if err != nil {
					return err
				}
			}

			if humanUnits {
				fmt.Println(delta)
			} else {
				fmt.Println(humanize.Comma(delta.Microseconds()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recordingDir, "recording-dir", "d", "", "directory containing recording.termrec and its frames")
	cmd.Flags().StringVar(&beforeEvent, "before-event", "", "only search before this event")
	cmd.Flags().StringVar(&afterEvent, "after-event", "", "only search after this event")
	cmd.Flags().StringVar(&fromEvent, "from-event", "", "the event to measure time from")
	cmd.Flags().BoolVar(&deleteMoshPredict, "delete-mosh-predict", false, "strip mosh predict markup before frame comparison")
	cmd.Flags().StringVar(&toFrame, "to-frame", "", "path to a reference frame file to measure up to")
	cmd.Flags().StringVar(&toFrameWithText, "to-frame-with-text", "", "measure up to the first frame containing this text")
	cmd.Flags().StringVar(&toEvent, "to-event", "", "the event to measure time until")
	cmd.Flags().BoolVarP(&humanUnits, "human-units", "u", false, "print in automatically selected human units instead of microseconds")
	cmd.MarkFlagRequired("recording-dir")
	cmd.MarkFlagRequired("from-event")

	return cmd
}
