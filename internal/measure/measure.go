// Package measure computes the latency between a named journal event and
// either another named event or the first captured frame matching a
// predicate, walking the frame files a prior transform run produced.
package measure

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/logger"
)

// FramePredicate reports whether a captured frame's bytes satisfy a
// --to-frame / --to-frame-with-text match.
type FramePredicate func(frameContents []byte) bool

// ExactFrame builds a predicate that requires the frame to equal reference
// byte-for-byte, after optionally stripping mosh-predict markup.
func ExactFrame(reference []byte, deleteMoshPredict bool) FramePredicate {
	return func(frame []byte) bool {
		if deleteMoshPredict {
			frame = DeleteMoshPredict(frame)
		}
		return bytes.Equal(reference, frame)
	}
}

// ContainsText builds a predicate that requires the frame to contain text
// as a substring, after optionally stripping mosh-predict markup.
func ContainsText(text []byte, deleteMoshPredict bool) FramePredicate {
	return func(frame []byte) bool {
		if deleteMoshPredict {
			frame = DeleteMoshPredict(frame)
		}
		return bytes.Contains(frame, text)
	}
}

// DeleteMoshPredict strips mosh's predicted-input underline markers
// (ESC[4m / ESC[0m). This greedily removes every occurrence, including
// ones that were never part of a predict-overlay pair — a known quirk of
// the algorithm this is ported from, kept intentionally rather than fixed,
// since recordings measured with --delete-mosh-predict on one termrec
// build must compare equal against the same flag on this one.
func DeleteMoshPredict(data []byte) []byte {
	out := append([]byte(nil), data...)
	for _, escape := range [][]byte{[]byte("\x1b[4m"), []byte("\x1b[0m")} {
		for {
			idx := bytes.Index(out, escape)
			if idx < 0 {
				break
			}
			out = append(out[:idx], out[idx+len(escape):]...)
		}
	}
	return out
}

// Window narrows events to the range strictly between after and before
// (both boundary events themselves excluded), matching --after-event and
// --before-event. Either bound may be nil.
func Window(events []journal.TimedEvent, after, before *journal.RecordingEvent) []journal.TimedEvent {
	return journal.FilterWindow(events, after, before)
}

// FromEventToEvent measures the delta between the first occurrence of
// fromEvent and the first occurrence of toEvent at or after it.
func FromEventToEvent(events []journal.TimedEvent, fromEvent, toEvent journal.RecordingEvent) (time.Duration, error) {
	var start, end *time.Duration
	var warnings error
	for _, te := range events {
		if fromEvent.Equal(te.Event) {
			if start != nil {
				warnings = multierr.Append(warnings, fmt.Errorf("found multiple --from-event matches: first at %v, also at %v", *start, te.Timestamp))
			} else {
				ts := te.Timestamp
				start = &ts
			}
		}
		if start != nil && toEvent.Equal(te.Event) {
			ts := te.Timestamp
			end = &ts
			break
		}
	}
	for _, w := range multierr.Errors(warnings) {
		logger.Warn(w.Error())
	}
	if start == nil {
		return 0, fmt.Errorf("didn't find --from-event")
	}
	if end == nil {
		return 0, fmt.Errorf("didn't find --to-event")
	}
	return *end - *start, nil
}

// FromEventToFrame measures the delta between the first occurrence of
// fromEvent and the first frame file (under framesDir, named
// frame_<timestamp_micros>) whose contents satisfy matches.
func FromEventToFrame(events []journal.TimedEvent, fromEvent journal.RecordingEvent, framesDir string, matches FramePredicate) (time.Duration, error) {
	timestampFrom, err := findEventTime(events, fromEvent)
	if err != nil {
		return 0, fmt.Errorf("didn't find --from-event: %w", err)
	}

	timestampTo, err := findTimestampOfFrame(events, framesDir, matches)
	if err != nil {
		return 0, fmt.Errorf("didn't find a matching frame: %w", err)
	}

	if timestampTo < timestampFrom {
		return 0, fmt.Errorf("event happened at %v, but frame appeared sooner at %v", timestampFrom, timestampTo)
	}
	return timestampTo - timestampFrom, nil
}

func findEventTime(events []journal.TimedEvent, reference journal.RecordingEvent) (time.Duration, error) {
	for _, te := range events {
		if reference.Equal(te.Event) {
			return te.Timestamp, nil
		}
	}
	return 0, fmt.Errorf("event not found in recording")
}

func findTimestampOfFrame(events []journal.TimedEvent, framesDir string, matches FramePredicate) (time.Duration, error) {
	for _, te := range events {
		filename := fmt.Sprintf("frame_%d", te.Timestamp.Microseconds())
		contents, err := os.ReadFile(filepath.Join(framesDir, filename))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, fmt.Errorf("read frame %q: %w", filename, err)
		}
		if matches(contents) {
			return te.Timestamp, nil
		}
	}
	return 0, fmt.Errorf("frame not found in directory")
}
