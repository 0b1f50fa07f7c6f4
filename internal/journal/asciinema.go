package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"go.uber.org/multierr"

	"github.com/mtjhrc/termrec/internal/logger"
)

// decodeAsciinema ingests an asciinema v2 cast file: the first line is
// metadata and is skipped; each subsequent line is a JSON array
// [timestamp_seconds, kind, data]. "o" becomes Output, "m" is silently
// dropped, "r" (resize) and anything else is a hard error (spec.md §4.1).
//
// Non-UTF-8 terminal output in the source asciinema recording is lossy here:
// encoding/json decodes data_string through Go's UTF-8 string type, same as
// the original's serde_json::Value::as_str (spec.md §9, Open Question c).
func decodeAsciinema(r io.Reader) ([]TimedEvent, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read metadata line: %w", err)
		}
		return nil, nil
	}

	var events []TimedEvent
	var warnings error
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(line), &arr); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse json: %w", lineNum, err)
		}
		if len(arr) < 3 {
			return nil, fmt.Errorf("line %d: expected a 3-element json array", lineNum)
		}

		var timestampSecs float64
		if err := json.Unmarshal(arr[0], &timestampSecs); err != nil {
			return nil, fmt.Errorf("line %d: expected number timestamp: %w", lineNum, err)
		}
		var kind string
		if err := json.Unmarshal(arr[1], &kind); err != nil {
			return nil, fmt.Errorf("line %d: expected string kind: %w", lineNum, err)
		}

		switch kind {
		case "m":
			warnings = multierr.Append(warnings, fmt.Errorf("line %d: dropped unsupported marker entry", lineNum))
			continue
		case "r":
			return nil, fmt.Errorf("line %d: resize events are unsupported", lineNum)
		case "o":
			// handled below
		default:
			return nil, fmt.Errorf("line %d: unknown event kind %q", lineNum, kind)
		}

		var data string
		if err := json.Unmarshal(arr[2], &data); err != nil {
			return nil, fmt.Errorf("line %d: expected string data: %w", lineNum, err)
		}

		events = append(events, TimedEvent{
			Timestamp: time.Duration(timestampSecs * float64(time.Second)),
			Event:     OutputEvent([]byte(data)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan asciinema recording: %w", err)
	}
	for _, w := range multierr.Errors(warnings) {
		logger.Debug(w.Error())
	}
	return events, nil
}
