package journal

// FilterOutputEvents restricts a journal to its Output events, the stream
// both replayers and the frame materializer walk.
func FilterOutputEvents(events []TimedEvent) []TimedEvent {
	var out []TimedEvent
	for _, e := range events {
		if e.Event.Kind == Output {
			out = append(out, e)
		}
	}
	return out
}

// FilterWindow restricts events to the (after, before) range used by the
// measurement engine: events before `after` are dropped, `after` itself is
// excluded, scanning stops at `before` (also excluded). A nil selector
// leaves that side of the window unbounded (spec.md §4.9).
func FilterWindow(events []TimedEvent, after, before *RecordingEvent) []TimedEvent {
	if after == nil && before == nil {
		return events
	}
	var result []TimedEvent
	inRange := after == nil
	for _, te := range events {
		if after != nil && after.Equal(te.Event) {
			inRange = true
			continue
		}
		if before != nil && before.Equal(te.Event) {
			if inRange {
				break
			}
			continue
		}
		if inRange {
			result = append(result, te)
		}
	}
	return result
}
