package journal

import "testing"

func TestFilterOutputEvents(t *testing.T) {
	events := []TimedEvent{
		{Timestamp: 0, Event: OutputEvent([]byte("a"))},
		{Timestamp: 1, Event: MarkerEvent([]byte("m"))},
		{Timestamp: 2, Event: OutputEvent([]byte("b"))},
	}
	got := FilterOutputEvents(events)
	if len(got) != 2 {
		t.Fatalf("expected 2 output events, got %d", len(got))
	}
	if string(got[0].Event.Data) != "a" || string(got[1].Event.Data) != "b" {
		t.Errorf("unexpected filtered events: %+v", got)
	}
}

func TestFilterWindow(t *testing.T) {
	events := []TimedEvent{
		{Timestamp: 0, Event: MarkerEvent([]byte("start"))},
		{Timestamp: 1, Event: OutputEvent([]byte("before"))},
		{Timestamp: 2, Event: MarkerEvent([]byte("after"))},
		{Timestamp: 3, Event: OutputEvent([]byte("inside"))},
		{Timestamp: 4, Event: MarkerEvent([]byte("before-bound"))},
		{Timestamp: 5, Event: OutputEvent([]byte("outside"))},
	}
	after := MarkerEvent([]byte("after"))
	before := MarkerEvent([]byte("before-bound"))

	got := FilterWindow(events, &after, &before)
	if len(got) != 1 {
		t.Fatalf("expected 1 event inside the window, got %d: %+v", len(got), got)
	}
	if string(got[0].Event.Data) != "inside" {
		t.Errorf("unexpected window contents: %+v", got)
	}
}

func TestFilterWindowUnboundedBothSides(t *testing.T) {
	events := []TimedEvent{
		{Timestamp: 0, Event: OutputEvent([]byte("a"))},
		{Timestamp: 1, Event: OutputEvent([]byte("b"))},
	}
	got := FilterWindow(events, nil, nil)
	if len(got) != 2 {
		t.Fatalf("expected unbounded window to return all events, got %d", len(got))
	}
}

func TestFilterWindowOnlyAfter(t *testing.T) {
	events := []TimedEvent{
		{Timestamp: 0, Event: OutputEvent([]byte("before"))},
		{Timestamp: 1, Event: MarkerEvent([]byte("after"))},
		{Timestamp: 2, Event: OutputEvent([]byte("later"))},
	}
	after := MarkerEvent([]byte("after"))
	got := FilterWindow(events, &after, nil)
	if len(got) != 1 || string(got[0].Event.Data) != "later" {
		t.Errorf("unexpected filtered events: %+v", got)
	}
}
