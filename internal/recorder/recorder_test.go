package recorder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/mtjhrc/termrec/internal/journal"
	"github.com/mtjhrc/termrec/internal/simulator"
)

func TestReadLoopAccumulatesOutputEvents(t *testing.T) {
	rec := &recording{start: time.Now()}
	pr, pw := io.Pipe()

	go func() {
		pw.Write([]byte("abc"))
		pw.Write([]byte("def"))
		pw.Close()
	}()

	if err := readLoop(pr, rec, 4096, nil); err != nil {
		t.Fatalf("readLoop: %v", err)
	}

	if len(rec.events) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(rec.events), rec.events)
	}
	if string(rec.events[0].Event.Data) != "abc" || string(rec.events[1].Event.Data) != "def" {
		t.Errorf("unexpected event payloads: %+v", rec.events)
	}
	for _, e := range rec.events {
		if e.Event.Kind != journal.Output {
			t.Errorf("event kind = %v, want Output", e.Event.Kind)
		}
	}
}

func TestReadLoopForwardsDataToSimulator(t *testing.T) {
	rec := &recording{start: time.Now()}
	sim := simulator.New(rec.start, io.Discard, []journal.SimulationEvent{
		{Kind: journal.SimWaitBarrier, Data: []byte("ready")},
	}, false)

	var simEvents []journal.TimedEvent
	var simErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		simEvents, simErr = sim.Run()
	}()

	pr, pw := io.Pipe()
	go func() {
		pw.Write([]byte("not yet... "))
		pw.Write([]byte("ready now\n"))
		pw.Close()
	}()

	if err := readLoop(pr, rec, 4096, sim); err != nil {
		t.Fatalf("readLoop: %v", err)
	}

	wg.Wait()
	if simErr != nil {
		t.Fatalf("sim.Run: %v", simErr)
	}
	if len(simEvents) != 1 || simEvents[0].Event.Kind != journal.BarrierUnlocked {
		t.Fatalf("expected the simulator to unlock its barrier, got %+v", simEvents)
	}
}

// errReader always fails with the given error, standing in for a PTY
// master that lost the race against Run's concurrent ptmx.Close and
// returned os.ErrClosed instead of EOF/EIO.
type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestReadLoopTreatsAnyReadErrorAsCleanEOF(t *testing.T) {
	rec := &recording{start: time.Now()}
	if err := readLoop(errReader{err: os.ErrClosed}, rec, 4096, nil); err != nil {
		t.Fatalf("readLoop: %v, want nil (any read error ends the loop cleanly)", err)
	}
	if len(rec.events) != 0 {
		t.Errorf("expected no events, got %+v", rec.events)
	}
}

func TestReadLoopClosesSimulatorOnReadError(t *testing.T) {
	rec := &recording{start: time.Now()}
	sim := simulator.New(rec.start, io.Discard, []journal.SimulationEvent{
		{Kind: journal.SimWaitBarrier, Data: []byte("never arrives")},
	}, false)

	done := make(chan error, 1)
	go func() {
		_, err := sim.Run()
		done <- err
	}()

	if err := readLoop(errReader{err: errors.New("boom")}, rec, 4096, sim); err != nil {
		t.Fatalf("readLoop: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("sim.Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("simulator did not unblock after readLoop closed it")
	}
}

func TestRunRecordsASimpleCommand(t *testing.T) {
	var stderr bytes.Buffer
	events, err := Run(context.Background(), Config{
		Command:     []string{"sh", "-c", "echo hi"},
		ChildStderr: &stderr,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var output []byte
	for _, e := range events {
		if e.Event.Kind == journal.Output {
			output = append(output, e.Event.Data...)
		}
	}
	if !bytes.Contains(output, []byte("hi")) {
		t.Errorf("recorded output %q does not contain %q", output, "hi")
	}
}

func TestSortByTimestamp(t *testing.T) {
	events := []journal.TimedEvent{
		{Timestamp: 3 * time.Millisecond, Event: journal.OutputEvent([]byte("c"))},
		{Timestamp: time.Millisecond, Event: journal.OutputEvent([]byte("a"))},
		{Timestamp: 2 * time.Millisecond, Event: journal.OutputEvent([]byte("b"))},
	}
	sortByTimestamp(events)
	for i, want := range []string{"a", "b", "c"} {
		if string(events[i].Event.Data) != want {
			t.Errorf("events[%d] = %q, want %q", i, events[i].Event.Data, want)
		}
	}
}
