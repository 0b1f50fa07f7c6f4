package benchstore

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewRunAndRecordSample(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "results.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	runID, err := store.NewRun("echo hi")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a non-empty run ID")
	}

	deltas := []time.Duration{5 * time.Millisecond, 7 * time.Millisecond, 3 * time.Millisecond}
	for i, d := range deltas {
		if err := store.RecordSample(runID, i, d); err != nil {
			t.Fatalf("RecordSample(%d): %v", i, err)
		}
	}

	got, err := store.Samples(runID)
	if err != nil {
		t.Fatalf("Samples: %v", err)
	}
	if len(got) != len(deltas) {
		t.Fatalf("expected %d samples, got %d", len(deltas), len(got))
	}
	for i, want := range deltas {
		if got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSamplesAreScopedToTheirRun(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "results.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	runA, err := store.NewRun("a")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	runB, err := store.NewRun("b")
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	if err := store.RecordSample(runA, 0, time.Millisecond); err != nil {
		t.Fatalf("RecordSample: %v", err)
	}
	if err := store.RecordSample(runB, 0, 2*time.Millisecond); err != nil {
		t.Fatalf("RecordSample: %v", err)
	}

	gotA, err := store.Samples(runA)
	if err != nil {
		t.Fatalf("Samples(runA): %v", err)
	}
	if len(gotA) != 1 || gotA[0] != time.Millisecond {
		t.Errorf("runA samples = %v, want [1ms]", gotA)
	}

	gotB, err := store.Samples(runB)
	if err != nil {
		t.Fatalf("Samples(runB): %v", err)
	}
	if len(gotB) != 1 || gotB[0] != 2*time.Millisecond {
		t.Errorf("runB samples = %v, want [2ms]", gotB)
	}
}
