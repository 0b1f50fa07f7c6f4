package journal

import (
	"testing"
	"time"
)

func TestValidateSimulationAcceptsMonotonicPhases(t *testing.T) {
	events := []SimulationEvent{
		{Kind: SimInput, Timestamp: 0},
		{Kind: SimInput, Timestamp: time.Millisecond},
		{Kind: SimWaitBarrier, Data: []byte("$ ")},
		{Kind: SimInput, Timestamp: 0},
		{Kind: SimSleep, Duration: time.Millisecond},
		{Kind: SimInput, Timestamp: 0},
		{Kind: SimMarker, Data: []byte("checkpoint")},
		{Kind: SimInput, Timestamp: time.Microsecond},
	}
	if err := ValidateSimulation(events); err != nil {
		t.Fatalf("expected valid simulation, got error: %v", err)
	}
}

func TestValidateSimulationRejectsRegression(t *testing.T) {
	events := []SimulationEvent{
		{Kind: SimInput, Timestamp: 2 * time.Millisecond},
		{Kind: SimInput, Timestamp: time.Millisecond},
	}
	if err := ValidateSimulation(events); err == nil {
		t.Fatal("expected error for a timestamp regression within a phase")
	}
}

func TestValidateSimulationBarrierResetsPhase(t *testing.T) {
	events := []SimulationEvent{
		{Kind: SimInput, Timestamp: 5 * time.Millisecond},
		{Kind: SimWaitBarrier, Data: []byte("$ ")},
		{Kind: SimInput, Timestamp: 0},
	}
	if err := ValidateSimulation(events); err != nil {
		t.Fatalf("expected barrier to reset the phase cursor, got error: %v", err)
	}
}
