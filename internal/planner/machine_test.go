package planner

import (
	"testing"

	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

func TestAdvance_FullProgression(t *testing.T) {
	itin := &itinerary.Itinerary{
		ID:       "itin-1",
		Duration: 2,
		Phase:    itinerary.PhaseInitial,
		Status:   itinerary.StatusDraft,
		Schedule: []itinerary.DaySchedule{{Day: 1}, {Day: 2}},
	}

	itin = Advance(itin)
	if itin.Phase != itinerary.PhaseCollecting {
		t.Fatalf("phase = %s, want collecting", itin.Phase)
	}

	itin = Advance(itin)
	if itin.Phase != itinerary.PhaseSkeleton {
		t.Fatalf("phase = %s, want skeleton", itin.Phase)
	}

	itin = Advance(itin)
	if itin.Phase != itinerary.PhaseDetailing || itin.CurrentDay != 1 {
		t.Fatalf("phase = %s day %d, want detailing day 1", itin.Phase, itin.CurrentDay)
	}

	itin = Advance(itin)
	if itin.Phase != itinerary.PhaseDetailing || itin.CurrentDay != 2 {
		t.Fatalf("phase = %s day %d, want detailing day 2", itin.Phase, itin.CurrentDay)
	}

	itin = Advance(itin)
	if itin.Phase != itinerary.PhaseCompleted {
		t.Fatalf("phase = %s, want completed", itin.Phase)
	}
	if itin.Status != itinerary.StatusCompleted {
		t.Error("completion must stamp the itinerary status")
	}
	if itin.CurrentDay != 0 {
		t.Errorf("day counter = %d, want 0 after completion", itin.CurrentDay)
	}
	for _, day := range itin.Schedule {
		if day.Status != itinerary.DayStatusCompleted {
			t.Errorf("day %d status = %s, want completed", day.Day, day.Status)
		}
	}
}

func TestAdvance_CompletedIsNoop(t *testing.T) {
	itin := &itinerary.Itinerary{Phase: itinerary.PhaseCompleted}
	if out := Advance(itin); out != itin {
		t.Error("advancing a completed itinerary must be a no-op")
	}
}

func TestAdvance_ReturnsNewVersion(t *testing.T) {
	itin := &itinerary.Itinerary{Phase: itinerary.PhaseCollecting}
	out := Advance(itin)
	if out == itin {
		t.Fatal("Advance must return a new itinerary")
	}
	if itin.Phase != itinerary.PhaseCollecting {
		t.Error("input itinerary was mutated")
	}
}

func TestReset(t *testing.T) {
	itin := &itinerary.Itinerary{
		ID:          "itin-1",
		Destination: "京都",
		Duration:    3,
		Phase:       itinerary.PhaseDetailing,
		Status:      itinerary.StatusCompleted,
		CurrentDay:  2,
		TotalCost:   12000,
		Schedule:    []itinerary.DaySchedule{{Day: 1}},
	}

	out := Reset(itin)
	if out.Phase != itinerary.PhaseInitial || out.Status != itinerary.StatusDraft {
		t.Errorf("phase/status = %s/%s", out.Phase, out.Status)
	}
	if out.CurrentDay != 0 {
		t.Errorf("day counter = %d, want 0", out.CurrentDay)
	}
	if len(out.Schedule) != 1 || out.TotalCost != 12000 {
		t.Error("reset must leave the schedule alone; clearing it is a separate operation")
	}
	if out.ID != "itin-1" || out.Destination != "京都" || out.Duration != 3 {
		t.Error("identity and header facts must survive a reset")
	}
}
