// Package planner owns the planning session: the phase state machine, the
// undo/redo history, prompt assembly, and the message loop tying the
// extraction engine, question queue, provider, and response merger
// together.
package planner

import (
	"time"

	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Advance moves the itinerary to the next planning step and returns a new
// itinerary version. The progression:
//
//	initial    -> collecting
//	collecting -> skeleton
//	skeleton   -> detailing (day 1)
//	detailing  -> detailing (next day), or completed after the last day
//	completed  -> no-op
//
// A completed itinerary is returned unchanged, same pointer.
func Advance(itin *itinerary.Itinerary) *itinerary.Itinerary {
	if itin == nil || itin.Phase.IsTerminal() {
		return itin
	}

	out := itin.Clone()
	switch out.Phase {
	case itinerary.PhaseInitial:
		out.Phase = itinerary.PhaseCollecting
	case itinerary.PhaseCollecting:
		out.Phase = itinerary.PhaseSkeleton
	case itinerary.PhaseSkeleton:
		out.Phase = itinerary.PhaseDetailing
		out.CurrentDay = 1
	case itinerary.PhaseDetailing:
		if out.CurrentDay < out.TotalDays() {
			out.CurrentDay++
		} else {
			out.Phase = itinerary.PhaseCompleted
			out.Status = itinerary.StatusCompleted
			out.CurrentDay = 0
			markDaysCompleted(out)
		}
	}
	out.UpdatedAt = time.Now()
	return out
}

// Reset returns the planning flow to the start: phase initial, draft
// status, day counter cleared. The schedule itself is left alone; dropping
// it is a separate operation (itinerary.ClearSchedule) the caller invokes
// explicitly.
func Reset(itin *itinerary.Itinerary) *itinerary.Itinerary {
	if itin == nil {
		return nil
	}
	out := itin.Clone()
	out.Phase = itinerary.PhaseInitial
	out.Status = itinerary.StatusDraft
	out.CurrentDay = 0
	out.UpdatedAt = time.Now()
	return out
}

func markDaysCompleted(itin *itinerary.Itinerary) {
	for i := range itin.Schedule {
		itin.Schedule[i].Status = itinerary.DayStatusCompleted
	}
}
