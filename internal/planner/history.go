package planner

import "github.com/yuta-hayashi/tabiplan/internal/itinerary"

// History is the undo/redo stack for itinerary versions. The present
// version is canonical; past and future hold the versions reachable by
// Undo and Redo. Versions are cloned on the way in and out so no caller
// can alias a stored state.
type History struct {
	past    []*itinerary.Itinerary
	present *itinerary.Itinerary
	future  []*itinerary.Itinerary
}

// NewHistory creates a history with the given present version, which may
// be nil before the first itinerary exists.
func NewHistory(present *itinerary.Itinerary) *History {
	return &History{present: clone(present)}
}

// Present returns the current version.
func (h *History) Present() *itinerary.Itinerary {
	return clone(h.present)
}

// Set records a new present version. The previous present moves to the
// past and any redo states are discarded.
func (h *History) Set(itin *itinerary.Itinerary) {
	if h.present != nil {
		h.past = append(h.past, h.present)
	}
	h.present = clone(itin)
	h.future = nil
}

// CanUndo reports whether an earlier version exists.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether an undone version can be restored.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Undo steps back one version. Returns the new present and true, or nil
// and false when there is nothing to undo.
func (h *History) Undo() (*itinerary.Itinerary, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.future = append(h.future, h.present)
	h.present = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return clone(h.present), true
}

// Redo restores the most recently undone version. Returns the new present
// and true, or nil and false when there is nothing to redo.
func (h *History) Redo() (*itinerary.Itinerary, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.past = append(h.past, h.present)
	h.present = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return clone(h.present), true
}

// Clear drops all past and future versions, keeping only the given
// present.
func (h *History) Clear(present *itinerary.Itinerary) {
	h.past = nil
	h.future = nil
	h.present = clone(present)
}

func clone(itin *itinerary.Itinerary) *itinerary.Itinerary {
	if itin == nil {
		return nil
	}
	return itin.Clone()
}
