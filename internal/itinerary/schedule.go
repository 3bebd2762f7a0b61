package itinerary

import (
	"fmt"
	"sort"
	"time"
)

// defaultGapMinutes is the spacing applied when a reordered spot has only
// one timed neighbor to anchor against.
const defaultGapMinutes = 60

// AddSpot appends a spot to the day at dayIndex, assigning an identity if
// missing, then re-sorts the day by scheduled time and recomputes cost
// totals. Unknown dayIndex returns the itinerary unchanged.
func AddSpot(itin *Itinerary, dayIndex int, spot TouristSpot) *Itinerary {
	if itin == nil || dayIndex < 0 || dayIndex >= len(itin.Schedule) {
		return itin
	}

	out := itin.Clone()
	if spot.ID == "" {
		spot.ID = NewID()
	}
	day := &out.Schedule[dayIndex]
	day.Spots = append(day.Spots, spot)
	sortDay(day)
	recomputeTotals(out)
	out.UpdatedAt = time.Now()
	return out
}

// UpdateSpot shallow-merges the patch onto the matching spot. The day is
// re-sorted only when the patch touched ScheduledTime. Unknown day or spot
// ID returns the itinerary unchanged.
func UpdateSpot(itin *Itinerary, dayIndex int, spotID string, patch SpotPatch) *Itinerary {
	if itin == nil || dayIndex < 0 || dayIndex >= len(itin.Schedule) {
		return itin
	}

	idx := spotIndex(itin.Schedule[dayIndex], spotID)
	if idx < 0 {
		return itin
	}

	out := itin.Clone()
	day := &out.Schedule[dayIndex]
	applyPatch(&day.Spots[idx], patch)
	if patch.ScheduledTime != nil {
		sortDay(day)
	}
	recomputeTotals(out)
	out.UpdatedAt = time.Now()
	return out
}

// DeleteSpot removes the spot with the given ID from the day at dayIndex
// and recomputes totals. Unknown targets are a no-op.
func DeleteSpot(itin *Itinerary, dayIndex int, spotID string) *Itinerary {
	if itin == nil || dayIndex < 0 || dayIndex >= len(itin.Schedule) {
		return itin
	}

	idx := spotIndex(itin.Schedule[dayIndex], spotID)
	if idx < 0 {
		return itin
	}

	out := itin.Clone()
	day := &out.Schedule[dayIndex]
	day.Spots = append(day.Spots[:idx], day.Spots[idx+1:]...)
	recomputeTotals(out)
	out.UpdatedAt = time.Now()
	return out
}

// ReorderSpots moves the spot at fromIndex to toIndex within a single day,
// then adjusts the moved spot's scheduled time so the list stays
// chronologically consistent with its new position. Out-of-range indices
// are a no-op.
func ReorderSpots(itin *Itinerary, dayIndex, fromIndex, toIndex int) *Itinerary {
	if itin == nil || dayIndex < 0 || dayIndex >= len(itin.Schedule) {
		return itin
	}
	spots := itin.Schedule[dayIndex].Spots
	if fromIndex < 0 || fromIndex >= len(spots) || toIndex < 0 || toIndex >= len(spots) || fromIndex == toIndex {
		return itin
	}

	out := itin.Clone()
	day := &out.Schedule[dayIndex]

	moved := day.Spots[fromIndex]
	day.Spots = append(day.Spots[:fromIndex], day.Spots[fromIndex+1:]...)
	rest := make([]TouristSpot, 0, len(day.Spots)+1)
	rest = append(rest, day.Spots[:toIndex]...)
	rest = append(rest, moved)
	rest = append(rest, day.Spots[toIndex:]...)
	day.Spots = rest

	adjustTimes(day, toIndex)
	sortDay(day)
	recomputeTotals(out)
	out.UpdatedAt = time.Now()
	return out
}

// MoveSpot transfers a spot from one day to another. The spot is removed
// from the source day, appended to the destination day, and the destination
// is re-sorted; cost totals are recomputed for both days. Unknown targets
// are a no-op. The spot never exists in both days at once.
func MoveSpot(itin *Itinerary, fromDayIndex, toDayIndex int, spotID string) *Itinerary {
	if itin == nil ||
		fromDayIndex < 0 || fromDayIndex >= len(itin.Schedule) ||
		toDayIndex < 0 || toDayIndex >= len(itin.Schedule) ||
		fromDayIndex == toDayIndex {
		return itin
	}

	idx := spotIndex(itin.Schedule[fromDayIndex], spotID)
	if idx < 0 {
		return itin
	}

	out := itin.Clone()
	src := &out.Schedule[fromDayIndex]
	dst := &out.Schedule[toDayIndex]

	moved := src.Spots[idx]
	src.Spots = append(src.Spots[:idx], src.Spots[idx+1:]...)
	dst.Spots = append(dst.Spots, moved)
	sortDay(dst)
	recomputeTotals(out)
	out.UpdatedAt = time.Now()
	return out
}

// UpdateDay shallow-merges the patch onto the day's own fields (theme,
// date, status, distance). Spots are untouched.
func UpdateDay(itin *Itinerary, dayIndex int, patch DayPatch) *Itinerary {
	if itin == nil || dayIndex < 0 || dayIndex >= len(itin.Schedule) {
		return itin
	}

	out := itin.Clone()
	day := &out.Schedule[dayIndex]
	if patch.Date != nil {
		day.Date = *patch.Date
	}
	if patch.Theme != nil {
		day.Theme = *patch.Theme
	}
	if patch.Status != nil {
		day.Status = *patch.Status
	}
	if patch.TotalDistance != nil {
		day.TotalDistance = *patch.TotalDistance
	}
	recomputeTotals(out)
	out.UpdatedAt = time.Now()
	return out
}

// ClearSchedule drops every scheduled day and the derived totals. Identity
// and header facts survive. An already-empty schedule is a no-op.
func ClearSchedule(itin *Itinerary) *Itinerary {
	if itin == nil || len(itin.Schedule) == 0 {
		return itin
	}
	out := itin.Clone()
	out.Schedule = nil
	out.TotalCost = 0
	out.UpdatedAt = time.Now()
	return out
}

// Normalize re-sorts every day by scheduled time and re-derives all cost
// totals in place. Callers that assemble a schedule by hand run this before
// publishing the itinerary.
func Normalize(itin *Itinerary) {
	if itin == nil {
		return
	}
	for d := range itin.Schedule {
		sortDay(&itin.Schedule[d])
	}
	recomputeTotals(itin)
}

// -----------------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------------

func spotIndex(day DaySchedule, spotID string) int {
	for i := range day.Spots {
		if day.Spots[i].ID == spotID {
			return i
		}
	}
	return -1
}

func applyPatch(spot *TouristSpot, patch SpotPatch) {
	if patch.Name != nil {
		spot.Name = *patch.Name
	}
	if patch.Description != nil {
		spot.Description = *patch.Description
	}
	if patch.Category != nil {
		spot.Category = *patch.Category
	}
	if patch.ScheduledTime != nil {
		spot.ScheduledTime = *patch.ScheduledTime
	}
	if patch.DurationMinutes != nil {
		spot.DurationMinutes = *patch.DurationMinutes
	}
	if patch.EstimatedCost != nil {
		spot.EstimatedCost = *patch.EstimatedCost
	}
	if patch.Notes != nil {
		spot.Notes = *patch.Notes
	}
	if patch.Location != nil {
		loc := *patch.Location
		spot.Location = &loc
	}
}

// sortDay enforces the ordering invariant: timed spots ascending by
// ScheduledTime, untimed spots after all timed spots. The sort is stable so
// spots sharing a time, and untimed spots among themselves, keep their
// relative insertion order.
func sortDay(day *DaySchedule) {
	sort.SliceStable(day.Spots, func(a, b int) bool {
		ta, tb := day.Spots[a].ScheduledTime, day.Spots[b].ScheduledTime
		switch {
		case ta != "" && tb != "":
			// Zero-padded HH:mm compares correctly as a string.
			return ta < tb
		case ta != "" && tb == "":
			return true
		default:
			return false
		}
	})
}

// recomputeTotals re-derives every day's TotalCost and the itinerary-level
// aggregate. Derived costs are never carried over stale.
func recomputeTotals(itin *Itinerary) {
	var total float64
	for d := range itin.Schedule {
		var dayTotal float64
		for s := range itin.Schedule[d].Spots {
			dayTotal += itin.Schedule[d].Spots[s].EstimatedCost
		}
		itin.Schedule[d].TotalCost = dayTotal
		total += dayTotal
	}
	itin.TotalCost = total
}

// adjustTimes shifts the scheduled time of the spot at idx so it fits
// between its nearest timed neighbors. With both neighbors timed it takes
// the midpoint; with one, it offsets by defaultGapMinutes; with none, the
// spot keeps whatever time it had.
func adjustTimes(day *DaySchedule, idx int) {
	prev := -1
	for i := idx - 1; i >= 0; i-- {
		if day.Spots[i].ScheduledTime != "" {
			prev = i
			break
		}
	}
	next := -1
	for i := idx + 1; i < len(day.Spots); i++ {
		if day.Spots[i].ScheduledTime != "" {
			next = i
			break
		}
	}

	switch {
	case prev >= 0 && next >= 0:
		pm, okP := parseClock(day.Spots[prev].ScheduledTime)
		nm, okN := parseClock(day.Spots[next].ScheduledTime)
		if okP && okN {
			day.Spots[idx].ScheduledTime = formatClock((pm + nm) / 2)
		}
	case prev >= 0:
		if pm, ok := parseClock(day.Spots[prev].ScheduledTime); ok {
			day.Spots[idx].ScheduledTime = formatClock(clampMinutes(pm + defaultGapMinutes))
		}
	case next >= 0:
		if nm, ok := parseClock(day.Spots[next].ScheduledTime); ok {
			day.Spots[idx].ScheduledTime = formatClock(clampMinutes(nm - defaultGapMinutes))
		}
	}
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m > 23*60+59 {
		return 23*60 + 59
	}
	return m
}

func parseClock(hhmm string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
