package response

import (
	"time"

	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Merge folds an assistant payload into the canonical itinerary and
// returns a new itinerary; the input is never mutated. A nil current
// itinerary starts a fresh draft. Days merge positionally, payload fields
// winning where set; spots carrying an ID update the matching spot in
// place while ID-less spots are appended with a deterministic generated
// identity. Payload days beyond the current schedule are appended.
func Merge(current *itinerary.Itinerary, payload *ItineraryPayload, now time.Time) *itinerary.Itinerary {
	if payload == nil {
		return current
	}

	var out *itinerary.Itinerary
	if current == nil {
		out = &itinerary.Itinerary{
			ID:        itinerary.NewID(),
			Status:    itinerary.StatusDraft,
			Phase:     itinerary.PhaseInitial,
			Currency:  "JPY",
			CreatedAt: now,
		}
	} else {
		out = current.Clone()
	}

	applyHeader(out, payload)

	for i, dayPayload := range payload.Schedule {
		if i < len(out.Schedule) {
			mergeDay(&out.Schedule[i], dayPayload, now)
			continue
		}
		out.Schedule = append(out.Schedule, newDay(len(out.Schedule)+1, dayPayload, now))
	}

	itinerary.Normalize(out)
	out.UpdatedAt = now
	return out
}

// applyHeader copies the payload's top-level fields onto the itinerary,
// skipping unset values.
func applyHeader(out *itinerary.Itinerary, payload *ItineraryPayload) {
	if payload.Title != "" {
		out.Title = payload.Title
	}
	if payload.Destination != "" {
		out.Destination = payload.Destination
	}
	if payload.StartDate != "" {
		out.StartDate = payload.StartDate
	}
	if payload.EndDate != "" {
		out.EndDate = payload.EndDate
	}
	if payload.Duration > 0 {
		out.Duration = payload.Duration
	}
	if payload.Summary != "" {
		out.Summary = payload.Summary
	}
	if payload.TotalBudget != nil {
		budget := *payload.TotalBudget
		out.TotalBudget = &budget
	}
	if payload.Currency != "" {
		out.Currency = payload.Currency
	}
}

// mergeDay folds a payload day onto an existing schedule day. Spot
// payloads with a known ID patch that spot; everything else is appended.
func mergeDay(day *itinerary.DaySchedule, payload DayPayload, now time.Time) {
	if payload.Date != "" {
		day.Date = payload.Date
	}
	if payload.Theme != "" {
		day.Theme = payload.Theme
	}
	if payload.Status != "" {
		day.Status = payload.Status
	}

	for pos, spotPayload := range payload.Spots {
		if spotPayload.ID != "" {
			if idx := findSpot(day.Spots, spotPayload.ID); idx >= 0 {
				applySpot(&day.Spots[idx], spotPayload)
				continue
			}
		}
		day.Spots = append(day.Spots, newSpot(day.Day, pos, spotPayload, now))
	}
}

func newDay(dayNumber int, payload DayPayload, now time.Time) itinerary.DaySchedule {
	if payload.Day > 0 {
		dayNumber = payload.Day
	}
	day := itinerary.DaySchedule{
		Day:    dayNumber,
		Date:   payload.Date,
		Theme:  payload.Theme,
		Status: payload.Status,
		Spots:  make([]itinerary.TouristSpot, 0, len(payload.Spots)),
	}
	if day.Status == "" {
		day.Status = itinerary.DayStatusDraft
	}
	for pos, spotPayload := range payload.Spots {
		day.Spots = append(day.Spots, newSpot(day.Day, pos, spotPayload, now))
	}
	return day
}

func newSpot(dayNumber, pos int, payload SpotPayload, now time.Time) itinerary.TouristSpot {
	spot := itinerary.TouristSpot{
		ID:              payload.ID,
		Name:            payload.Name,
		Description:     payload.Description,
		Category:        payload.Category,
		ScheduledTime:   payload.ScheduledTime,
		DurationMinutes: payload.DurationMinutes,
		EstimatedCost:   payload.EstimatedCost,
		Notes:           payload.Notes,
	}
	if spot.ID == "" {
		spot.ID = itinerary.MergedSpotID(dayNumber, pos, now)
	}
	if spot.Category == "" {
		spot.Category = itinerary.CategoryOther
	}
	if payload.Location != nil {
		loc := *payload.Location
		spot.Location = &loc
	}
	return spot
}

// applySpot patches an existing spot with the payload's set fields.
func applySpot(spot *itinerary.TouristSpot, payload SpotPayload) {
	if payload.Name != "" {
		spot.Name = payload.Name
	}
	if payload.Description != "" {
		spot.Description = payload.Description
	}
	if payload.Category != "" {
		spot.Category = payload.Category
	}
	if payload.ScheduledTime != "" {
		spot.ScheduledTime = payload.ScheduledTime
	}
	if payload.DurationMinutes > 0 {
		spot.DurationMinutes = payload.DurationMinutes
	}
	if payload.EstimatedCost > 0 {
		spot.EstimatedCost = payload.EstimatedCost
	}
	if payload.Notes != "" {
		spot.Notes = payload.Notes
	}
	if payload.Location != nil {
		loc := *payload.Location
		spot.Location = &loc
	}
}

func findSpot(spots []itinerary.TouristSpot, id string) int {
	for i := range spots {
		if spots[i].ID == id {
			return i
		}
	}
	return -1
}
