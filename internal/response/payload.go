// Package response parses assistant output into a user-facing message and
// an optional structured itinerary payload, and merges that payload into
// the canonical itinerary.
package response

import "github.com/yuta-hayashi/tabiplan/internal/itinerary"

// SpotPayload is one spot as the assistant emits it. A present ID targets
// an existing spot for update; an absent ID means a new spot.
type SpotPayload struct {
	ID              string                 `json:"id,omitempty"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	Category        itinerary.SpotCategory `json:"category,omitempty"`
	ScheduledTime   string                 `json:"scheduledTime,omitempty"`
	DurationMinutes int                    `json:"durationMinutes,omitempty"`
	EstimatedCost   float64                `json:"estimatedCost,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Location        *itinerary.GeoLocation `json:"location,omitempty"`
}

// DayPayload is one day's worth of assistant output, merged positionally
// onto the canonical schedule.
type DayPayload struct {
	Day    int                 `json:"day,omitempty"`
	Date   string              `json:"date,omitempty"`
	Theme  string              `json:"theme,omitempty"`
	Status itinerary.DayStatus `json:"status,omitempty"`
	Spots  []SpotPayload       `json:"spots,omitempty"`
}

// ItineraryPayload is the structured block the assistant embeds in a
// fenced json section of its reply. Every field is optional; absent fields
// leave the canonical value alone.
type ItineraryPayload struct {
	Title       string       `json:"title,omitempty"`
	Destination string       `json:"destination,omitempty"`
	StartDate   string       `json:"startDate,omitempty"`
	EndDate     string       `json:"endDate,omitempty"`
	Duration    int          `json:"duration,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	TotalBudget *float64     `json:"totalBudget,omitempty"`
	Currency    string       `json:"currency,omitempty"`
	Schedule    []DayPayload `json:"schedule,omitempty"`
}

// isEmpty reports whether no field was set. It distinguishes a real
// payload from arbitrary JSON the assistant happened to fence.
func (p *ItineraryPayload) isEmpty() bool {
	return p.Title == "" && p.Destination == "" && p.StartDate == "" &&
		p.EndDate == "" && p.Duration == 0 && p.Summary == "" &&
		p.TotalBudget == nil && p.Currency == "" && len(p.Schedule) == 0
}
