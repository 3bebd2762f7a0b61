// Package itinerary defines the canonical trip data model and the schedule
// mutation engine that operates on it.
//
// The Itinerary is the single source of truth that both AI payload merges
// and direct user edits target. All mutations are immutable: every operation
// returns a new Itinerary and leaves its input untouched, so callers can
// snapshot freely for undo/redo.
package itinerary

import "time"

// -----------------------------------------------------------------------------
// Enums
// -----------------------------------------------------------------------------

// Phase represents the current stage of the guided planning conversation.
//
// The planning lifecycle progresses through these phases:
//  1. PhaseInitial - no planning has started yet
//  2. PhaseCollecting - gathering trip facts from the conversation
//  3. PhaseSkeleton - building a day-by-day outline with themes
//  4. PhaseDetailing - filling in stops one day at a time
//  5. PhaseCompleted - the itinerary is finished
type Phase string

const (
	// PhaseInitial indicates no planning conversation has started.
	PhaseInitial Phase = "initial"

	// PhaseCollecting indicates trip facts are being gathered.
	PhaseCollecting Phase = "collecting"

	// PhaseSkeleton indicates a day-level outline is being built.
	PhaseSkeleton Phase = "skeleton"

	// PhaseDetailing indicates stops are being filled in day by day.
	PhaseDetailing Phase = "detailing"

	// PhaseCompleted indicates planning has finished. Only an explicit
	// reset returns the session to PhaseInitial from here.
	PhaseCompleted Phase = "completed"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// IsTerminal returns true if this phase represents a final state.
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted
}

// IsValid returns true if this is a recognized phase value.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseInitial, PhaseCollecting, PhaseSkeleton, PhaseDetailing, PhaseCompleted:
		return true
	default:
		return false
	}
}

// Status represents the lifecycle status of an itinerary.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// DayStatus represents the generation state of a single day schedule.
type DayStatus string

const (
	DayStatusDraft     DayStatus = "draft"
	DayStatusSkeleton  DayStatus = "skeleton"
	DayStatusDetailed  DayStatus = "detailed"
	DayStatusCompleted DayStatus = "completed"
)

// SpotCategory classifies a scheduled stop.
type SpotCategory string

const (
	CategorySightseeing    SpotCategory = "sightseeing"
	CategoryDining         SpotCategory = "dining"
	CategoryTransportation SpotCategory = "transportation"
	CategoryAccommodation  SpotCategory = "accommodation"
	CategoryOther          SpotCategory = "other"
)

// IsValid returns true if this is a recognized category value.
func (c SpotCategory) IsValid() bool {
	switch c {
	case CategorySightseeing, CategoryDining, CategoryTransportation,
		CategoryAccommodation, CategoryOther:
		return true
	default:
		return false
	}
}

// -----------------------------------------------------------------------------
// Model
// -----------------------------------------------------------------------------

// GeoLocation is a WGS84 coordinate pair for a spot.
type GeoLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TouristSpot is a single scheduled stop within a day.
//
// A spot is owned exclusively by its DaySchedule. Moving a spot across days
// transfers ownership atomically: it never exists in two days at once.
type TouristSpot struct {
	// ID uniquely identifies the spot. Assigned at creation if absent.
	ID string `json:"id"`

	// Name is the display name of the stop.
	Name string `json:"name"`

	// Description is free text shown alongside the name.
	Description string `json:"description,omitempty"`

	// Category classifies the stop (sightseeing, dining, ...).
	Category SpotCategory `json:"category"`

	// ScheduledTime is the planned start time in HH:mm, or empty when the
	// stop has no fixed time. Untimed stops sort after all timed stops.
	ScheduledTime string `json:"scheduledTime,omitempty"`

	// DurationMinutes is the expected length of the visit.
	DurationMinutes int `json:"durationMinutes,omitempty"`

	// EstimatedCost feeds the per-day and itinerary cost aggregates.
	EstimatedCost float64 `json:"estimatedCost,omitempty"`

	// Notes is free text entered by the user.
	Notes string `json:"notes,omitempty"`

	// Location is the optional geo position of the stop.
	Location *GeoLocation `json:"location,omitempty"`
}

// DaySchedule is one day of the trip with its ordered stops.
//
// Invariant: Spots are kept sorted ascending by ScheduledTime; spots without
// a time sort after all timed spots, preserving relative insertion order
// among themselves.
type DaySchedule struct {
	// Day is the 1-based day number, unique within an itinerary.
	Day int `json:"day"`

	// Date is the calendar date in YYYY-MM-DD, when known.
	Date string `json:"date,omitempty"`

	// Theme is the day-level headline assigned during the skeleton phase.
	Theme string `json:"theme,omitempty"`

	// Status tracks how far generation has progressed for this day.
	Status DayStatus `json:"status,omitempty"`

	// Spots is the ordered list of stops.
	Spots []TouristSpot `json:"spots"`

	// TotalCost is derived: the sum of EstimatedCost over Spots. Recomputed
	// by every mutation, never cached stale.
	TotalCost float64 `json:"totalCost"`

	// TotalDistance is derived but externally supplied (map routing).
	TotalDistance float64 `json:"totalDistance,omitempty"`

	// IsLoading marks the day as awaiting async generation during the
	// detailing phase.
	IsLoading bool `json:"isLoading,omitempty"`

	// Error holds a per-day generation failure message.
	Error string `json:"error,omitempty"`
}

// Itinerary is the canonical structured trip object.
type Itinerary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`

	// Duration is the trip length in days. The schedule may exceed it (a
	// user can add an extra day); see DayOverflow.
	Duration int `json:"duration,omitempty"`

	Summary  string        `json:"summary,omitempty"`
	Schedule []DaySchedule `json:"schedule"`

	// TotalBudget is an optional user- or AI-set spending ceiling.
	TotalBudget *float64 `json:"totalBudget,omitempty"`

	// TotalCost is derived: the sum of all day costs.
	TotalCost float64 `json:"totalCost"`

	Currency string `json:"currency,omitempty"`
	Status   Status `json:"status"`

	// Phase mirrors the planning state machine.
	Phase Phase `json:"phase"`

	// CurrentDay mirrors the detailing-day counter, 0 when not detailing.
	CurrentDay int `json:"currentDay,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// -----------------------------------------------------------------------------
// Patches
// -----------------------------------------------------------------------------

// SpotPatch is a partial update for a TouristSpot. Nil fields are left
// unchanged; non-nil fields overwrite.
type SpotPatch struct {
	Name            *string
	Description     *string
	Category        *SpotCategory
	ScheduledTime   *string
	DurationMinutes *int
	EstimatedCost   *float64
	Notes           *string
	Location        *GeoLocation
}

// DayPatch is a partial update for a DaySchedule's own fields.
type DayPatch struct {
	Date          *string
	Theme         *string
	Status        *DayStatus
	TotalDistance *float64
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// TotalDays returns the effective trip length: Duration when set, otherwise
// the current schedule length.
func (i *Itinerary) TotalDays() int {
	if i.Duration > 0 {
		return i.Duration
	}
	return len(i.Schedule)
}

// DayOverflow returns how many scheduled days exceed Duration. Zero when
// Duration is unset or the schedule fits. Overflow is allowed; callers may
// surface it as a soft warning.
func (i *Itinerary) DayOverflow() int {
	if i.Duration <= 0 || len(i.Schedule) <= i.Duration {
		return 0
	}
	return len(i.Schedule) - i.Duration
}

// FindSpot returns the day index and spot index for the given spot ID, or
// (-1, -1) when not present.
func (i *Itinerary) FindSpot(spotID string) (int, int) {
	for d := range i.Schedule {
		for s := range i.Schedule[d].Spots {
			if i.Schedule[d].Spots[s].ID == spotID {
				return d, s
			}
		}
	}
	return -1, -1
}

// Clone returns a deep copy of the itinerary. Mutating the copy never
// affects the original; the history manager relies on this.
func (i *Itinerary) Clone() *Itinerary {
	if i == nil {
		return nil
	}
	out := *i
	if i.TotalBudget != nil {
		budget := *i.TotalBudget
		out.TotalBudget = &budget
	}
	out.Schedule = make([]DaySchedule, len(i.Schedule))
	for d, day := range i.Schedule {
		copied := day
		copied.Spots = make([]TouristSpot, len(day.Spots))
		for s, spot := range day.Spots {
			copied.Spots[s] = spot
			if spot.Location != nil {
				loc := *spot.Location
				copied.Spots[s].Location = &loc
			}
		}
		out.Schedule[d] = copied
	}
	return &out
}
