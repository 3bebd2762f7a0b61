package question

import (
	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Readiness values for moving past the current phase's interview.
const (
	ReadinessReady    = "ready"
	ReadinessPartial  = "partial"
	ReadinessNotReady = "not_ready"
)

// ChecklistItem is one fact the phase's interview tracks.
type ChecklistItem struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Filled   bool   `json:"filled"`
}

// checklistLabels maps fact categories to display labels.
var checklistLabels = map[string]string{
	CategoryDestination:   "行き先",
	CategoryDuration:      "日数",
	CategoryTravelers:     "人数・同行者",
	CategoryBudget:        "予算",
	CategoryInterests:     "興味・テーマ",
	CategoryPace:          "旅のペース",
	CategorySpecificSpots: "行きたい場所",
	CategoryMeals:         "食事の好み",
	CategoryAccommodation: "宿泊の好み",
}

// Checklist renders the phase's fact checklist against the current facts.
// Items follow the phase's question catalog, so each interviewing phase
// gets its own checklist; phases without an interview get an empty one.
func Checklist(phase itinerary.Phase, facts extract.Facts) []ChecklistItem {
	catalog := catalogFor(phase)
	items := make([]ChecklistItem, 0, len(catalog))
	for _, question := range catalog {
		items = append(items, ChecklistItem{
			Category: question.Category,
			Label:    checklistLabels[question.Category],
			Required: question.Required,
			Filled:   answered(facts, question.Category),
		})
	}
	return items
}

// Readiness classifies how prepared the facts are for leaving the phase.
// Required facts missing means not_ready; required facts present but under
// half of the checklist filled means partial. The result is advisory, the
// user can always proceed.
func Readiness(phase itinerary.Phase, facts extract.Facts) string {
	items := Checklist(phase, facts)
	filled := 0
	for _, item := range items {
		if item.Required && !item.Filled {
			return ReadinessNotReady
		}
		if item.Filled {
			filled++
		}
	}
	if filled*2 < len(items) {
		return ReadinessPartial
	}
	return ReadinessReady
}
