// Package question manages the interview that fills in missing trip facts.
//
// Each planning phase carries a catalog of candidate questions. The queue
// filters out questions whose facts are already known, orders the rest by
// priority, and tracks which have been asked so the assistant never repeats
// itself.
package question

import (
	"strings"

	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Priority orders questions within a phase.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

// Fact categories a question can target.
const (
	CategoryDestination   = "destination"
	CategoryDuration      = "duration"
	CategoryBudget        = "budget"
	CategoryTravelers     = "travelers"
	CategoryInterests     = "interests"
	CategoryPace          = "pace"
	CategorySpecificSpots = "specificSpots"
	CategoryMeals         = "meals"
	CategoryAccommodation = "accommodation"
)

// Question is one candidate interview question.
type Question struct {
	Category string
	Text     string
	FollowUp string
	Priority Priority
	Required bool
}

// detectKeywords maps a category to words whose presence in an assistant
// turn (alongside a question mark) means the question was already asked.
var detectKeywords = map[string][]string{
	CategoryDestination:   {"どこ", "行き先", "目的地"},
	CategoryDuration:      {"何日", "日程", "期間", "何泊"},
	CategoryBudget:        {"予算", "いくら"},
	CategoryTravelers:     {"何人", "どなた", "誰と", "何名"},
	CategoryInterests:     {"興味", "どんなこと", "テーマ", "楽しみたい"},
	CategoryPace:          {"ペース", "ゆっくり", "詰め込"},
	CategorySpecificSpots: {"行きたい場所", "スポット", "見たい"},
	CategoryMeals:         {"食事", "食べたい", "グルメ"},
	CategoryAccommodation: {"宿", "ホテル", "泊まり"},
}

// collectingCatalog is the interview for the fact-gathering phase.
var collectingCatalog = []Question{
	{Category: CategoryDestination, Text: "どちらへ行きたいですか？", Priority: PriorityHigh, Required: true},
	{Category: CategoryDuration, Text: "何日間の旅行を考えていますか？", Priority: PriorityHigh, Required: true},
	{Category: CategoryTravelers, Text: "どなたと、何人で行かれますか？", Priority: PriorityHigh},
	{Category: CategoryBudget, Text: "ご予算はどのくらいですか？", FollowUp: "交通費・宿泊費も含めてで大丈夫です。", Priority: PriorityMedium},
	{Category: CategoryInterests, Text: "どんなことを楽しみたいですか？", FollowUp: "例えば歴史、グルメ、自然など。", Priority: PriorityMedium},
	{Category: CategoryPace, Text: "ゆっくり回りたいですか、それともたくさん回りたいですか？", Priority: PriorityLow},
}

// skeletonCatalog refines the outline before day-by-day detailing.
var skeletonCatalog = []Question{
	{Category: CategorySpecificSpots, Text: "絶対に行きたい場所はありますか？", Priority: PriorityHigh},
	{Category: CategoryMeals, Text: "食事で食べたいものはありますか？", Priority: PriorityMedium},
	{Category: CategoryAccommodation, Text: "宿泊はどんなところがお好みですか？", Priority: PriorityLow},
}

// catalogFor returns the question catalog for a phase. Phases with no
// interview return nil.
func catalogFor(phase itinerary.Phase) []Question {
	switch phase {
	case itinerary.PhaseInitial, itinerary.PhaseCollecting:
		return collectingCatalog
	case itinerary.PhaseSkeleton:
		return skeletonCatalog
	default:
		return nil
	}
}

// answered reports whether the facts already cover the category.
func answered(facts extract.Facts, category string) bool {
	switch category {
	case CategoryDestination:
		return facts.Destination != ""
	case CategoryDuration:
		return facts.Duration > 0
	case CategoryBudget:
		return facts.Budget > 0
	case CategoryTravelers:
		return facts.Travelers != nil
	case CategoryInterests:
		return len(facts.Interests) > 0
	case CategoryPace:
		return facts.Pace != ""
	case CategorySpecificSpots:
		return len(facts.SpecificSpots) > 0
	case CategoryMeals:
		return len(facts.MealPreferences) > 0
	case CategoryAccommodation:
		return facts.Accommodation != ""
	}
	return false
}

// askedInTurn reports whether the assistant turn looks like it asked the
// category's question: a category keyword plus an actual question mark.
func askedInTurn(content, category string) bool {
	if !strings.Contains(content, "?") && !strings.Contains(content, "？") {
		return false
	}
	for _, kw := range detectKeywords[category] {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

// LoadAskedFromHistory replays the assistant turns and returns the set of
// categories whose questions appear to have been asked already.
func LoadAskedFromHistory(tr conversation.Transcript) map[string]bool {
	asked := map[string]bool{}
	for _, turn := range tr.AssistantTurns() {
		for category := range detectKeywords {
			if !asked[category] && askedInTurn(turn.Content, category) {
				asked[category] = true
			}
		}
	}
	return asked
}
