package question

import (
	"strings"
	"testing"

	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

func TestNextQuestion_PriorityOrder(t *testing.T) {
	q := NewQueue(itinerary.PhaseCollecting, extract.Facts{})
	next := q.NextQuestion()
	if next == nil {
		t.Fatal("expected a question for empty facts")
	}
	if next.Category != CategoryDestination {
		t.Errorf("first question = %s, want destination", next.Category)
	}
}

func TestNextQuestion_SkipsAnswered(t *testing.T) {
	facts := extract.Facts{Destination: "京都", Duration: 3}
	q := NewQueue(itinerary.PhaseCollecting, facts)
	next := q.NextQuestion()
	if next == nil {
		t.Fatal("expected a question")
	}
	if next.Category == CategoryDestination || next.Category == CategoryDuration {
		t.Errorf("answered category %s should be skipped", next.Category)
	}
	if next.Category != CategoryTravelers {
		t.Errorf("next = %s, want travelers", next.Category)
	}
}

func TestNextQuestion_SkipsAsked(t *testing.T) {
	q := NewQueue(itinerary.PhaseCollecting, extract.Facts{})
	q.MarkAsked(CategoryDestination)
	next := q.NextQuestion()
	if next == nil || next.Category != CategoryDuration {
		t.Errorf("next = %+v, want duration after destination was asked", next)
	}
}

func TestNextQuestion_Exhausted(t *testing.T) {
	q := NewQueue(itinerary.PhaseCollecting, extract.Facts{})
	for _, question := range collectingCatalog {
		q.MarkAsked(question.Category)
	}
	if next := q.NextQuestion(); next != nil {
		t.Errorf("expected nil after all asked, got %+v", next)
	}
	if !q.AllAsked() {
		t.Error("AllAsked should report true")
	}
}

func TestUpdateCache_RetainsAsked(t *testing.T) {
	q := NewQueue(itinerary.PhaseCollecting, extract.Facts{})
	q.MarkAsked(CategoryBudget)
	q.UpdateCache(extract.Facts{Destination: "京都", Duration: 3, Travelers: &extract.Travelers{Count: 2, Type: "couple"}})

	next := q.NextQuestion()
	if next == nil {
		t.Fatal("expected a question")
	}
	if next.Category == CategoryBudget {
		t.Error("asked category must stay suppressed after a cache update")
	}
	if next.Category != CategoryInterests {
		t.Errorf("next = %s, want interests", next.Category)
	}
}

func TestLoadAskedFromHistory(t *testing.T) {
	var tr conversation.Transcript
	tr = tr.Append(conversation.RoleAssistant, "いいですね！ご予算はどのくらいですか？")
	tr = tr.Append(conversation.RoleAssistant, "予算の話をしました。") // no question mark
	asked := LoadAskedFromHistory(tr)

	if !asked[CategoryBudget] {
		t.Error("budget question in history should be detected")
	}
	if asked[CategoryDestination] {
		t.Error("destination was never asked")
	}
}

func TestLoadAskedFromHistory_RequiresQuestionMark(t *testing.T) {
	var tr conversation.Transcript
	tr = tr.Append(conversation.RoleAssistant, "予算を考慮したプランにしますね。")
	if asked := LoadAskedFromHistory(tr); asked[CategoryBudget] {
		t.Error("keyword without a question mark is not a question")
	}
}

func TestCompletion(t *testing.T) {
	facts := extract.Facts{
		Destination: "京都",
		Duration:    3,
		Travelers:   &extract.Travelers{Count: 2, Type: "couple"},
		Budget:      50000,
	}
	q := NewQueue(itinerary.PhaseCollecting, facts)
	status := q.Completion()

	if status.Total != len(collectingCatalog) {
		t.Errorf("total = %d", status.Total)
	}
	if status.Answered != 4 {
		t.Errorf("answered = %d, want 4", status.Answered)
	}
	if !status.RequiredFilled {
		t.Error("required facts are filled")
	}
	if status.Rate < 0.6 {
		t.Errorf("rate = %v, want >= 0.6", status.Rate)
	}
}

func TestCompletion_RequiredMissing(t *testing.T) {
	q := NewQueue(itinerary.PhaseCollecting, extract.Facts{Budget: 50000})
	if status := q.Completion(); status.RequiredFilled {
		t.Error("destination and duration are missing")
	}
}

func TestReadiness(t *testing.T) {
	if got := Readiness(itinerary.PhaseCollecting, extract.Facts{}); got != ReadinessNotReady {
		t.Errorf("empty facts readiness = %s", got)
	}

	partial := extract.Facts{Destination: "京都", Duration: 3}
	if got := Readiness(itinerary.PhaseCollecting, partial); got != ReadinessPartial {
		t.Errorf("required-only readiness = %s", got)
	}

	full := extract.Facts{
		Destination: "京都",
		Duration:    3,
		Travelers:   &extract.Travelers{Count: 2, Type: "couple"},
		Budget:      50000,
		Interests:   []string{"history"},
	}
	if got := Readiness(itinerary.PhaseCollecting, full); got != ReadinessReady {
		t.Errorf("full facts readiness = %s", got)
	}
}

func TestChecklist_FollowsPhaseCatalog(t *testing.T) {
	collecting := Checklist(itinerary.PhaseCollecting, extract.Facts{Destination: "京都"})
	if len(collecting) != len(collectingCatalog) {
		t.Fatalf("collecting items = %d, want %d", len(collecting), len(collectingCatalog))
	}
	if collecting[0].Category != CategoryDestination || !collecting[0].Filled || !collecting[0].Required {
		t.Errorf("first collecting item = %+v", collecting[0])
	}

	skeleton := Checklist(itinerary.PhaseSkeleton, extract.Facts{SpecificSpots: []string{"清水寺"}})
	if len(skeleton) != len(skeletonCatalog) {
		t.Fatalf("skeleton items = %d, want %d", len(skeleton), len(skeletonCatalog))
	}
	if skeleton[0].Category != CategorySpecificSpots || !skeleton[0].Filled {
		t.Errorf("first skeleton item = %+v", skeleton[0])
	}
	for _, item := range skeleton {
		if item.Label == "" {
			t.Errorf("category %s has no label", item.Category)
		}
	}
}

func TestPromptHint_Transition(t *testing.T) {
	facts := extract.Facts{
		Destination: "京都",
		Duration:    3,
		Travelers:   &extract.Travelers{Count: 2, Type: "couple"},
		Budget:      50000,
	}
	q := NewQueue(itinerary.PhaseCollecting, facts)
	hint := PromptHint(q, 0)

	if !strings.Contains(hint, "次のステップに進める") {
		t.Error("hint should allow suggesting a transition")
	}
	if !strings.Contains(hint, "次に聞くべき質問") {
		t.Error("hint should still carry the next question")
	}
}

func TestPromptHint_NoTransitionEarly(t *testing.T) {
	q := NewQueue(itinerary.PhaseCollecting, extract.Facts{})
	hint := PromptHint(q, 0)
	if strings.Contains(hint, "次のステップ") {
		t.Error("empty facts must not unlock the transition hint")
	}
}

func TestSkeletonCatalog(t *testing.T) {
	q := NewQueue(itinerary.PhaseSkeleton, extract.Facts{})
	next := q.NextQuestion()
	if next == nil || next.Category != CategorySpecificSpots {
		t.Errorf("skeleton first question = %+v, want specificSpots", next)
	}
}
