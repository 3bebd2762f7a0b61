package question

import (
	"sort"

	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Queue selects the next question to weave into the assistant's reply.
type Queue struct {
	phase itinerary.Phase
	facts extract.Facts
	asked map[string]bool
}

// NewQueue builds a queue for the phase seeded with the known facts.
func NewQueue(phase itinerary.Phase, facts extract.Facts) *Queue {
	return &Queue{phase: phase, facts: facts, asked: map[string]bool{}}
}

// UpdateCache replaces the fact snapshot the queue filters against. The
// asked set is retained so answered-then-asked questions never come back.
func (q *Queue) UpdateCache(facts extract.Facts) {
	q.facts = facts
}

// SetPhase repoints the queue at another phase's catalog. Asked state is
// kept because categories are global across phases.
func (q *Queue) SetPhase(phase itinerary.Phase) {
	q.phase = phase
}

// Phase returns the phase whose catalog the queue currently serves.
func (q *Queue) Phase() itinerary.Phase {
	return q.phase
}

// MarkAsked records that the category's question went out.
func (q *Queue) MarkAsked(category string) {
	q.asked[category] = true
}

// AbsorbHistory merges asked-detection results from the transcript.
func (q *Queue) AbsorbHistory(tr conversation.Transcript) {
	for category := range LoadAskedFromHistory(tr) {
		q.asked[category] = true
	}
}

// pending returns the phase's questions that are neither answered by the
// facts nor already asked, ordered by priority. The sort is stable so
// catalog order breaks priority ties.
func (q *Queue) pending() []Question {
	var out []Question
	for _, question := range catalogFor(q.phase) {
		if answered(q.facts, question.Category) || q.asked[question.Category] {
			continue
		}
		out = append(out, question)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Priority < out[b].Priority
	})
	return out
}

// NextQuestion returns the highest-priority unanswered, unasked question
// for the current phase, or nil when the interview is exhausted.
func (q *Queue) NextQuestion() *Question {
	pending := q.pending()
	if len(pending) == 0 {
		return nil
	}
	next := pending[0]
	return &next
}

// AllAsked reports whether every question in the phase's catalog is either
// answered by the facts or already asked.
func (q *Queue) AllAsked() bool {
	return len(q.pending()) == 0
}

// CompletionStatus summarizes interview progress for the current phase.
type CompletionStatus struct {
	Total          int
	Answered       int
	Rate           float64
	RequiredFilled bool
}

// Completion computes how much of the phase's catalog the facts cover.
func (q *Queue) Completion() CompletionStatus {
	catalog := catalogFor(q.phase)
	status := CompletionStatus{Total: len(catalog), RequiredFilled: true}
	for _, question := range catalog {
		if answered(q.facts, question.Category) {
			status.Answered++
		} else if question.Required {
			status.RequiredFilled = false
		}
	}
	if status.Total > 0 {
		status.Rate = float64(status.Answered) / float64(status.Total)
	}
	return status
}
