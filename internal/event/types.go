package event

import (
	"time"

	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "phase.changed", "stream.delta")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Planning Lifecycle Events
// -----------------------------------------------------------------------------

// PhaseChangedEvent is emitted when the planning state machine advances.
type PhaseChangedEvent struct {
	baseEvent
	ItineraryID string
	From        itinerary.Phase
	To          itinerary.Phase
	// Day is the day under detailing after the transition, 0 otherwise.
	Day int
}

// NewPhaseChangedEvent creates a PhaseChangedEvent.
func NewPhaseChangedEvent(itineraryID string, from, to itinerary.Phase, day int) PhaseChangedEvent {
	return PhaseChangedEvent{
		baseEvent:   newBaseEvent("phase.changed"),
		ItineraryID: itineraryID,
		From:        from,
		To:          to,
		Day:         day,
	}
}

// ItineraryUpdatedEvent is emitted whenever a new itinerary version becomes
// current: a payload merge, a direct edit, or an undo/redo.
type ItineraryUpdatedEvent struct {
	baseEvent
	Itinerary *itinerary.Itinerary
	// Source describes what produced the version: "merge", "edit",
	// "undo", "redo", "reset", "clear".
	Source string
}

// NewItineraryUpdatedEvent creates an ItineraryUpdatedEvent.
func NewItineraryUpdatedEvent(itin *itinerary.Itinerary, source string) ItineraryUpdatedEvent {
	return ItineraryUpdatedEvent{
		baseEvent: newBaseEvent("itinerary.updated"),
		Itinerary: itin,
		Source:    source,
	}
}

// QuestionSelectedEvent is emitted when the queue picks the next interview
// question to weave into the assistant's reply.
type QuestionSelectedEvent struct {
	baseEvent
	Category string
	Text     string
}

// NewQuestionSelectedEvent creates a QuestionSelectedEvent.
func NewQuestionSelectedEvent(category, text string) QuestionSelectedEvent {
	return QuestionSelectedEvent{
		baseEvent: newBaseEvent("question.selected"),
		Category:  category,
		Text:      text,
	}
}

// -----------------------------------------------------------------------------
// Stream Events
// -----------------------------------------------------------------------------

// StreamDeltaEvent carries one chunk of assistant prose as it streams in.
// Payload blocks are filtered out before this event is published.
type StreamDeltaEvent struct {
	baseEvent
	Delta string
}

// NewStreamDeltaEvent creates a StreamDeltaEvent.
func NewStreamDeltaEvent(delta string) StreamDeltaEvent {
	return StreamDeltaEvent{
		baseEvent: newBaseEvent("stream.delta"),
		Delta:     delta,
	}
}

// StreamFailedEvent is emitted when a provider stream ends in an error,
// including cancellation.
type StreamFailedEvent struct {
	baseEvent
	Err error
}

// NewStreamFailedEvent creates a StreamFailedEvent.
func NewStreamFailedEvent(err error) StreamFailedEvent {
	return StreamFailedEvent{
		baseEvent: newBaseEvent("stream.failed"),
		Err:       err,
	}
}
