package planner

import (
	"context"
	"strings"
	"time"

	"github.com/yuta-hayashi/tabiplan/internal/config"
	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/errors"
	"github.com/yuta-hayashi/tabiplan/internal/event"
	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
	"github.com/yuta-hayashi/tabiplan/internal/logging"
	"github.com/yuta-hayashi/tabiplan/internal/provider"
	"github.com/yuta-hayashi/tabiplan/internal/question"
	"github.com/yuta-hayashi/tabiplan/internal/response"
	"github.com/yuta-hayashi/tabiplan/internal/store"
)

// Session drives one planning conversation. It owns the transcript, the
// fact cache, the question queue, and the itinerary history, and runs the
// message loop against the provider. Not safe for concurrent use; the CLI
// calls it from a single goroutine.
type Session struct {
	id         string
	cfg        *config.Config
	provider   provider.Provider
	store      store.Provider // nil when persistence is disabled
	bus        *event.Bus
	log        *logging.Logger
	registry   *extract.Registry
	history    *History
	queue      *question.Queue
	transcript conversation.Transcript
}

// NewSession creates a fresh planning session. The store may be nil.
func NewSession(cfg *config.Config, prov provider.Provider, st store.Provider, bus *event.Bus, log *logging.Logger) *Session {
	if bus == nil {
		bus = event.NewBus()
	}
	if log == nil {
		log = logging.NopLogger()
	}
	return &Session{
		id:       itinerary.NewID(),
		cfg:      cfg,
		provider: prov,
		store:    st,
		bus:      bus,
		log:      log,
		registry: extract.NewRegistry(cfg.Planner.CacheTTL()),
		history:  NewHistory(nil),
		queue:    question.NewQueue(itinerary.PhaseInitial, extract.Facts{}),
	}
}

// Resume loads an existing itinerary into the session. History restarts
// from this version, the question queue follows its phase, and a persisted
// fact cache still inside its TTL rehydrates the registry so the interview
// does not start over.
func (s *Session) Resume(itin *itinerary.Itinerary) {
	s.history.Clear(itin)
	if itin == nil {
		return
	}
	s.queue.SetPhase(itin.Phase)
	s.log = s.log.WithItinerary(itin.ID)
	if s.store == nil {
		return
	}
	cached, err := s.store.GetFacts(itin.ID, s.cfg.Planner.CacheTTL())
	if err != nil {
		if !errors.Is(err, errors.ErrFactsNotFound) && !errors.Is(err, errors.ErrCacheStale) {
			s.log.Warn("failed to load fact cache", "error", err)
		}
		return
	}
	s.registry.Put(itin.ID, cached)
	s.queue.UpdateCache(cached.Facts)
}

// Itinerary returns the current itinerary version, nil before the first
// merge.
func (s *Session) Itinerary() *itinerary.Itinerary {
	return s.history.Present()
}

// Transcript returns the conversation so far.
func (s *Session) Transcript() conversation.Transcript {
	return s.transcript
}

// Facts returns the current fact snapshot.
func (s *Session) Facts() extract.Facts {
	return s.refreshFacts(s.history.Present())
}

// Readiness reports how prepared the known facts are for leaving the
// current phase. Advisory only.
func (s *Session) Readiness() string {
	return question.Readiness(s.queue.Phase(), s.Facts())
}

// Checklist reports which of the current phase's facts are filled.
func (s *Session) Checklist() []question.ChecklistItem {
	return question.Checklist(s.queue.Phase(), s.Facts())
}

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// -----------------------------------------------------------------------------
// Message Loop
// -----------------------------------------------------------------------------

// HandleUserMessage runs one turn of the planning conversation: record the
// user's message, refresh facts, pick the next interview question, stream
// the assistant's reply, and merge any itinerary payload it carries.
// Returns the user-facing reply text.
func (s *Session) HandleUserMessage(ctx context.Context, text string) (string, error) {
	s.transcript = s.transcript.Append(conversation.RoleUser, text)

	current := s.history.Present()
	facts := s.refreshFacts(current)
	s.queue.UpdateCache(facts)
	// The assistant sometimes asks on its own; absorb those so the queue
	// never repeats them.
	s.queue.AbsorbHistory(s.transcript)

	if next := s.queue.NextQuestion(); next != nil {
		s.bus.Publish(event.NewQuestionSelectedEvent(next.Category, next.Text))
		s.queue.MarkAsked(next.Category)
	}

	hint := question.PromptHint(s.queue, s.cfg.Planner.CompletionThreshold)
	system := BuildSystemPrompt(current, facts, hint)

	stream, err := s.provider.Stream(ctx, provider.Request{
		System: system,
		Turns:  s.transcript.Tail(s.cfg.Planner.MaxPromptTurns),
	})
	if err != nil {
		s.log.Error("provider stream failed to start", "error", err)
		s.bus.Publish(event.NewStreamFailedEvent(err))
		return "", err
	}
	defer stream.Close()

	var acc response.Accumulator
	var payloads []*response.ItineraryPayload
	shown := ""
	for stream.Next() {
		payloads = append(payloads, acc.Feed(stream.Text())...)
		if msg := acc.Message(); len(msg) > len(shown) && strings.HasPrefix(msg, shown) {
			s.bus.Publish(event.NewStreamDeltaEvent(msg[len(shown):]))
			shown = msg
		}
	}
	if err := stream.Err(); err != nil {
		// Drop partial output so a half-received payload never merges.
		acc.Discard()
		s.log.Error("provider stream failed", "error", err)
		s.bus.Publish(event.NewStreamFailedEvent(err))
		return "", err
	}

	message := acc.Message()
	if len(payloads) > 0 {
		now := time.Now()
		merged := current
		for _, payload := range payloads {
			merged = response.Merge(merged, payload, now)
		}
		s.history.Set(merged)
		s.bus.Publish(event.NewItineraryUpdatedEvent(merged, "merge"))
		s.persist(merged)
		s.log.Info("merged itinerary payload", "payloads", len(payloads), "days", len(merged.Schedule))

		if message == "" {
			message = response.UpdatedMessage
		}
	}

	s.transcript = s.transcript.Append(conversation.RoleAssistant, acc.Raw())
	return message, nil
}

// refreshFacts re-extracts facts from the transcript and itinerary and
// folds them into the cached snapshot.
func (s *Session) refreshFacts(current *itinerary.Itinerary) extract.Facts {
	key := s.cacheKey(current)
	cached, _ := s.registry.Get(key)
	merged := cached.Merge(extract.Extract(s.transcript, current), time.Now())
	s.registry.Put(key, merged)
	if s.store != nil && current != nil {
		if err := s.store.SaveFacts(current.ID, merged); err != nil {
			s.log.Warn("failed to persist fact cache", "error", err)
		}
	}
	return merged.Facts
}

func (s *Session) cacheKey(current *itinerary.Itinerary) string {
	if current != nil {
		return current.ID
	}
	return s.id
}

// -----------------------------------------------------------------------------
// Phase Control
// -----------------------------------------------------------------------------

// ProceedToNextStep advances the phase state machine. Before the first
// itinerary exists, a draft shell is created so the machine has something
// to advance.
func (s *Session) ProceedToNextStep() (*itinerary.Itinerary, error) {
	current := s.history.Present()
	if current == nil {
		current = &itinerary.Itinerary{
			ID:        itinerary.NewID(),
			Status:    itinerary.StatusDraft,
			Phase:     itinerary.PhaseInitial,
			Currency:  s.cfg.Planner.DefaultCurrency,
			CreatedAt: time.Now(),
		}
	}

	out := Advance(current)
	if out == current {
		return current, nil // already completed
	}

	s.history.Set(out)
	s.queue.SetPhase(out.Phase)
	s.bus.Publish(event.NewPhaseChangedEvent(out.ID, current.Phase, out.Phase, out.CurrentDay))
	s.persist(out)
	s.log.WithPhase(out.Phase.String()).Info("phase advanced", "from", current.Phase.String(), "day", out.CurrentDay)
	return out, nil
}

// ResetPlanning returns the planning flow to the initial phase: the day
// counter, question queue, and fact cache are cleared. The schedule and
// the conversation survive; callers that want a blank itinerary invoke
// ClearSchedule separately.
func (s *Session) ResetPlanning() *itinerary.Itinerary {
	current := s.history.Present()
	s.registry.Forget(s.cacheKey(current))
	s.queue = question.NewQueue(itinerary.PhaseInitial, extract.Facts{})
	out := Reset(current)
	if out == nil {
		return nil
	}
	s.history.Set(out)
	s.bus.Publish(event.NewItineraryUpdatedEvent(out, "reset"))
	s.persist(out)
	return out
}

// ClearSchedule drops every scheduled day and records the new version.
// Deliberately separate from ResetPlanning.
func (s *Session) ClearSchedule() (*itinerary.Itinerary, error) {
	current := s.history.Present()
	if current == nil {
		return nil, errors.ErrItineraryNotFound
	}
	out := itinerary.ClearSchedule(current)
	if out == current {
		return current, nil
	}
	s.history.Set(out)
	s.bus.Publish(event.NewItineraryUpdatedEvent(out, "clear"))
	s.persist(out)
	return out, nil
}

// -----------------------------------------------------------------------------
// Direct Edits
// -----------------------------------------------------------------------------

// AddSpot inserts a spot into a day and records the new version.
func (s *Session) AddSpot(dayIndex int, spot itinerary.TouristSpot) (*itinerary.Itinerary, error) {
	return s.apply(errors.ErrDayNotFound, func(cur *itinerary.Itinerary) *itinerary.Itinerary {
		return itinerary.AddSpot(cur, dayIndex, spot)
	})
}

// UpdateSpot patches a spot and records the new version.
func (s *Session) UpdateSpot(dayIndex int, spotID string, patch itinerary.SpotPatch) (*itinerary.Itinerary, error) {
	return s.apply(errors.ErrSpotNotFound, func(cur *itinerary.Itinerary) *itinerary.Itinerary {
		return itinerary.UpdateSpot(cur, dayIndex, spotID, patch)
	})
}

// DeleteSpot removes a spot and records the new version.
func (s *Session) DeleteSpot(dayIndex int, spotID string) (*itinerary.Itinerary, error) {
	return s.apply(errors.ErrSpotNotFound, func(cur *itinerary.Itinerary) *itinerary.Itinerary {
		return itinerary.DeleteSpot(cur, dayIndex, spotID)
	})
}

// ReorderSpots moves a spot within a day and records the new version.
func (s *Session) ReorderSpots(dayIndex, fromIndex, toIndex int) (*itinerary.Itinerary, error) {
	return s.apply(errors.ErrSpotNotFound, func(cur *itinerary.Itinerary) *itinerary.Itinerary {
		return itinerary.ReorderSpots(cur, dayIndex, fromIndex, toIndex)
	})
}

// MoveSpot transfers a spot between days and records the new version.
func (s *Session) MoveSpot(fromDayIndex, toDayIndex int, spotID string) (*itinerary.Itinerary, error) {
	return s.apply(errors.ErrSpotNotFound, func(cur *itinerary.Itinerary) *itinerary.Itinerary {
		return itinerary.MoveSpot(cur, fromDayIndex, toDayIndex, spotID)
	})
}

// UpdateDay patches a day's fields and records the new version.
func (s *Session) UpdateDay(dayIndex int, patch itinerary.DayPatch) (*itinerary.Itinerary, error) {
	return s.apply(errors.ErrDayNotFound, func(cur *itinerary.Itinerary) *itinerary.Itinerary {
		return itinerary.UpdateDay(cur, dayIndex, patch)
	})
}

// apply runs a mutation against the present version and records the
// result. Mutations that return the input unchanged map to noopErr.
func (s *Session) apply(noopErr error, fn func(*itinerary.Itinerary) *itinerary.Itinerary) (*itinerary.Itinerary, error) {
	current := s.history.Present()
	if current == nil {
		return nil, errors.ErrItineraryNotFound
	}
	out := fn(current)
	if out == current {
		return nil, noopErr
	}
	s.history.Set(out)
	s.bus.Publish(event.NewItineraryUpdatedEvent(out, "edit"))
	s.persist(out)
	return out, nil
}

// -----------------------------------------------------------------------------
// Undo / Redo
// -----------------------------------------------------------------------------

// Undo steps the itinerary back one version.
func (s *Session) Undo() (*itinerary.Itinerary, bool) {
	out, ok := s.history.Undo()
	if !ok {
		return nil, false
	}
	s.bus.Publish(event.NewItineraryUpdatedEvent(out, "undo"))
	s.persist(out)
	return out, true
}

// Redo restores the most recently undone version.
func (s *Session) Redo() (*itinerary.Itinerary, bool) {
	out, ok := s.history.Redo()
	if !ok {
		return nil, false
	}
	s.bus.Publish(event.NewItineraryUpdatedEvent(out, "redo"))
	s.persist(out)
	return out, true
}

func (s *Session) persist(itin *itinerary.Itinerary) {
	if s.store == nil || itin == nil {
		return
	}
	if err := s.store.SaveItinerary(itin); err != nil {
		s.log.Warn("failed to persist itinerary", "error", err)
	}
}
