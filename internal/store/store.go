// Package store persists itineraries and fact caches across CLI runs.
package store

import (
	"time"

	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// Summary is the listing row for a stored itinerary.
type Summary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	Phase       string    `json:"phase"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Provider is the persistence interface for planning data.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Itineraries
	SaveItinerary(itin *itinerary.Itinerary) error
	GetItinerary(id string) (*itinerary.Itinerary, error)
	ListItineraries() ([]Summary, error)
	DeleteItinerary(id string) error

	// Fact caches
	SaveFacts(itineraryID string, cache *extract.Cache) error
	// GetFacts returns the cached facts for an itinerary. A snapshot older
	// than ttl fails with ErrCacheStale.
	GetFacts(itineraryID string, ttl time.Duration) (*extract.Cache, error)
}
