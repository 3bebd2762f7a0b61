package extract

import (
	"time"

	"github.com/samber/lo"
)

// DefaultTTL is how long cached facts stay trustworthy before a full
// re-extraction is forced.
const DefaultTTL = 24 * time.Hour

// Cache is a snapshot of extracted facts plus the time they were taken.
type Cache struct {
	Facts       Facts     `json:"facts"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// NewCache snapshots the given facts at now.
func NewCache(facts Facts, now time.Time) *Cache {
	return &Cache{Facts: facts, LastUpdated: now}
}

// IsValid reports whether the snapshot is still within the TTL at now.
// A zero ttl falls back to DefaultTTL.
func (c *Cache) IsValid(now time.Time, ttl time.Duration) bool {
	if c == nil {
		return false
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return now.Sub(c.LastUpdated) <= ttl
}

// Merge folds freshly extracted facts into the cached snapshot. Scalar
// fields are overwritten when the incoming value is set, list fields are
// unioned keeping first-seen order, and LastUpdated is stamped to now.
// A nil receiver behaves like an empty cache.
func (c *Cache) Merge(incoming Facts, now time.Time) *Cache {
	var base Facts
	if c != nil {
		base = c.Facts
	}

	if incoming.Destination != "" {
		base.Destination = incoming.Destination
	}
	if incoming.Duration > 0 {
		base.Duration = incoming.Duration
	}
	if incoming.Budget > 0 {
		base.Budget = incoming.Budget
	}
	if incoming.Travelers != nil {
		t := *incoming.Travelers
		base.Travelers = &t
	}
	if incoming.Pace != "" {
		base.Pace = incoming.Pace
	}
	if incoming.Accommodation != "" {
		base.Accommodation = incoming.Accommodation
	}
	base.Interests = lo.Union(base.Interests, incoming.Interests)
	base.SpecificSpots = lo.Union(base.SpecificSpots, incoming.SpecificSpots)
	base.MealPreferences = lo.Union(base.MealPreferences, incoming.MealPreferences)

	return &Cache{Facts: base, LastUpdated: now}
}
