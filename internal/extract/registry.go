package extract

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Registry keeps per-itinerary fact caches in memory. Entries expire on
// their own after the TTL so a stale snapshot can never be served.
type Registry struct {
	entries *gocache.Cache
}

// NewRegistry creates a registry whose entries expire after ttl. A zero
// ttl falls back to DefaultTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{entries: gocache.New(ttl, 10*time.Minute)}
}

// Get returns the cached snapshot for the itinerary, if present and fresh.
func (r *Registry) Get(itineraryID string) (*Cache, bool) {
	v, ok := r.entries.Get(itineraryID)
	if !ok {
		return nil, false
	}
	return v.(*Cache), true
}

// Put stores the snapshot under the itinerary's ID.
func (r *Registry) Put(itineraryID string, c *Cache) {
	r.entries.Set(itineraryID, c, gocache.DefaultExpiration)
}

// Forget drops the snapshot, forcing the next lookup to re-extract.
func (r *Registry) Forget(itineraryID string) {
	r.entries.Delete(itineraryID)
}
