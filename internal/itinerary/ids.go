package itinerary

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns a fresh identity for an itinerary or a user-created spot.
func NewID() string {
	return uuid.NewString()
}

// MergedSpotID returns an identity for a payload spot that arrived without
// one. It is derived from the day number, the position within the day, and
// the merge timestamp, so two spots produced by the same merge can never
// collide and a re-merge of the same payload produces distinct identities
// rather than silently overwriting existing spots.
func MergedSpotID(day, position int, mergedAt time.Time) string {
	return fmt.Sprintf("spot-%d-%d-%d", day, position, mergedAt.UnixMilli())
}
