package store

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yuta-hayashi/tabiplan/internal/errors"
	"github.com/yuta-hayashi/tabiplan/internal/extract"
	"github.com/yuta-hayashi/tabiplan/internal/itinerary"
)

// SQLiteStore persists planning data in a single SQLite file. Models are
// stored as JSON documents with a few indexed columns pulled out for
// listing, so schema churn in the model does not require migrations.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore creates a store backed by the database file at path.
// Call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database, creating the file and schema if needed.
func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewStoreError("failed to create data directory", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return errors.NewStoreError("failed to open database", err)
	}
	s.db = db

	schema := `
CREATE TABLE IF NOT EXISTS itineraries (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL DEFAULT '',
	destination TEXT NOT NULL DEFAULT '',
	phase       TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL DEFAULT '',
	updated_at  TIMESTAMP NOT NULL,
	data        TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fact_caches (
	itinerary_id TEXT PRIMARY KEY,
	updated_at   TIMESTAMP NOT NULL,
	data         TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return errors.NewStoreError("failed to create schema", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveItinerary inserts or replaces the itinerary document.
func (s *SQLiteStore) SaveItinerary(itin *itinerary.Itinerary) error {
	if itin == nil || itin.ID == "" {
		return errors.NewStoreError("itinerary has no ID", errors.ErrInvalidInput)
	}

	data, err := json.Marshal(itin)
	if err != nil {
		return errors.NewStoreError("failed to encode itinerary", err).WithItineraryID(itin.ID)
	}

	_, err = s.db.Exec(`
INSERT INTO itineraries (id, title, destination, phase, status, updated_at, data)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	title = excluded.title,
	destination = excluded.destination,
	phase = excluded.phase,
	status = excluded.status,
	updated_at = excluded.updated_at,
	data = excluded.data`,
		itin.ID, itin.Title, itin.Destination, string(itin.Phase), string(itin.Status),
		itin.UpdatedAt, string(data))
	if err != nil {
		return errors.NewStoreError("failed to save itinerary", err).WithItineraryID(itin.ID)
	}
	return nil
}

// GetItinerary loads one itinerary by ID.
func (s *SQLiteStore) GetItinerary(id string) (*itinerary.Itinerary, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM itineraries WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.NewStoreError("not found", errors.ErrItineraryNotFound).WithItineraryID(id)
	}
	if err != nil {
		return nil, errors.NewStoreError("failed to load itinerary", err).WithItineraryID(id)
	}

	var itin itinerary.Itinerary
	if err := json.Unmarshal([]byte(data), &itin); err != nil {
		return nil, errors.NewStoreError("failed to decode itinerary", err).WithItineraryID(id)
	}
	return &itin, nil
}

// ListItineraries returns summaries of all itineraries, most recently
// updated first.
func (s *SQLiteStore) ListItineraries() ([]Summary, error) {
	rows, err := s.db.Query(`
SELECT id, title, destination, phase, status, updated_at
FROM itineraries ORDER BY updated_at DESC`)
	if err != nil {
		return nil, errors.NewStoreError("failed to list itineraries", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Destination, &sum.Phase, &sum.Status, &sum.UpdatedAt); err != nil {
			return nil, errors.NewStoreError("failed to scan itinerary row", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("failed to iterate itineraries", err)
	}
	return out, nil
}

// DeleteItinerary removes the itinerary and its fact cache.
func (s *SQLiteStore) DeleteItinerary(id string) error {
	if _, err := s.db.Exec(`DELETE FROM itineraries WHERE id = ?`, id); err != nil {
		return errors.NewStoreError("failed to delete itinerary", err).WithItineraryID(id)
	}
	if _, err := s.db.Exec(`DELETE FROM fact_caches WHERE itinerary_id = ?`, id); err != nil {
		return errors.NewStoreError("failed to delete fact cache", err).WithItineraryID(id)
	}
	return nil
}

// SaveFacts inserts or replaces the fact cache for an itinerary.
func (s *SQLiteStore) SaveFacts(itineraryID string, cache *extract.Cache) error {
	if cache == nil {
		return errors.NewStoreError("nil fact cache", errors.ErrInvalidInput).WithItineraryID(itineraryID)
	}

	data, err := json.Marshal(cache)
	if err != nil {
		return errors.NewStoreError("failed to encode fact cache", err).WithItineraryID(itineraryID)
	}

	_, err = s.db.Exec(`
INSERT INTO fact_caches (itinerary_id, updated_at, data)
VALUES (?, ?, ?)
ON CONFLICT(itinerary_id) DO UPDATE SET
	updated_at = excluded.updated_at,
	data = excluded.data`,
		itineraryID, cache.LastUpdated, string(data))
	if err != nil {
		return errors.NewStoreError("failed to save fact cache", err).WithItineraryID(itineraryID)
	}
	return nil
}

// GetFacts loads the fact cache for an itinerary, enforcing the TTL.
func (s *SQLiteStore) GetFacts(itineraryID string, ttl time.Duration) (*extract.Cache, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM fact_caches WHERE itinerary_id = ?`, itineraryID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, errors.NewStoreError("no fact cache", errors.ErrFactsNotFound).WithItineraryID(itineraryID)
	}
	if err != nil {
		return nil, errors.NewStoreError("failed to load fact cache", err).WithItineraryID(itineraryID)
	}

	var cache extract.Cache
	if err := json.Unmarshal([]byte(data), &cache); err != nil {
		return nil, errors.NewStoreError("failed to decode fact cache", err).WithItineraryID(itineraryID)
	}
	if !cache.IsValid(time.Now(), ttl) {
		return nil, errors.NewStoreError("cache expired", errors.ErrCacheStale).WithItineraryID(itineraryID)
	}
	return &cache, nil
}
