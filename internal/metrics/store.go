package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// Key names a durable counter in the metrics table. Prometheus counters
// reset with the process; these keys survive restarts and back /stats.
type Key string

const (
	KeyPointsScored   Key = "points_scored"
	KeyUndosApplied   Key = "undos_applied"
	KeyMatchesCreated Key = "matches_created"
)

// store persists the lifetime counters.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a MetricsStore on the given database.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment bumps the counter for key by one, creating it at 1 on first
// use. Counter writes are advisory; failures are logged, never surfaced
// to the scoring path.
func (s *store) Increment(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1`,
		string(key))
	if err != nil {
		log.Error("Failed to increment counter", "error", err, "key", key)
		return
	}
	log.Debug("Counter incremented", "key", key)
}

// GetAll returns every counter, keyed by name.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
