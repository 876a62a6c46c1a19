package metrics

import (
	"os"
	"testing"

	"github.com/courtside/rallyboard/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "testdb_metrics_*.db")
	require.NoError(t, err)

	db, dbTeardown, err := database.InitDB(tmpfile.Name(), "", "", "../../migrations")
	require.NoError(t, err)

	store := New(db)

	teardown := func() {
		dbTeardown()
		os.Remove(tmpfile.Name())
	}

	return store, teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no counters
	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	// 2. Increment a new key
	store.Increment(KeyPointsScored)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"points_scored": 1}, counters)

	// 3. Increment the same key again
	store.Increment(KeyPointsScored)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"points_scored": 2}, counters)

	// 4. Increment a different key
	store.Increment(KeyUndosApplied)
	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"points_scored": 2,
		"undos_applied": 1,
	}, counters)
}
