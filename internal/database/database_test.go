package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDB(t *testing.T) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "testdb_database_*.db")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })
	return tmpfile.Name()
}

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(tempDB(t), "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"matches", "sets", "events", "metrics"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}
}

func TestInitDB_EventIDsAreMonotonic(t *testing.T) {
	db, teardown, err := InitDB(tempDB(t), "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO matches (id, team_a, team_b, created_at) VALUES ('m1', 'Falcons', 'Hawks', 0)`)
	require.NoError(t, err)

	var ids []int64
	for i := 0; i < 3; i++ {
		res, err := db.Exec(`INSERT INTO events (match_id, action, timestamp) VALUES ('m1', 'point_a', 0)`)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		ids = append(ids, id)
	}

	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])
}
