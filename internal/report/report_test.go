package report

import (
	"os"
	"testing"

	"github.com/courtside/rallyboard/internal/database"
	"github.com/courtside/rallyboard/internal/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (scoreboard.Store, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "testdb_report_*.db")
	require.NoError(t, err)

	db, dbTeardown, err := database.InitDB(tmpfile.Name(), "", "", "../../migrations")
	require.NoError(t, err)

	teardown := func() {
		dbTeardown()
		os.Remove(tmpfile.Name())
	}
	return scoreboard.New(db), teardown
}

func TestGenerate(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	match, err := store.CreateMatch("Falcons", "Hawks", 3)
	require.NoError(t, err)
	set, err := store.CreateSet(match.ID)
	require.NoError(t, err)

	require.NoError(t, store.SaveSetState(set.ID, scoreboard.SetState{
		TeamAScore:          35,
		TeamBScore:          30,
		Winner:              scoreboard.TeamA,
		TeamAServiceHand:    3,
		TeamBServiceHand:    4,
		TeamAMaxConsecutive: 6,
		TeamBMaxConsecutive: 4,
		ServingTeam:         scoreboard.TeamA,
	}))
	_, err = store.AppendEvent(&scoreboard.Event{
		MatchID: match.ID, Action: scoreboard.ActionPointA, SetID: set.ID, Timestamp: 1748779200,
	})
	require.NoError(t, err)

	g := New(store)
	text, err := g.Generate(match.ID)
	require.NoError(t, err)

	assert.Contains(t, text, "Falcons vs Hawks")
	assert.Contains(t, text, "Set 1: Falcons 35 - 30 Hawks  (won by Falcons)")
	assert.Contains(t, text, "Service hands:   Falcons 3, Hawks 4")
	assert.Contains(t, text, "Longest streaks: Falcons 6, Hawks 4")
	assert.Contains(t, text, "Sets won:     Falcons 1, Hawks 0")
	assert.Contains(t, text, "Total points: Falcons 35, Hawks 30")
	assert.Contains(t, text, "point_a")
}

func TestGenerate_EmptyMatch(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	match, err := store.CreateMatch("Falcons", "Hawks", 3)
	require.NoError(t, err)

	g := New(store)
	text, err := g.Generate(match.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "(empty)")
	assert.Contains(t, text, "Sets won:     Falcons 0, Hawks 0")
}

func TestGenerate_UnknownMatch(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	g := New(store)
	_, err := g.Generate("missing")
	assert.ErrorIs(t, err, scoreboard.ErrNotFound)
}
