package voice_test

import (
	"testing"

	"github.com/courtside/rallyboard/internal/scoreboard"
	"github.com/courtside/rallyboard/internal/voice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Undo(t *testing.T) {
	cmd, ok := voice.Parse("undo", "", "")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandUndo, cmd.Type)

	cmd, ok = voice.Parse("please undo that", "", "")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandUndo, cmd.Type)
}

func TestParse_UndoFuzzyGuardedByPoint(t *testing.T) {
	// "take back point" matches the undo synonyms at 100, but any
	// transcript containing "point" must never resolve to undo.
	cmd, ok := voice.Parse("take back point", "", "")
	if ok {
		assert.NotEqual(t, scoreboard.CommandUndo, cmd.Type)
	}
}

func TestParse_WhatsScore(t *testing.T) {
	for _, transcript := range []string{
		"what's the score",
		"what is the score",
		"WHAT IS THE SCORE?",
	} {
		cmd, ok := voice.Parse(transcript, "Falcons", "Hawks")
		require.True(t, ok, "transcript %q", transcript)
		assert.Equal(t, scoreboard.CommandWhatsScore, cmd.Type, "transcript %q", transcript)
	}
}

func TestParse_GenericPointSynonyms(t *testing.T) {
	cmd, ok := voice.Parse("point to team a", "", "")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamA, cmd.Team)

	cmd, ok = voice.Parse("point to team b", "", "")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamB, cmd.Team)

	// "team alpha" maps to side A even when the configured names differ.
	cmd, ok = voice.Parse("point to team alpha", "Falcons", "Hawks")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamA, cmd.Team)
}

func TestParse_TeamNameExtraction(t *testing.T) {
	cmd, ok := voice.Parse("point to team falcons", "Falcons", "Hawks")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamA, cmd.Team)

	cmd, ok = voice.Parse("point hawks", "Falcons", "Hawks")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamB, cmd.Team)
}

func TestParse_DynamicPhrases(t *testing.T) {
	cmd, ok := voice.Parse("falcons point", "Falcons", "Hawks")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamA, cmd.Team)

	cmd, ok = voice.Parse("score hawks", "Falcons", "Hawks")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamB, cmd.Team)
}

func TestParse_NextSetAndReset(t *testing.T) {
	cmd, ok := voice.Parse("next set", "", "")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandNextSet, cmd.Type)

	cmd, ok = voice.Parse("reset match", "", "")
	require.True(t, ok)
	assert.Equal(t, scoreboard.CommandResetMatch, cmd.Type)
}

func TestParse_Unrecognized(t *testing.T) {
	for _, transcript := range []string{
		"",
		"   ",
		"lovely weather today",
	} {
		_, ok := voice.Parse(transcript, "Falcons", "Hawks")
		assert.False(t, ok, "transcript %q should not parse", transcript)
	}
}

func TestPartialRatio(t *testing.T) {
	assert.Equal(t, 100, voice.PartialRatio("point to team a", "point to team a"))
	assert.Equal(t, 100, voice.PartialRatio("uh point to team a please", "point to team a"))
	assert.Equal(t, 0, voice.PartialRatio("", "anything"))
	assert.Less(t, voice.PartialRatio("banana", "score now"), 50)
}
