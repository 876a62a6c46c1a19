// Package voice maps free-text speech transcripts onto the canonical
// command vocabulary. Matching is layered: literal guards first, then
// fuzzy synonym sets, then team-name extraction. The tier order and the
// accept gates are contractual; they encode the false-accept /
// false-reject tradeoff against confusable spoken phrases (e.g.
// "reverse" vs "undo") and must not be tuned per deployment.
package voice

import (
	"regexp"
	"strings"

	"github.com/courtside/rallyboard/internal/scoreboard"
)

var pointASynonyms = []string{
	"point to team a",
	"point team a",
	"point a",
	"score team a",
	"team a point",
	"team alpha",
	"team one",
	"team 1",
	"left team",
}

var pointBSynonyms = []string{
	"point to team b",
	"point team b",
	"point b",
	"score team b",
	"team b point",
	"team bravo",
	"team bee",
	"team be",
	"team two",
	"team 2",
	"right team",
}

var undoSynonyms = []string{"undo last point", "undo", "reverse point", "take back point"}

var scoreQuerySynonyms = []string{"what's the score", "what is the score", "score now", "current score"}

var nextSetSynonyms = []string{"next set", "start next set", "new set"}

var resetMatchSynonyms = []string{"reset match", "restart match", "clear match"}

// Accept gates per tier. Fixed contractual constants, not defaults.
const (
	undoFuzzyGate     = 85
	scoreQueryGate    = 70
	extractedNameGate = 60
	dynamicNameGate   = 65
	combinedPointGate = 60
	adminGate         = 70
)

// pointTargetRe extracts the trailing name fragment from phrases like
// "point to team falcons" or "point falcons".
var pointTargetRe = regexp.MustCompile(`point\s+(?:to\s+)?(?:team\s+)?([a-z0-9][a-z0-9\s'-]{1,40})$`)

// Parse maps a transcript to a canonical command. It is pure and
// case-insensitive; the second return is false when the transcript is
// empty or unrecognized. Team names, when provided, extend the point
// vocabulary with dynamic phrases.
func Parse(transcript, teamAName, teamBName string) (scoreboard.Command, bool) {
	t := strings.ToLower(strings.TrimSpace(transcript))
	if t == "" {
		return scoreboard.Command{}, false
	}

	// Undo wins outright on a literal mention, and fuzzily only when the
	// transcript cannot be a point command ("take back point" must never
	// revert a rally that was just called in).
	if strings.Contains(t, "undo") {
		return scoreboard.Command{Type: scoreboard.CommandUndo}, true
	}
	if bestScore(t, undoSynonyms) >= undoFuzzyGate && !strings.Contains(t, "point") {
		return scoreboard.Command{Type: scoreboard.CommandUndo}, true
	}

	// Score queries resolve before any point matching so "what's the
	// score" can never increment anything.
	if strings.Contains(t, "what") && strings.Contains(t, "score") {
		return scoreboard.Command{Type: scoreboard.CommandWhatsScore}, true
	}
	if bestScore(t, scoreQuerySynonyms) >= scoreQueryGate {
		return scoreboard.Command{Type: scoreboard.CommandWhatsScore}, true
	}

	// Fast path: "point [to] [team] <name>" with the fragment matched
	// against the configured team names.
	if m := pointTargetRe.FindStringSubmatch(t); m != nil && (teamAName != "" || teamBName != "") {
		target := strings.TrimSpace(m[1])
		var scoreA, scoreB int
		if teamAName != "" {
			scoreA = PartialRatio(target, teamAName)
		}
		if teamBName != "" {
			scoreB = PartialRatio(target, teamBName)
		}
		if max(scoreA, scoreB) >= extractedNameGate {
			return pointFor(scoreA, scoreB), true
		}
	}

	dynA := dynamicPhrases(teamAName)
	dynB := dynamicPhrases(teamBName)

	synA := bestScore(t, pointASynonyms)
	synB := bestScore(t, pointBSynonyms)
	nameA := bestScore(t, dynA)
	nameB := bestScore(t, dynB)

	// Explicit team-name phrases are preferred when reasonably strong.
	if max(nameA, nameB) >= dynamicNameGate {
		return pointFor(nameA, nameB), true
	}
	// Otherwise fall back to the combined dynamic and generic vocabulary.
	if max(synA, nameA) >= combinedPointGate || max(synB, nameB) >= combinedPointGate {
		return pointFor(max(synA, nameA), max(synB, nameB)), true
	}

	if bestScore(t, nextSetSynonyms) >= adminGate {
		return scoreboard.Command{Type: scoreboard.CommandNextSet}, true
	}
	if bestScore(t, resetMatchSynonyms) >= adminGate {
		return scoreboard.Command{Type: scoreboard.CommandResetMatch}, true
	}

	return scoreboard.Command{}, false
}

// pointFor awards the point to whichever side scored higher, ties going
// to team A (matching the ordering of the synonym tables).
func pointFor(scoreA, scoreB int) scoreboard.Command {
	team := scoreboard.TeamB
	if scoreA >= scoreB {
		team = scoreboard.TeamA
	}
	return scoreboard.Command{Type: scoreboard.CommandPoint, Team: team}
}

// dynamicPhrases builds the spoken variants for a configured team name.
func dynamicPhrases(name string) []string {
	if name == "" {
		return nil
	}
	name = strings.ToLower(name)
	return []string{
		"point to " + name,
		"point " + name,
		"score " + name,
		name + " point",
		"point to team " + name,
		"team " + name + " point",
		"point " + name + " team",
	}
}
