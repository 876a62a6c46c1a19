package orchestrator

import (
	"fmt"

	"github.com/courtside/rallyboard/internal/scoreboard"
)

// courtChangeThresholds are the cumulative scores at which the teams
// change court ends. Fixed by the rules of play.
var courtChangeThresholds = []int{9, 18, 27}

// checkThresholds fires the lowest unfired court-change threshold that
// either side has reached in this set. The session's fired map must be
// consulted and updated under the session lock; a threshold fires at
// most once per set even if undo later pulls the score back below it.
func (s *session) checkThresholds(setID int64, state scoreboard.SetState, match *scoreboard.Match) (announcement string, threshold int) {
	firedForSet := s.fired[setID]
	if firedForSet == nil {
		firedForSet = make(map[int]bool)
		s.fired[setID] = firedForSet
	}

	for _, th := range courtChangeThresholds {
		if firedForSet[th] {
			continue
		}
		if state.TeamAScore < th && state.TeamBScore < th {
			continue
		}
		firedForSet[th] = true

		// Name whichever side reached the mark; on the rare replay where
		// both are past it, the leader.
		reached := scoreboard.TeamA
		if state.TeamAScore < th || (state.TeamBScore >= th && state.TeamBScore > state.TeamAScore) {
			reached = scoreboard.TeamB
		}
		return fmt.Sprintf("Court change! %s reaches %d.", match.TeamName(reached), th), th
	}
	return "", 0
}

// scoreText renders the current score in speakable form for score
// queries and voice feedback.
func scoreText(match *scoreboard.Match, state scoreboard.SetState) string {
	return fmt.Sprintf("%s %d, %s %d", match.TeamA, state.TeamAScore, match.TeamB, state.TeamBScore)
}
