// Package projector derives the visible state of a set from its ordered
// point events. The fold is strict and order-sensitive: service-hand
// increments depend on who was serving at each step, so the same events
// in a different order produce a different state. Undo therefore never
// reverses a step in place; it drops the log entry and refolds.
package projector

import (
	"github.com/courtside/rallyboard/internal/scoreboard"
)

const (
	// SetTarget is the score a set is played to.
	SetTarget = 35
	// WinMargin is the required lead once both sides reach SetTarget-1.
	WinMargin = 2
	// MaxServiceHand is the rotation ceiling; incrementing past it wraps to 1.
	MaxServiceHand = 5
)

// Projection folds point events into a SetState while tracking the
// current service streaks. The streak counters are working state for the
// rotation automaton; only their maxima are part of the SetState.
type Projection struct {
	State   scoreboard.SetState
	streakA int
	streakB int
}

// New returns a Projection holding the default state of a fresh set:
// 0-0, both sides on hand 1, team A serving.
func New() *Projection {
	return &Projection{
		State: scoreboard.SetState{
			TeamAServiceHand: 1,
			TeamBServiceHand: 1,
			ServingTeam:      scoreboard.TeamA,
		},
	}
}

// Apply advances the automaton by one rally won by the given team:
// score, streak, service retention or side-out, then the winner check.
// It stays well-defined even after a winner is set; rejecting further
// scoring is the caller's job.
func (p *Projection) Apply(team scoreboard.TeamLabel) {
	st := &p.State

	if team == scoreboard.TeamA {
		st.TeamAScore++
		p.streakA++
		if p.streakA > st.TeamAMaxConsecutive {
			st.TeamAMaxConsecutive = p.streakA
		}
	} else {
		st.TeamBScore++
		p.streakB++
		if p.streakB > st.TeamBMaxConsecutive {
			st.TeamBMaxConsecutive = p.streakB
		}
	}

	if team == st.ServingTeam {
		// Serve retained; the receiving side's streak is broken.
		if team == scoreboard.TeamA {
			p.streakB = 0
		} else {
			p.streakA = 0
		}
	} else {
		// Side-out: the side losing serve advances its hand, wrapping
		// from 5 back to 1. The new server starts a fresh streak.
		if st.ServingTeam == scoreboard.TeamA {
			st.TeamAServiceHand++
			if st.TeamAServiceHand > MaxServiceHand {
				st.TeamAServiceHand = 1
			}
		} else {
			st.TeamBServiceHand++
			if st.TeamBServiceHand > MaxServiceHand {
				st.TeamBServiceHand = 1
			}
		}
		st.ServingTeam = team
		if team == scoreboard.TeamA {
			p.streakA = 1
		} else {
			p.streakB = 1
		}
	}

	st.Winner = Winner(st.TeamAScore, st.TeamBScore)
}

// Winner returns the winning side for the given scores, or "" when the
// set is still live: first to 35, needing a 2-point lead from 34-34.
func Winner(a, b int) scoreboard.TeamLabel {
	if (a >= SetTarget || b >= SetTarget) && abs(a-b) >= WinMargin {
		if a > b {
			return scoreboard.TeamA
		}
		return scoreboard.TeamB
	}
	return ""
}

// Fold replays the given events, in order, into the state of the set
// identified by setID. Events that are not point actions, carry no set
// reference, or reference a different set are skipped; a single corrupt
// record must never block replay for the rest of the log.
func Fold(setID int64, events []*scoreboard.Event) *Projection {
	p := New()
	for _, ev := range events {
		team, ok := ev.Action.PointTeam()
		if !ok {
			continue
		}
		if ev.SetID == 0 || ev.SetID != setID {
			continue
		}
		p.Apply(team)
	}
	return p
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
