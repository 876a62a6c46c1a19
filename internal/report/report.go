// Package report renders a finished (or in-progress) match as a plain
// text summary suitable for printing or archiving.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/courtside/rallyboard/internal/scoreboard"
)

// Generator builds match reports from the store.
type Generator struct {
	store scoreboard.Store
}

// New creates a report Generator.
func New(store scoreboard.Store) *Generator {
	return &Generator{store: store}
}

// Generate renders the full report for a match: header, per-set
// breakdown with service tracking, totals, and the event log.
func (g *Generator) Generate(matchID string) (string, error) {
	match, err := g.store.GetMatch(matchID)
	if err != nil {
		return "", err
	}
	sets, err := g.store.ListSets(matchID)
	if err != nil {
		return "", err
	}
	events, err := g.store.ListEvents(matchID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MATCH REPORT\n")
	fmt.Fprintf(&b, "============\n\n")
	fmt.Fprintf(&b, "%s vs %s\n", match.TeamA, match.TeamB)
	fmt.Fprintf(&b, "Match ID: %s\n", match.ID)
	fmt.Fprintf(&b, "Created:  %s\n\n", time.Unix(match.CreatedAt, 0).UTC().Format("2006-01-02 15:04 UTC"))

	var setsWonA, setsWonB, totalA, totalB int
	for i, set := range sets {
		fmt.Fprintf(&b, "Set %d: %s %d - %d %s", i+1, match.TeamA, set.TeamAScore, set.TeamBScore, match.TeamB)
		switch set.Winner {
		case scoreboard.TeamA:
			setsWonA++
			fmt.Fprintf(&b, "  (won by %s)", match.TeamA)
		case scoreboard.TeamB:
			setsWonB++
			fmt.Fprintf(&b, "  (won by %s)", match.TeamB)
		default:
			fmt.Fprintf(&b, "  (in progress)")
		}
		fmt.Fprintf(&b, "\n")
		servingHand := set.TeamAServiceHand
		if set.ServingTeam == scoreboard.TeamB {
			servingHand = set.TeamBServiceHand
		}
		fmt.Fprintf(&b, "  Serving: %s (hand %d)\n", match.TeamName(set.ServingTeam), servingHand)
		fmt.Fprintf(&b, "  Service hands:   %s %d, %s %d\n",
			match.TeamA, set.TeamAServiceHand, match.TeamB, set.TeamBServiceHand)
		fmt.Fprintf(&b, "  Longest streaks: %s %d, %s %d\n\n",
			match.TeamA, set.TeamAMaxConsecutive, match.TeamB, set.TeamBMaxConsecutive)
		totalA += set.TeamAScore
		totalB += set.TeamBScore
	}

	fmt.Fprintf(&b, "Sets won:     %s %d, %s %d\n", match.TeamA, setsWonA, match.TeamB, setsWonB)
	fmt.Fprintf(&b, "Total points: %s %d, %s %d\n\n", match.TeamA, totalA, match.TeamB, totalB)

	fmt.Fprintf(&b, "EVENT LOG\n")
	fmt.Fprintf(&b, "---------\n")
	if len(events) == 0 {
		fmt.Fprintf(&b, "(empty)\n")
	}
	for _, ev := range events {
		ts := time.Unix(ev.Timestamp, 0).UTC().Format("15:04:05")
		if ev.SetID != 0 {
			fmt.Fprintf(&b, "#%-5d %s  %-12s set %d\n", ev.ID, ts, ev.Action, ev.SetID)
		} else {
			fmt.Fprintf(&b, "#%-5d %s  %-12s\n", ev.ID, ts, ev.Action)
		}
	}

	return b.String(), nil
}
