package scoreboard

import (
	"database/sql"
	"encoding/json"
	"sync"
)

// store handles all database operations for the scoreboard.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// TeamLabel identifies one of the two sides of a match.
type TeamLabel string

const (
	TeamA TeamLabel = "A"
	TeamB TeamLabel = "B"
)

// Other returns the opposing side.
func (t TeamLabel) Other() TeamLabel {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// EventAction is the wire-level action recorded in the event log.
type EventAction string

const (
	ActionPointA      EventAction = "point_a"
	ActionPointB      EventAction = "point_b"
	ActionUndo        EventAction = "undo"
	ActionNextSet     EventAction = "next_set"
	ActionResetMatch  EventAction = "reset_match"
	ActionGestureMode EventAction = "gesture_mode"
)

// PointTeam reports which team an action scores for, if it is a point action.
func (a EventAction) PointTeam() (TeamLabel, bool) {
	switch a {
	case ActionPointA:
		return TeamA, true
	case ActionPointB:
		return TeamB, true
	}
	return "", false
}

// PointAction returns the point action for the given team.
func PointAction(team TeamLabel) EventAction {
	if team == TeamA {
		return ActionPointA
	}
	return ActionPointB
}

// CommandType enumerates the canonical commands every input channel
// converges to before reaching the scoring engine.
type CommandType string

const (
	CommandPoint      CommandType = "point"
	CommandUndo       CommandType = "undo"
	CommandNextSet    CommandType = "next_set"
	CommandResetMatch CommandType = "reset_match"
	CommandWhatsScore CommandType = "whats_score"
)

// Command is the sole vocabulary accepted by the orchestrator. Team is
// only set for point commands.
type Command struct {
	Type CommandType `json:"type"`
	Team TeamLabel   `json:"team,omitempty"`
}

// Match represents a match between two named teams.
type Match struct {
	ID        string `json:"id"`
	TeamA     string `json:"team_a"`
	TeamB     string `json:"team_b"`
	NumSets   int    `json:"num_sets"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// TeamName resolves a team label to its display name.
func (m *Match) TeamName(team TeamLabel) string {
	if team == TeamA {
		return m.TeamA
	}
	return m.TeamB
}

// SetState is the projector-derived state of a single set. It is never
// edited by hand; forward moves update it incrementally and undo rebuilds
// it wholesale by replaying the event log.
type SetState struct {
	TeamAScore          int       `json:"team_a_score"`
	TeamBScore          int       `json:"team_b_score"`
	Winner              TeamLabel `json:"winner,omitempty"`
	TeamAServiceHand    int       `json:"team_a_service_hand"`
	TeamBServiceHand    int       `json:"team_b_service_hand"`
	TeamAMaxConsecutive int       `json:"team_a_max_consecutive"`
	TeamBMaxConsecutive int       `json:"team_b_max_consecutive"`
	ServingTeam         TeamLabel `json:"current_serving_team"`
}

// Score returns the score for the given team.
func (s SetState) Score(team TeamLabel) int {
	if team == TeamA {
		return s.TeamAScore
	}
	return s.TeamBScore
}

// Set is one game within a match.
type Set struct {
	ID      int64  `json:"set_id"`
	MatchID string `json:"match_id"`
	SetState
}

// Event is a single append-only log entry. The id is assigned at
// insertion and defines the canonical replay order; the wall-clock
// timestamp is advisory only.
type Event struct {
	ID        int64           `json:"event_id"`
	MatchID   string          `json:"match_id"`
	Action    EventAction     `json:"action"`
	Timestamp int64           `json:"timestamp"`
	SetID     int64           `json:"set_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
