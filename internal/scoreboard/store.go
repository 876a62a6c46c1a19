package scoreboard

import (
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) CreateMatch(teamA, teamB string, numSets int) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := &Match{
		ID:        uuid.NewString(),
		TeamA:     teamA,
		TeamB:     teamB,
		NumSets:   numSets,
		Status:    "active",
		CreatedAt: time.Now().Unix(),
	}
	_, err := s.db.Exec(`
		INSERT INTO matches (id, team_a, team_b, num_sets, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		match.ID, match.TeamA, match.TeamB, match.NumSets, match.Status, match.CreatedAt)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, team_a, team_b, num_sets, status, created_at
		FROM matches WHERE id = ?`, matchID)
	var m Match
	err := row.Scan(&m.ID, &m.TeamA, &m.TeamB, &m.NumSets, &m.Status, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *store) ListMatches() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, team_a, team_b, num_sets, status, created_at
		FROM matches ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.ID, &m.TeamA, &m.TeamB, &m.NumSets, &m.Status, &m.CreatedAt); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

func (s *store) CreateSet(matchID string) (*Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := &Set{
		MatchID: matchID,
		SetState: SetState{
			TeamAServiceHand: 1,
			TeamBServiceHand: 1,
			ServingTeam:      TeamA,
		},
	}
	res, err := s.db.Exec(`
		INSERT INTO sets (match_id, team_a_score, team_b_score, winner, team_a_service_hand, team_b_service_hand, team_a_max_consecutive, team_b_max_consecutive, serving_team)
		VALUES (?, 0, 0, NULL, 1, 1, 0, 0, ?)`,
		matchID, TeamA)
	if err != nil {
		return nil, err
	}
	set.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (s *store) GetSet(matchID string, setID int64) (*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectSetQuery+` WHERE id = ? AND match_id = ?`, setID, matchID)
	set, err := scanSet(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return set, err
}

func (s *store) LatestSet(matchID string) (*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectSetQuery+` WHERE match_id = ? ORDER BY id DESC LIMIT 1`, matchID)
	set, err := scanSet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return set, err
}

func (s *store) ListSets(matchID string) ([]*Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectSetQuery+` WHERE match_id = ? ORDER BY id ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []*Set
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			log.Error("Failed to scan set row", "error", err)
			continue
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func (s *store) SaveSetState(setID int64, state SetState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var winner any
	if state.Winner != "" {
		winner = string(state.Winner)
	}
	_, err := s.db.Exec(`
		UPDATE sets SET
			team_a_score = ?,
			team_b_score = ?,
			winner = ?,
			team_a_service_hand = ?,
			team_b_service_hand = ?,
			team_a_max_consecutive = ?,
			team_b_max_consecutive = ?,
			serving_team = ?
		WHERE id = ?`,
		state.TeamAScore, state.TeamBScore, winner,
		state.TeamAServiceHand, state.TeamBServiceHand,
		state.TeamAMaxConsecutive, state.TeamBMaxConsecutive,
		state.ServingTeam, setID)
	return err
}

func (s *store) AppendEvent(ev *Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	var setID any
	if ev.SetID != 0 {
		setID = ev.SetID
	}
	var payload any
	if len(ev.Payload) > 0 {
		payload = string(ev.Payload)
	}
	res, err := s.db.Exec(`
		INSERT INTO events (match_id, action, timestamp, set_id, payload_json)
		VALUES (?, ?, ?, ?, ?)`,
		ev.MatchID, ev.Action, ev.Timestamp, setID, payload)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	ev.ID = id
	return id, nil
}

func (s *store) ListEvents(matchID string) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEvents(selectEventQuery+` WHERE match_id = ? ORDER BY id ASC`, matchID)
}

func (s *store) ListPointEvents(matchID string, setID int64) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if setID != 0 {
		return s.queryEvents(selectEventQuery+`
			WHERE match_id = ? AND action IN (?, ?) AND set_id = ?
			ORDER BY id ASC`,
			matchID, ActionPointA, ActionPointB, setID)
	}
	return s.queryEvents(selectEventQuery+`
		WHERE match_id = ? AND action IN (?, ?)
		ORDER BY id ASC`,
		matchID, ActionPointA, ActionPointB)
}

func (s *store) LatestPointEvent(matchID string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectEventQuery+`
		WHERE match_id = ? AND action IN (?, ?)
		ORDER BY id DESC LIMIT 1`,
		matchID, ActionPointA, ActionPointB)
	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ev, err
}

func (s *store) DeleteEvent(eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, eventID)
	return err
}

func (s *store) ResetMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM events WHERE match_id = ?`, matchID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sets WHERE match_id = ?`, matchID); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Clear wipes all data. Only used by the admin clear endpoint and tests.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"events", "sets", "matches"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
}

const selectSetQuery = `
	SELECT id, match_id, team_a_score, team_b_score, winner, team_a_service_hand, team_b_service_hand, team_a_max_consecutive, team_b_max_consecutive, serving_team
	FROM sets`

const selectEventQuery = `
	SELECT id, match_id, action, timestamp, set_id, payload_json
	FROM events`

// scanSet is a helper to scan a single set row.
func scanSet(scanner interface{ Scan(...any) error }) (*Set, error) {
	var set Set
	var winner sql.NullString
	err := scanner.Scan(
		&set.ID, &set.MatchID, &set.TeamAScore, &set.TeamBScore, &winner,
		&set.TeamAServiceHand, &set.TeamBServiceHand,
		&set.TeamAMaxConsecutive, &set.TeamBMaxConsecutive, &set.ServingTeam,
	)
	if err != nil {
		return nil, err
	}
	if winner.Valid {
		set.Winner = TeamLabel(winner.String)
	}
	return &set, nil
}

// scanEvent is a helper to scan a single event row.
func scanEvent(scanner interface{ Scan(...any) error }) (*Event, error) {
	var ev Event
	var setID sql.NullInt64
	var payload sql.NullString
	err := scanner.Scan(&ev.ID, &ev.MatchID, &ev.Action, &ev.Timestamp, &setID, &payload)
	if err != nil {
		return nil, err
	}
	ev.SetID = setID.Int64
	if payload.Valid && payload.String != "" {
		ev.Payload = []byte(payload.String)
	}
	return &ev, nil
}

func (s *store) queryEvents(query string, args ...any) ([]*Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			log.Error("Failed to scan event row", "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
