package scoreboard

import "errors"

// ErrNotFound is returned when a match or set does not exist.
var ErrNotFound = errors.New("scoreboard: not found")

// Store defines the interface for the match, set and event-log storage.
// Event ordering by ascending id is the sole notion of time for replay.
type Store interface {
	CreateMatch(teamA, teamB string, numSets int) (*Match, error)
	GetMatch(matchID string) (*Match, error)
	ListMatches() ([]*Match, error)

	CreateSet(matchID string) (*Set, error)
	GetSet(matchID string, setID int64) (*Set, error)
	// LatestSet returns the most recently created set for the match, or
	// (nil, nil) when the match has no sets yet.
	LatestSet(matchID string) (*Set, error)
	ListSets(matchID string) ([]*Set, error)
	SaveSetState(setID int64, state SetState) error

	// AppendEvent inserts the event and returns its assigned id.
	AppendEvent(ev *Event) (int64, error)
	ListEvents(matchID string) ([]*Event, error)
	// ListPointEvents returns the point events for the match ordered by id
	// ascending. A setID of 0 returns point events across all sets.
	ListPointEvents(matchID string, setID int64) ([]*Event, error)
	// LatestPointEvent returns the most recent point event for the match,
	// or (nil, nil) when there is none.
	LatestPointEvent(matchID string) (*Event, error)
	// DeleteEvent removes a single event. Reserved for undo.
	DeleteEvent(eventID int64) error

	// ResetMatch deletes all sets and events for the match.
	ResetMatch(matchID string) error
	Clear()
}
