package scoreboard

import (
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateMatchFunc      func(teamA, teamB string, numSets int) (*Match, error)
	GetMatchFunc         func(matchID string) (*Match, error)
	ListMatchesFunc      func() ([]*Match, error)
	CreateSetFunc        func(matchID string) (*Set, error)
	GetSetFunc           func(matchID string, setID int64) (*Set, error)
	LatestSetFunc        func(matchID string) (*Set, error)
	ListSetsFunc         func(matchID string) ([]*Set, error)
	SaveSetStateFunc     func(setID int64, state SetState) error
	AppendEventFunc      func(ev *Event) (int64, error)
	ListEventsFunc       func(matchID string) ([]*Event, error)
	ListPointEventsFunc  func(matchID string, setID int64) ([]*Event, error)
	LatestPointEventFunc func(matchID string) (*Event, error)
	DeleteEventFunc      func(eventID int64) error
	ResetMatchFunc       func(matchID string) error
	ClearFunc            func()

	// Call records
	AppendEventCalls  []*Event
	SaveSetStateCalls []struct {
		SetID int64
		State SetState
	}
	DeleteEventCalls []int64
	ResetMatchCalls  []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendEventCalls = nil
	m.SaveSetStateCalls = nil
	m.DeleteEventCalls = nil
	m.ResetMatchCalls = nil
}

func (m *MockStore) CreateMatch(teamA, teamB string, numSets int) (*Match, error) {
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(teamA, teamB, numSets)
	}
	return &Match{ID: "mock-match", TeamA: teamA, TeamB: teamB, NumSets: numSets}, nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListMatches() ([]*Match, error) {
	if m.ListMatchesFunc != nil {
		return m.ListMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) CreateSet(matchID string) (*Set, error) {
	if m.CreateSetFunc != nil {
		return m.CreateSetFunc(matchID)
	}
	return &Set{ID: 1, MatchID: matchID, SetState: SetState{TeamAServiceHand: 1, TeamBServiceHand: 1, ServingTeam: TeamA}}, nil
}

func (m *MockStore) GetSet(matchID string, setID int64) (*Set, error) {
	if m.GetSetFunc != nil {
		return m.GetSetFunc(matchID, setID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) LatestSet(matchID string) (*Set, error) {
	if m.LatestSetFunc != nil {
		return m.LatestSetFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) ListSets(matchID string) ([]*Set, error) {
	if m.ListSetsFunc != nil {
		return m.ListSetsFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) SaveSetState(setID int64, state SetState) error {
	m.mu.Lock()
	m.SaveSetStateCalls = append(m.SaveSetStateCalls, struct {
		SetID int64
		State SetState
	}{setID, state})
	m.mu.Unlock()
	if m.SaveSetStateFunc != nil {
		return m.SaveSetStateFunc(setID, state)
	}
	return nil
}

func (m *MockStore) AppendEvent(ev *Event) (int64, error) {
	m.mu.Lock()
	m.AppendEventCalls = append(m.AppendEventCalls, ev)
	m.mu.Unlock()
	if m.AppendEventFunc != nil {
		return m.AppendEventFunc(ev)
	}
	return int64(len(m.AppendEventCalls)), nil
}

func (m *MockStore) ListEvents(matchID string) ([]*Event, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) ListPointEvents(matchID string, setID int64) ([]*Event, error) {
	if m.ListPointEventsFunc != nil {
		return m.ListPointEventsFunc(matchID, setID)
	}
	return nil, nil
}

func (m *MockStore) LatestPointEvent(matchID string) (*Event, error) {
	if m.LatestPointEventFunc != nil {
		return m.LatestPointEventFunc(matchID)
	}
	return nil, nil
}

func (m *MockStore) DeleteEvent(eventID int64) error {
	m.mu.Lock()
	m.DeleteEventCalls = append(m.DeleteEventCalls, eventID)
	m.mu.Unlock()
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(eventID)
	}
	return nil
}

func (m *MockStore) ResetMatch(matchID string) error {
	m.mu.Lock()
	m.ResetMatchCalls = append(m.ResetMatchCalls, matchID)
	m.mu.Unlock()
	if m.ResetMatchFunc != nil {
		return m.ResetMatchFunc(matchID)
	}
	return nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
