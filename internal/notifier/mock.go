package notifier

import "sync"

// MockBroadcaster is a mock implementation of the Broadcaster interface
// for testing. It is safe for concurrent use.
type MockBroadcaster struct {
	mu sync.Mutex

	// Spies for method calls
	PublishScoreUpdateFunc func(update ScoreUpdate) error
	PublishMatchEventFunc  func(event MatchEvent) error
	PublishTranscriptFunc  func(transcript TranscriptEvent) error

	// Call records
	ScoreUpdates []ScoreUpdate
	MatchEvents  []MatchEvent
	Transcripts  []TranscriptEvent
}

// NewMockBroadcaster creates a new mock Broadcaster.
func NewMockBroadcaster() *MockBroadcaster {
	return &MockBroadcaster{}
}

// Reset clears all call records.
func (m *MockBroadcaster) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoreUpdates = nil
	m.MatchEvents = nil
	m.Transcripts = nil
}

func (m *MockBroadcaster) PublishScoreUpdate(update ScoreUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScoreUpdates = append(m.ScoreUpdates, update)
	if m.PublishScoreUpdateFunc != nil {
		return m.PublishScoreUpdateFunc(update)
	}
	return nil
}

func (m *MockBroadcaster) PublishMatchEvent(event MatchEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchEvents = append(m.MatchEvents, event)
	if m.PublishMatchEventFunc != nil {
		return m.PublishMatchEventFunc(event)
	}
	return nil
}

func (m *MockBroadcaster) PublishTranscript(transcript TranscriptEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transcripts = append(m.Transcripts, transcript)
	if m.PublishTranscriptFunc != nil {
		return m.PublishTranscriptFunc(transcript)
	}
	return nil
}

// MockAnnouncer is a mock implementation of the Announcer interface for
// testing. It is safe for concurrent use.
type MockAnnouncer struct {
	mu sync.Mutex

	SendSetWonNotificationFunc func(announcement SetWonAnnouncement, dryRun bool) error

	SetWonCalls []SetWonAnnouncement
}

// NewMockAnnouncer creates a new mock Announcer.
func NewMockAnnouncer() *MockAnnouncer {
	return &MockAnnouncer{}
}

// Reset clears all call records.
func (m *MockAnnouncer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetWonCalls = nil
}

// SetWonCount returns the number of recorded calls. Announcements are
// sent asynchronously, so assertions poll this instead of reading
// SetWonCalls directly.
func (m *MockAnnouncer) SetWonCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SetWonCalls)
}

// LastSetWon returns the most recent recorded announcement.
func (m *MockAnnouncer) LastSetWon() SetWonAnnouncement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SetWonCalls[len(m.SetWonCalls)-1]
}

func (m *MockAnnouncer) SendSetWonNotification(announcement SetWonAnnouncement, dryRun bool) error {
	m.mu.Lock()
	m.SetWonCalls = append(m.SetWonCalls, announcement)
	fn := m.SendSetWonNotificationFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(announcement, dryRun)
	}
	return nil
}
