package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                       sync.Mutex
	pointsScored             int
	undosApplied             int
	commandsRejected         int
	voiceUnrecognized        int
	gesturesAccepted         int
	courtChangeAnnouncements int
	commandDurations         []float64
	slackNotifSent           int
	slackNotifFailed         int
	startupTime              float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commandDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPointsScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pointsScored++
}

func (m *Mock) IncUndosApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undosApplied++
}

func (m *Mock) IncCommandsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandsRejected++
}

func (m *Mock) IncVoiceUnrecognized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.voiceUnrecognized++
}

func (m *Mock) IncGesturesAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gesturesAccepted++
}

func (m *Mock) IncCourtChangeAnnouncements() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courtChangeAnnouncements++
}

func (m *Mock) ObserveCommandDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandDurations = append(m.commandDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PointsScored returns the number of times IncPointsScored was called.
func (m *Mock) PointsScored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointsScored
}

// UndosApplied returns the number of times IncUndosApplied was called.
func (m *Mock) UndosApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undosApplied
}

// CommandsRejected returns the number of times IncCommandsRejected was called.
func (m *Mock) CommandsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commandsRejected
}

// VoiceUnrecognized returns the number of times IncVoiceUnrecognized was called.
func (m *Mock) VoiceUnrecognized() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.voiceUnrecognized
}

// GesturesAccepted returns the number of times IncGesturesAccepted was called.
func (m *Mock) GesturesAccepted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gesturesAccepted
}

// CourtChangeAnnouncements returns the number of times IncCourtChangeAnnouncements was called.
func (m *Mock) CourtChangeAnnouncements() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.courtChangeAnnouncements
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
