package metrics

// MetricsStore persists lifetime counters across restarts. Prometheus
// counters reset with the process; these do not.
type MetricsStore interface {
	Increment(key Key)
	GetAll() (map[string]int, error)
}

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPointsScored()
	IncUndosApplied()
	IncCommandsRejected()
	IncVoiceUnrecognized()
	IncGesturesAccepted()
	IncCourtChangeAnnouncements()
	ObserveCommandDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
