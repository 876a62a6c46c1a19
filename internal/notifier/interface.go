package notifier

// Broadcaster pushes live scoreboard state to downstream displays and
// loggers. Publishing is fire-and-forget from the caller's point of
// view: a failed publish is logged and never rolls back a score.
type Broadcaster interface {
	PublishScoreUpdate(update ScoreUpdate) error
	PublishMatchEvent(event MatchEvent) error
	PublishTranscript(transcript TranscriptEvent) error
}

// Announcer delivers human-facing notifications about notable moments
// (a set being won). This decouples the rest of the application from
// the specific notification provider (e.g., Slack).
type Announcer interface {
	SendSetWonNotification(announcement SetWonAnnouncement, dryRun bool) error
}
