package notifier

// ScoreUpdate is the full scoreboard snapshot published after every
// state change. Displays render it without any further queries.
type ScoreUpdate struct {
	MatchID             string
	SetID               int64
	TeamAName           string
	TeamBName           string
	TeamAScore          int
	TeamBScore          int
	Winner              string
	ServingTeam         string
	TeamAServiceHand    int
	TeamBServiceHand    int
	TeamAMaxConsecutive int
	TeamBMaxConsecutive int
	// CourtChange is set when a court-change threshold fired on this
	// update; Announcement carries the spoken text for it.
	CourtChange  bool
	Threshold    int
	Announcement string
}

// MatchEvent mirrors one appended log entry for audit consumers.
type MatchEvent struct {
	MatchID   string
	EventID   int64
	Action    string
	SetID     int64
	Timestamp int64
}

// TranscriptEvent records what the voice channel heard and what it
// resolved to, recognized or not.
type TranscriptEvent struct {
	MatchID    string
	Transcript string
	Recognized bool
	Command    string
	Timestamp  int64
}

// SetWonAnnouncement carries everything the announcer needs to format
// a set-won message.
type SetWonAnnouncement struct {
	MatchID    string
	SetNumber  int
	TeamAName  string
	TeamBName  string
	WinnerName string
	TeamAScore int
	TeamBScore int
}
