package orchestrator

import (
	"time"

	"github.com/courtside/rallyboard/internal/scoreboard"
)

// Reason explains why a command was not applied. Rejections are normal
// domain outcomes, not errors; errors are reserved for storage and
// infrastructure failures.
type Reason string

const (
	// ReasonSetOver rejects point commands once a set has a winner.
	ReasonSetOver Reason = "set_over"
	// ReasonNothingToUndo rejects undo when no point event remains.
	ReasonNothingToUndo Reason = "nothing_to_undo"
	// ReasonUnrecognized marks a transcript that matched no command.
	ReasonUnrecognized Reason = "unrecognized"
	// ReasonDuplicateIgnored marks a transcript dropped by the repeat guard.
	ReasonDuplicateIgnored Reason = "duplicate_ignored"
	// ReasonGestureDisabled marks detections received while the gesture
	// channel is switched off for the match.
	ReasonGestureDisabled Reason = "gesture_disabled"
	// ReasonPending marks gesture frames that have not yet accumulated
	// into an accepted gesture.
	ReasonPending Reason = "pending"
)

// Source identifies the input channel a command arrived on.
type Source string

const (
	SourceDirect  Source = "direct"
	SourceVoice   Source = "voice"
	SourceGesture Source = "gesture"
)

// Options carries per-request flags through command processing.
type Options struct {
	Source Source
	// DryRun suppresses outbound Slack announcements.
	DryRun bool
	// At is the command receive time; the zero value means time.Now().
	At time.Time
}

func (o Options) at() time.Time {
	if o.At.IsZero() {
		return time.Now()
	}
	return o.At
}

// Result is the outcome of one command. Applied is false for rejected
// or informational commands, with Reason saying why.
type Result struct {
	Applied bool               `json:"applied"`
	Reason  Reason             `json:"reason,omitempty"`
	Command scoreboard.Command `json:"command"`
	Match   *scoreboard.Match  `json:"match,omitempty"`
	Set     *scoreboard.Set    `json:"set,omitempty"`
	// Announcement is the court-change call when a threshold fired on
	// this command.
	Announcement string `json:"announcement,omitempty"`
	// ScoreText answers a score query in speakable form.
	ScoreText string `json:"score_text,omitempty"`
}
