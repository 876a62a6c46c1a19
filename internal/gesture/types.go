package gesture

import (
	"fmt"
	"time"

	"github.com/courtside/rallyboard/internal/scoreboard"
)

// Kind classifies a single video frame's hand gesture.
type Kind string

const (
	KindNone       Kind = "none"
	KindOneFinger  Kind = "one_finger"  // +1 team A
	KindTwoFingers Kind = "two_fingers" // +1 team B
	KindFist       Kind = "fist"        // undo
	KindSwipeRight Kind = "swipe_right" // next set
	KindSwipeLeft  Kind = "swipe_left"  // reset match
)

// Detection is one raw per-frame classification from the external
// recognizer. It is evidence, not yet a command; only the stabilizer
// turns a run of detections into one.
type Detection struct {
	Kind       Kind      `json:"kind"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Validate checks the detection fields are within contract.
func (d Detection) Validate() error {
	switch d.Kind {
	case KindNone, KindOneFinger, KindTwoFingers, KindFist, KindSwipeRight, KindSwipeLeft:
	default:
		return fmt.Errorf("unknown gesture kind %q", d.Kind)
	}
	if d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %f", d.Confidence)
	}
	return nil
}

// Command maps an accepted detection onto the canonical vocabulary.
// The second return is false for kinds that carry no command.
func (d Detection) Command() (scoreboard.Command, bool) {
	switch d.Kind {
	case KindOneFinger:
		return scoreboard.Command{Type: scoreboard.CommandPoint, Team: scoreboard.TeamA}, true
	case KindTwoFingers:
		return scoreboard.Command{Type: scoreboard.CommandPoint, Team: scoreboard.TeamB}, true
	case KindFist:
		return scoreboard.Command{Type: scoreboard.CommandUndo}, true
	case KindSwipeRight:
		return scoreboard.Command{Type: scoreboard.CommandNextSet}, true
	case KindSwipeLeft:
		return scoreboard.Command{Type: scoreboard.CommandResetMatch}, true
	}
	return scoreboard.Command{}, false
}
