// Package gesture debounces raw per-frame gesture detections into
// single accepted commands. A held gesture produces detections at
// camera frame-rate; without temporal hysteresis a one-second fist
// would undo thirty points.
package gesture

import (
	"time"
)

// Stabilization parameters. A gesture must hold steady for MinHold with
// confidence at or above MinConfidence before it is accepted, and after
// an acceptance everything is ignored for the Cooldown window.
const (
	DefaultMinHold       = 600 * time.Millisecond
	DefaultMinConfidence = 0.85
	DefaultCooldown      = 1200 * time.Millisecond
)

// Stabilizer tracks the most recent candidate gesture and accepts it
// once it has persisted long enough at sufficient confidence. Time is
// taken from the detections' frame timestamps, so the state machine is
// deterministic for a given stream.
//
// Not safe for concurrent use; callers serialize per capture session.
type Stabilizer struct {
	minHold       time.Duration
	minConfidence float64
	cooldown      time.Duration

	current    *Detection
	acceptedAt time.Time
}

// NewStabilizer creates a Stabilizer with the default parameters.
func NewStabilizer() *Stabilizer {
	return &Stabilizer{
		minHold:       DefaultMinHold,
		minConfidence: DefaultMinConfidence,
		cooldown:      DefaultCooldown,
	}
}

// Update feeds one frame's detection through the state machine. The
// returned detection (and true) signals an acceptance: the candidate
// held for at least the minimum duration with enough confidence. In all
// other states it returns false: during cooldown, on a kind change
// (which restarts the stability timer), and while evidence is still
// accumulating.
func (s *Stabilizer) Update(d Detection) (Detection, bool) {
	now := d.Timestamp

	// Cooldown: everything is ignored, even a change of kind.
	if !s.acceptedAt.IsZero() && now.Sub(s.acceptedAt) < s.cooldown {
		return Detection{}, false
	}

	// An empty frame clears the candidate.
	if d.Kind == KindNone {
		s.current = nil
		return Detection{}, false
	}

	// New or changed kind restarts the timer.
	if s.current == nil || s.current.Kind != d.Kind {
		s.current = &d
		return Detection{}, false
	}

	// Same kind: keep the highest confidence seen and the earliest start.
	if d.Confidence > s.current.Confidence {
		s.current.Confidence = d.Confidence
	}

	if now.Sub(s.current.Timestamp) >= s.minHold && s.current.Confidence >= s.minConfidence {
		accepted := *s.current
		s.current = nil
		s.acceptedAt = now
		return accepted, true
	}
	return Detection{}, false
}

// Reset clears the candidate and cooldown state.
func (s *Stabilizer) Reset() {
	s.current = nil
	s.acceptedAt = time.Time{}
}
