package orchestrator

import (
	"sync"
	"time"

	"github.com/courtside/rallyboard/internal/gesture"
	"github.com/courtside/rallyboard/internal/projector"
)

// transcriptRepeatWindow drops an identical transcript arriving within
// this window of the previous one. Speech recognizers frequently emit
// the same final transcript twice.
const transcriptRepeatWindow = 1200 * time.Millisecond

// session is the in-memory working state for one match. All command
// processing for a match runs under its mutex, which is what makes
// append-then-project atomic without database transactions across
// channels.
type session struct {
	mu sync.Mutex

	// projections caches the folded state per set so forward moves are
	// incremental. Dropped on undo (refold) and reset.
	projections map[int64]*projector.Projection

	// fired tracks which court-change thresholds have been announced
	// per set. Once fired a threshold never fires again for that set,
	// no matter how the score oscillates under undo. Only a match
	// reset clears it.
	fired map[int64]map[int]bool

	// gestureEnabled starts false: camera input must not score a match
	// until someone explicitly turns the channel on.
	gestureEnabled bool
	stabilizer     *gesture.Stabilizer

	lastTranscript   string
	lastTranscriptAt time.Time
}

func newSession() *session {
	return &session{
		projections: make(map[int64]*projector.Projection),
		fired:       make(map[int64]map[int]bool),
		stabilizer:  gesture.NewStabilizer(),
	}
}

// clearScoring wipes everything derived from the event log, keeping the
// channel configuration (gesture mode) intact.
func (s *session) clearScoring() {
	s.projections = make(map[int64]*projector.Projection)
	s.fired = make(map[int64]map[int]bool)
	s.stabilizer.Reset()
	s.lastTranscript = ""
	s.lastTranscriptAt = time.Time{}
}

// isDuplicateTranscript reports whether the transcript repeats the
// previous one within the repeat window, recording it either way.
func (s *session) isDuplicateTranscript(transcript string, at time.Time) bool {
	dup := transcript == s.lastTranscript &&
		!s.lastTranscriptAt.IsZero() &&
		at.Sub(s.lastTranscriptAt) < transcriptRepeatWindow
	s.lastTranscript = transcript
	s.lastTranscriptAt = at
	return dup
}
