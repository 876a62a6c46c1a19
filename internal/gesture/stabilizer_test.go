package gesture_test

import (
	"testing"
	"time"

	"github.com/courtside/rallyboard/internal/gesture"
	"github.com/courtside/rallyboard/internal/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func det(kind gesture.Kind, conf float64, offset time.Duration) gesture.Detection {
	return gesture.Detection{Kind: kind, Confidence: conf, Timestamp: t0.Add(offset)}
}

func TestStabilizer_SingleFrameNeverAccepted(t *testing.T) {
	s := gesture.NewStabilizer()

	_, ok := s.Update(det(gesture.KindFist, 0.99, 0))
	assert.False(t, ok, "an instantaneous detection must not be accepted alone")
}

func TestStabilizer_AcceptsStableRun(t *testing.T) {
	s := gesture.NewStabilizer()

	// 30fps-ish frames of the same gesture.
	var accepted gesture.Detection
	var ok bool
	for i := 0; i <= 20; i++ {
		accepted, ok = s.Update(det(gesture.KindOneFinger, 0.9, time.Duration(i)*40*time.Millisecond))
		if ok {
			break
		}
	}
	require.True(t, ok, "a stable high-confidence run must be accepted")
	assert.Equal(t, gesture.KindOneFinger, accepted.Kind)

	cmd, hasCmd := accepted.Command()
	require.True(t, hasCmd)
	assert.Equal(t, scoreboard.CommandPoint, cmd.Type)
	assert.Equal(t, scoreboard.TeamA, cmd.Team)
}

func TestStabilizer_LowConfidenceNeverAccepted(t *testing.T) {
	s := gesture.NewStabilizer()

	for i := 0; i <= 50; i++ {
		_, ok := s.Update(det(gesture.KindFist, 0.5, time.Duration(i)*40*time.Millisecond))
		assert.False(t, ok)
	}
}

func TestStabilizer_ConfidenceIsMaxObserved(t *testing.T) {
	s := gesture.NewStabilizer()

	// One confident frame in an otherwise mediocre run is enough, as long
	// as the run itself is stable.
	s.Update(det(gesture.KindFist, 0.6, 0))
	s.Update(det(gesture.KindFist, 0.95, 100*time.Millisecond))
	accepted, ok := s.Update(det(gesture.KindFist, 0.6, 700*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, 0.95, accepted.Confidence)
}

func TestStabilizer_KindChangeRestartsTimer(t *testing.T) {
	s := gesture.NewStabilizer()

	s.Update(det(gesture.KindFist, 0.9, 0))
	s.Update(det(gesture.KindFist, 0.9, 400*time.Millisecond))
	// Switch kind just before the fist would qualify.
	_, ok := s.Update(det(gesture.KindTwoFingers, 0.9, 500*time.Millisecond))
	assert.False(t, ok)
	// The new candidate's clock starts at 500ms, so 900ms is not enough.
	_, ok = s.Update(det(gesture.KindTwoFingers, 0.9, 900*time.Millisecond))
	assert.False(t, ok)
	accepted, ok := s.Update(det(gesture.KindTwoFingers, 0.9, 1200*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, gesture.KindTwoFingers, accepted.Kind)
}

func TestStabilizer_CooldownIgnoresEverything(t *testing.T) {
	s := gesture.NewStabilizer()

	s.Update(det(gesture.KindFist, 0.9, 0))
	_, ok := s.Update(det(gesture.KindFist, 0.9, 700*time.Millisecond))
	require.True(t, ok)

	// Inside the cooldown window nothing registers, even a change of kind
	// held long enough on its own.
	_, ok = s.Update(det(gesture.KindOneFinger, 0.99, 800*time.Millisecond))
	assert.False(t, ok)
	_, ok = s.Update(det(gesture.KindOneFinger, 0.99, 1800*time.Millisecond))
	assert.False(t, ok)

	// After the cooldown a fresh run is needed from scratch.
	_, ok = s.Update(det(gesture.KindOneFinger, 0.99, 2000*time.Millisecond))
	assert.False(t, ok)
	accepted, ok := s.Update(det(gesture.KindOneFinger, 0.99, 2700*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, gesture.KindOneFinger, accepted.Kind)
}

func TestStabilizer_NoneClearsCandidate(t *testing.T) {
	s := gesture.NewStabilizer()

	s.Update(det(gesture.KindFist, 0.9, 0))
	s.Update(det(gesture.KindNone, 0, 300*time.Millisecond))
	// The fist run was broken; this frame starts a new candidate.
	_, ok := s.Update(det(gesture.KindFist, 0.9, 650*time.Millisecond))
	assert.False(t, ok)
}

func TestDetection_Validate(t *testing.T) {
	assert.NoError(t, det(gesture.KindFist, 0.5, 0).Validate())
	assert.Error(t, det("thumbs_up", 0.5, 0).Validate())
	assert.Error(t, det(gesture.KindFist, 1.5, 0).Validate())
	assert.Error(t, det(gesture.KindFist, -0.1, 0).Validate())
}

func TestDetection_CommandMapping(t *testing.T) {
	tests := []struct {
		kind gesture.Kind
		want scoreboard.Command
	}{
		{gesture.KindOneFinger, scoreboard.Command{Type: scoreboard.CommandPoint, Team: scoreboard.TeamA}},
		{gesture.KindTwoFingers, scoreboard.Command{Type: scoreboard.CommandPoint, Team: scoreboard.TeamB}},
		{gesture.KindFist, scoreboard.Command{Type: scoreboard.CommandUndo}},
		{gesture.KindSwipeRight, scoreboard.Command{Type: scoreboard.CommandNextSet}},
		{gesture.KindSwipeLeft, scoreboard.Command{Type: scoreboard.CommandResetMatch}},
	}
	for _, tt := range tests {
		cmd, ok := gesture.Detection{Kind: tt.kind}.Command()
		require.True(t, ok, "kind %s", tt.kind)
		assert.Equal(t, tt.want, cmd)
	}

	_, ok := gesture.Detection{Kind: gesture.KindNone}.Command()
	assert.False(t, ok)
}
