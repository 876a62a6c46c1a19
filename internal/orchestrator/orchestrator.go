// Package orchestrator is the single entry point for scoring commands.
// Voice, gesture and direct channels all converge here as canonical
// commands; per-match sessions serialize processing so the event log
// and the projected set state never diverge.
package orchestrator

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/courtside/rallyboard/internal/gesture"
	"github.com/courtside/rallyboard/internal/metrics"
	"github.com/courtside/rallyboard/internal/notifier"
	"github.com/courtside/rallyboard/internal/projector"
	"github.com/courtside/rallyboard/internal/scoreboard"
	"github.com/courtside/rallyboard/internal/voice"
)

// Orchestrator routes commands through the scoring rules and fans the
// outcome out to storage, displays and announcers.
type Orchestrator struct {
	store        scoreboard.Store
	broadcaster  notifier.Broadcaster
	announcer    notifier.Announcer
	metrics      metrics.Metrics
	metricsStore metrics.MetricsStore

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates an Orchestrator.
func New(store scoreboard.Store, broadcaster notifier.Broadcaster, announcer notifier.Announcer, m metrics.Metrics, ms metrics.MetricsStore) *Orchestrator {
	return &Orchestrator{
		store:        store,
		broadcaster:  broadcaster,
		announcer:    announcer,
		metrics:      m,
		metricsStore: ms,
		sessions:     make(map[string]*session),
	}
}

func (o *Orchestrator) session(matchID string) *session {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, ok := o.sessions[matchID]
	if !ok {
		s = newSession()
		o.sessions[matchID] = s
	}
	return s
}

// Apply processes one canonical command for the match. The returned
// error is reserved for storage and infrastructure failures; rule
// rejections come back as an unapplied Result with a Reason.
func (o *Orchestrator) Apply(matchID string, cmd scoreboard.Command, opts Options) (*Result, error) {
	match, err := o.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}

	s := o.session(matchID)
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Type {
	case scoreboard.CommandPoint:
		return o.applyPoint(s, match, cmd, opts)
	case scoreboard.CommandUndo:
		return o.applyUndo(s, match, cmd, opts)
	case scoreboard.CommandNextSet:
		return o.applyNextSet(s, match, cmd, opts)
	case scoreboard.CommandResetMatch:
		return o.applyReset(s, match, cmd, opts)
	case scoreboard.CommandWhatsScore:
		return o.answerScore(s, match, cmd)
	}
	return nil, fmt.Errorf("unknown command type %q", cmd.Type)
}

// currentSet returns the match's latest set, creating the first one on
// demand so a fresh match can take a point immediately.
func (o *Orchestrator) currentSet(match *scoreboard.Match) (*scoreboard.Set, error) {
	set, err := o.store.LatestSet(match.ID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		set, err = o.store.CreateSet(match.ID)
		if err != nil {
			return nil, err
		}
	}
	return set, nil
}

// projection returns the cached fold for the set, rebuilding it from
// the event log when absent.
func (o *Orchestrator) projection(s *session, matchID string, setID int64) (*projector.Projection, error) {
	if p, ok := s.projections[setID]; ok {
		return p, nil
	}
	events, err := o.store.ListPointEvents(matchID, setID)
	if err != nil {
		return nil, err
	}
	p := projector.Fold(setID, events)
	s.projections[setID] = p
	return p, nil
}

func (o *Orchestrator) applyPoint(s *session, match *scoreboard.Match, cmd scoreboard.Command, opts Options) (*Result, error) {
	set, err := o.currentSet(match)
	if err != nil {
		return nil, err
	}

	proj, err := o.projection(s, match.ID, set.ID)
	if err != nil {
		return nil, err
	}
	if proj.State.Winner != "" {
		o.metrics.IncCommandsRejected()
		log.Info("Point rejected, set already won", "matchID", match.ID, "setID", set.ID, "winner", proj.State.Winner)
		set.SetState = proj.State
		return &Result{Reason: ReasonSetOver, Command: cmd, Match: match, Set: set}, nil
	}

	action := scoreboard.PointAction(cmd.Team)
	eventID, err := o.store.AppendEvent(&scoreboard.Event{
		MatchID:   match.ID,
		Action:    action,
		Timestamp: opts.at().Unix(),
		SetID:     set.ID,
		Payload:   sourcePayload(opts.Source),
	})
	if err != nil {
		return nil, err
	}

	proj.Apply(cmd.Team)
	if err := o.store.SaveSetState(set.ID, proj.State); err != nil {
		return nil, err
	}
	set.SetState = proj.State

	o.metrics.IncPointsScored()
	o.metricsStore.Increment(metrics.KeyPointsScored)

	announcement, threshold := s.checkThresholds(set.ID, proj.State, match)
	if announcement != "" {
		o.metrics.IncCourtChangeAnnouncements()
		log.Info("Court change", "matchID", match.ID, "setID", set.ID, "threshold", threshold)
	}

	o.publishEvent(match, eventID, action, set.ID, opts)
	o.publishScore(match, set, announcement, threshold)

	if proj.State.Winner != "" {
		// Announcements must not hold up scoring; a slow Slack call
		// happens off the session lock.
		go o.announceSetWon(match, set, opts.DryRun)
	}

	log.Info("Point scored",
		"matchID", match.ID, "setID", set.ID, "team", cmd.Team,
		"score", scoreText(match, proj.State), "source", opts.Source)
	return &Result{Applied: true, Command: cmd, Match: match, Set: set, Announcement: announcement}, nil
}

func (o *Orchestrator) applyUndo(s *session, match *scoreboard.Match, cmd scoreboard.Command, opts Options) (*Result, error) {
	last, err := o.store.LatestPointEvent(match.ID)
	if err != nil {
		return nil, err
	}
	if last == nil {
		o.metrics.IncCommandsRejected()
		return &Result{Reason: ReasonNothingToUndo, Command: cmd, Match: match}, nil
	}

	var set *scoreboard.Set
	if last.SetID != 0 {
		set, err = o.store.GetSet(match.ID, last.SetID)
		if err != nil {
			return nil, err
		}
	} else {
		// An event without a set reference counts against the most
		// recent set. Only a match with no sets at all is irrecoverable.
		set, err = o.store.LatestSet(match.ID)
		if err != nil {
			return nil, err
		}
		if set == nil {
			o.metrics.IncCommandsRejected()
			return &Result{Reason: ReasonNothingToUndo, Command: cmd, Match: match}, nil
		}
	}
	team, _ := last.Action.PointTeam()
	if set.Score(team) < 1 {
		// The persisted state disagrees with the log; refuse to push a
		// score negative and leave the log untouched.
		o.metrics.IncCommandsRejected()
		log.Error("Undo aborted, persisted score would go negative",
			"matchID", match.ID, "setID", set.ID, "team", team)
		return &Result{Reason: ReasonNothingToUndo, Command: cmd, Match: match, Set: set}, nil
	}

	if err := o.store.DeleteEvent(last.ID); err != nil {
		return nil, err
	}

	// Rebuild the set from scratch. The fold is order-sensitive, so
	// dropping the entry and replaying is the only correct inverse.
	events, err := o.store.ListPointEvents(match.ID, set.ID)
	if err != nil {
		return nil, err
	}
	proj := projector.Fold(set.ID, events)
	s.projections[set.ID] = proj

	if err := o.store.SaveSetState(set.ID, proj.State); err != nil {
		return nil, err
	}
	set.SetState = proj.State

	o.metrics.IncUndosApplied()
	o.metricsStore.Increment(metrics.KeyUndosApplied)

	o.publishEvent(match, last.ID, scoreboard.ActionUndo, set.ID, opts)
	o.publishScore(match, set, "", 0)

	log.Info("Point undone",
		"matchID", match.ID, "setID", set.ID, "team", team,
		"score", scoreText(match, proj.State), "source", opts.Source)
	return &Result{Applied: true, Command: cmd, Match: match, Set: set}, nil
}

func (o *Orchestrator) applyNextSet(s *session, match *scoreboard.Match, cmd scoreboard.Command, opts Options) (*Result, error) {
	set, err := o.store.CreateSet(match.ID)
	if err != nil {
		return nil, err
	}
	s.projections[set.ID] = projector.New()

	eventID, err := o.store.AppendEvent(&scoreboard.Event{
		MatchID:   match.ID,
		Action:    scoreboard.ActionNextSet,
		Timestamp: opts.at().Unix(),
		SetID:     set.ID,
		Payload:   sourcePayload(opts.Source),
	})
	if err != nil {
		return nil, err
	}

	o.publishEvent(match, eventID, scoreboard.ActionNextSet, set.ID, opts)
	o.publishScore(match, set, "", 0)

	log.Info("Next set started", "matchID", match.ID, "setID", set.ID, "source", opts.Source)
	return &Result{Applied: true, Command: cmd, Match: match, Set: set}, nil
}

func (o *Orchestrator) applyReset(s *session, match *scoreboard.Match, cmd scoreboard.Command, opts Options) (*Result, error) {
	if err := o.store.ResetMatch(match.ID); err != nil {
		return nil, err
	}
	s.clearScoring()

	set, err := o.store.CreateSet(match.ID)
	if err != nil {
		return nil, err
	}
	s.projections[set.ID] = projector.New()

	o.publishEvent(match, 0, scoreboard.ActionResetMatch, set.ID, opts)
	o.publishScore(match, set, "", 0)

	log.Info("Match reset", "matchID", match.ID, "setID", set.ID, "source", opts.Source)
	return &Result{Applied: true, Command: cmd, Match: match, Set: set}, nil
}

// answerScore is read-only. A fresh match without a set answers 0-0;
// it must not create one as a side effect of being asked.
func (o *Orchestrator) answerScore(s *session, match *scoreboard.Match, cmd scoreboard.Command) (*Result, error) {
	set, err := o.store.LatestSet(match.ID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		state := projector.New().State
		return &Result{Command: cmd, Match: match, ScoreText: scoreText(match, state)}, nil
	}
	proj, err := o.projection(s, match.ID, set.ID)
	if err != nil {
		return nil, err
	}
	set.SetState = proj.State
	return &Result{Command: cmd, Match: match, Set: set, ScoreText: scoreText(match, proj.State)}, nil
}

// HandleTranscript runs a voice transcript through the parser and, when
// it resolves, through Apply. Identical transcripts arriving within the
// repeat window are dropped.
func (o *Orchestrator) HandleTranscript(matchID, transcript string, opts Options) (*Result, error) {
	match, err := o.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}

	// Every transcript goes out to displays, including the ones the
	// repeat guard drops a moment later.
	cmd, ok := voice.Parse(transcript, match.TeamA, match.TeamB)
	o.publishTranscript(match, transcript, ok, cmd, opts)

	s := o.session(matchID)
	s.mu.Lock()
	dup := s.isDuplicateTranscript(transcript, opts.at())
	s.mu.Unlock()
	if dup {
		log.Info("Duplicate transcript ignored", "matchID", matchID, "transcript", transcript)
		return &Result{Reason: ReasonDuplicateIgnored, Match: match}, nil
	}

	if !ok {
		o.metrics.IncVoiceUnrecognized()
		log.Info("Unrecognized transcript", "matchID", matchID, "transcript", transcript)
		return &Result{Reason: ReasonUnrecognized, Match: match}, nil
	}

	opts.Source = SourceVoice
	return o.Apply(matchID, cmd, opts)
}

// HandleDetection feeds one gesture frame through the stabilizer and,
// on acceptance, applies the mapped command.
func (o *Orchestrator) HandleDetection(matchID string, d gesture.Detection, opts Options) (*Result, error) {
	match, err := o.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s := o.session(matchID)
	s.mu.Lock()
	if !s.gestureEnabled {
		s.mu.Unlock()
		return &Result{Reason: ReasonGestureDisabled, Match: match}, nil
	}
	accepted, ok := s.stabilizer.Update(d)
	s.mu.Unlock()
	if !ok {
		return &Result{Reason: ReasonPending, Match: match}, nil
	}

	cmd, hasCmd := accepted.Command()
	if !hasCmd {
		return &Result{Reason: ReasonPending, Match: match}, nil
	}

	o.metrics.IncGesturesAccepted()
	log.Info("Gesture accepted", "matchID", matchID, "kind", accepted.Kind, "confidence", accepted.Confidence)

	opts.Source = SourceGesture
	if opts.At.IsZero() {
		opts.At = d.Timestamp
	}
	return o.Apply(matchID, cmd, opts)
}

// SetGestureMode switches the gesture channel on or off for a match.
// The toggle is recorded in the event log for audit but, not being a
// point action, never affects replay.
func (o *Orchestrator) SetGestureMode(matchID string, enabled bool, opts Options) error {
	match, err := o.store.GetMatch(matchID)
	if err != nil {
		return err
	}

	s := o.session(matchID)
	s.mu.Lock()
	s.gestureEnabled = enabled
	if !enabled {
		s.stabilizer.Reset()
	}
	s.mu.Unlock()

	eventID, err := o.store.AppendEvent(&scoreboard.Event{
		MatchID:   match.ID,
		Action:    scoreboard.ActionGestureMode,
		Timestamp: opts.at().Unix(),
		Payload:   []byte(fmt.Sprintf(`{"enabled":%t}`, enabled)),
	})
	if err != nil {
		return err
	}
	o.publishEvent(match, eventID, scoreboard.ActionGestureMode, 0, opts)

	log.Info("Gesture mode changed", "matchID", matchID, "enabled", enabled)
	return nil
}

// GestureMode reports whether the gesture channel is enabled.
func (o *Orchestrator) GestureMode(matchID string) bool {
	s := o.session(matchID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gestureEnabled
}

func (o *Orchestrator) publishScore(match *scoreboard.Match, set *scoreboard.Set, announcement string, threshold int) {
	update := notifier.ScoreUpdate{
		MatchID:             match.ID,
		SetID:               set.ID,
		TeamAName:           match.TeamA,
		TeamBName:           match.TeamB,
		TeamAScore:          set.TeamAScore,
		TeamBScore:          set.TeamBScore,
		Winner:              string(set.Winner),
		ServingTeam:         string(set.ServingTeam),
		TeamAServiceHand:    set.TeamAServiceHand,
		TeamBServiceHand:    set.TeamBServiceHand,
		TeamAMaxConsecutive: set.TeamAMaxConsecutive,
		TeamBMaxConsecutive: set.TeamBMaxConsecutive,
		CourtChange:         announcement != "",
		Threshold:           threshold,
		Announcement:        announcement,
	}
	if err := o.broadcaster.PublishScoreUpdate(update); err != nil {
		log.Error("Score update publish failed", "error", err, "matchID", match.ID)
	}
}

func (o *Orchestrator) publishEvent(match *scoreboard.Match, eventID int64, action scoreboard.EventAction, setID int64, opts Options) {
	event := notifier.MatchEvent{
		MatchID:   match.ID,
		EventID:   eventID,
		Action:    string(action),
		SetID:     setID,
		Timestamp: opts.at().Unix(),
	}
	if err := o.broadcaster.PublishMatchEvent(event); err != nil {
		log.Error("Match event publish failed", "error", err, "matchID", match.ID, "action", action)
	}
}

func (o *Orchestrator) publishTranscript(match *scoreboard.Match, transcript string, recognized bool, cmd scoreboard.Command, opts Options) {
	event := notifier.TranscriptEvent{
		MatchID:    match.ID,
		Transcript: transcript,
		Recognized: recognized,
		Command:    string(cmd.Type),
		Timestamp:  opts.at().Unix(),
	}
	if err := o.broadcaster.PublishTranscript(event); err != nil {
		log.Error("Transcript publish failed", "error", err, "matchID", match.ID)
	}
}

// announceSetWon sends the Slack announcement. Failures are logged and
// never affect the scoring outcome.
func (o *Orchestrator) announceSetWon(match *scoreboard.Match, set *scoreboard.Set, dryRun bool) {
	setNumber := 1
	if sets, err := o.store.ListSets(match.ID); err == nil {
		for i, s := range sets {
			if s.ID == set.ID {
				setNumber = i + 1
				break
			}
		}
	}

	err := o.announcer.SendSetWonNotification(notifier.SetWonAnnouncement{
		MatchID:    match.ID,
		SetNumber:  setNumber,
		TeamAName:  match.TeamA,
		TeamBName:  match.TeamB,
		WinnerName: match.TeamName(set.Winner),
		TeamAScore: set.TeamAScore,
		TeamBScore: set.TeamBScore,
	}, dryRun)
	if err != nil {
		log.Error("Set-won announcement failed", "error", err, "matchID", match.ID, "setID", set.ID)
	}
}

func sourcePayload(source Source) []byte {
	if source == "" {
		source = SourceDirect
	}
	return []byte(fmt.Sprintf(`{"source":%q}`, source))
}
