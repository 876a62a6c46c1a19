package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/courtside/rallyboard/internal/gesture"
	"github.com/courtside/rallyboard/internal/metrics"
	"github.com/courtside/rallyboard/internal/orchestrator"
	"github.com/courtside/rallyboard/internal/scoreboard"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.MetricsStore.GetAll()
		if err != nil {
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			log.Error("Failed to get stats from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Store.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.TeamA == "" || req.TeamB == "" {
			http.Error(w, "team_a and team_b are required", http.StatusBadRequest)
			return
		}
		if req.NumSets <= 0 {
			req.NumSets = 3
		}

		match, err := s.Store.CreateMatch(req.TeamA, req.TeamB, req.NumSets)
		if err != nil {
			http.Error(w, "Failed to create match", http.StatusInternalServerError)
			log.Error("Failed to create match", "error", err)
			return
		}
		s.MetricsStore.Increment(metrics.KeyMatchesCreated)
		log.Info("Match created", "matchID", match.ID, "teamA", match.TeamA, "teamB", match.TeamB)
		respondJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.ListMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		match, err := s.Store.GetMatch(matchID)
		if err != nil {
			respondStoreError(w, err, "Failed to get match")
			return
		}
		sets, err := s.Store.ListSets(matchID)
		if err != nil {
			http.Error(w, "Failed to get sets", http.StatusInternalServerError)
			log.Error("Failed to get sets from store", "error", err, "matchID", matchID)
			return
		}
		respondJSON(w, http.StatusOK, matchDetail{Match: match, Sets: sets})
	}
}

func (s *Server) ListEventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		if _, err := s.Store.GetMatch(matchID); err != nil {
			respondStoreError(w, err, "Failed to get match")
			return
		}
		events, err := s.Store.ListEvents(matchID)
		if err != nil {
			http.Error(w, "Failed to get events", http.StatusInternalServerError)
			log.Error("Failed to get events from store", "error", err, "matchID", matchID)
			return
		}
		respondJSON(w, http.StatusOK, events)
	}
}

// AppendEventHandler records an arbitrary event in the match log. It is
// an administrative escape hatch; point actions must go through the
// point endpoint so the projection stays in step.
func (s *Server) AppendEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		if _, err := s.Store.GetMatch(matchID); err != nil {
			respondStoreError(w, err, "Failed to get match")
			return
		}

		var ev scoreboard.Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if ev.Action == "" {
			http.Error(w, "action is required", http.StatusBadRequest)
			return
		}
		if _, isPoint := ev.Action.PointTeam(); isPoint {
			http.Error(w, "point events must go through the point endpoint", http.StatusBadRequest)
			return
		}
		ev.MatchID = matchID

		if _, err := s.Store.AppendEvent(&ev); err != nil {
			http.Error(w, "Failed to append event", http.StatusInternalServerError)
			log.Error("Failed to append event", "error", err, "matchID", matchID)
			return
		}
		log.Info("Event appended", "matchID", matchID, "action", ev.Action, "eventID", ev.ID)
		respondJSON(w, http.StatusCreated, ev)
	}
}

func (s *Server) PointHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Team != scoreboard.TeamA && req.Team != scoreboard.TeamB {
			http.Error(w, `team must be "A" or "B"`, http.StatusBadRequest)
			return
		}

		cmd := scoreboard.Command{Type: scoreboard.CommandPoint, Team: req.Team}
		s.applyCommand(w, r, cmd)
	}
}

func (s *Server) UndoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.applyCommand(w, r, scoreboard.Command{Type: scoreboard.CommandUndo})
	}
}

func (s *Server) NextSetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.applyCommand(w, r, scoreboard.Command{Type: scoreboard.CommandNextSet})
	}
}

func (s *Server) ResetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.applyCommand(w, r, scoreboard.Command{Type: scoreboard.CommandResetMatch})
	}
}

func (s *Server) ScoreQueryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.applyCommand(w, r, scoreboard.Command{Type: scoreboard.CommandWhatsScore})
	}
}

// applyCommand runs one direct command through the orchestrator and
// writes the Result. Rule rejections are normal outcomes and stay 200;
// the body carries applied=false and the reason.
func (s *Server) applyCommand(w http.ResponseWriter, r *http.Request, cmd scoreboard.Command) {
	matchID := r.PathValue("matchID")
	start := time.Now()
	res, err := s.Orchestrator.Apply(matchID, cmd, orchestrator.Options{
		Source: orchestrator.SourceDirect,
		DryRun: isDryRunFromContext(r),
	})
	if err != nil {
		respondStoreError(w, err, "Failed to apply command")
		return
	}
	s.Metrics.ObserveCommandDuration(time.Since(start).Seconds())
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) VoiceTranscriptHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		var req transcriptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Transcript == "" {
			http.Error(w, "transcript is required", http.StatusBadRequest)
			return
		}

		res, err := s.Orchestrator.HandleTranscript(matchID, req.Transcript, orchestrator.Options{
			DryRun: isDryRunFromContext(r),
		})
		if err != nil {
			respondStoreError(w, err, "Failed to handle transcript")
			return
		}
		// Unrecognized and duplicate transcripts are normal outcomes for
		// this channel, so the response stays 200.
		respondJSON(w, http.StatusOK, res)
	}
}

func (s *Server) GestureHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		var d gesture.Detection
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if d.Timestamp.IsZero() {
			d.Timestamp = time.Now()
		}
		if err := d.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		res, err := s.Orchestrator.HandleDetection(matchID, d, orchestrator.Options{
			DryRun: isDryRunFromContext(r),
		})
		if err != nil {
			respondStoreError(w, err, "Failed to handle gesture")
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

func (s *Server) GestureModeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		var req gestureModeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if err := s.Orchestrator.SetGestureMode(matchID, req.Enabled, orchestrator.Options{}); err != nil {
			respondStoreError(w, err, "Failed to set gesture mode")
			return
		}
		respondJSON(w, http.StatusOK, gestureModeRequest{Enabled: req.Enabled})
	}
}

func (s *Server) GetGestureModeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		if _, err := s.Store.GetMatch(matchID); err != nil {
			respondStoreError(w, err, "Failed to get match")
			return
		}
		respondJSON(w, http.StatusOK, gestureModeRequest{Enabled: s.Orchestrator.GestureMode(matchID)})
	}
}

func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("matchID")
		text, err := s.Reports.Generate(matchID)
		if err != nil {
			respondStoreError(w, err, "Failed to generate report")
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, text)
	}
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// respondStoreError maps store errors onto HTTP statuses.
func respondStoreError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, scoreboard.ErrNotFound) {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}
	log.Error(msg, "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}
