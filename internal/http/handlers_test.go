package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/courtside/rallyboard/internal/config"
	"github.com/courtside/rallyboard/internal/database"
	"github.com/courtside/rallyboard/internal/metrics"
	"github.com/courtside/rallyboard/internal/notifier"
	"github.com/courtside/rallyboard/internal/orchestrator"
	"github.com/courtside/rallyboard/internal/report"
	"github.com/courtside/rallyboard/internal/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*Server, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "testdb_http_*.db")
	require.NoError(t, err)

	db, dbTeardown, err := database.InitDB(tmpfile.Name(), "", "", "../../migrations")
	require.NoError(t, err)

	store := scoreboard.New(db)
	metricsSvc := metrics.NewMock()
	metricsStore := metrics.New(db)
	orch := orchestrator.New(store, notifier.NewMockBroadcaster(), notifier.NewMockAnnouncer(), metricsSvc, metricsStore)
	reports := report.New(store)

	server := NewServer(store, orch, reports, metricsSvc, metricsStore, http.NotFoundHandler(), config.Config{})

	teardown := func() {
		dbTeardown()
		os.Remove(tmpfile.Name())
	}
	return server, teardown
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func createMatch(t *testing.T, server *Server) *scoreboard.Match {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/matches", createMatchRequest{TeamA: "Falcons", TeamB: "Hawks"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var match scoreboard.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &match))
	return &match
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()

	rr := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestCreateMatch_Validation(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/matches", createMatchRequest{TeamA: "Falcons"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetMatch(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	rr := doJSON(t, server, http.MethodGet, "/matches/"+match.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var detail matchDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, "Falcons", detail.TeamA)
	assert.Equal(t, 3, detail.NumSets, "num_sets defaults to 3")

	rr = doJSON(t, server, http.MethodGet, "/matches/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPointFlow(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	for i := 0; i < 3; i++ {
		rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamA})
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamB})
	require.Equal(t, http.StatusOK, rr.Code)

	var res orchestrator.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.True(t, res.Applied)
	assert.Equal(t, 3, res.Set.TeamAScore)
	assert.Equal(t, 1, res.Set.TeamBScore)
	assert.Equal(t, scoreboard.TeamB, res.Set.ServingTeam)
	assert.Equal(t, 2, res.Set.TeamAServiceHand)
}

func TestPoint_InvalidBody(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", map[string]string{"team": "C"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPoint_RejectedWhenSetOver(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	for i := 0; i < 35; i++ {
		rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamA})
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamB})
	assert.Equal(t, http.StatusOK, rr.Code)

	var res orchestrator.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.False(t, res.Applied)
	assert.Equal(t, orchestrator.ReasonSetOver, res.Reason)
}

func TestUndo_EmptyLog(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/undo", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var res orchestrator.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.False(t, res.Applied)
	assert.Equal(t, orchestrator.ReasonNothingToUndo, res.Reason)
}

func TestAppendEvent(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/events", map[string]any{
		"action": "gesture_mode", "payload": map[string]bool{"enabled": false},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	// Point actions are refused so the projection cannot be bypassed.
	rr = doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/events", map[string]any{
		"action": "point_a",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScoreQuery(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	// Before any point, the query answers 0-0 without creating a set.
	rr := doJSON(t, server, http.MethodGet, "/matches/"+match.ID+"/score", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var res orchestrator.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "Falcons 0, Hawks 0", res.ScoreText)

	rr = doJSON(t, server, http.MethodGet, "/matches/"+match.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var detail matchDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Empty(t, detail.Sets)

	doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamA})
	rr = doJSON(t, server, http.MethodGet, "/matches/"+match.ID+"/score", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, "Falcons 1, Hawks 0", res.ScoreText)
}

func TestVoiceTranscript(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/voice", transcriptRequest{Transcript: "point falcons"})
	require.Equal(t, http.StatusOK, rr.Code)

	var res orchestrator.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.True(t, res.Applied)
	assert.Equal(t, 1, res.Set.TeamAScore)

	// Nonsense stays a 200 with a reason, not an error.
	rr = doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/voice", transcriptRequest{Transcript: "lovely weather today"})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.False(t, res.Applied)
	assert.Equal(t, orchestrator.ReasonUnrecognized, res.Reason)
}

func TestGestureFlow(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	rr0 := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/gesture-mode", gestureModeRequest{Enabled: true})
	require.Equal(t, http.StatusOK, rr0.Code)

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/gesture", map[string]any{
		"kind": "one_finger", "confidence": 0.9, "timestamp": at,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var res orchestrator.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, orchestrator.ReasonPending, res.Reason)

	rr = doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/gesture", map[string]any{
		"kind": "one_finger", "confidence": 0.9, "timestamp": at.Add(700 * time.Millisecond),
	})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.True(t, res.Applied)
	assert.Equal(t, 1, res.Set.TeamAScore)
}

func TestGesture_InvalidKind(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	rr := doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/gesture", map[string]any{
		"kind": "thumbs_up", "confidence": 0.9,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGestureModeToggle(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	// Off by default: detections are refused until the mode is enabled.
	rr := doJSON(t, server, http.MethodGet, "/matches/"+match.ID+"/gesture-mode", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var mode gestureModeRequest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mode))
	assert.False(t, mode.Enabled)

	rr = doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/gesture", map[string]any{
		"kind": "one_finger", "confidence": 0.99, "timestamp": time.Now(),
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var res orchestrator.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, orchestrator.ReasonGestureDisabled, res.Reason)

	rr = doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/gesture-mode", gestureModeRequest{Enabled: true})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, http.MethodGet, "/matches/"+match.ID+"/gesture-mode", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mode))
	assert.True(t, mode.Enabled)

	rr = doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/gesture", map[string]any{
		"kind": "one_finger", "confidence": 0.99, "timestamp": time.Now(),
	})
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, orchestrator.ReasonPending, res.Reason)
}

func TestReportHandler(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamA})
	rr := doJSON(t, server, http.MethodGet, "/matches/"+match.ID+"/report", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, rr.Body.String(), "Falcons vs Hawks")
}

func TestListEvents(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamA})
	doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamB})

	rr := doJSON(t, server, http.MethodGet, fmt.Sprintf("/matches/%s/events", match.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var events []*scoreboard.Event
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, scoreboard.ActionPointA, events[0].Action)
	assert.Equal(t, scoreboard.ActionPointB, events[1].Action)
}

func TestStatsHandler(t *testing.T) {
	server, teardown := setupServer(t)
	defer teardown()
	match := createMatch(t, server)

	doJSON(t, server, http.MethodPost, "/matches/"+match.ID+"/point", pointRequest{Team: scoreboard.TeamA})

	rr := doJSON(t, server, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var stats map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats["points_scored"])
	assert.Equal(t, 1, stats["matches_created"])
}
