package http

import (
	"net/http"

	"github.com/courtside/rallyboard/internal/config"
	"github.com/courtside/rallyboard/internal/metrics"
	"github.com/courtside/rallyboard/internal/orchestrator"
	"github.com/courtside/rallyboard/internal/report"
	"github.com/courtside/rallyboard/internal/scoreboard"
)

type Server struct {
	Store          scoreboard.Store
	Orchestrator   *orchestrator.Orchestrator
	Reports        *report.Generator
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

// createMatchRequest is the body for POST /matches.
type createMatchRequest struct {
	TeamA   string `json:"team_a"`
	TeamB   string `json:"team_b"`
	NumSets int    `json:"num_sets"`
}

// pointRequest is the body for POST /matches/{matchID}/point.
type pointRequest struct {
	Team scoreboard.TeamLabel `json:"team"`
}

// transcriptRequest is the body for POST /matches/{matchID}/voice.
type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

// gestureModeRequest is the body for POST /matches/{matchID}/gesture-mode.
type gestureModeRequest struct {
	Enabled bool `json:"enabled"`
}

// matchDetail is the response for GET /matches/{matchID}.
type matchDetail struct {
	*scoreboard.Match
	Sets []*scoreboard.Set `json:"sets"`
}
