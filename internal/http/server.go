package http

import (
	"net/http"

	"github.com/courtside/rallyboard/internal/config"
	"github.com/courtside/rallyboard/internal/metrics"
	"github.com/courtside/rallyboard/internal/orchestrator"
	"github.com/courtside/rallyboard/internal/report"
	"github.com/courtside/rallyboard/internal/scoreboard"
)

func NewServer(store scoreboard.Store, orch *orchestrator.Orchestrator, reports *report.Generator, metricsSvc metrics.Metrics, metricsStore metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Store:          store,
		Orchestrator:   orch,
		Reports:        reports,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/stats", Chain(s.StatsHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{matchID}", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{matchID}/events", Chain(s.ListEventsHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{matchID}/events", Chain(s.AppendEventHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{matchID}/score", Chain(s.ScoreQueryHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{matchID}/report", Chain(s.ReportHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{matchID}/point", Chain(s.PointHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{matchID}/undo", Chain(s.UndoHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{matchID}/next-set", Chain(s.NextSetHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{matchID}/reset", Chain(s.ResetMatchHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{matchID}/voice", Chain(s.VoiceTranscriptHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{matchID}/gesture", Chain(s.GestureHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{matchID}/gesture-mode", Chain(s.GestureModeHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{matchID}/gesture-mode", Chain(s.GetGestureModeHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
