package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PointsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_points_scored_total",
			Help: "The total number of points recorded across all matches.",
		}),
		UndosApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_undos_applied_total",
			Help: "The total number of undo commands that removed a point.",
		}),
		CommandsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_commands_rejected_total",
			Help: "The total number of commands rejected by the scoring rules.",
		}),
		VoiceUnrecognized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_voice_unrecognized_total",
			Help: "The total number of voice transcripts that matched no command.",
		}),
		GesturesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_gestures_accepted_total",
			Help: "The total number of gestures accepted by the stabilizer.",
		}),
		CourtChangeAnnouncements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_court_change_announcements_total",
			Help: "The total number of court-change announcements emitted.",
		}),
		CommandDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rallyboard_command_duration_seconds",
			Help:    "The duration of individual command processing.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rallyboard_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rallyboard_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PointsScored,
		s.UndosApplied,
		s.CommandsRejected,
		s.VoiceUnrecognized,
		s.GesturesAccepted,
		s.CourtChangeAnnouncements,
		s.CommandDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPointsScored() {
	s.PointsScored.Inc()
}

func (s *Service) IncUndosApplied() {
	s.UndosApplied.Inc()
}

func (s *Service) IncCommandsRejected() {
	s.CommandsRejected.Inc()
}

func (s *Service) IncVoiceUnrecognized() {
	s.VoiceUnrecognized.Inc()
}

func (s *Service) IncGesturesAccepted() {
	s.GesturesAccepted.Inc()
}

func (s *Service) IncCourtChangeAnnouncements() {
	s.CourtChangeAnnouncements.Inc()
}

func (s *Service) ObserveCommandDuration(duration float64) {
	s.CommandDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
