package server

import (
	"context"
	"net/http"

	"github.com/clambin/vantage/internal/ideapad"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Panel is the part of panel.Panel served over HTTP
type Panel interface {
	State() ideapad.State
	Busy() bool
	Apply(ctx context.Context, setting ideapad.Setting) error
}

// Server serves the HTTP control panel. If the device could not be read at startup, Server reports
// that error for every request instead of the device's state.
type Server struct {
	panel      Panel
	startupErr error
	router     *mux.Router
	duration   *prometheus.SummaryVec
}

// New returns a Server for the panel. startupErr is the error returned when creating the panel, if any.
func New(p Panel, startupErr error) *Server {
	s := Server{
		panel:      p,
		startupErr: startupErr,
		router:     mux.NewRouter(),
		duration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: "vantage",
			Name:      "http_duration_seconds",
			Help:      "API duration of HTTP requests.",
		}, []string{"path"}),
	}
	s.router.Use(s.prometheusMiddleware)
	s.router.Path("/metrics").Handler(promhttp.Handler())
	addRoutes(s.router, &s)
	return &s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			path, _ = route.GetPathTemplate()
		}
		timer := prometheus.NewTimer(s.duration.WithLabelValues(path))
		next.ServeHTTP(w, r)
		timer.ObserveDuration()
	})
}

// Describe implements the prometheus.Collector interface
func (s *Server) Describe(ch chan<- *prometheus.Desc) {
	s.duration.Describe(ch)
}

// Collect implements the prometheus.Collector interface
func (s *Server) Collect(ch chan<- prometheus.Metric) {
	s.duration.Collect(ch)
}
