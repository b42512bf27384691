package metrics

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	Logins         *prometheus.CounterVec
	LeaveDecisions *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		LeaveDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workflow_leave_decisions_total",
				Help: "Leave requests approved or rejected",
			},
			[]string{"decision"},
		),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "workflow_active_sessions",
			Help: "Sessions currently logged in",
		}),
	}

	reg.MustRegister(m.HTTPRequests, m.Logins, m.LeaveDecisions, m.ActiveSessions)

	return m
}

// UnmatchedRoute labels requests that reached no route.
const UnmatchedRoute = "unmatched"

// Middleware counts requests by route pattern. Requests outside every route
// share the UnmatchedRoute label.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := UnmatchedRoute
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		m.HTTPRequests.WithLabelValues(path, r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}
