package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its registry so several instances can coexist in one process.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	basketOps      *prometheus.CounterVec
	orderEvents    *prometheus.CounterVec
	checkoutAmount prometheus.Histogram
	sessionEvents  *prometheus.CounterVec
	authAttempts   *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		basketOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basket_operations_total",
				Help: "Total basket operations",
			},
			[]string{"operation", "status"},
		),
		orderEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_events_total",
				Help: "Orders created and status changes, by resulting status",
			},
			[]string{"event", "status"},
		),
		checkoutAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "checkout_amount",
				Help:    "Order totals at checkout",
				Buckets: prometheus.ExponentialBuckets(100, 2, 10),
			},
		),
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_events_total",
				Help: "Sessions issued and revoked; expiry is not counted",
			},
			[]string{"event"},
		),
		authAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Login and registration attempts",
			},
			[]string{"action", "result"},
		),
	}
}

// Handler exposes the registry in the text exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) TrackBasketOperation(operation string, err error) {
	if m == nil {
		return
	}
	m.basketOps.WithLabelValues(operation, result(err)).Inc()
}

func (m *Metrics) TrackOrderCreated(status string, amount float64) {
	if m == nil {
		return
	}
	m.orderEvents.WithLabelValues("created", status).Inc()
	m.checkoutAmount.Observe(amount)
}

func (m *Metrics) TrackOrderStatus(status string) {
	if m == nil {
		return
	}
	m.orderEvents.WithLabelValues("status_changed", status).Inc()
}

func (m *Metrics) TrackAuth(action string, err error) {
	if m == nil {
		return
	}
	m.authAttempts.WithLabelValues(action, result(err)).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessionEvents.WithLabelValues("issued").Inc()
}

func (m *Metrics) SessionsRevoked(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.sessionEvents.WithLabelValues("revoked").Add(float64(n))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
