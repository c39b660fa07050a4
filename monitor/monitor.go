// monitor/monitor.go
package monitor

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wfunc/arena/models"
)

type Metrics struct {
	ActiveSessions   prometheus.Gauge
	MessagesReceived prometheus.Counter
	MessageLatency   prometheus.Histogram
	Commands         *prometheus.CounterVec
	Notices          *prometheus.CounterVec
	CoachFallbacks   *prometheus.CounterVec
	DepositAmounts   prometheus.Histogram
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of connected sessions",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of frames received",
		}),
		MessageLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_latency_seconds",
			Help:      "Frame processing latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands dispatched, by action and result",
		}, []string{"action", "result"}),
		Notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_total",
			Help:      "Notices shown, by kind",
		}, []string{"kind"}),
		CoachFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coach_fallbacks_total",
			Help:      "Strategy requests answered with the fallback tips, by reason",
		}, []string{"reason"}),
		DepositAmounts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "deposit_request_amount",
			Help:      "Amounts of submitted deposit requests",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000},
		}),
	}

	reg.MustRegister(
		m.ActiveSessions,
		m.MessagesReceived,
		m.MessageLatency,
		m.Commands,
		m.Notices,
		m.CoachFallbacks,
		m.DepositAmounts,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	registry  *prometheus.Registry
	startTime time.Time
}

// NewMonitor creates a monitor on its own registry, so several monitors
// can live in one process (tests do this).
func NewMonitor(namespace string) *Monitor {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Monitor{
		metrics:   NewMetrics(namespace, registry),
		registry:  registry,
		startTime: time.Now(),
	}
}

// Metrics exposes the raw collectors.
func (m *Monitor) Metrics() *Metrics {
	return m.metrics
}

// Handler serves the registry in the prometheus exposition format.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.startTime)
}

func (m *Monitor) IncActiveSessions() {
	m.metrics.ActiveSessions.Inc()
}

func (m *Monitor) DecActiveSessions() {
	m.metrics.ActiveSessions.Dec()
}

func (m *Monitor) IncMessagesReceived() {
	m.metrics.MessagesReceived.Inc()
}

func (m *Monitor) ObserveMessageLatency(duration time.Duration) {
	m.metrics.MessageLatency.Observe(duration.Seconds())
}

// ObserveCommand counts one dispatched action under its result.
func (m *Monitor) ObserveCommand(action string, err error) {
	m.metrics.Commands.WithLabelValues(action, Result(err)).Inc()
}

func (m *Monitor) ObserveNotice(kind models.NoticeKind) {
	m.metrics.Notices.WithLabelValues(string(kind)).Inc()
}

func (m *Monitor) IncCoachFallback(reason string) {
	m.metrics.CoachFallbacks.WithLabelValues(reason).Inc()
}

func (m *Monitor) ObserveDeposit(amount int64) {
	m.metrics.DepositAmounts.Observe(float64(amount))
}

// Result maps a command error to a metrics label.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	case errors.Is(err, models.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, models.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, models.ErrNotJoinable):
		return "not_joinable"
	case errors.Is(err, models.ErrNotRegistered):
		return "not_registered"
	case errors.Is(err, models.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, models.ErrForbidden):
		return "forbidden"
	case errors.Is(err, models.ErrSubmissionInFlight):
		return "in_flight"
	default:
		return "error"
	}
}
