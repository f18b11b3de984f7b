package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "riderquiz"

// Metrics exposes Prometheus collectors for quiz activity. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	sessionsStarted    prometheus.Counter
	reports            *prometheus.CounterVec
	parseFailures      prometheus.Counter
	chatTurns          *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
}

// MustNewMetrics registers the collectors with reg, reusing collectors that
// are already registered under the same names.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "sessions_started_total",
			Help:      "Number of quiz sessions started or restarted.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Report generation attempts by outcome.",
		}, []string{"status"}),
		parseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "parse_failures_total",
			Help:      "Model responses that could not be parsed into a report.",
		}),
		chatTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Chat turns by outcome.",
		}, []string{"status"}),
		generationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Latency of text generation calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"kind", "status"}),
	}

	m.sessionsStarted = register(reg, m.sessionsStarted)
	m.reports = register(reg, m.reports)
	m.parseFailures = register(reg, m.parseFailures)
	m.chatTurns = register(reg, m.chatTurns)
	m.generationDuration = register(reg, m.generationDuration)
	return m
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) IncSessionsStarted() {
	if m == nil {
		return
	}
	m.sessionsStarted.Inc()
}

// IncReport counts a report attempt; status is "success", "parse_error",
// "generation_error", "invalid_key", "timeout" or "cancelled".
func (m *Metrics) IncReport(status string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(status).Inc()
}

func (m *Metrics) IncParseFailure() {
	if m == nil {
		return
	}
	m.parseFailures.Inc()
}

// IncChatTurn counts a chat turn; status is "success" or "fallback".
func (m *Metrics) IncChatTurn(status string) {
	if m == nil {
		return
	}
	m.chatTurns.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveGeneration(kind, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.generationDuration.WithLabelValues(kind, status).Observe(d.Seconds())
}
