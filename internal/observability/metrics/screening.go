package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Balaji91221/resume-screening-app/internal/core/domain"
)

// ScreeningMetrics records screening outcomes and event publishing health.
type ScreeningMetrics struct {
	service string

	screeningsTotal    *prometheus.CounterVec
	screeningDuration  *prometheus.HistogramVec
	formatsTotal       *prometheus.CounterVec
	noticesTotal       *prometheus.CounterVec
	publishRetries     *prometheus.CounterVec
	breakerTransitions *prometheus.CounterVec
}

func NewScreeningMetrics(service string, registry prometheus.Registerer) *ScreeningMetrics {
	screeningsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "screening",
			Name:      "total",
			Help:      "Total screenings by predicted category and status.",
		},
		[]string{"service", "category", "status"},
	)
	screeningDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "screening",
			Name:      "duration_seconds",
			Help:      "Screening duration in seconds by status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"service", "status"},
	)
	formatsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "screening",
			Name:      "format_total",
			Help:      "Total successful screenings by detected document format.",
		},
		[]string{"service", "format"},
	)
	noticesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "screening",
			Name:      "notices_total",
			Help:      "Total non-fatal notices attached to screenings.",
		},
		[]string{"service", "kind"},
	)
	publishRetries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "retries_total",
			Help:      "Total retried outbound event operations.",
		},
		[]string{"service", "operation"},
	)
	breakerTransitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state transitions by target state.",
		},
		[]string{"service", "operation", "to"},
	)

	registry.MustRegister(screeningsTotal, screeningDuration, formatsTotal, noticesTotal, publishRetries, breakerTransitions)

	return &ScreeningMetrics{
		service:            service,
		screeningsTotal:    screeningsTotal,
		screeningDuration:  screeningDuration,
		formatsTotal:       formatsTotal,
		noticesTotal:       noticesTotal,
		publishRetries:     publishRetries,
		breakerTransitions: breakerTransitions,
	}
}

func (m *ScreeningMetrics) ObserveScreening(category string, format domain.DocumentFormat, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		category = "none"
	}
	if category == "" {
		category = domain.UnknownCategory
	}

	m.screeningsTotal.WithLabelValues(m.service, category, status).Inc()
	m.screeningDuration.WithLabelValues(m.service, status).Observe(duration.Seconds())
	if err == nil && format != "" {
		m.formatsTotal.WithLabelValues(m.service, string(format)).Inc()
	}
}

func (m *ScreeningMetrics) ObserveNotice(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	m.noticesTotal.WithLabelValues(m.service, kind).Inc()
}

func (m *ScreeningMetrics) RecordRetry(operation string, _ int, _ error) {
	m.publishRetries.WithLabelValues(m.service, operation).Inc()
}

func (m *ScreeningMetrics) RecordBreakerTransition(operation, _, to string) {
	m.breakerTransitions.WithLabelValues(m.service, operation, to).Inc()
}
