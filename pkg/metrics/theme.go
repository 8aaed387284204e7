package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ThemeRefreshMetrics records refresh cycles of the theme controller.
type ThemeRefreshMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	changes  *prometheus.CounterVec
}

// NewThemeRefreshMetrics registers the refresh metrics on the provided registerer.
func NewThemeRefreshMetrics(reg prometheus.Registerer) *ThemeRefreshMetrics {
	if reg == nil {
		return &ThemeRefreshMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "theme_refresh_duration_seconds",
		Help:    "Duration of theme refresh cycles in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_refresh_success",
		Help: "Successful theme refresh cycles.",
	}, []string{"source"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_refresh_failure",
		Help: "Failed theme refresh cycles.",
	}, []string{"source"})
	changes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "theme_changes_published",
		Help: "Theme changes pushed to subscribers.",
	}, []string{"source"})
	reg.MustRegister(duration, success, failure, changes)
	return &ThemeRefreshMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		changes:  changes,
	}
}

// ObserveDuration records the duration of a refresh cycle.
func (m *ThemeRefreshMetrics) ObserveDuration(source string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(source)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter.
func (m *ThemeRefreshMetrics) IncSuccess(source string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncFailure increments the failure counter.
func (m *ThemeRefreshMetrics) IncFailure(source string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncChange increments the published-change counter.
func (m *ThemeRefreshMetrics) IncChange(source string) {
	if m == nil || m.changes == nil {
		return
	}
	m.changes.WithLabelValues(normalizeLabel(source)).Inc()
}

func normalizeLabel(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
