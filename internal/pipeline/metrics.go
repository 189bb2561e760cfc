package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the Prometheus collectors fed by workers.
type Metrics struct {
	filings  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	sections prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		filings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemsplit_filings_total",
				Help: "Filings processed, by final status and failure reason.",
			},
			[]string{"status", "reason"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itemsplit_filing_duration_seconds",
				Help:    "Time to parse, segment and store one filing.",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"status"},
		),
		sections: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "itemsplit_sections_per_filing",
				Help:    "Section blocks produced per successful filing.",
				Buckets: prometheus.LinearBuckets(0, 5, 8),
			},
		),
	}
	reg.MustRegister(m.filings, m.duration, m.sections)
	return m
}

func (m *Metrics) observe(snap JobSnapshot, seconds float64) {
	if m == nil {
		return
	}
	status := string(snap.Status)
	m.filings.WithLabelValues(status, snap.Progress.Reason).Inc()
	m.duration.WithLabelValues(status).Observe(seconds)
	if snap.Status == StatusCompleted {
		m.sections.Observe(float64(snap.Progress.Sections))
	}
}
