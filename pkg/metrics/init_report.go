package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initReportMetrics() {
	r.ReportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathmetrics_reports_total",
			Help: "Total number of statistics reports computed",
		},
		[]string{"denominator", "status"},
	)

	r.ReportDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathmetrics_report_duration_seconds",
			Help:    "Statistics report computation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
	)

	r.SlowReports = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "pathmetrics_slow_reports_total",
			Help: "Total number of slow report computations (>1s)",
		},
	)
}
