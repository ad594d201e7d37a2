// Package metrics provides Prometheus metrics for the analysis service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/JonMunkholm/stockrisk/internal/inventory"
)

var (
	// Analysis metrics
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockrisk_analyses_total",
			Help: "Total number of analysis requests",
		},
		[]string{"format", "status"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockrisk_analysis_duration_seconds",
			Help:    "Time taken to decode and analyze an upload",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"format"},
	)

	AnalysesActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockrisk_analyses_active",
			Help: "Number of analyses currently running",
		},
	)

	RowsAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockrisk_rows_analyzed_total",
			Help: "Total number of inventory rows analyzed",
		},
		[]string{"format"},
	)

	ItemsFlagged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockrisk_items_flagged_total",
			Help: "Total number of bucket entries per risk category",
		},
		[]string{"category"},
	)

	UnresolvedColumns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockrisk_unresolved_columns_total",
			Help: "Schema fields with no matching header, per analysis",
		},
		[]string{"field"},
	)

	// Report metrics
	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockrisk_reports_total",
			Help: "Total number of report requests",
		},
		[]string{"mode", "status"},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockrisk_report_duration_seconds",
			Help:    "Duration of report synthesis calls",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"mode"},
	)

	// Rejections by limiter or rate limiter
	RejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockrisk_rejections_total",
			Help: "Requests rejected before processing",
		},
		[]string{"reason"},
	)
)

// RecordAnalysis records a finished analysis.
func RecordAnalysis(format, status string, duration time.Duration, a *inventory.AggregatedAnalysis) {
	AnalysesTotal.WithLabelValues(format, status).Inc()
	AnalysisDuration.WithLabelValues(format).Observe(duration.Seconds())
	if a == nil {
		return
	}

	RowsAnalyzed.WithLabelValues(format).Add(float64(a.TotalItems))
	for _, c := range inventory.Categories {
		ItemsFlagged.WithLabelValues(string(c)).Add(float64(len(a.Bucket(c))))
	}
	for _, f := range a.Columns.Unresolved() {
		UnresolvedColumns.WithLabelValues(string(f)).Inc()
	}
}

// RecordReport records a finished report request.
func RecordReport(mode, status string, duration time.Duration) {
	ReportsTotal.WithLabelValues(mode, status).Inc()
	ReportDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// RecordRejection counts a request turned away before processing.
func RecordRejection(reason string) {
	RejectionsTotal.WithLabelValues(reason).Inc()
}
