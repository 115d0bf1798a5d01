package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "estimator_"

	ResultSuccess = "success"
	ResultError   = "error"

	UndoApplied = "applied"
	UndoEmpty   = "empty"
)

var (
	registerOnce sync.Once

	editsTotal      *prometheus.CounterVec
	undoTotal       *prometheus.CounterVec
	analysisTotal   *prometheus.CounterVec
	analysisLatency *prometheus.HistogramVec
	exportTotal     *prometheus.CounterVec
	captureTotal    *prometheus.CounterVec
	activeSessions  prometheus.Gauge
)

// Init registers the estimator metrics with the default registry. Safe to
// call more than once.
func Init() {
	registerOnce.Do(func() {
		editsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "room_edits_total",
				Help: "Total room edits by operation and result",
			},
			[]string{"op", "result"},
		)
		undoTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "undo_total",
				Help: "Total undo requests by outcome",
			},
			[]string{"outcome"},
		)
		analysisTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "analysis_total",
				Help: "Total floor plan analyses by source and result",
			},
			[]string{"source", "result"},
		)
		analysisLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "analysis_latency_seconds",
				Help:    "Floor plan analysis latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total quote exports by format and result",
			},
			[]string{"format", "result"},
		)
		captureTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "capture_total",
				Help: "Total manual capture outcomes",
			},
			[]string{"outcome"},
		)
		activeSessions = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "active_sessions",
				Help: "Number of live estimating sessions",
			},
		)

		prometheus.MustRegister(
			editsTotal,
			undoTotal,
			analysisTotal,
			analysisLatency,
			exportTotal,
			captureTotal,
			activeSessions,
		)
	})
}

func resultOf(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// IncEdit counts a room edit.
func IncEdit(op string, err error) {
	if op == "" {
		op = "unknown"
	}
	if editsTotal != nil {
		editsTotal.WithLabelValues(op, resultOf(err)).Inc()
	}
}

func IncUndo(applied bool) {
	outcome := UndoEmpty
	if applied {
		outcome = UndoApplied
	}
	if undoTotal != nil {
		undoTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveAnalysis records an analysis (detected or imported) and its latency.
func ObserveAnalysis(source string, err error, duration time.Duration) {
	if source == "" {
		source = "unknown"
	}
	if analysisTotal != nil {
		analysisTotal.WithLabelValues(source, resultOf(err)).Inc()
	}
	if analysisLatency != nil {
		analysisLatency.WithLabelValues(source).Observe(duration.Seconds())
	}
}

func IncExport(format string, err error) {
	if format == "" {
		format = "unknown"
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, resultOf(err)).Inc()
	}
}

// IncCapture counts capture outcomes: "finished", "rejected", "cancelled".
func IncCapture(outcome string) {
	if captureTotal != nil {
		captureTotal.WithLabelValues(outcome).Inc()
	}
}

func SetActiveSessions(n int) {
	if activeSessions != nil {
		activeSessions.Set(float64(n))
	}
}
