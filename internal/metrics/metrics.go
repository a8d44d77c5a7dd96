// Package metrics registers the Prometheus collectors used by the tracker.
// Observe functions are no-ops until Init has run.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "bmitracker_"

	ResultSuccess  = "success"
	ResultError    = "error"
	ResultAbsent   = "absent"
	ResultFallback = "fallback"
)

var (
	registerOnce sync.Once

	bmiComputations *prometheus.CounterVec
	historyWrites   *prometheus.CounterVec
	insightRequests *prometheus.CounterVec
	insightLatency  *prometheus.HistogramVec
	exportTotal     *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
)

// Init registers collectors with the default registry. historySize, when
// non-nil, backs a gauge reporting the number of stored history entries.
func Init(historySize func() float64) {
	registerOnce.Do(func() {
		bmiComputations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "bmi_computations_total",
				Help: "BMI computations by result",
			},
			[]string{"result"},
		)
		historyWrites = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "history_writes_total",
				Help: "Weight history mutations by operation and result",
			},
			[]string{"op", "result"},
		)
		insightRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "insight_requests_total",
				Help: "Insight requests by result",
			},
			[]string{"result"},
		)
		insightLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "insight_latency_seconds",
				Help:    "Insight generation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "history_export_total",
				Help: "History exports by format and result",
			},
			[]string{"format", "result"},
		)
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "HTTP requests by method and status",
			},
			[]string{"method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)

		prometheus.MustRegister(
			bmiComputations,
			historyWrites,
			insightRequests,
			insightLatency,
			exportTotal,
			httpRequests,
			httpLatency,
		)
		if historySize != nil {
			prometheus.MustRegister(prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: metricPrefix + "history_entries",
					Help: "Stored weight history entries",
				},
				historySize,
			))
		}
	})
}

// ObserveBMI counts a BMI computation.
func ObserveBMI(ok bool) {
	result := ResultSuccess
	if !ok {
		result = ResultAbsent
	}
	if bmiComputations != nil {
		bmiComputations.WithLabelValues(result).Inc()
	}
}

// ObserveHistoryWrite counts a history mutation.
func ObserveHistoryWrite(op string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	if historyWrites != nil {
		historyWrites.WithLabelValues(op, result).Inc()
	}
}

// ObserveInsight records an insight request outcome and duration.
func ObserveInsight(result string, duration time.Duration) {
	if result == "" {
		result = ResultSuccess
	}
	if insightRequests != nil {
		insightRequests.WithLabelValues(result).Inc()
	}
	if insightLatency != nil {
		insightLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveExport counts a history export.
func ObserveExport(format string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
}

// ObserveHTTP records a served request.
func ObserveHTTP(method, status string, duration time.Duration) {
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, status).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method).Observe(duration.Seconds())
	}
}
