package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PredictionMetrics records outcomes of prediction requests.
type PredictionMetrics struct {
	duration prometheus.Histogram
	success  prometheus.Counter
	failure  *prometheus.CounterVec
}

// NewPredictionMetrics registers the prediction metrics on the provided registerer.
func NewPredictionMetrics(reg prometheus.Registerer) *PredictionMetrics {
	if reg == nil {
		return &PredictionMetrics{}
	}
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_duration_seconds",
		Help:    "Duration of prediction requests in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "prediction_success_total",
		Help: "Successful prediction requests.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "prediction_failure_total",
		Help: "Failed prediction requests by error code.",
	}, []string{"code"})
	reg.MustRegister(duration, success, failure)
	return &PredictionMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records how long a prediction took.
func (p *PredictionMetrics) ObserveDuration(duration time.Duration) {
	if p == nil || p.duration == nil {
		return
	}
	p.duration.Observe(duration.Seconds())
}

// IncSuccess increments the success counter.
func (p *PredictionMetrics) IncSuccess() {
	if p == nil || p.success == nil {
		return
	}
	p.success.Inc()
}

// IncFailure increments the failure counter for the given error code.
func (p *PredictionMetrics) IncFailure(code string) {
	if p == nil || p.failure == nil {
		return
	}
	if code == "" {
		code = "unknown"
	}
	p.failure.WithLabelValues(code).Inc()
}
