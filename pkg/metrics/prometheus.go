package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	logins          *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	lastPrice       *prometheus.GaugeVec
	latency         *prometheus.HistogramVec
}

// New registers the recorder's collectors with the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		logins: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_logins_total",
				Help: "Login attempts by outcome",
			},
			[]string{"outcome"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_pipeline_errors_total",
				Help: "Pipeline failures by stage",
			},
			[]string{"stage"},
		),
		recommendations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockpulse_recommendations_total",
				Help: "Recommendations issued by signal",
			},
			[]string{"signal"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockpulse_last_price",
				Help: "Last observed value of the selected column for a ticker",
			},
			[]string{"ticker"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockpulse_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordLogin(outcome string) {
	r.logins.WithLabelValues(outcome).Inc()
}

// RecordError records a failure of a pipeline stage.
func (r *Recorder) RecordError(stage string) {
	r.errorsTotal.WithLabelValues(stage).Inc()
}

func (r *Recorder) RecordRecommendation(signal string) {
	r.recommendations.WithLabelValues(signal).Inc()
}

// RecordLastPrice records the last observed value for a ticker.
func (r *Recorder) RecordLastPrice(ticker string, price float64) {
	r.lastPrice.WithLabelValues(ticker).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordLogin(string)              {}
func (Nop) RecordError(string)              {}
func (Nop) RecordLatency(string, float64)   {}
func (Nop) RecordRecommendation(string)     {}
func (Nop) RecordLastPrice(string, float64) {}
