package generator

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GenerationMetricsRecorder defines the interface for recording
// answer-generation metrics. This interface abstracts the metrics recording
// implementation, enabling:
//   - Mocking in unit tests (inject mock recorder instead of Prometheus)
//   - Swapping metrics systems (DataDog, New Relic, OpenTelemetry, etc.)
//   - Reusability across different AI providers (OpenAI, Claude)
//
// For testing with mocks:
//
//	type MockMetricsRecorder struct {
//	    RecordedLengths []int
//	}
//
//	func (m *MockMetricsRecorder) RecordOutputLength(length int) {
//	    m.RecordedLengths = append(m.RecordedLengths, length)
//	}
type GenerationMetricsRecorder interface {
	// RecordOutcome increments the generation counter for the given provider
	// and status ("success" or "error").
	RecordOutcome(provider string, status string)

	// RecordDuration records the time taken by a single generation API call.
	RecordDuration(provider string, duration time.Duration)

	// RecordOutputLength records the length of a generated answer in
	// characters (Unicode runes).
	RecordOutputLength(length int)
}

// PrometheusGenerationMetrics implements GenerationMetricsRecorder using
// Prometheus metrics. This is the production implementation.
type PrometheusGenerationMetrics struct {
	outcomeCounter    *prometheus.CounterVec
	durationHistogram *prometheus.HistogramVec
	lengthHistogram   prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusGenerationMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateCounterVec gets an existing counter vector or creates a new one if it doesn't exist
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		// If it's not an AlreadyRegisteredError, use promauto which handles this gracefully
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// getOrCreateHistogramVec gets an existing histogram vector or creates a new one if it doesn't exist
func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// NewPrometheusGenerationMetrics creates a new Prometheus-based metrics
// recorder. It initializes and registers all required Prometheus metrics.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusGenerationMetrics() *PrometheusGenerationMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusGenerationMetrics{
			outcomeCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "question_generation_total",
				Help: "Total number of answer generation attempts by provider and status",
			}, []string{"provider", "status"}),
			durationHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "question_generation_duration_seconds",
				Help:    "Time taken to generate an answer via AI API",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"}),
			lengthHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "question_answer_length_characters",
				Help:    "Distribution of generated answer lengths in characters (Unicode runes)",
				Buckets: []float64{100, 300, 500, 700, 900, 1100, 1500, 2000, 3000, 5000},
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordOutcome implements GenerationMetricsRecorder.RecordOutcome
func (p *PrometheusGenerationMetrics) RecordOutcome(provider string, status string) {
	p.outcomeCounter.WithLabelValues(provider, status).Inc()
}

// RecordDuration implements GenerationMetricsRecorder.RecordDuration
func (p *PrometheusGenerationMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durationHistogram.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordOutputLength implements GenerationMetricsRecorder.RecordOutputLength
func (p *PrometheusGenerationMetrics) RecordOutputLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}
