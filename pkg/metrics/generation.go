package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GenerationMetrics records outcomes of storefront generation runs.
type GenerationMetrics struct {
	duration         *prometheus.HistogramVec
	success          *prometheus.CounterVec
	failure          *prometheus.CounterVec
	validationErrors *prometheus.CounterVec
	autofixRepairs   prometheus.Counter
}

// NewGenerationMetrics registers the generation metrics on the provided registerer.
func NewGenerationMetrics(reg prometheus.Registerer) *GenerationMetrics {
	if reg == nil {
		return &GenerationMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_generation_duration_seconds",
		Help:    "Duration of storefront generation runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_generation_success",
		Help: "Successful storefront generation runs.",
	}, []string{"strategy"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_generation_failure",
		Help: "Failed storefront generation runs.",
	}, []string{"strategy"})
	validationErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_validation_errors_total",
		Help: "Validation errors found before auto-fix.",
	}, []string{"strategy"})
	autofixRepairs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_autofix_runs_total",
		Help: "Designs passed through the auto-fixer.",
	})
	reg.MustRegister(duration, success, failure, validationErrors, autofixRepairs)
	return &GenerationMetrics{
		duration:         duration,
		success:          success,
		failure:          failure,
		validationErrors: validationErrors,
		autofixRepairs:   autofixRepairs,
	}
}

// ObserveDuration records the duration for the named strategy.
func (g *GenerationMetrics) ObserveDuration(strategy string, duration time.Duration) {
	if g == nil || g.duration == nil {
		return
	}
	g.duration.WithLabelValues(normalizeLabel(strategy)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named strategy.
func (g *GenerationMetrics) IncSuccess(strategy string) {
	if g == nil || g.success == nil {
		return
	}
	g.success.WithLabelValues(normalizeLabel(strategy)).Inc()
}

// IncFailure increments the failure counter for the named strategy.
func (g *GenerationMetrics) IncFailure(strategy string) {
	if g == nil || g.failure == nil {
		return
	}
	g.failure.WithLabelValues(normalizeLabel(strategy)).Inc()
}

// AddValidationErrors records how many validation errors a run produced.
func (g *GenerationMetrics) AddValidationErrors(strategy string, count int) {
	if g == nil || g.validationErrors == nil || count <= 0 {
		return
	}
	g.validationErrors.WithLabelValues(normalizeLabel(strategy)).Add(float64(count))
}

// IncAutofix counts one auto-fix pass.
func (g *GenerationMetrics) IncAutofix() {
	if g == nil || g.autofixRepairs == nil {
		return
	}
	g.autofixRepairs.Inc()
}

func normalizeLabel(strategy string) string {
	if strategy == "" {
		return "unknown"
	}
	return strategy
}
