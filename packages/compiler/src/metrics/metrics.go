package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rzc-go/packages/compiler/src/util"
)

// Recorder holds the lowering metrics of one process. Each recorder owns its registry so
// tests and embedders do not collide on the global one.
type Recorder struct {
	Registry *prometheus.Registry

	documentsLowered prometheus.Counter
	phaseDuration    *prometheus.HistogramVec
	diagnostics      *prometheus.CounterVec
}

// NewRecorder creates a Recorder with a fresh registry
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		Registry: reg,
		documentsLowered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rzc_documents_lowered_total",
				Help: "Total number of documents run through the lowering pipeline",
			},
		),
		phaseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rzc_phase_duration_seconds",
				Help:    "Lowering phase duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"phase"},
		),
		diagnostics: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rzc_diagnostics_total",
				Help: "Total number of diagnostics reported by the lowering pipeline",
			},
			[]string{"code", "severity"},
		),
	}
}

// ObservePhase records how long a phase took on one document
func (r *Recorder) ObservePhase(phase string, d time.Duration) {
	if r == nil {
		return
	}
	r.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// DocumentLowered records a finished document and its diagnostics
func (r *Recorder) DocumentLowered(diagnostics []*util.Diagnostic) {
	if r == nil {
		return
	}
	r.documentsLowered.Inc()
	for _, d := range diagnostics {
		r.diagnostics.WithLabelValues(d.Code, d.Severity.String()).Inc()
	}
}

// WriteToFile writes the registry in the text exposition format
func (r *Recorder) WriteToFile(path string) error {
	return prometheus.WriteToTextfile(path, r.Registry)
}
