package scimark

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports suite results as Prometheus collectors on a private
// registry, so that several suites in one process never collide.
type Metrics struct {
	registry *prometheus.Registry

	mflops    *prometheus.GaugeVec
	elapsed   *prometheus.GaugeVec
	cycles    *prometheus.GaugeVec
	attempts  *prometheus.CounterVec
	composite prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		mflops: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "scimark",
			Name:      "kernel_mflops",
			Help:      "Measured throughput of the last run of each kernel in Mflops.",
		}, []string{"kernel"}),
		elapsed: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "scimark",
			Name:      "kernel_elapsed_seconds",
			Help:      "Duration of the calibrated burst of the last run of each kernel.",
		}, []string{"kernel"}),
		cycles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "scimark",
			Name:      "kernel_cycles",
			Help:      "Calibrated repetition count of the last run of each kernel.",
		}, []string{"kernel"}),
		attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scimark",
			Name:      "calibration_attempts_total",
			Help:      "Timed bursts executed while calibrating, per kernel.",
		}, []string{"kernel"}),
		composite: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scimark",
			Name:      "composite_mflops",
			Help:      "Arithmetic mean of the five kernel rates; set only when all kernels ran.",
		}),
	}
}

// Registry exposes the underlying registry (e.g. for an HTTP handler).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Observe records one measurement.
func (m *Metrics) Observe(meas Measurement) {
	m.mflops.WithLabelValues(meas.Kernel).Set(meas.Mflops)
	m.elapsed.WithLabelValues(meas.Kernel).Set(meas.Elapsed.Seconds())
	m.cycles.WithLabelValues(meas.Kernel).Set(float64(meas.Cycles))
	m.attempts.WithLabelValues(meas.Kernel).Add(float64(meas.Attempts))
}

// SetComposite records the composite score.
func (m *Metrics) SetComposite(v float64) {
	m.composite.Set(v)
}

// WriteTextfile writes every collected metric to path in the text exposition
// format read by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return kernelErrorf(opTextfile, err)
	}
	return nil
}
