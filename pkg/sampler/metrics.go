//go:build linux

package sampler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Sampler families, used as the "family" label.
const (
	FamilyProcess = "process"
	FamilyCPU     = "cpu"
	FamilyMemory  = "memory"
)

// Metrics are the samplers' own counters. A nil *Metrics records nothing.
type Metrics struct {
	cycles    *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	processes prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg when reg is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskman",
			Subsystem: "sampler",
			Name:      "cycles_total",
			Help:      "Completed sampling cycles.",
		}, []string{"family"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taskman",
			Subsystem: "sampler",
			Name:      "failures_total",
			Help:      "Cycles whose source read failed.",
		}, []string{"family"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taskman",
			Subsystem: "sampler",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one sampling cycle.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"family"}),
		processes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "taskman",
			Name:      "processes",
			Help:      "Processes in the last published snapshot.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.cycles, m.failures, m.duration, m.processes)
	}
	return m
}

func (m *Metrics) cycle(family string, took time.Duration) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(family).Inc()
	m.duration.WithLabelValues(family).Observe(took.Seconds())
}

func (m *Metrics) failure(family string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(family).Inc()
}

func (m *Metrics) setProcesses(n int) {
	if m == nil {
		return
	}
	m.processes.Set(float64(n))
}
