// Package metrics exposes Prometheus counters for emitted panel lines and
// sink writes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/dappkitty"
	"github.com/trickstertwo/dappkitty/adapter/writer"
)

const Namespace = "dappkitty"

// Collector counts lines per level and origin. It is a dappkitty.Observer
// and a writer.MetricsCollector at the same time.
type Collector struct {
	LinesTotal  *prometheus.CounterVec
	WriteErrors prometheus.Counter
	WriteTime   prometheus.Histogram
	WriteBytes  prometheus.Counter
}

func New() *Collector {
	return &Collector{
		LinesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "lines_total",
			Help:      "Total panel lines emitted.",
		}, []string{"level", "origin"}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "writer",
			Name:      "errors_total",
			Help:      "Total failed sink writes.",
		}),
		WriteTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "writer",
			Name:      "write_duration_milliseconds",
			Help:      "Histogram of time spent writing a line.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}),
		WriteBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "writer",
			Name:      "bytes_total",
			Help:      "Total bytes written by the sink.",
		}),
	}
}

// OnLog implements dappkitty.Observer.
func (c *Collector) OnLog(e dappkitty.Entry) {
	c.LinesTotal.WithLabelValues(e.Level.String(), e.Origin.String()).Inc()
}

// WroteLine implements writer.MetricsCollector.
func (c *Collector) WroteLine(_ dappkitty.Level, durMS float64, size int, err error) {
	if err != nil {
		c.WriteErrors.Inc()
		return
	}
	c.WriteTime.Observe(durMS)
	c.WriteBytes.Add(float64(size))
}

// Metrics returns every collector for registration.
func (c *Collector) Metrics() []prometheus.Collector {
	return []prometheus.Collector{c.LinesTotal, c.WriteErrors, c.WriteTime, c.WriteBytes}
}

// MustRegister registers the collectors on r.
func (c *Collector) MustRegister(r prometheus.Registerer) {
	r.MustRegister(c.Metrics()...)
}

var (
	_ dappkitty.Observer      = (*Collector)(nil)
	_ writer.MetricsCollector = (*Collector)(nil)
)
