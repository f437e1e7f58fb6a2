// Package metrics exposes buffer manager activity as Prometheus metrics.
//
// All Collector methods are safe to call on a nil *Collector, so devices
// built without metrics pay nothing for the calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Provenance labels.
const (
	Allocated = "allocated"
	Imported  = "imported"
)

// Collector groups the buffer manager metrics. It implements
// prometheus.Collector and can be shared by several devices.
type Collector struct {
	devices      prometheus.Gauge
	buffers      *prometheus.GaugeVec
	bufferBytes  prometheus.Gauge
	created      *prometheus.CounterVec
	destroyed    *prometheus.CounterVec
	mappings     prometheus.Counter
	exports      prometheus.Counter
	rollbacks    prometheus.Counter
	kernelErrors *prometheus.CounterVec
}

// New builds a Collector whose metric names start with namespace.
func New(namespace string) *Collector {
	return &Collector{
		devices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "devices",
			Help:      "Number of open devices.",
		}),
		buffers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buffers",
			Help:      "Number of live buffer objects.",
		}, []string{"provenance"}),
		bufferBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "buffer_bytes",
			Help:      "Bytes held by live buffer objects.",
		}),
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buffers_created_total",
			Help:      "Buffer objects created or imported.",
		}, []string{"provenance"}),
		destroyed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "buffers_destroyed_total",
			Help:      "Buffer objects destroyed.",
		}, []string{"provenance"}),
		mappings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mappings_total",
			Help:      "CPU mappings established.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "PRIME descriptors exported.",
		}),
		rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "create_rollbacks_total",
			Help:      "Allocations released because mapping them failed.",
		}),
		kernelErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kernel_errors_total",
			Help:      "Failed kernel requests by operation.",
		}, []string{"op"}),
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.devices, c.buffers, c.bufferBytes, c.created, c.destroyed,
		c.mappings, c.exports, c.rollbacks, c.kernelErrors,
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.collectors() {
		m.Describe(ch)
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, m := range c.collectors() {
		m.Collect(ch)
	}
}

func (c *Collector) DeviceCreated() {
	if c == nil {
		return
	}
	c.devices.Inc()
}

func (c *Collector) DeviceDestroyed() {
	if c == nil {
		return
	}
	c.devices.Dec()
}

func (c *Collector) BufferCreated(provenance string, size uint64) {
	if c == nil {
		return
	}
	c.created.WithLabelValues(provenance).Inc()
	c.buffers.WithLabelValues(provenance).Inc()
	c.bufferBytes.Add(float64(size))
}

func (c *Collector) BufferDestroyed(provenance string, size uint64) {
	if c == nil {
		return
	}
	c.destroyed.WithLabelValues(provenance).Inc()
	c.buffers.WithLabelValues(provenance).Dec()
	c.bufferBytes.Sub(float64(size))
}

func (c *Collector) Mapped() {
	if c == nil {
		return
	}
	c.mappings.Inc()
}

func (c *Collector) Exported() {
	if c == nil {
		return
	}
	c.exports.Inc()
}

func (c *Collector) RolledBack() {
	if c == nil {
		return
	}
	c.rollbacks.Inc()
}

func (c *Collector) KernelError(op string) {
	if c == nil {
		return
	}
	c.kernelErrors.WithLabelValues(op).Inc()
}
