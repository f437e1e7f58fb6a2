package dumb

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/NeowayLabs/gbm/metrics"
)

type options struct {
	kernel  Kernel
	log     logrus.FieldLogger
	metrics *metrics.Collector
	strict  bool
}

// Option configures a Device.
type Option func(*options)

// WithKernel replaces the DRM binding the device talks to.
func WithKernel(k Kernel) Option {
	return func(o *options) { o.kernel = k }
}

// WithLogger sets the device logger. Without it the device is silent.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithStrict overrides the strict mode default chosen at build time.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
