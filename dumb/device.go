package dumb

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/drm"
	"github.com/NeowayLabs/gbm/format"
	"github.com/NeowayLabs/gbm/metrics"
)

// Device is a dumb buffer device on a borrowed DRM descriptor.
type Device struct {
	fd        int
	version   uint32
	core      gbm.Core
	kernel    Kernel
	canImport bool
	canExport bool
	strict    bool
	destroyed bool

	// handles counts the live BOs holding each GEM handle. Importing a
	// buffer the device already holds yields the same handle.
	handles map[uint32]int

	log     logrus.FieldLogger
	metrics *metrics.Collector
}

var _ gbm.Device = (*Device)(nil)

// NewDevice probes fd for dumb buffer support and returns a device on it.
// version is recorded as the negotiated ABI version. core supplies format
// canonicalization. fd is never closed by the device.
func NewDevice(fd int, version uint32, core gbm.Core, opts ...Option) (*Device, error) {
	if core == nil {
		return nil, fmt.Errorf("%w: nil core", gbm.ErrInvalidArgument)
	}
	o := options{strict: defaultStrict}
	for _, opt := range opts {
		opt(&o)
	}
	if o.kernel == nil {
		o.kernel = drm.NewCard(fd)
	}
	if o.log == nil {
		o.log = discardLogger()
	}
	log := o.log.WithField("fd", fd)

	has, err := o.kernel.GetCap(drm.CapDumbBuffer)
	if err != nil {
		o.metrics.KernelError("get_cap")
		return nil, fmt.Errorf("%w: dumb buffer capability: %w", gbm.ErrNotSupported, err)
	}
	if has == 0 {
		return nil, fmt.Errorf("%w: driver has no dumb buffers", gbm.ErrNotSupported)
	}

	dev := &Device{
		fd:      fd,
		version: version,
		core:    core,
		kernel:  o.kernel,
		strict:  o.strict,
		handles: make(map[uint32]int),
		log:     log,
		metrics: o.metrics,
	}

	prime, err := o.kernel.GetCap(drm.CapPrime)
	if err != nil {
		log.WithError(err).Debug("no prime capability, import and export disabled")
	} else {
		dev.canImport = prime&drm.PrimeCapImport != 0
		dev.canExport = prime&drm.PrimeCapExport != 0
	}

	log.WithFields(logrus.Fields{
		"version": version,
		"import":  dev.canImport,
		"export":  dev.canExport,
		"strict":  dev.strict,
	}).Debug("dumb device created")
	dev.metrics.DeviceCreated()
	return dev, nil
}

func (d *Device) BackendName() string { return Name }

func (d *Device) Fd() int { return d.fd }

func (d *Device) Version() uint32 { return d.version }

func (d *Device) CanImport() bool { return d.canImport }

func (d *Device) CanExport() bool { return d.canExport }

// Destroy releases the device. Buffers created from it must be destroyed
// first; the descriptor stays open.
func (d *Device) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.metrics.DeviceDestroyed()
	d.log.Debug("dumb device destroyed")
}

// IsFormatSupported accepts everything except a cursor that is also a
// render target. Real incompatibilities surface at creation time.
func (d *Device) IsFormatSupported(f uint32, usage gbm.Usage) bool {
	return !usage.Has(gbm.UseCursor | gbm.UseRendering)
}

func (d *Device) FormatModifierPlaneCount(f uint32, modifier uint64) (int, error) {
	n, err := format.ModifierPlaneCount(f, modifier)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", gbm.ErrInvalidArgument, err)
	}
	return n, nil
}

func (d *Device) ref(handle uint32) {
	d.handles[handle]++
}

// unref drops one holder of handle and reports whether it was the last.
func (d *Device) unref(handle uint32) bool {
	n := d.handles[handle] - 1
	if n > 0 {
		d.handles[handle] = n
		return false
	}
	delete(d.handles, handle)
	return true
}
