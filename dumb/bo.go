package dumb

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/format"
	"github.com/NeowayLabs/gbm/metrics"
)

// BO is a dumb buffer object, either allocated on its device or imported
// from a PRIME descriptor.
type BO struct {
	dev *Device

	width  uint32
	height uint32
	stride uint32
	format uint32
	bpp    uint32
	handle uint32
	size   uint64

	// data is the CPU mapping of the whole buffer. Once set it is
	// neither moved nor replaced until Destroy.
	data []byte

	imported  bool
	destroyed bool
}

var _ gbm.BO = (*BO)(nil)

// CreateBO allocates a mapped dumb buffer. Modifiers are ignored unless
// the device is strict, in which case passing any is an error.
func (d *Device) CreateBO(width, height, f uint32, usage gbm.Usage, modifiers []uint64) (gbm.BO, error) {
	f = d.core.FormatCanonicalize(f)
	bpp := format.BitsPerPixel(f)
	if bpp == 0 {
		return nil, fmt.Errorf("%w: unsupported format %s", gbm.ErrInvalidArgument, format.Name(f))
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty buffer %dx%d", gbm.ErrInvalidArgument, width, height)
	}
	if d.strict {
		if modifiers != nil {
			return nil, fmt.Errorf("%w: dumb buffers take no modifiers", gbm.ErrInvalidArgument)
		}
		if usage&(gbm.UseCursor|gbm.UseScanout) == 0 {
			return nil, fmt.Errorf("%w: usage %s has neither scanout nor cursor", gbm.ErrInvalidArgument, usage)
		}
	}

	fb, err := d.kernel.CreateDumb(width, height, bpp)
	if err != nil {
		d.metrics.KernelError("create_dumb")
		return nil, fmt.Errorf("create dumb buffer %dx%d@%d: %w", width, height, bpp, err)
	}

	bo := &BO{
		dev:    d,
		width:  width,
		height: height,
		stride: fb.Pitch,
		format: f,
		bpp:    bpp,
		handle: fb.Handle,
		size:   uint64(fb.Pitch) * uint64(height),
	}
	log := bo.logger()

	if _, err := bo.ensureMapped(); err != nil {
		if derr := d.kernel.DestroyDumb(fb.Handle); derr != nil {
			d.metrics.KernelError("destroy_dumb")
			log.WithError(derr).Warn("rollback of unmappable buffer failed")
		}
		d.metrics.RolledBack()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"stride": bo.stride,
		"usage":  usage.String(),
	}).Debug("buffer created")
	d.ref(bo.handle)
	d.metrics.BufferCreated(metrics.Allocated, bo.size)
	return bo, nil
}

// Destroy unmaps the buffer and releases its kernel handle once no other
// BO on the device holds it. Failures are logged and otherwise ignored;
// calling Destroy again does nothing.
func (bo *BO) Destroy() {
	if bo.destroyed {
		return
	}
	bo.destroyed = true
	d := bo.dev
	log := bo.logger()

	if bo.data != nil {
		if err := d.kernel.Munmap(bo.data); err != nil {
			log.WithError(err).Warn("munmap failed")
		}
		bo.data = nil
	}
	if d.unref(bo.handle) {
		if err := d.kernel.DestroyDumb(bo.handle); err != nil {
			d.metrics.KernelError("destroy_dumb")
			log.WithError(err).Warn("destroy dumb buffer failed")
		}
	}

	log.Debug("buffer destroyed")
	d.metrics.BufferDestroyed(bo.provenance(), bo.size)
}

func (bo *BO) provenance() string {
	if bo.imported {
		return metrics.Imported
	}
	return metrics.Allocated
}

func (bo *BO) logger() logrus.FieldLogger {
	return bo.dev.log.WithFields(logrus.Fields{
		"handle": bo.handle,
		"format": format.Name(bo.format),
		"width":  bo.width,
		"height": bo.height,
	})
}

func (bo *BO) Device() gbm.Device { return bo.dev }

func (bo *BO) Width() uint32 { return bo.width }

func (bo *BO) Height() uint32 { return bo.height }

func (bo *BO) Format() uint32 { return bo.format }

func (bo *BO) Bpp() uint32 { return bo.bpp }

func (bo *BO) Stride() uint32 { return bo.stride }

// Size is Stride() * Height().
func (bo *BO) Size() uint64 { return bo.size }

func (bo *BO) Handle() gbm.Handle { return gbm.Handle32(bo.handle) }

func (bo *BO) Modifier() uint64 { return format.ModLinear }

func (bo *BO) PlaneCount() int { return 1 }

// Imported reports whether the buffer came from ImportBO.
func (bo *BO) Imported() bool { return bo.imported }

func (bo *BO) HandleForPlane(plane int) (gbm.Handle, error) {
	if err := checkPlane(plane); err != nil {
		return gbm.Handle{}, err
	}
	return bo.Handle(), nil
}

func (bo *BO) StrideForPlane(plane int) (uint32, error) {
	if err := checkPlane(plane); err != nil {
		return 0, err
	}
	return bo.stride, nil
}

func (bo *BO) Offset(plane int) (uint32, error) {
	if err := checkPlane(plane); err != nil {
		return 0, err
	}
	return 0, nil
}

func (bo *BO) checkLive() error {
	if bo.destroyed {
		return fmt.Errorf("%w: buffer %d is destroyed", gbm.ErrInvalidArgument, bo.handle)
	}
	return nil
}

func checkPlane(plane int) error {
	if plane != 0 {
		return fmt.Errorf("%w: plane %d of a single-plane buffer", gbm.ErrInvalidArgument, plane)
	}
	return nil
}
