package dumb

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/drm"
	"github.com/NeowayLabs/gbm/format"
	"github.com/NeowayLabs/gbm/metrics"
)

// ImportBO wraps a single-plane dma-buf in a buffer object. The geometry
// comes from data as given. The result is not mapped until its first Map
// or Write, and the descriptor in data stays owned by the caller. A buffer
// this device already holds shares its handle with the existing BO.
func (d *Device) ImportBO(data gbm.ImportData, usage gbm.Usage) (gbm.BO, error) {
	desc, mod, err := importDescriptor(data)
	if err != nil {
		return nil, err
	}
	if !d.canImport {
		return nil, fmt.Errorf("%w: driver cannot import prime buffers", gbm.ErrNotImplemented)
	}
	if mod != nil {
		if err := checkModifierPlane(mod); err != nil {
			return nil, err
		}
	}

	f := d.core.FormatCanonicalize(desc.Format)
	bpp := format.BitsPerPixel(f)
	if bpp == 0 {
		return nil, fmt.Errorf("%w: unsupported format %s", gbm.ErrInvalidArgument, format.Name(f))
	}
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("%w: empty buffer %dx%d", gbm.ErrInvalidArgument, desc.Width, desc.Height)
	}
	if uint64(desc.Stride) < uint64(desc.Width)*uint64(format.BytesPerPixel(f)) {
		return nil, fmt.Errorf("%w: stride %d too small for %d %s pixels",
			gbm.ErrInvalidArgument, desc.Stride, desc.Width, format.Name(f))
	}

	handle, err := d.kernel.PrimeFDToHandle(desc.Fd)
	if err != nil {
		d.metrics.KernelError("prime_fd_to_handle")
		return nil, fmt.Errorf("import prime fd %d: %w", desc.Fd, err)
	}

	bo := &BO{
		dev:      d,
		width:    desc.Width,
		height:   desc.Height,
		stride:   desc.Stride,
		format:   f,
		bpp:      bpp,
		handle:   handle,
		size:     uint64(desc.Stride) * uint64(desc.Height),
		imported: true,
	}
	d.ref(handle)
	bo.logger().WithFields(logrus.Fields{
		"fd":    desc.Fd,
		"usage": usage.String(),
		"refs":  d.handles[handle],
	}).Debug("buffer imported")
	d.metrics.BufferCreated(metrics.Imported, bo.size)
	return bo, nil
}

// importDescriptor reduces the supported payloads to one descriptor and
// rejects the rest. A modifier payload is returned as well so its plane
// can be checked once the device is known to import; only its descriptor
// count is checked here, ahead of the capability gate.
func importDescriptor(data gbm.ImportData) (gbm.ImportFD, *gbm.ImportFDModifier, error) {
	switch v := data.(type) {
	case gbm.ImportFD:
		return v, nil, nil
	case *gbm.ImportFD:
		if v != nil {
			return *v, nil, nil
		}
	case gbm.ImportFDModifier:
		return modifierDescriptor(&v)
	case *gbm.ImportFDModifier:
		if v != nil {
			return modifierDescriptor(v)
		}
	case nil:
	default:
		return gbm.ImportFD{}, nil, fmt.Errorf("%w: import of %T", gbm.ErrNotImplemented, data)
	}
	return gbm.ImportFD{}, nil, fmt.Errorf("%w: nil import data", gbm.ErrInvalidArgument)
}

func modifierDescriptor(v *gbm.ImportFDModifier) (gbm.ImportFD, *gbm.ImportFDModifier, error) {
	if len(v.Fds) != 1 {
		return gbm.ImportFD{}, nil, fmt.Errorf("%w: %d planes, dumb buffers have one", gbm.ErrInvalidArgument, len(v.Fds))
	}
	desc := gbm.ImportFD{
		Fd:     v.Fds[0],
		Width:  v.Width,
		Height: v.Height,
		Format: v.Format,
	}
	if len(v.Strides) > 0 {
		desc.Stride = v.Strides[0]
	}
	return desc, v, nil
}

func checkModifierPlane(v *gbm.ImportFDModifier) error {
	if len(v.Strides) < 1 {
		return fmt.Errorf("%w: no stride for plane 0", gbm.ErrInvalidArgument)
	}
	if len(v.Offsets) > 0 && v.Offsets[0] != 0 {
		return fmt.Errorf("%w: plane 0 offset %d", gbm.ErrInvalidArgument, v.Offsets[0])
	}
	if _, err := format.ModifierPlaneCount(v.Format, v.Modifier); err != nil {
		return fmt.Errorf("%w: %w", gbm.ErrInvalidArgument, err)
	}
	return nil
}

// FD exports the buffer as a new PRIME descriptor. Each call returns a
// distinct descriptor that the caller must close.
func (bo *BO) FD() (int, error) {
	if err := bo.checkLive(); err != nil {
		return -1, err
	}
	d := bo.dev
	if !d.canExport {
		return -1, fmt.Errorf("%w: driver cannot export prime buffers", gbm.ErrNotImplemented)
	}
	fd, err := d.kernel.PrimeHandleToFD(bo.handle, drm.CloExec|drm.RDWR)
	if err != nil {
		d.metrics.KernelError("prime_handle_to_fd")
		return -1, fmt.Errorf("export buffer %d: %w", bo.handle, err)
	}
	bo.logger().WithField("fd", fd).Debug("buffer exported")
	d.metrics.Exported()
	return fd, nil
}

func (bo *BO) PlaneFD(plane int) (int, error) {
	if err := checkPlane(plane); err != nil {
		return -1, err
	}
	return bo.FD()
}
