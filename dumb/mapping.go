package dumb

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/format"
)

// ensureMapped maps the whole buffer on first call and returns the cached
// mapping afterwards. Nothing is cached on failure.
func (bo *BO) ensureMapped() ([]byte, error) {
	if bo.data != nil {
		return bo.data, nil
	}
	d := bo.dev
	if bo.size > math.MaxInt {
		return nil, fmt.Errorf("%w: %d byte mapping", gbm.ErrOutOfMemory, bo.size)
	}

	offset, err := d.kernel.MapDumb(bo.handle)
	if err != nil {
		d.metrics.KernelError("map_dumb")
		return nil, fmt.Errorf("map dumb buffer %d: %w", bo.handle, err)
	}
	data, err := d.kernel.Mmap(offset, int(bo.size))
	if err != nil {
		d.metrics.KernelError("mmap")
		return nil, fmt.Errorf("mmap dumb buffer %d: %w", bo.handle, err)
	}

	bo.data = data
	d.metrics.Mapped()
	return data, nil
}

// region returns the mapping starting at pixel (x, y).
func (bo *BO) region(x, y uint32) ([]byte, error) {
	if bo.data == nil {
		return nil, fmt.Errorf("%w: buffer %d is not mapped", gbm.ErrInvalidArgument, bo.handle)
	}
	off := uint64(bo.stride)*uint64(y) + uint64(x)*uint64(format.BytesPerPixel(bo.format))
	if off >= uint64(len(bo.data)) {
		return nil, fmt.Errorf("%w: pixel (%d,%d) outside the mapping", gbm.ErrInvalidArgument, x, y)
	}
	return bo.data[off:], nil
}

// Map returns the buffer memory from pixel (x, y) to the end of the buffer
// and the stride to step between rows. The first Map or Write of an
// imported buffer establishes its mapping. flags are accepted for
// interface compatibility; the mapping is always read-write.
func (bo *BO) Map(x, y, width, height uint32, flags gbm.MapFlags) ([]byte, uint32, error) {
	if err := bo.checkLive(); err != nil {
		return nil, 0, err
	}
	if width == 0 || height == 0 ||
		uint64(x)+uint64(width) > uint64(bo.width) ||
		uint64(y)+uint64(height) > uint64(bo.height) {
		return nil, 0, fmt.Errorf("%w: region %dx%d+%d+%d outside %dx%d buffer",
			gbm.ErrInvalidArgument, width, height, x, y, bo.width, bo.height)
	}
	if _, err := bo.ensureMapped(); err != nil {
		return nil, 0, err
	}
	data, err := bo.region(x, y)
	if err != nil {
		return nil, 0, err
	}
	return data, bo.stride, nil
}

// Unmap ends a Map. The buffer mapping lives until Destroy, so this only
// checks, in strict mode, that data came from this buffer.
func (bo *BO) Unmap(data []byte) {
	if !bo.dev.strict {
		return
	}
	if !bo.contains(data) {
		bo.logger().WithField("len", len(data)).Warn("unmap of memory not mapped from this buffer")
	}
}

func (bo *BO) contains(data []byte) bool {
	if bo.data == nil || len(data) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(bo.data)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	return p >= base && p < base+uintptr(len(bo.data))
}

// Write copies data to the start of the buffer.
func (bo *BO) Write(data []byte) error {
	if err := bo.checkLive(); err != nil {
		return err
	}
	if uint64(len(data)) > bo.size {
		return fmt.Errorf("%w: %d bytes into a %d byte buffer", gbm.ErrInvalidArgument, len(data), bo.size)
	}
	mem, err := bo.ensureMapped()
	if err != nil {
		return err
	}
	copy(mem, data)
	return nil
}
