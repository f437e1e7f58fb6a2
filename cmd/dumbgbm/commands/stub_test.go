package commands

import (
	"sync/atomic"

	"github.com/NeowayLabs/gbm"
)

// stubDevice hands out heap-backed buffers. Methods the commands do not
// call are left to the embedded nil interface.
type stubDevice struct {
	gbm.Device
	created    *atomic.Int64
	destroyed  *atomic.Int64
	failCreate bool
}

func newStubDevice() *stubDevice {
	return &stubDevice{created: new(atomic.Int64), destroyed: new(atomic.Int64)}
}

func (d *stubDevice) BackendName() string { return "stub" }

func (d *stubDevice) IsFormatSupported(f uint32, usage gbm.Usage) bool {
	return !usage.Has(gbm.UseCursor)
}

func (d *stubDevice) CreateBO(width, height, f uint32, usage gbm.Usage, modifiers []uint64) (gbm.BO, error) {
	if d.failCreate {
		return nil, gbm.ErrInvalidArgument
	}
	d.created.Add(1)
	stride := width * 4
	return &stubBO{
		width:     width,
		height:    height,
		stride:    stride,
		data:      make([]byte, int(stride*height)),
		destroyed: d.destroyed,
	}, nil
}

type stubBO struct {
	gbm.BO
	width, height uint32
	stride        uint32
	data          []byte
	destroyed     *atomic.Int64
}

func (bo *stubBO) Map(x, y, width, height uint32, flags gbm.MapFlags) ([]byte, uint32, error) {
	return bo.data[int(bo.stride*y+x*4):], bo.stride, nil
}

func (bo *stubBO) Unmap([]byte) {}

func (bo *stubBO) Destroy() { bo.destroyed.Add(1) }
