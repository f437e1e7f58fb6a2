package dumb

import (
	"github.com/NeowayLabs/gbm"
)

// Dumb buffers have no presentation path, so every surface operation
// reports gbm.ErrNotImplemented.

func (d *Device) CreateSurface(width, height, format uint32, usage gbm.Usage, modifiers []uint64) (gbm.Surface, error) {
	return nil, gbm.ErrNotImplemented
}

func (d *Device) LockFrontBuffer(s gbm.Surface) (gbm.BO, error) {
	return nil, gbm.ErrNotImplemented
}

func (d *Device) ReleaseBuffer(s gbm.Surface, bo gbm.BO) error {
	return gbm.ErrNotImplemented
}

func (d *Device) HasFreeBuffers(s gbm.Surface) (bool, error) {
	return false, gbm.ErrNotImplemented
}

func (d *Device) DestroySurface(s gbm.Surface) error {
	return gbm.ErrNotImplemented
}
