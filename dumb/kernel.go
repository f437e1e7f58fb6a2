package dumb

import (
	"github.com/NeowayLabs/gbm/drm"
)

// Kernel is the part of the DRM interface the backend drives. *drm.Card
// implements it over a real descriptor.
type Kernel interface {
	GetCap(capability uint64) (uint64, error)
	CreateDumb(width, height, bpp uint32) (drm.DumbBuffer, error)
	MapDumb(handle uint32) (uint64, error)
	DestroyDumb(handle uint32) error
	PrimeHandleToFD(handle, flags uint32) (int, error)
	PrimeFDToHandle(primeFD int) (uint32, error)
	Mmap(offset uint64, length int) ([]byte, error)
	Munmap(b []byte) error
}

var _ Kernel = (*drm.Card)(nil)
