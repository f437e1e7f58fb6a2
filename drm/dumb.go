package drm

import (
	"unsafe"

	"github.com/NeowayLabs/gbm/ioctl"
)

type (
	sysCreateDumb struct {
		height, width uint32
		bpp           uint32
		flags         uint32

		// returned values
		handle uint32
		pitch  uint32
		size   uint64
	}

	sysMapDumb struct {
		handle uint32 // Handle for the object being mapped
		pad    uint32

		// Fake offset to use for subsequent mmap call
		// This is a fixed-size type for 32/64 compatibility.
		offset uint64
	}

	sysDestroyDumb struct {
		handle uint32
	}

	// DumbBuffer describes a dumb buffer as allocated by the kernel.
	// Pitch and Size are chosen by the driver and may exceed
	// Width*BPP/8 and Pitch*Height.
	DumbBuffer struct {
		Height, Width, BPP uint32
		Handle             uint32
		Pitch              uint32
		Size               uint64
	}
)

// CreateDumb allocates a dumb buffer of the given geometry.
func CreateDumb(fd int, width, height, bpp uint32) (DumbBuffer, error) {
	req := &sysCreateDumb{}
	req.width = width
	req.height = height
	req.bpp = bpp
	err := ioctl.Do(uintptr(fd), uintptr(IOCTLModeCreateDumb), unsafe.Pointer(req))
	if err != nil {
		return DumbBuffer{}, err
	}
	return DumbBuffer{
		Height: req.height,
		Width:  req.width,
		BPP:    req.bpp,
		Handle: req.handle,
		Pitch:  req.pitch,
		Size:   req.size,
	}, nil
}

// MapDumb returns the fake offset to pass to mmap for the buffer.
func MapDumb(fd int, boHandle uint32) (uint64, error) {
	mreq := &sysMapDumb{}
	mreq.handle = boHandle
	err := ioctl.Do(uintptr(fd), uintptr(IOCTLModeMapDumb), unsafe.Pointer(mreq))
	if err != nil {
		return 0, err
	}
	return mreq.offset, nil
}

func DestroyDumb(fd int, handle uint32) error {
	return ioctl.Do(uintptr(fd), uintptr(IOCTLModeDestroyDumb),
		unsafe.Pointer(&sysDestroyDumb{handle}))
}
