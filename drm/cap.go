package drm

import (
	"unsafe"

	"github.com/NeowayLabs/gbm/ioctl"
)

type (
	capability struct {
		cap uint64
		val uint64
	}
)

const (
	CapDumbBuffer = iota + 1
	CapVBlankHighCRTC
	CapDumbPreferredDepth
	CapDumbPreferShadow
	CapPrime
	CapTimestampMonotonic
	CapAsyncPageFlip
	CapCursorWidth
	CapCursorHeight

	CapAddFB2Modifiers = 0x10
)

// Bits of the CapPrime value.
const (
	PrimeCapImport = 0x1
	PrimeCapExport = 0x2
)

// GetCap returns the value the driver reports for capability c.
func GetCap(fd int, c uint64) (uint64, error) {
	cap := &capability{cap: c}
	err := ioctl.Do(uintptr(fd), uintptr(IOCTLGetCap), unsafe.Pointer(cap))
	if err != nil {
		return 0, err
	}
	return cap.val, nil
}

func HasDumbBuffer(fd int) bool {
	val, err := GetCap(fd, CapDumbBuffer)
	if err != nil {
		return false
	}
	return val != 0
}
