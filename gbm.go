package gbm

import (
	"fmt"
	"strings"
)

// Usage describes what a buffer will be used for.
type Usage uint32

const (
	UseScanout Usage = 1 << iota
	UseCursor
	UseRendering
	UseWrite
	UseLinear
	UseProtected
	UseFrontRendering

	// UseCursor64x64 is the historical name of UseCursor.
	UseCursor64x64 = UseCursor
)

var usageNames = []string{
	"scanout",
	"cursor",
	"rendering",
	"write",
	"linear",
	"protected",
	"front-rendering",
}

func (u Usage) Has(flags Usage) bool { return u&flags == flags }

func (u Usage) String() string {
	if u == 0 {
		return "none"
	}
	var parts []string
	for i, name := range usageNames {
		if u&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if rest := u &^ (1<<len(usageNames) - 1); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// MapFlags tells Map how the caller will access the mapped region.
type MapFlags uint32

const (
	TransferRead MapFlags = 1 << iota
	TransferWrite

	TransferReadWrite = TransferRead | TransferWrite
)

// Device is an open buffer manager on one DRM descriptor.
type Device interface {
	BackendName() string
	Fd() int
	Version() uint32

	// Destroy releases the device. The descriptor stays open.
	Destroy()

	IsFormatSupported(format uint32, usage Usage) bool
	FormatModifierPlaneCount(format uint32, modifier uint64) (int, error)

	CreateBO(width, height, format uint32, usage Usage, modifiers []uint64) (BO, error)
	ImportBO(data ImportData, usage Usage) (BO, error)

	CreateSurface(width, height, format uint32, usage Usage, modifiers []uint64) (Surface, error)
	LockFrontBuffer(s Surface) (BO, error)
	ReleaseBuffer(s Surface, bo BO) error
	HasFreeBuffers(s Surface) (bool, error)
	DestroySurface(s Surface) error
}

// BO is a buffer object. It belongs to the caller that created or
// imported it and must be released with Destroy.
type BO interface {
	Device() Device

	Width() uint32
	Height() uint32
	Format() uint32
	Bpp() uint32
	Stride() uint32
	Size() uint64
	Handle() Handle
	Modifier() uint64
	PlaneCount() int

	HandleForPlane(plane int) (Handle, error)
	StrideForPlane(plane int) (uint32, error)
	Offset(plane int) (uint32, error)
	PlaneFD(plane int) (int, error)

	// FD exports the buffer as a new descriptor owned by the caller.
	FD() (int, error)

	// Map returns the buffer memory starting at pixel (x, y) together
	// with the stride. The region width x height must lie inside the
	// buffer.
	Map(x, y, width, height uint32, flags MapFlags) ([]byte, uint32, error)
	Unmap(data []byte)
	Write(data []byte) error

	// Destroy releases the mapping and the kernel allocation. It never
	// fails.
	Destroy()
}

// Surface is a presentation surface. No backend in this module
// implements surfaces.
type Surface interface {
	Device() Device
}
