package gbm

import "fmt"

// ImportKind identifies the type of object passed to ImportBO.
type ImportKind uint32

const (
	ImportKindWaylandBuffer ImportKind = 0x5501
	ImportKindEGLImage      ImportKind = 0x5502
	ImportKindFD            ImportKind = 0x5503
	ImportKindFDModifier    ImportKind = 0x5504
)

func (k ImportKind) String() string {
	switch k {
	case ImportKindWaylandBuffer:
		return "wl_buffer"
	case ImportKindEGLImage:
		return "egl_image"
	case ImportKindFD:
		return "fd"
	case ImportKindFDModifier:
		return "fd_modifier"
	default:
		return fmt.Sprintf("ImportKind(%#x)", uint32(k))
	}
}

// ImportData is the payload of ImportBO.
type ImportData interface {
	Kind() ImportKind
}

// ImportFD describes a single-plane dma-buf. The geometry is taken as
// given; the descriptor is not closed by the import.
type ImportFD struct {
	Fd     int
	Width  uint32
	Height uint32
	Stride uint32
	Format uint32
}

func (ImportFD) Kind() ImportKind { return ImportKindFD }

// ImportFDModifier describes a dma-buf with one descriptor, stride and
// offset per plane and an explicit layout modifier.
type ImportFDModifier struct {
	Width    uint32
	Height   uint32
	Format   uint32
	Fds      []int
	Strides  []uint32
	Offsets  []uint32
	Modifier uint64
}

func (ImportFDModifier) Kind() ImportKind { return ImportKindFDModifier }

// ImportWaylandBuffer carries a wl_buffer resource pointer.
type ImportWaylandBuffer struct {
	Resource uintptr
}

func (ImportWaylandBuffer) Kind() ImportKind { return ImportKindWaylandBuffer }

// ImportEGLImage carries an EGLImage handle.
type ImportEGLImage struct {
	Image uintptr
}

func (ImportEGLImage) Kind() ImportKind { return ImportKindEGLImage }
