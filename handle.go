package gbm

// Handle is a kernel allocation handle. The kernel hands out 32-bit GEM
// handles, but the buffer manager ABI lets callers read the value at other
// widths; a Handle records the width it was created with and is read
// through the accessor matching the width the caller needs.
type Handle struct {
	v    uint64
	bits int
}

func Handle32(v uint32) Handle { return Handle{v: uint64(v), bits: 32} }

func Handle64(v uint64) Handle { return Handle{v: v, bits: 64} }

// Bits is 32 or 64 for a valid handle and 0 for the zero Handle.
func (h Handle) Bits() int { return h.bits }

func (h Handle) IsZero() bool { return h.bits == 0 }

// Uint32 returns the low 32 bits. ok is false when a 64-bit handle does
// not fit.
func (h Handle) Uint32() (v uint32, ok bool) {
	return uint32(h.v), h.v>>32 == 0
}

func (h Handle) Int32() (v int32, ok bool) {
	return int32(h.v), h.v>>31 == 0
}

func (h Handle) Uint64() uint64 { return h.v }

func (h Handle) Int64() int64 { return int64(h.v) }
