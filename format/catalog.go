package format

var bppTable = map[uint32]uint32{
	C8:     8,
	R8:     8,
	RGB332: 8,
	BGR233: 8,

	R16:      16,
	GR88:     16,
	XRGB4444: 16,
	XBGR4444: 16,
	RGBX4444: 16,
	BGRX4444: 16,
	ARGB4444: 16,
	ABGR4444: 16,
	RGBA4444: 16,
	BGRA4444: 16,
	XRGB1555: 16,
	XBGR1555: 16,
	RGBX5551: 16,
	BGRX5551: 16,
	ARGB1555: 16,
	ABGR1555: 16,
	RGBA5551: 16,
	BGRA5551: 16,
	RGB565:   16,
	BGR565:   16,

	RGB888: 24,
	BGR888: 24,

	RG1616:      32,
	GR1616:      32,
	XRGB8888:    32,
	XBGR8888:    32,
	RGBX8888:    32,
	BGRX8888:    32,
	ARGB8888:    32,
	ABGR8888:    32,
	RGBA8888:    32,
	BGRA8888:    32,
	XRGB2101010: 32,
	XBGR2101010: 32,
	RGBX1010102: 32,
	BGRX1010102: 32,
	ARGB2101010: 32,
	ABGR2101010: 32,
	RGBA1010102: 32,
	BGRA1010102: 32,

	XBGR16161616:  64,
	ABGR16161616:  64,
	XBGR16161616F: 64,
	ABGR16161616F: 64,
}

// BitsPerPixel returns the bit depth of format, or 0 if the format is not
// in the catalog.
func BitsPerPixel(format uint32) uint32 {
	return bppTable[format]
}

// BytesPerPixel is BitsPerPixel rounded up to whole bytes.
func BytesPerPixel(format uint32) uint32 {
	return (BitsPerPixel(format) + 7) / 8
}
