// Package format holds the pixel format catalog used by the dumb backend:
// DRM fourcc codes, their bit depths and the layout modifiers a single
// linear plane can carry.
package format

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownFormat = errors.New("format: unknown format")

// FourCC packs four characters into a DRM format code.
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// Legacy GBM enum values that predate fourcc codes. The loader maps them
// to XRGB8888 and ARGB8888 when canonicalizing.
const (
	BOFormatXRGB8888 uint32 = 0
	BOFormatARGB8888 uint32 = 1
)

// Format codes from drm_fourcc.h.
const (
	C8 uint32 = 'C' | '8'<<8 | ' '<<16 | ' '<<24
	R8 uint32 = 'R' | '8'<<8 | ' '<<16 | ' '<<24

	R16    uint32 = 'R' | '1'<<8 | '6'<<16 | ' '<<24
	GR88   uint32 = 'G' | 'R'<<8 | '8'<<16 | '8'<<24
	RG1616 uint32 = 'R' | 'G'<<8 | '3'<<16 | '2'<<24
	GR1616 uint32 = 'G' | 'R'<<8 | '3'<<16 | '2'<<24

	RGB332 uint32 = 'R' | 'G'<<8 | 'B'<<16 | '8'<<24
	BGR233 uint32 = 'B' | 'G'<<8 | 'R'<<16 | '8'<<24

	XRGB4444 uint32 = 'X' | 'R'<<8 | '1'<<16 | '2'<<24
	XBGR4444 uint32 = 'X' | 'B'<<8 | '1'<<16 | '2'<<24
	RGBX4444 uint32 = 'R' | 'X'<<8 | '1'<<16 | '2'<<24
	BGRX4444 uint32 = 'B' | 'X'<<8 | '1'<<16 | '2'<<24
	ARGB4444 uint32 = 'A' | 'R'<<8 | '1'<<16 | '2'<<24
	ABGR4444 uint32 = 'A' | 'B'<<8 | '1'<<16 | '2'<<24
	RGBA4444 uint32 = 'R' | 'A'<<8 | '1'<<16 | '2'<<24
	BGRA4444 uint32 = 'B' | 'A'<<8 | '1'<<16 | '2'<<24

	XRGB1555 uint32 = 'X' | 'R'<<8 | '1'<<16 | '5'<<24
	XBGR1555 uint32 = 'X' | 'B'<<8 | '1'<<16 | '5'<<24
	RGBX5551 uint32 = 'R' | 'X'<<8 | '1'<<16 | '5'<<24
	BGRX5551 uint32 = 'B' | 'X'<<8 | '1'<<16 | '5'<<24
	ARGB1555 uint32 = 'A' | 'R'<<8 | '1'<<16 | '5'<<24
	ABGR1555 uint32 = 'A' | 'B'<<8 | '1'<<16 | '5'<<24
	RGBA5551 uint32 = 'R' | 'A'<<8 | '1'<<16 | '5'<<24
	BGRA5551 uint32 = 'B' | 'A'<<8 | '1'<<16 | '5'<<24

	RGB565 uint32 = 'R' | 'G'<<8 | '1'<<16 | '6'<<24
	BGR565 uint32 = 'B' | 'G'<<8 | '1'<<16 | '6'<<24

	RGB888 uint32 = 'R' | 'G'<<8 | '2'<<16 | '4'<<24
	BGR888 uint32 = 'B' | 'G'<<8 | '2'<<16 | '4'<<24

	XRGB8888 uint32 = 'X' | 'R'<<8 | '2'<<16 | '4'<<24
	XBGR8888 uint32 = 'X' | 'B'<<8 | '2'<<16 | '4'<<24
	RGBX8888 uint32 = 'R' | 'X'<<8 | '2'<<16 | '4'<<24
	BGRX8888 uint32 = 'B' | 'X'<<8 | '2'<<16 | '4'<<24
	ARGB8888 uint32 = 'A' | 'R'<<8 | '2'<<16 | '4'<<24
	ABGR8888 uint32 = 'A' | 'B'<<8 | '2'<<16 | '4'<<24
	RGBA8888 uint32 = 'R' | 'A'<<8 | '2'<<16 | '4'<<24
	BGRA8888 uint32 = 'B' | 'A'<<8 | '2'<<16 | '4'<<24

	XRGB2101010 uint32 = 'X' | 'R'<<8 | '3'<<16 | '0'<<24
	XBGR2101010 uint32 = 'X' | 'B'<<8 | '3'<<16 | '0'<<24
	RGBX1010102 uint32 = 'R' | 'X'<<8 | '3'<<16 | '0'<<24
	BGRX1010102 uint32 = 'B' | 'X'<<8 | '3'<<16 | '0'<<24
	ARGB2101010 uint32 = 'A' | 'R'<<8 | '3'<<16 | '0'<<24
	ABGR2101010 uint32 = 'A' | 'B'<<8 | '3'<<16 | '0'<<24
	RGBA1010102 uint32 = 'R' | 'A'<<8 | '3'<<16 | '0'<<24
	BGRA1010102 uint32 = 'B' | 'A'<<8 | '3'<<16 | '0'<<24

	XBGR16161616  uint32 = 'X' | 'B'<<8 | '4'<<16 | '8'<<24
	ABGR16161616  uint32 = 'A' | 'B'<<8 | '4'<<16 | '8'<<24
	XBGR16161616F uint32 = 'X' | 'B'<<8 | '4'<<16 | 'H'<<24
	ABGR16161616F uint32 = 'A' | 'B'<<8 | '4'<<16 | 'H'<<24
)

// Name renders a fourcc code as its four characters, or as hex when the
// code is not printable.
func Name(format uint32) string {
	b := []byte{byte(format), byte(format >> 8), byte(format >> 16), byte(format >> 24)}
	for _, c := range b {
		if c < ' ' || c > '~' {
			return fmt.Sprintf("%#08x", format)
		}
	}
	return string(b)
}

// Formats returns every format with a known bit depth, in ascending code
// order.
func Formats() []uint32 {
	out := make([]uint32, 0, len(bppTable))
	for f := range bppTable {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Parse looks up a catalog format by its fourcc name. Names shorter than
// four characters are padded with spaces, so "C8" finds C8.
func Parse(name string) (uint32, error) {
	if len(name) == 0 || len(name) > 4 {
		return 0, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	padded := name + strings.Repeat(" ", 4-len(name))
	f := FourCC(padded[0], padded[1], padded[2], padded[3])
	if BitsPerPixel(f) == 0 {
		return 0, fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	return f, nil
}
