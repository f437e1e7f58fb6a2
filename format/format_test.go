package format

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFourCC(t *testing.T) {
	assert.Equal(t, uint32(0x34325241), ARGB8888)
	assert.Equal(t, uint32(0x34325258), XRGB8888)
	assert.Equal(t, FourCC('A', 'R', '2', '4'), ARGB8888)
	assert.Equal(t, FourCC('X', 'B', '4', 'H'), XBGR16161616F)
}

func TestName(t *testing.T) {
	assert.Equal(t, "XR24", Name(XRGB8888))
	assert.Equal(t, "C8  ", Name(C8))
	assert.Equal(t, "0x000001", Name(BOFormatARGB8888))
}

func TestBitsPerPixel(t *testing.T) {
	want := map[uint32]uint32{
		C8:            8,
		RGB332:        8,
		GR88:          16,
		RGB565:        16,
		BGRA5551:      16,
		RGB888:        24,
		XRGB8888:      32,
		ARGB8888:      32,
		ABGR2101010:   32,
		RG1616:        32,
		XBGR16161616F: 64,
	}
	got := make(map[uint32]uint32, len(want))
	for f := range want {
		got[f] = BitsPerPixel(f)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BitsPerPixel mismatch (-want +got):\n%s", diff)
	}
}

func TestEveryCatalogFormatHasDepth(t *testing.T) {
	formats := Formats()
	require.Len(t, formats, 48)
	for i, f := range formats {
		assert.Greater(t, BitsPerPixel(f), uint32(0), Name(f))
		assert.Greater(t, BytesPerPixel(f), uint32(0), Name(f))
		if i > 0 {
			assert.Less(t, formats[i-1], f)
		}
	}
}

func TestUnknownFormatHasNoDepth(t *testing.T) {
	for _, f := range []uint32{
		BOFormatXRGB8888,
		BOFormatARGB8888,
		FourCC('R', 'G', '8', '8'), // not in the table
		FourCC('N', 'V', '1', '2'), // multi-planar
		0xffffffff,
	} {
		assert.Zero(t, BitsPerPixel(f), Name(f))
		assert.Zero(t, BytesPerPixel(f), Name(f))
	}
}

func TestBytesPerPixelRoundsUp(t *testing.T) {
	assert.Equal(t, uint32(1), BytesPerPixel(C8))
	assert.Equal(t, uint32(2), BytesPerPixel(XRGB1555))
	assert.Equal(t, uint32(3), BytesPerPixel(BGR888))
	assert.Equal(t, uint32(4), BytesPerPixel(XRGB2101010))
	assert.Equal(t, uint32(8), BytesPerPixel(ABGR16161616))
}

func TestModifierPlaneCount(t *testing.T) {
	for _, f := range []uint32{XRGB8888, C8, 0xdeadbeef} {
		n, err := ModifierPlaneCount(f, ModLinear)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		n, err = ModifierPlaneCount(f, ModInvalid)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	}

	// I915_FORMAT_MOD_X_TILED
	_, err := ModifierPlaneCount(XRGB8888, 0x0100000000000001)
	assert.True(t, errors.Is(err, ErrUnsupportedModifier))
}

func TestDefaultCanonicalizer(t *testing.T) {
	var c DefaultCanonicalizer
	assert.Equal(t, XRGB8888, c.FormatCanonicalize(BOFormatXRGB8888))
	assert.Equal(t, ARGB8888, c.FormatCanonicalize(BOFormatARGB8888))
	assert.Equal(t, RGB565, c.FormatCanonicalize(RGB565))
	assert.Equal(t, uint32(0xdeadbeef), c.FormatCanonicalize(0xdeadbeef))
}

func TestParse(t *testing.T) {
	for name, want := range map[string]uint32{
		"XR24": XRGB8888,
		"AR24": ARGB8888,
		"RG16": RGB565,
		"C8":   C8,
		"C8  ": C8,
		"R16":  R16,
	} {
		f, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, f, name)
	}

	for _, name := range []string{"", "NV12", "XRGB8888", "xr24"} {
		_, err := Parse(name)
		assert.ErrorIs(t, err, ErrUnknownFormat, name)
	}
}

func TestParseRoundTripsName(t *testing.T) {
	for _, f := range Formats() {
		got, err := Parse(Name(f))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
}
