package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeowayLabs/gbm"
)

func TestDumpRowsDropsPadding(t *testing.T) {
	// Two rows of three bytes at stride four.
	data := []byte{1, 2, 3, 0xee, 4, 5, 6, 0xee}
	var out bytes.Buffer
	n, err := dumpRows(&out, data, 4, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, out.Bytes())
}

func TestDumpRowsLastRowNeedsNoPadding(t *testing.T) {
	data := []byte{1, 2, 0xee, 3, 4}
	var out bytes.Buffer
	_, err := dumpRows(&out, data, 3, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, out.Bytes())
}

func TestDumpRowsOverrun(t *testing.T) {
	var out bytes.Buffer
	_, err := dumpRows(&out, make([]byte, 7), 4, 4, 2)
	assert.Error(t, err)
	_, err = dumpRows(&out, make([]byte, 16), 4, 5, 2)
	assert.Error(t, err)
	assert.Zero(t, out.Len())

	n, err := dumpRows(&out, nil, 4, 4, 0)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestPrintFormats(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printFormats(&out, newStubDevice()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "FORMAT"))
	assert.Len(t, lines, 49)

	var xr24 string
	for _, l := range lines {
		if strings.HasPrefix(l, "XR24") {
			xr24 = l
		}
	}
	require.NotEmpty(t, xr24)
	assert.Equal(t, []string{"XR24", "0x34325258", "32", "yes", "no", "yes"}, strings.Fields(xr24))
}

func TestPrintLayout(t *testing.T) {
	dev := newStubDevice()
	bo, err := dev.CreateBO(4, 2, 0, gbm.UseScanout, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	printLayout(&out, layoutBO{bo.(*stubBO)})
	assert.Contains(t, out.String(), "Size:     4x2")
	assert.Contains(t, out.String(), "Stride:   16")
	assert.Contains(t, out.String(), "Handle:   9")
}

// layoutBO fills in the queries printLayout makes.
type layoutBO struct {
	*stubBO
}

func (b layoutBO) Format() uint32 { return 0x34325258 }

func (b layoutBO) Bpp() uint32 { return 32 }

func (b layoutBO) Width() uint32 { return b.width }

func (b layoutBO) Height() uint32 { return b.height }

func (b layoutBO) Stride() uint32 { return b.stride }

func (b layoutBO) Size() uint64 { return uint64(len(b.data)) }

func (b layoutBO) Handle() gbm.Handle { return gbm.Handle32(9) }

func (b layoutBO) Modifier() uint64 { return 0 }
