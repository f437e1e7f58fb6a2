package gbm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/dumb"
	"github.com/NeowayLabs/gbm/format"
)

var errStub = errors.New("stub backend refused")

type stubDevice struct {
	gbm.Device
	fd      int
	version uint32
}

func (d *stubDevice) BackendName() string { return "zz-stub" }

func (d *stubDevice) Fd() int { return d.fd }

func (d *stubDevice) Version() uint32 { return d.version }

// registerStub adds a backend that accepts only fd 1000 and records the
// core it was given.
func registerStub(t *testing.T, version uint32, seen *gbm.Core) {
	t.Helper()
	gbm.Register("zz-stub", func(core gbm.Core) *gbm.Backend {
		if seen != nil {
			*seen = core
		}
		return &gbm.Backend{
			Name:    "zz-stub",
			Version: version,
			CreateDevice: func(fd int, v uint32) (gbm.Device, error) {
				if fd != 1000 {
					return nil, errStub
				}
				return &stubDevice{fd: fd, version: v}, nil
			},
		}
	})
	t.Cleanup(func() { gbm.Unregister("zz-stub") })
}

func TestDumbIsRegistered(t *testing.T) {
	assert.Contains(t, gbm.Backends(), dumb.Name)
}

func TestRegisterNil(t *testing.T) {
	assert.Panics(t, func() { gbm.Register("nil", nil) })
}

func TestBackendsSorted(t *testing.T) {
	registerStub(t, 1, nil)
	gbm.Register("aa-stub", func(gbm.Core) *gbm.Backend { return nil })
	t.Cleanup(func() { gbm.Unregister("aa-stub") })

	names := gbm.Backends()
	require.GreaterOrEqual(t, len(names), 3)
	assert.Equal(t, "aa-stub", names[0])
	assert.Equal(t, "zz-stub", names[len(names)-1])

	gbm.Unregister("aa-stub")
	assert.NotContains(t, gbm.Backends(), "aa-stub")
}

func TestCreateDeviceUnknownBackend(t *testing.T) {
	dev, err := gbm.CreateDevice(1000, "nope", nil)
	assert.ErrorIs(t, err, gbm.ErrBackendNotAvailable)
	assert.Nil(t, dev)
}

func TestCreateDeviceOnBadDescriptor(t *testing.T) {
	dev, err := gbm.CreateDevice(-1, dumb.Name, nil)
	assert.ErrorIs(t, err, gbm.ErrNotSupported)
	assert.Nil(t, dev)
}

func TestCreateDeviceNegotiatesVersion(t *testing.T) {
	for _, tc := range []struct {
		backend, want uint32
	}{
		{0, 0},
		{1, 1},
		{7, gbm.BackendABIVersion},
	} {
		registerStub(t, tc.backend, nil)
		dev, err := gbm.CreateDevice(1000, "zz-stub", nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, dev.Version(), "backend version %d", tc.backend)
	}
}

func TestCreateDeviceDefaultsCore(t *testing.T) {
	var seen gbm.Core
	registerStub(t, 1, &seen)

	_, err := gbm.CreateDevice(1000, "zz-stub", nil)
	require.NoError(t, err)
	assert.Equal(t, gbm.DefaultCore, seen)

	core := gbm.CoreFunc(func(f uint32) uint32 { return f })
	_, err = gbm.CreateDevice(1000, "zz-stub", core)
	require.NoError(t, err)
	_, isFunc := seen.(gbm.CoreFunc)
	assert.True(t, isFunc)
	assert.Equal(t, format.XRGB8888, seen.FormatCanonicalize(format.XRGB8888))
}

func TestCreateDeviceFallsBack(t *testing.T) {
	registerStub(t, 1, nil)

	dev, err := gbm.CreateDevice(1000, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "zz-stub", dev.BackendName())
	assert.Equal(t, 1000, dev.Fd())

	dev, err = gbm.CreateDevice(-1, "", nil)
	assert.Nil(t, dev)
	assert.ErrorIs(t, err, gbm.ErrBackendNotAvailable)
	assert.ErrorIs(t, err, errStub)
	assert.ErrorIs(t, err, gbm.ErrNotSupported)
}

func TestCreateDeviceWithoutDescriptor(t *testing.T) {
	gbm.Register("zz-empty", func(gbm.Core) *gbm.Backend { return &gbm.Backend{Name: "zz-empty"} })
	t.Cleanup(func() { gbm.Unregister("zz-empty") })

	_, err := gbm.CreateDevice(1000, "zz-empty", nil)
	assert.ErrorIs(t, err, gbm.ErrBackendNotAvailable)
}
