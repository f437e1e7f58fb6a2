package dumb

import (
	"github.com/NeowayLabs/gbm"
)

const (
	// Name is the backend name registered with gbm.
	Name = "dumb"

	// ABIVersion is the highest loader ABI version the backend supports.
	ABIVersion = 1
)

func init() {
	gbm.Register(Name, func(core gbm.Core) *gbm.Backend {
		return GetBackend(core)
	})
}

// GetBackend is the backend entry point. Devices created through the
// returned descriptor use core and opts.
func GetBackend(core gbm.Core, opts ...Option) *gbm.Backend {
	return &gbm.Backend{
		Name:    Name,
		Version: ABIVersion,
		CreateDevice: func(fd int, version uint32) (gbm.Device, error) {
			dev, err := NewDevice(fd, version, core, opts...)
			if err != nil {
				return nil, err
			}
			return dev, nil
		},
	}
}
