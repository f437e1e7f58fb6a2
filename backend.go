package gbm

import (
	"github.com/NeowayLabs/gbm/format"
)

// BackendABIVersion is the loader/backend interface version this module
// speaks.
const BackendABIVersion = 1

// Core is the capability table the loader hands to a backend.
type Core interface {
	FormatCanonicalize(format uint32) uint32
}

// CoreFunc adapts a plain function to Core.
type CoreFunc func(format uint32) uint32

func (f CoreFunc) FormatCanonicalize(format uint32) uint32 { return f(format) }

// DefaultCore is used when CreateDevice is given a nil Core.
var DefaultCore Core = format.DefaultCanonicalizer{}

// Backend is what a backend returns from its entry point.
type Backend struct {
	Name    string
	Version uint32

	// CreateDevice builds a device on fd. version is the ABI version
	// negotiated by the loader.
	CreateDevice func(fd int, version uint32) (Device, error)
}

// BackendFunc is a backend entry point. It is called once per device
// creation with the core the device should use.
type BackendFunc func(core Core) *Backend
