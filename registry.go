package gbm

import (
	"errors"
	"fmt"
	"sort"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// ErrBackendNotAvailable is returned when no registered backend could
// create a device.
var ErrBackendNotAvailable = errors.New("gbm: backend not available")

var backends = cmap.New[BackendFunc]()

// Register makes a backend entry point available under name. It is
// typically called from an init function. A later registration under the
// same name replaces the earlier one.
func Register(name string, entry BackendFunc) {
	if entry == nil {
		panic("gbm: Register entry is nil")
	}
	backends.Set(name, entry)
}

// Unregister removes a backend. This is useful for testing.
func Unregister(name string) {
	backends.Remove(name)
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	names := backends.Keys()
	sort.Strings(names)
	return names
}

// CreateDevice opens a device on fd with the named backend, or with the
// first registered backend (in name order) that accepts fd when name is
// empty. core defaults to DefaultCore. fd stays owned by the caller.
func CreateDevice(fd int, name string, core Core) (Device, error) {
	if core == nil {
		core = DefaultCore
	}
	if name != "" {
		entry, ok := backends.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
		}
		return createDevice(fd, entry, core)
	}

	var errs []error
	for _, n := range Backends() {
		entry, ok := backends.Get(n)
		if !ok {
			continue
		}
		dev, err := createDevice(fd, entry, core)
		if err == nil {
			return dev, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", n, err))
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

func createDevice(fd int, entry BackendFunc, core Core) (Device, error) {
	b := entry(core)
	if b == nil || b.CreateDevice == nil {
		return nil, ErrBackendNotAvailable
	}
	return b.CreateDevice(fd, min(uint32(BackendABIVersion), b.Version))
}
