package format

import (
	"errors"
	"fmt"
)

const (
	ModLinear  uint64 = 0
	ModInvalid uint64 = 0x00ffffffffffffff
)

var ErrUnsupportedModifier = errors.New("format: unsupported modifier")

// ModifierPlaneCount returns how many planes a buffer with the given
// modifier has. Only linear and "no explicit modifier" are accepted, and
// both describe a single plane whatever the format.
func ModifierPlaneCount(format uint32, modifier uint64) (int, error) {
	switch modifier {
	case ModLinear, ModInvalid:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w %#x for %s", ErrUnsupportedModifier, modifier, Name(format))
	}
}
