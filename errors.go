package gbm

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Errors reported by devices and buffers. Backends wrap them with context,
// so compare with errors.Is.
var (
	// ErrNotSupported means the kernel lacks a capability the backend
	// cannot work without.
	ErrNotSupported = errors.New("gbm: not supported")

	ErrInvalidArgument = errors.New("gbm: invalid argument")

	ErrOutOfMemory = errors.New("gbm: out of memory")

	// ErrNotImplemented is returned by operations a backend does not
	// provide, or that a missing optional capability disables.
	ErrNotImplemented = errors.New("gbm: not implemented")
)

// Errno maps err to the errno value a C shim would publish as the last
// error. Kernel failures keep their own errno.
func Errno(err error) unix.Errno {
	var errno unix.Errno
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotSupported):
		return unix.ENODEV
	case errors.Is(err, ErrInvalidArgument):
		return unix.EINVAL
	case errors.Is(err, ErrOutOfMemory):
		return unix.ENOMEM
	case errors.Is(err, ErrNotImplemented):
		return unix.ENOSYS
	case errors.As(err, &errno):
		return errno
	default:
		return unix.EIO
	}
}
