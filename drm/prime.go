package drm

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/NeowayLabs/gbm/ioctl"
)

// Flags accepted by PrimeHandleToFD.
const (
	CloExec = unix.O_CLOEXEC
	RDWR    = unix.O_RDWR
)

type sysPrimeHandle struct {
	handle uint32
	flags  uint32 // only for handle to fd
	fd     int32  // returned fd for handle to fd, input for fd to handle
}

// PrimeHandleToFD exports the buffer behind handle as a new dma-buf
// descriptor. The descriptor belongs to the caller.
func PrimeHandleToFD(fd int, handle, flags uint32) (int, error) {
	req := &sysPrimeHandle{handle: handle, flags: flags}
	err := ioctl.Do(uintptr(fd), uintptr(IOCTLPrimeHandleToFD), unsafe.Pointer(req))
	if err != nil {
		return -1, err
	}
	return int(req.fd), nil
}

// PrimeFDToHandle imports a dma-buf descriptor and returns a handle local
// to fd. primeFD is not closed.
func PrimeFDToHandle(fd, primeFD int) (uint32, error) {
	req := &sysPrimeHandle{fd: int32(primeFD)}
	err := ioctl.Do(uintptr(fd), uintptr(IOCTLPrimeFDToHandle), unsafe.Pointer(req))
	if err != nil {
		return 0, err
	}
	return req.handle, nil
}
