package dumb

import (
	"golang.org/x/sys/unix"

	"github.com/NeowayLabs/gbm/drm"
)

// fakeBuffer is the memory behind a dumb buffer. Several handles, on
// several fake kernels, may share one through a dma-buf.
type fakeBuffer struct {
	mem []byte
}

// dmabufs plays the part of the kernel's dma-buf table, shared between
// fake kernels to model separate processes.
type dmabufs struct {
	next int
	bufs map[int]*fakeBuffer
}

func newDMABufs() *dmabufs {
	return &dmabufs{next: 100, bufs: make(map[int]*fakeBuffer)}
}

type fakeKernel struct {
	caps    map[uint64]uint64
	capErrs map[uint64]error

	nextHandle uint32
	handles    map[uint32]*fakeBuffer
	offsets    map[uint64]uint32
	dmabufs    *dmabufs

	// pitchAlign rounds rows up like real drivers do.
	pitchAlign uint32

	createErr  error
	mapErr     error
	mmapErr    error
	munmapErr  error
	destroyErr error
	exportErr  error
	importErr  error

	calls     map[string]int
	destroyed []uint32
}

func newFakeKernel(shared *dmabufs) *fakeKernel {
	if shared == nil {
		shared = newDMABufs()
	}
	return &fakeKernel{
		caps: map[uint64]uint64{
			drm.CapDumbBuffer: 1,
			drm.CapPrime:      drm.PrimeCapImport | drm.PrimeCapExport,
		},
		capErrs:    make(map[uint64]error),
		nextHandle: 1,
		handles:    make(map[uint32]*fakeBuffer),
		offsets:    make(map[uint64]uint32),
		dmabufs:    shared,
		pitchAlign: 64,
		calls:      make(map[string]int),
	}
}

func (k *fakeKernel) kernelCalls() int {
	n := 0
	for op, c := range k.calls {
		if op != "get_cap" {
			n += c
		}
	}
	return n
}

func (k *fakeKernel) GetCap(c uint64) (uint64, error) {
	k.calls["get_cap"]++
	if err := k.capErrs[c]; err != nil {
		return 0, err
	}
	v, ok := k.caps[c]
	if !ok {
		return 0, unix.EINVAL
	}
	return v, nil
}

func (k *fakeKernel) CreateDumb(width, height, bpp uint32) (drm.DumbBuffer, error) {
	k.calls["create_dumb"]++
	if k.createErr != nil {
		return drm.DumbBuffer{}, k.createErr
	}
	pitch := width * ((bpp + 7) / 8)
	if rem := pitch % k.pitchAlign; rem != 0 {
		pitch += k.pitchAlign - rem
	}
	size := uint64(pitch) * uint64(height)
	if rem := size % 4096; rem != 0 {
		size += 4096 - rem
	}
	h := k.nextHandle
	k.nextHandle++
	k.handles[h] = &fakeBuffer{mem: make([]byte, size)}
	return drm.DumbBuffer{
		Width:  width,
		Height: height,
		BPP:    bpp,
		Handle: h,
		Pitch:  pitch,
		Size:   size,
	}, nil
}

func (k *fakeKernel) MapDumb(handle uint32) (uint64, error) {
	k.calls["map_dumb"]++
	if k.mapErr != nil {
		return 0, k.mapErr
	}
	if _, ok := k.handles[handle]; !ok {
		return 0, unix.ENOENT
	}
	offset := uint64(handle) << 32
	k.offsets[offset] = handle
	return offset, nil
}

func (k *fakeKernel) DestroyDumb(handle uint32) error {
	k.calls["destroy_dumb"]++
	k.destroyed = append(k.destroyed, handle)
	if k.destroyErr != nil {
		return k.destroyErr
	}
	if _, ok := k.handles[handle]; !ok {
		return unix.EINVAL
	}
	delete(k.handles, handle)
	return nil
}

func (k *fakeKernel) PrimeHandleToFD(handle, flags uint32) (int, error) {
	k.calls["prime_handle_to_fd"]++
	if k.exportErr != nil {
		return -1, k.exportErr
	}
	buf, ok := k.handles[handle]
	if !ok {
		return -1, unix.ENOENT
	}
	fd := k.dmabufs.next
	k.dmabufs.next++
	k.dmabufs.bufs[fd] = buf
	return fd, nil
}

func (k *fakeKernel) PrimeFDToHandle(fd int) (uint32, error) {
	k.calls["prime_fd_to_handle"]++
	if k.importErr != nil {
		return 0, k.importErr
	}
	buf, ok := k.dmabufs.bufs[fd]
	if !ok {
		return 0, unix.EBADF
	}
	for h, b := range k.handles {
		if b == buf {
			return h, nil
		}
	}
	h := k.nextHandle
	k.nextHandle++
	k.handles[h] = buf
	return h, nil
}

func (k *fakeKernel) Mmap(offset uint64, length int) ([]byte, error) {
	k.calls["mmap"]++
	if k.mmapErr != nil {
		return nil, k.mmapErr
	}
	handle, ok := k.offsets[offset]
	if !ok {
		return nil, unix.EINVAL
	}
	buf := k.handles[handle]
	if length <= 0 || length > len(buf.mem) {
		return nil, unix.EINVAL
	}
	return buf.mem[:length:length], nil
}

func (k *fakeKernel) Munmap(b []byte) error {
	k.calls["munmap"]++
	return k.munmapErr
}
