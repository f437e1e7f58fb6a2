package drm

import (
	"golang.org/x/sys/unix"
)

// Mmap maps length bytes of the card at the fake offset returned by
// MapDumb, shared and read-write.
func Mmap(fd int, offset uint64, length int) ([]byte, error) {
	return unix.Mmap(fd, int64(offset), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func Munmap(b []byte) error {
	return unix.Munmap(b)
}
