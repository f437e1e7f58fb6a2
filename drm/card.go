package drm

// Card binds the dumb buffer and PRIME calls to one open card descriptor.
// The descriptor is borrowed: Card never closes it.
type Card struct {
	fd int
}

func NewCard(fd int) *Card {
	return &Card{fd: fd}
}

func (c *Card) Fd() int { return c.fd }

func (c *Card) Version() (Version, error) { return GetVersion(c.fd) }

func (c *Card) GetCap(capability uint64) (uint64, error) {
	return GetCap(c.fd, capability)
}

func (c *Card) CreateDumb(width, height, bpp uint32) (DumbBuffer, error) {
	return CreateDumb(c.fd, width, height, bpp)
}

func (c *Card) MapDumb(handle uint32) (uint64, error) {
	return MapDumb(c.fd, handle)
}

func (c *Card) DestroyDumb(handle uint32) error {
	return DestroyDumb(c.fd, handle)
}

func (c *Card) PrimeHandleToFD(handle, flags uint32) (int, error) {
	return PrimeHandleToFD(c.fd, handle, flags)
}

func (c *Card) PrimeFDToHandle(primeFD int) (uint32, error) {
	return PrimeFDToHandle(c.fd, primeFD)
}

func (c *Card) Mmap(offset uint64, length int) ([]byte, error) {
	return Mmap(c.fd, offset, length)
}

func (c *Card) Munmap(b []byte) error {
	return Munmap(b)
}
