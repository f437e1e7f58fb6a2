package format

// DefaultCanonicalizer maps the legacy GBM enum values to their fourcc
// equivalents and leaves every other code alone. It is what a loader
// passes to a backend when it has no aliasing rules of its own.
type DefaultCanonicalizer struct{}

func (DefaultCanonicalizer) FormatCanonicalize(format uint32) uint32 {
	switch format {
	case BOFormatXRGB8888:
		return XRGB8888
	case BOFormatARGB8888:
		return ARGB8888
	default:
		return format
	}
}
