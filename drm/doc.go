// Package drm provides the subset of the DRM (Direct Rendering Manager)
// kernel interface needed to allocate, map and share dumb buffers:
// capability queries, dumb buffer create/map/destroy and PRIME
// handle/descriptor exchange.
//
// Functions take a raw file descriptor that remains owned by the caller.
package drm
