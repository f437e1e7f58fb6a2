// Package dumb is the fallback buffer manager backend. It allocates
// linear, CPU-mappable "dumb" buffers through the DRM kernel interface
// and shares them across processes as PRIME descriptors. It needs no GPU
// driver support beyond DRM_CAP_DUMB_BUFFER.
//
// Buffers always have one plane, offset 0 and the linear modifier.
// Surfaces are not supported.
//
// Importing the package registers the backend with gbm under the name
// "dumb".
//
// Building with the dumbstrict tag turns on strict mode by default: buffer
// creation then rejects modifier lists and usages without scanout or
// cursor, and Unmap checks the pointer it is given.
package dumb
