//go:build !dumbstrict

package dumb

const defaultStrict = false
