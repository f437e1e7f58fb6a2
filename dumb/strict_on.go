//go:build dumbstrict

package dumb

const defaultStrict = true
