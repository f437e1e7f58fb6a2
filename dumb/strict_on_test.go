//go:build dumbstrict

package dumb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrictByDefault(t *testing.T) {
	dev, err := NewDevice(3, 1, testCore, WithKernel(newFakeKernel(nil)))
	require.NoError(t, err)
	assert.True(t, dev.strict)
}
