package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkKeyRoundTrip(t *testing.T) {
	c := ChunkCoord{X: -3, Y: 7, Z: 100}
	const chunkSize = 8
	k := c.Key(chunkSize)
	x, y, z := KeyToWorldCorner(k)
	assert.Equal(t, c.X*chunkSize, x)
	assert.Equal(t, c.Y*chunkSize, y)
	assert.Equal(t, c.Z*chunkSize, z)
}

func TestChunkKeyDistinguishesCoords(t *testing.T) {
	a := ChunkCoord{0, 0, 0}.Key(8)
	b := ChunkCoord{1, 0, 0}.Key(8)
	assert.NotEqual(t, a, b)
}
