package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leterax/voxelstream/pkg/voxel"
)

func TestNeighborCoordsWrapsOnOverflow(t *testing.T) {
	const degree = 2 // chunk size 4
	coords := NeighborCoords(voxel.LocalCoord{3, 0, 0}, []voxel.LocalCoord{{1, 0, 0}}, degree)
	assert.Equal(t, voxel.LocalCoord{0, 0, 0}, coords[0].Coord)
	assert.Equal(t, voxel.BitwiseToDirs[0b001], coords[0].Index)
}

func TestNeighborCoordsStaysInSelfWithoutOverflow(t *testing.T) {
	const degree = 2
	coords := NeighborCoords(voxel.LocalCoord{1, 1, 1}, []voxel.LocalCoord{{1, 0, 0}}, degree)
	assert.Equal(t, voxel.LocalCoord{2, 1, 1}, coords[0].Coord)
	assert.Equal(t, 0, coords[0].Index)
}

func TestNeighborDistFallsBackToSelfWhenNeighborMissing(t *testing.T) {
	oracle := voxel.FieldOracleFunc(func(x, y, z float64) uint8 { return 255 })
	self := SampleChunk(voxel.ChunkCoord{0, 0, 0}, 2, 1.0, oracle)
	neighbors := make([]*SampleTree, 8)

	// PositiveDirs[1] is +x, which wraps from x=3 into the missing +x neighbor.
	dists := NeighborDist(self, voxel.LocalCoord{3, 0, 0}, voxel.PositiveDirs[:], neighbors)
	assert.Equal(t, float64(255-128), dists[1])
}

func TestIsIntersectionSignChange(t *testing.T) {
	assert.True(t, isIntersection(-1, 1))
	assert.False(t, isIntersection(1, 2))
	assert.False(t, isIntersection(-1, -2))
}
