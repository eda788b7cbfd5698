package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/voxelstream/pkg/voxel"
)

func sphereOracle(radius float64) voxel.FieldOracleFunc {
	return func(x, y, z float64) uint8 {
		d := x*x + y*y + z*z - radius*radius
		if d < 0 {
			return 0
		}
		return 255
	}
}

func TestSampleChunkUniformFieldCollapsesToRoot(t *testing.T) {
	oracle := voxel.FieldOracleFunc(func(x, y, z float64) uint8 { return 255 })
	tree := SampleChunk(voxel.ChunkCoord{0, 0, 0}, 3, 1.0, oracle)

	require.Equal(t, 1, tree.Tree.Len(), "a uniform field should collapse to a single root node")
	assert.Equal(t, uint8(255), tree.GetVoxel(voxel.LocalCoord{4, 4, 4}))
}

func TestSampleChunkSphereProducesBothValues(t *testing.T) {
	oracle := sphereOracle(3.0)
	tree := SampleChunk(voxel.ChunkCoord{0, 0, 0}, 3, 1.0, oracle)

	// The sampler centres the chunk on its midpoint, so the world origin
	// (the sphere's centre) is local voxel (4,4,4) at degree 3.
	center := tree.GetVoxel(voxel.LocalCoord{4, 4, 4})
	corner := tree.GetVoxel(voxel.LocalCoord{7, 7, 7})
	assert.NotEqual(t, center, corner, "a sphere crossing the chunk should yield both inside and outside voxels")
}

func TestSampleChunkRespectsChunkCoordOffset(t *testing.T) {
	oracle := voxel.FieldOracleFunc(func(x, y, z float64) uint8 {
		if x < 0 {
			return 0
		}
		return 255
	})

	near := SampleChunk(voxel.ChunkCoord{0, 0, 0}, 2, 1.0, oracle)
	far := SampleChunk(voxel.ChunkCoord{5, 0, 0}, 2, 1.0, oracle)

	assert.Equal(t, uint8(255), far.GetVoxel(voxel.LocalCoord{0, 0, 0}))
	_ = near
}
