package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leterax/voxelstream/pkg/voxel"
)

func TestExtractSurfaceEmptyFieldYieldsNoPoints(t *testing.T) {
	oracle := voxel.FieldOracleFunc(func(x, y, z float64) uint8 { return 255 })
	self := SampleChunk(voxel.ChunkCoord{0, 0, 0}, 2, 1.0, oracle)

	surfaces := ExtractSurface(self, [8]*SampleTree{})
	assert.Equal(t, 0, surfaces.Len())
}

func TestExtractSurfacePlaneYieldsPoints(t *testing.T) {
	oracle := voxel.FieldOracleFunc(func(x, y, z float64) uint8 {
		if z < 2 {
			return 0
		}
		return 255
	})
	self := SampleChunk(voxel.ChunkCoord{0, 0, 0}, 3, 1.0, oracle)

	surfaces := ExtractSurface(self, [8]*SampleTree{})
	assert.Greater(t, surfaces.Len(), 0)

	for _, loc := range surfaces.Keys() {
		n, ok := surfaces.Get(loc)
		assert.True(t, ok)
		assert.NotEqual(t, 0.0, n.Value.Normal.Len())
	}
}

func TestExtractSurfaceSphereProducesBoundedPointCount(t *testing.T) {
	self := SampleChunk(voxel.ChunkCoord{0, 0, 0}, 3, 1.0, sphereOracle(3.0))

	surfaces := ExtractSurface(self, [8]*SampleTree{})
	assert.Greater(t, surfaces.Len(), 0)
	assert.LessOrEqual(t, surfaces.Len(), 8*8*8)
}
