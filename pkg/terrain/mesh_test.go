package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/voxelstream/pkg/voxel"
)

func TestBuildMeshPlaneProducesTriangles(t *testing.T) {
	const degree = 3
	oracle := voxel.FieldOracleFunc(func(x, y, z float64) uint8 {
		if z < 2 {
			return 0
		}
		return 255
	})

	coord := voxel.ChunkCoord{0, 0, 0}
	samples := SampleChunk(coord, degree, 1.0, oracle)
	surfaces := ExtractSurface(samples, [8]*SampleTree{})

	mesh := BuildMesh(coord, degree, 1.0, samples, surfaces, [4]*SampleTree{}, [8]*NeighborChunk{})

	require.Greater(t, len(mesh.Vertices), 0)
	require.Greater(t, len(mesh.Indices), 0)
	assert.Equal(t, 0, len(mesh.Indices)%3)
	assert.Equal(t, 0, mesh.DroppedTriangles)
}

func TestBuildMeshEmptyFieldProducesNothing(t *testing.T) {
	const degree = 2
	oracle := voxel.FieldOracleFunc(func(x, y, z float64) uint8 { return 255 })
	coord := voxel.ChunkCoord{0, 0, 0}
	samples := SampleChunk(coord, degree, 1.0, oracle)
	surfaces := ExtractSurface(samples, [8]*SampleTree{})

	mesh := BuildMesh(coord, degree, 1.0, samples, surfaces, [4]*SampleTree{}, [8]*NeighborChunk{})
	assert.Equal(t, 0, len(mesh.Vertices))
	assert.Equal(t, 0, len(mesh.Indices))
}

func TestBuildMeshDedupsSharedVertices(t *testing.T) {
	const degree = 3
	samples := SampleChunk(voxel.ChunkCoord{0, 0, 0}, degree, 1.0, sphereOracle(3.0))
	surfaces := ExtractSurface(samples, [8]*SampleTree{})

	mesh := BuildMesh(voxel.ChunkCoord{0, 0, 0}, degree, 1.0, samples, surfaces, [4]*SampleTree{}, [8]*NeighborChunk{})

	require.Greater(t, len(mesh.Indices), 0)
	// A closed sphere surface should reuse vertices across adjacent
	// triangles, so there are strictly fewer vertices than index entries.
	assert.Less(t, len(mesh.Vertices), len(mesh.Indices))
}
