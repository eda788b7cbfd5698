package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/voxelstream/pkg/voxel"
)

func TestNearbyCoordsIncludesOriginAndIsBounded(t *testing.T) {
	coords := NearbyCoords(voxel.ChunkCoord{0, 0, 0}, 1)
	seen := map[voxel.ChunkCoord]bool{}
	for _, c := range coords {
		seen[c] = true
		assert.LessOrEqual(t, abs32(c.X), int32(1))
		assert.LessOrEqual(t, abs32(c.Y), int32(1))
		assert.LessOrEqual(t, abs32(c.Z), int32(1))
	}
	assert.True(t, seen[voxel.ChunkCoord{0, 0, 0}])
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestChunkManagerGeneratesAndMeshesOriginChunk(t *testing.T) {
	mgr := NewChunkManager(3, 1.0, 1.0, 1, 1, 10000, sphereOracle(3.0))

	for i := 0; i < 50; i++ {
		mgr.GenerateChunks(voxel.ChunkCoord{0, 0, 0})
	}

	meshes := mgr.VisibleMeshes(voxel.ChunkCoord{0, 0, 0})
	require.NotEmpty(t, meshes)

	key := voxel.ChunkCoord{0, 0, 0}.Key(8)
	mesh, ok := meshes[key]
	require.True(t, ok)
	assert.Greater(t, len(mesh.Vertices), 0)
}

func TestChunkManagerBudgetLimitsWorkPerFrame(t *testing.T) {
	mgr := NewChunkManager(2, 1.0, 1.0, 2, 2, 1, sphereOracle(3.0))

	mgr.GenerateChunks(voxel.ChunkCoord{0, 0, 0})
	assert.Equal(t, 1, len(mgr.chunks), "only one operation should run with a budget of 1")
}
