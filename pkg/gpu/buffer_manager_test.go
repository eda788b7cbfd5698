package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/voxelstream/pkg/terrain"
	"github.com/leterax/voxelstream/pkg/voxel"
)

type fakeSink struct {
	writes []fakeWrite
	zeroed []fakeZero
}

type fakeWrite struct {
	kind   string
	buffer int
	offset int
	length int
}

type fakeZero struct {
	buffer int
	offset int
	length int
}

func (f *fakeSink) WriteVertexBuffer(bufferIdx int, offset int, data []byte) {
	f.writes = append(f.writes, fakeWrite{"vertex", bufferIdx, offset, len(data)})
}

func (f *fakeSink) WriteIndexBuffer(bufferIdx int, offset int, data []byte) {
	f.writes = append(f.writes, fakeWrite{"index", bufferIdx, offset, len(data)})
}

func (f *fakeSink) ZeroIndexRegion(bufferIdx int, offset, length int) {
	f.zeroed = append(f.zeroed, fakeZero{bufferIdx, offset, length})
}

func sampleMesh() *terrain.IndexedMesh {
	const degree = 2
	samples := terrain.SampleChunk(voxel.ChunkCoord{0, 0, 0}, degree, 1.0, voxel.FieldOracleFunc(func(x, y, z float64) uint8 {
		if x*x+y*y+z*z < 4 {
			return 0
		}
		return 255
	}))
	surfaces := terrain.ExtractSurface(samples, [8]*terrain.SampleTree{})
	return terrain.BuildMesh(voxel.ChunkCoord{0, 0, 0}, degree, 1.0, samples, surfaces, [4]*terrain.SampleTree{}, [8]*terrain.NeighborChunk{})
}

func TestIndexedBufferManagerUploadWritesBothBuffers(t *testing.T) {
	sink := &fakeSink{}
	mgr := NewIndexedBufferManager(1, 4, sink)
	mesh := sampleMesh()
	require.Greater(t, len(mesh.Vertices), 0)

	bc, ok := mgr.Upload(key(0, 0, 0), mesh)
	require.True(t, ok)
	assert.Equal(t, BucketCoord{Buffer: 0, Slot: 0}, bc)
	require.Len(t, sink.writes, 2)
	assert.Equal(t, "vertex", sink.writes[0].kind)
	assert.Equal(t, "index", sink.writes[1].kind)
}

func TestIndexedBufferManagerEvictFreesSlotForReuse(t *testing.T) {
	sink := &fakeSink{}
	mgr := NewIndexedBufferManager(1, 1, sink)
	mesh := sampleMesh()

	bc, ok := mgr.Upload(key(0, 0, 0), mesh)
	require.True(t, ok)

	_, ok = mgr.Upload(key(1, 0, 0), mesh)
	assert.False(t, ok, "pool of 1 slot should reject a second distinct chunk")

	evicted, ok := mgr.Evict(key(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, bc, evicted)

	_, ok = mgr.Upload(key(1, 0, 0), mesh)
	assert.True(t, ok, "evicting should free the slot for the next chunk")
}

func TestIndexedBufferManagerUpdateSkipsUnchangedAndWritesUpdated(t *testing.T) {
	sink := &fakeSink{}
	mgr := NewIndexedBufferManager(1, 4, sink)
	mesh := sampleMesh()
	k0, k1 := key(0, 0, 0), key(1, 0, 0)

	visible := map[voxel.ChunkKey]*terrain.IndexedMesh{k0: mesh, k1: mesh}
	mgr.Update(visible, map[voxel.ChunkKey]struct{}{k0: {}, k1: {}})
	require.Len(t, sink.writes, 4, "both new keys must be written the first time")

	sink.writes = nil
	mgr.Update(visible, nil)
	assert.Len(t, sink.writes, 0, "no key changed, so nothing should be rewritten")

	sink.writes = nil
	mgr.Update(visible, map[voxel.ChunkKey]struct{}{k0: {}})
	require.Len(t, sink.writes, 2, "only the updated key should be rewritten")
}

func TestIndexedBufferManagerUpdateEvictsAndZeroesStaleChunks(t *testing.T) {
	sink := &fakeSink{}
	mgr := NewIndexedBufferManager(1, 4, sink)
	mesh := sampleMesh()
	k0, k1 := key(0, 0, 0), key(1, 0, 0)

	mgr.Update(map[voxel.ChunkKey]*terrain.IndexedMesh{k0: mesh, k1: mesh}, map[voxel.ChunkKey]struct{}{k0: {}, k1: {}})
	bc0, ok := mgr.Lookup(k0)
	require.True(t, ok)

	mgr.Update(map[voxel.ChunkKey]*terrain.IndexedMesh{k1: mesh}, nil)

	_, ok = mgr.Lookup(k0)
	assert.False(t, ok, "a chunk dropped from visible must lose its reservation")
	require.Len(t, sink.zeroed, 1)
	assert.Equal(t, bc0.Buffer, sink.zeroed[0].buffer)
	assert.Equal(t, bc0.Slot*mgr.indexSlotBytes, sink.zeroed[0].offset)
}
