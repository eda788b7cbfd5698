package gpu

import (
	"encoding/binary"
	"math"

	"github.com/leterax/voxelstream/pkg/terrain"
	"github.com/leterax/voxelstream/pkg/voxel"
)

// BufferSink is the opaque device-write side of the buffer manager: it
// knows how to place bytes at a buffer/offset and zero a byte range, but
// nothing about chunks, meshes, or buckets. GLBufferSink and NullSink are
// both just these three methods.
type BufferSink interface {
	WriteVertexBuffer(bufferIdx int, offset int, data []byte)
	WriteIndexBuffer(bufferIdx int, offset int, data []byte)
	ZeroIndexRegion(bufferIdx int, offset, length int)
}

// IndexedBufferManager uploads chunk meshes into a BucketPool's fixed slots,
// evicting and recycling slots as chunks leave view. Every slot is exactly
// terrain.MaxVertices vertices and terrain.MaxIndices indices wide, so a
// mesh's byte offset within its buffer is just slot*slotBytes.
type IndexedBufferManager struct {
	pool *BucketPool
	sink BufferSink

	vertexSlotBytes int
	indexSlotBytes  int
}

// NewIndexedBufferManager builds a manager over numBuffers buffers of
// numBuckets fixed-size slots each, writing through sink.
func NewIndexedBufferManager(numBuffers, numBuckets int, sink BufferSink) *IndexedBufferManager {
	return &IndexedBufferManager{
		pool:            NewBucketPool(numBuffers, numBuckets),
		sink:            sink,
		vertexSlotBytes: terrain.MaxVertices * vertexByteSize,
		indexSlotBytes:  terrain.MaxIndices * 4,
	}
}

const vertexByteSize = 4 * 4 * 3 // Position, Normal, Color: 3 vec4s of float32

// Upload force-writes key's mesh into its bucket slot (allocating one if
// key is new), regardless of whether key already held a slot. It returns
// false without writing anything if the pool is exhausted and key didn't
// already hold a slot. This is the single-chunk entry point used by tests
// and standalone tools; the per-frame driver is Update.
func (m *IndexedBufferManager) Upload(key voxel.ChunkKey, mesh *terrain.IndexedMesh) (BucketCoord, bool) {
	bc, ok := m.pool.Reserve(key, map[voxel.ChunkKey]struct{}{key: {}})
	if !ok {
		return BucketCoord{}, false
	}
	m.writeMesh(bc, mesh)
	return bc, true
}

func (m *IndexedBufferManager) writeMesh(bc BucketCoord, mesh *terrain.IndexedMesh) {
	m.sink.WriteVertexBuffer(bc.Buffer, bc.Slot*m.vertexSlotBytes, encodeVertices(mesh.Vertices))
	m.sink.WriteIndexBuffer(bc.Buffer, bc.Slot*m.indexSlotBytes, encodeIndices(bc.Slot, mesh.Indices))
}

// Update drives one frame of the pool per spec §4.8: every visible mesh is
// reserved, writing only the ones newly reserved or named in updated (a
// chunk whose mesh didn't change keeps whatever is already on the GPU).
// Then, if the pool holds more reservations than there are visible keys,
// every reservation for a key no longer in visible is freed and its
// index-buffer region zeroed, so a
// chunk leaving view stops being drawn instead of leaving stale triangles
// behind in a reused slot.
func (m *IndexedBufferManager) Update(visible map[voxel.ChunkKey]*terrain.IndexedMesh, updated map[voxel.ChunkKey]struct{}) {
	for key, mesh := range visible {
		bc, write := m.pool.Reserve(key, updated)
		if !write {
			continue
		}
		m.writeMesh(bc, mesh)
	}

	if m.pool.Len() > len(visible) {
		keep := make(map[voxel.ChunkKey]struct{}, len(visible))
		for key := range visible {
			keep[key] = struct{}{}
		}
		for _, bc := range m.pool.KeepReserved(keep) {
			m.sink.ZeroIndexRegion(bc.Buffer, bc.Slot*m.indexSlotBytes, m.indexSlotBytes)
		}
	}
}

// Evict releases key's bucket slot back to the pool and zeros its index
// region directly, for callers that manage eviction one key at a time
// instead of driving a full Update.
func (m *IndexedBufferManager) Evict(key voxel.ChunkKey) (BucketCoord, bool) {
	bc, ok := m.pool.Release(key)
	if !ok {
		return BucketCoord{}, false
	}
	m.sink.ZeroIndexRegion(bc.Buffer, bc.Slot*m.indexSlotBytes, m.indexSlotBytes)
	return bc, true
}

// Lookup returns the bucket slot currently holding key's mesh, if any.
func (m *IndexedBufferManager) Lookup(key voxel.ChunkKey) (BucketCoord, bool) {
	return m.pool.Lookup(key)
}

// Len returns the number of bucket slots currently reserved.
func (m *IndexedBufferManager) Len() int {
	return m.pool.Len()
}

// Capacity returns the total number of bucket slots across every buffer.
func (m *IndexedBufferManager) Capacity() int {
	return m.pool.Capacity()
}

func encodeVertices(verts []terrain.Vertex) []byte {
	buf := make([]byte, len(verts)*vertexByteSize)
	off := 0
	for _, v := range verts {
		off = putVec4(buf, off, v.Position)
		off = putVec4(buf, off, v.Normal)
		off = putVec4(buf, off, v.Color)
	}
	return buf
}

func putVec4(buf []byte, off int, v [4]float32) int {
	for _, f := range v {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
		off += 4
	}
	return off
}

// encodeIndices offsets every index by slot*terrain.MaxVertices, since all
// slots in a buffer share one contiguous vertex buffer range and the index
// buffer must address into this slot's own region of it.
func encodeIndices(slot int, indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	base := uint32(slot * terrain.MaxVertices)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], base+idx)
	}
	return buf
}
