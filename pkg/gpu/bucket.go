// Package gpu manages the fixed pool of GPU vertex/index buffer slots that
// chunk meshes are uploaded into: a bounded set of buffers, each holding a
// bounded number of fixed-size bucket slots, recycled as chunks come in and
// out of view instead of growing without bound.
package gpu

import (
	"container/heap"

	"github.com/leterax/voxelstream/pkg/voxel"
)

// BucketCoord names one slot in the pool: which buffer in the family, and
// which fixed-size slot within that buffer.
type BucketCoord struct {
	Buffer int
	Slot   int
}

// less orders BucketCoords the way the free-list heap should pop them:
// lowest buffer first, then lowest slot, so allocation always prefers
// packing the front of buffer 0 before spilling into buffer 1.
func (c BucketCoord) less(o BucketCoord) bool {
	if c.Buffer != o.Buffer {
		return c.Buffer < o.Buffer
	}
	return c.Slot < o.Slot
}

type bucketHeap []BucketCoord

func (h bucketHeap) Len() int            { return len(h) }
func (h bucketHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h bucketHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *bucketHeap) Push(x interface{}) { *h = append(*h, x.(BucketCoord)) }
func (h *bucketHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BucketPool hands out and reclaims BucketCoord slots, keyed by chunk
// identity, across a bounded family of GPU buffers. It never grows the
// family: once every slot is reserved, Reserve returns (BucketCoord{},
// false) rather than allocating a new buffer, so callers must evict
// something before they can add more.
type BucketPool struct {
	numBuffers int
	numBuckets int

	free       bucketHeap
	reserved   map[voxel.ChunkKey]BucketCoord
	occupiedBy map[BucketCoord]voxel.ChunkKey
}

// NewBucketPool builds a pool of numBuffers buffers, each with numBuckets
// slots, all initially free.
func NewBucketPool(numBuffers, numBuckets int) *BucketPool {
	p := &BucketPool{
		numBuffers: numBuffers,
		numBuckets: numBuckets,
		reserved:   make(map[voxel.ChunkKey]BucketCoord),
		occupiedBy: make(map[BucketCoord]voxel.ChunkKey),
	}
	p.free = make(bucketHeap, 0, numBuffers*numBuckets)
	for b := 0; b < numBuffers; b++ {
		for s := 0; s < numBuckets; s++ {
			p.free = append(p.free, BucketCoord{Buffer: b, Slot: s})
		}
	}
	heap.Init(&p.free)
	return p
}

// Reserve returns key's slot, allocating one if key is new. If key is
// already reserved, the slot is returned only when key is present in
// forced (the renderer must overwrite the existing GPU data); otherwise
// Reserve returns (BucketCoord{}, false) and the caller keeps using
// whatever is already written at key's slot (found via Lookup). A false
// return also means "pool exhausted" when key held no reservation at all
// and no free slot remained — the two cases are indistinguishable from
// the return value alone because both mean the same thing to a caller:
// there is nothing new to write this frame.
func (p *BucketPool) Reserve(key voxel.ChunkKey, forced map[voxel.ChunkKey]struct{}) (BucketCoord, bool) {
	if bc, ok := p.reserved[key]; ok {
		if _, force := forced[key]; force {
			return bc, true
		}
		return BucketCoord{}, false
	}
	if p.free.Len() == 0 {
		return BucketCoord{}, false
	}
	bc := heap.Pop(&p.free).(BucketCoord)
	p.reserved[key] = bc
	p.occupiedBy[bc] = key
	return bc, true
}

// KeepReserved frees every current reservation whose key is not in keep,
// returning the freed slots so the caller can zero their index-buffer
// regions (stale vertex bytes need no zeroing — nothing ever indexes into
// them once their slot is reused).
func (p *BucketPool) KeepReserved(keep map[voxel.ChunkKey]struct{}) []BucketCoord {
	var freed []BucketCoord
	for key, bc := range p.reserved {
		if _, ok := keep[key]; ok {
			continue
		}
		delete(p.reserved, key)
		delete(p.occupiedBy, bc)
		heap.Push(&p.free, bc)
		freed = append(freed, bc)
	}
	return freed
}

// Release frees key's slot back into the pool, returning the slot it
// occupied. The second return value is false if key held no reservation.
func (p *BucketPool) Release(key voxel.ChunkKey) (BucketCoord, bool) {
	bc, ok := p.reserved[key]
	if !ok {
		return BucketCoord{}, false
	}
	delete(p.reserved, key)
	delete(p.occupiedBy, bc)
	heap.Push(&p.free, bc)
	return bc, true
}

// Lookup returns the slot currently reserved for key, if any, without
// allocating one.
func (p *BucketPool) Lookup(key voxel.ChunkKey) (BucketCoord, bool) {
	bc, ok := p.reserved[key]
	return bc, ok
}

// Len returns the number of slots currently reserved.
func (p *BucketPool) Len() int {
	return len(p.reserved)
}

// Capacity returns the total number of slots across every buffer.
func (p *BucketPool) Capacity() int {
	return p.numBuffers * p.numBuckets
}
