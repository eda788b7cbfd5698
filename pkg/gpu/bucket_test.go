package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leterax/voxelstream/pkg/voxel"
)

func key(x, y, z int32) voxel.ChunkKey {
	return voxel.ChunkCoord{X: x, Y: y, Z: z}.Key(8)
}

func TestBucketPoolReserveFillsLowestSlotFirstAndRefusesUnforcedRereserve(t *testing.T) {
	pool := NewBucketPool(2, 2)

	a, ok := pool.Reserve(key(0, 0, 0), nil)
	require.True(t, ok)
	assert.Equal(t, BucketCoord{Buffer: 0, Slot: 0}, a)

	b, ok := pool.Reserve(key(1, 0, 0), nil)
	require.True(t, ok)
	assert.Equal(t, BucketCoord{Buffer: 0, Slot: 1}, b)

	again, ok := pool.Reserve(key(0, 0, 0), nil)
	assert.False(t, ok, "re-reserving an already-reserved key with no forced refresh returns none")
	assert.Equal(t, BucketCoord{}, again)
}

func TestBucketPoolExhaustionReturnsFalse(t *testing.T) {
	pool := NewBucketPool(1, 1)
	_, ok := pool.Reserve(key(0, 0, 0), nil)
	require.True(t, ok)

	_, ok = pool.Reserve(key(1, 0, 0), nil)
	assert.False(t, ok, "a full pool must not panic or grow, just report failure")
}

func TestBucketPoolReleaseRecyclesSlot(t *testing.T) {
	pool := NewBucketPool(1, 1)
	bc, _ := pool.Reserve(key(0, 0, 0), nil)

	released, ok := pool.Release(key(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, bc, released)

	next, ok := pool.Reserve(key(1, 0, 0), nil)
	require.True(t, ok)
	assert.Equal(t, bc, next, "a released slot should be the next one handed out")
}

func TestBucketPoolReleaseUnknownKeyFails(t *testing.T) {
	pool := NewBucketPool(1, 1)
	_, ok := pool.Release(key(9, 9, 9))
	assert.False(t, ok)
}

// TestBucketPoolReserveForcedRefresh covers testable property 8:
// reserve(k, ∅) on an already-reserved key returns none; reserve(k, {k})
// returns its existing slot.
func TestBucketPoolReserveForcedRefresh(t *testing.T) {
	pool := NewBucketPool(1, 1)
	k := key(0, 0, 0)
	bc, ok := pool.Reserve(k, nil)
	require.True(t, ok)

	_, ok = pool.Reserve(k, map[voxel.ChunkKey]struct{}{})
	assert.False(t, ok, "reserve(k, ∅) on an already-reserved key must return none")

	forced, ok := pool.Reserve(k, map[voxel.ChunkKey]struct{}{k: {}})
	require.True(t, ok, "reserve(k, {k}) must return the existing slot")
	assert.Equal(t, bc, forced)
}

// TestBucketPoolReserveSingleSlotAdmitsOneAtATime covers testable property
// 11: dims=1, size=1 admits exactly one reservation at a time.
func TestBucketPoolReserveSingleSlotAdmitsOneAtATime(t *testing.T) {
	pool := NewBucketPool(1, 1)
	_, ok := pool.Reserve(key(0, 0, 0), nil)
	require.True(t, ok)

	_, ok = pool.Reserve(key(1, 0, 0), nil)
	assert.False(t, ok)
}

// TestBucketPoolKeepReservedFreesUnkeptSlots covers scenario S4 (bucket
// churn): dims=2, size=4, 8 distinct keys fill the pool exactly; swapping
// in 8 new keys (all forced) must free the old 8 and fit the new 8.
func TestBucketPoolKeepReservedFreesUnkeptSlots(t *testing.T) {
	pool := NewBucketPool(2, 4)

	oldKeys := make([]voxel.ChunkKey, 8)
	for i := range oldKeys {
		oldKeys[i] = key(int32(i), 0, 0)
		_, ok := pool.Reserve(oldKeys[i], nil)
		require.True(t, ok)
	}
	require.Equal(t, 8, pool.Len())

	newKeys := make(map[voxel.ChunkKey]struct{}, 8)
	for i := range oldKeys {
		newKeys[key(int32(i), 1, 0)] = struct{}{}
	}

	freed := pool.KeepReserved(newKeys)
	assert.Len(t, freed, 8)
	assert.Equal(t, 0, pool.Len())

	for k := range newKeys {
		_, ok := pool.Reserve(k, newKeys)
		assert.True(t, ok, "every new key must fit after the old 8 are freed")
	}
	assert.Equal(t, 8, pool.Len())
}
