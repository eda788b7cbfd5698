// Package voxel holds the pure data types and bit-level algorithms shared by
// every layer of the terrain pipeline: chunk/local coordinates, the Morton
// locational code used to key the sparse octree, the fixed direction tables
// the surface extractor and mesher walk, and the FieldOracle contract a host
// application implements to describe its world.
package voxel

import "encoding/binary"

// ChunkCoord identifies a chunk in chunk-grid space (not world/voxel space).
type ChunkCoord struct {
	X, Y, Z int32
}

// Add returns the coordinate offset by another chunk coordinate.
func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// LocalCoord identifies a voxel within a chunk, in the chunk's own
// bottom-down-left-origin local space (range [0, 2^degree) per axis once
// resolved, though the extractor/mesher also push these out of range to
// describe wrap-around into a neighbor chunk before the coordinate is
// translated back into range by NeighborCoords).
type LocalCoord struct {
	X, Y, Z int32
}

// Add returns the local coordinate offset by a direction vector.
func (c LocalCoord) Add(o LocalCoord) LocalCoord {
	return LocalCoord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// ChunkKey is the 12-byte native-endian encoding of a chunk's world-space
// corner coordinate (chunkCoord * chunkSize), used as the stable identity
// for chunks, surface maps, meshes and GPU bucket reservations.
type ChunkKey [12]byte

// Key derives the ChunkKey for a chunk coordinate at the given chunk size
// (2^degree voxels per axis).
func (c ChunkCoord) Key(chunkSize int32) ChunkKey {
	var k ChunkKey
	binary.NativeEndian.PutUint32(k[0:4], uint32(c.X*chunkSize))
	binary.NativeEndian.PutUint32(k[4:8], uint32(c.Y*chunkSize))
	binary.NativeEndian.PutUint32(k[8:12], uint32(c.Z*chunkSize))
	return k
}

// KeyToWorldCorner decodes a ChunkKey back into the world-space voxel
// coordinate of the chunk's corner (the inverse of ChunkCoord.Key, stopping
// short of dividing by chunkSize since the key already carries the product).
func KeyToWorldCorner(k ChunkKey) (x, y, z int32) {
	x = int32(binary.NativeEndian.Uint32(k[0:4]))
	y = int32(binary.NativeEndian.Uint32(k[4:8]))
	z = int32(binary.NativeEndian.Uint32(k[8:12]))
	return
}
