// Package terrain implements the per-chunk pipeline stages that turn a
// voxel.FieldOracle into renderable geometry: sampling the field into a
// sparse octree, dual-contouring it into surface points, stitching
// neighboring chunks' surface points into triangles, and the single-threaded
// work queue that schedules all three stages across frames.
package terrain

import "github.com/leterax/voxelstream/pkg/voxel"

// MaxResolution bounds how much finer than its parent a sampled node may be
// before the recursive sampler stops subdividing; 1 means every chunk is
// sampled down to its full leaf resolution.
const MaxResolution = 1

// SampleTree is one chunk's sampled density field: a sparse octree of
// densities, elided wherever a subtree turned out uniform.
type SampleTree struct {
	Coord  voxel.ChunkCoord
	Degree uint8
	Tree   *voxel.SparseOctree[uint8]
}

// GetVoxel returns the density at a local coordinate, resolving through the
// nearest materialized ancestor when the exact voxel was elided.
func (s *SampleTree) GetVoxel(coord voxel.LocalCoord) uint8 {
	loc := voxel.Coord2Loc(coord, s.Degree)
	return s.Tree.GetOrAncestor(loc).Value
}

// SampleChunk builds a chunk's SampleTree top-down from a FieldOracle,
// collapsing any subtree whose children all agree with their parent's value.
func SampleChunk(coord voxel.ChunkCoord, degree uint8, sampleScale float64, oracle voxel.FieldOracle) *SampleTree {
	tree := voxel.NewSparseOctree[uint8](degree)

	var midpoint int32
	if degree > 0 {
		midpoint = 1 << (degree - 1)
	}

	s := &sampler{
		degree:      degree,
		chunkCoord:  coord,
		midpoint:    midpoint,
		sampleScale: sampleScale,
		oracle:      oracle,
		tree:        tree,
	}
	root := s.sample(1, 0)
	tree.Insert(1, root)

	return &SampleTree{Coord: coord, Degree: degree, Tree: tree}
}

type sampler struct {
	degree      uint8
	chunkCoord  voxel.ChunkCoord
	midpoint    int32
	sampleScale float64
	oracle      voxel.FieldOracle
	tree        *voxel.SparseOctree[uint8]
}

func (s *sampler) value(loc voxel.LocCode) uint8 {
	coord := voxel.Loc2Coord(loc, s.degree)
	offset := int32(1) << s.degree
	px := float64(coord.X-s.midpoint+s.chunkCoord.X*offset) * s.sampleScale
	py := float64(coord.Y-s.midpoint+s.chunkCoord.Y*offset) * s.sampleScale
	pz := float64(coord.Z-s.midpoint+s.chunkCoord.Z*offset) * s.sampleScale
	return s.oracle.Sample(px, py, pz)
}

func (s *sampler) sample(loc voxel.LocCode, depth uint8) voxel.Node[uint8] {
	value := s.value(loc)

	var mask uint8
	if int(s.degree)-int(depth) >= MaxResolution {
		base := loc << 3
		for d := uint64(0); d < 8; d++ {
			childLoc := base | voxel.LocCode(d)
			child := s.sample(childLoc, depth+1)
			if child.ChildMask != 0 || child.Value != value {
				s.tree.Insert(childLoc, child)
				mask |= 1 << d
			}
		}
	}

	return voxel.Node[uint8]{ChildMask: mask, Value: value}
}
