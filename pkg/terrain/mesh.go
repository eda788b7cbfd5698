package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/voxelstream/pkg/voxel"
)

// MaxVertices and MaxIndices bound a single chunk's mesh to what fits in one
// GPU bucket slot (see pkg/gpu.BucketPool) — a chunk that would dual-contour
// into more geometry than this silently drops its excess triangles rather
// than growing the buffer, since every bucket in the pool is fixed-size.
const (
	MaxVertices = 512
	MaxIndices  = 3072
)

// Vertex is the wire format uploaded to the GPU for one mesh corner: three
// vec4-aligned fields so a single buffer layout serves every chunk's mesh
// regardless of vertex count.
type Vertex struct {
	Position [4]float32
	Normal   [4]float32
	Color    [4]float32
}

// vertexKey identifies a mesh vertex by the surface point that produced it:
// the chunk-grid coordinate of the chunk owning that surface point plus its local
// voxel coordinate within that chunk. Two triangles referencing the same
// underlying surface point — whether built from the owning chunk or a
// neighbor stitching across the boundary — collapse to one vertex.
type vertexKey struct {
	ChunkX, ChunkY, ChunkZ int32
	VX, VY, VZ             int32
}

// IndexedMesh is one chunk's triangle mesh: deduplicated vertices plus the
// index buffer referencing them, both capped so the mesh always fits a
// fixed-size GPU bucket slot.
type IndexedMesh struct {
	Vertices []Vertex
	Indices  []uint32

	vertexIndex      map[vertexKey]uint32
	DroppedTriangles int
}

// NewIndexedMesh returns an empty mesh ready for triangle insertion.
func NewIndexedMesh() *IndexedMesh {
	return &IndexedMesh{
		Vertices:    make([]Vertex, 0, MaxVertices),
		Indices:     make([]uint32, 0, MaxIndices),
		vertexIndex: make(map[vertexKey]uint32),
	}
}

// stitchedPoint is a surface point translated into the meshing chunk's local
// frame, still tagged with the chunk it was actually stored under so
// identical points reached via different triangles dedup to one vertex.
type stitchedPoint struct {
	owner voxel.ChunkCoord
	coord voxel.LocalCoord
	point voxel.SurfacePoint
}

func (m *IndexedMesh) vertex(sp stitchedPoint, worldOffset [3]float64, scale float64, color [4]float32) (uint32, bool) {
	key := vertexKey{
		ChunkX: sp.owner.X, ChunkY: sp.owner.Y, ChunkZ: sp.owner.Z,
		VX: sp.coord.X, VY: sp.coord.Y, VZ: sp.coord.Z,
	}
	if idx, ok := m.vertexIndex[key]; ok {
		return idx, true
	}
	if len(m.Vertices) >= MaxVertices {
		return 0, false
	}

	px := (sp.point.Position.X() + worldOffset[0]) * scale
	py := (sp.point.Position.Y() + worldOffset[1]) * scale
	pz := (sp.point.Position.Z() + worldOffset[2]) * scale

	idx := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{
		Position: [4]float32{float32(px), float32(py), float32(pz), 1},
		Normal:   [4]float32{float32(sp.point.Normal.X()), float32(sp.point.Normal.Y()), float32(sp.point.Normal.Z()), 0},
		Color:    color,
	})
	m.vertexIndex[key] = idx
	return idx, true
}

// addTriangle emits one triangle, dropping it (and counting it in
// DroppedTriangles) if either the vertex or index budget is exhausted.
func (m *IndexedMesh) addTriangle(z, a, b stitchedPoint, worldOffset [3]float64, scale float64, color [4]float32) {
	if len(m.Indices)+3 > MaxIndices {
		m.DroppedTriangles++
		return
	}
	zi, ok1 := m.vertex(z, worldOffset, scale, color)
	ai, ok2 := m.vertex(a, worldOffset, scale, color)
	bi, ok3 := m.vertex(b, worldOffset, scale, color)
	if !ok1 || !ok2 || !ok3 {
		m.DroppedTriangles++
		return
	}
	m.Indices = append(m.Indices, zi, ai, bi)
}

// NeighborChunk is the slice of a neighboring chunk's state BuildMesh needs
// to stitch surface points across a boundary: its own coordinate/degree (to
// compute the vertex identity and world offset) and its surface map.
type NeighborChunk struct {
	Coord    voxel.ChunkCoord
	Degree   uint8
	Surfaces *voxel.SparseOctree[voxel.SurfacePoint]
}

// getNeighborSfp resolves, for each of the 8 combinatorial directions in
// NegativeDirs order, the surface point reached by stepping coord+dir: a nil
// entry (missing neighbor, no surface map yet, or no crossing at that voxel)
// means that quad can't be built this frame. negNeighbors[0] may be left nil
// to mean "use self" (the zero offset never actually leaves the chunk).
func getNeighborSfp(selfCoord voxel.ChunkCoord, degree uint8, selfSurfaces *voxel.SparseOctree[voxel.SurfacePoint], coord voxel.LocalCoord, negNeighbors [8]*NeighborChunk) [8]*stitchedPoint {
	var sfps [8]*stitchedPoint
	coords := NeighborCoords(coord, voxel.NegativeDirs[:], degree)
	for i, nc := range coords {
		owner := negNeighbors[nc.Index]
		ownerCoord, ownerDegree, surfaces := selfCoord, degree, selfSurfaces
		if owner != nil {
			ownerCoord, ownerDegree, surfaces = owner.Coord, owner.Degree, owner.Surfaces
		} else if nc.Index != 0 {
			continue
		}
		if surfaces == nil {
			continue
		}
		loc := voxel.Coord2Loc(nc.Coord, ownerDegree)
		v, ok := surfaces.Get(loc)
		if !ok {
			continue
		}

		offset := coord.Add(voxel.NegativeDirs[i])
		sfps[i] = &stitchedPoint{
			owner: ownerCoord,
			coord: nc.Coord,
			point: voxel.SurfacePoint{
				Position: v.Value.Position.Add(voxelToVec3(offset)),
				Normal:   v.Value.Normal,
			},
		}
	}
	return sfps
}

func voxelToVec3(c voxel.LocalCoord) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X), float64(c.Y), float64(c.Z)}
}

// BuildMesh dual-contours one chunk's already-extracted surface points into
// triangles, stitching in neighboring chunks' surface points wherever a quad
// straddles the chunk boundary. unitNeighbors gives the +x/+y/+z chunk
// samples (UnitDirs order, index 0 unused) needed to test each voxel's 3
// axis-aligned crossings; negNeighbors gives the 8 combinatorial neighbor
// chunks (NegativeDirs order) whose surface maps supply the quad's other 3
// corners.
func BuildMesh(chunkCoord voxel.ChunkCoord, degree uint8, worldScale float64, selfSamples *SampleTree, selfSurfaces *voxel.SparseOctree[voxel.SurfacePoint], unitNeighbors [4]*SampleTree, negNeighbors [8]*NeighborChunk) *IndexedMesh {
	mesh := NewIndexedMesh()
	chunkSize := int32(1) << degree
	worldOffset := [3]float64{
		float64(chunkCoord.X * chunkSize),
		float64(chunkCoord.Y * chunkSize),
		float64(chunkCoord.Z * chunkSize),
	}
	color := [4]float32{1, 1, 1, 1}

	for _, loc := range selfSurfaces.Keys() {
		coord := voxel.Loc2Coord(loc, degree)
		dists := NeighborDist(selfSamples, coord, voxel.UnitDirs[:], unitNeighbors[:])
		sfps := getNeighborSfp(chunkCoord, degree, selfSurfaces, coord, negNeighbors)
		if sfps[0] == nil {
			continue
		}
		z := *sfps[0]

		for s := 0; s < 3; s++ {
			inds := voxel.SfpInds[s]
			a, b, c := sfps[inds[0]], sfps[inds[1]], sfps[inds[2]]
			if !isIntersection(dists[0], dists[s+1]) || a == nil || b == nil || c == nil {
				continue
			}
			if dists[s+1] > dists[0] {
				mesh.addTriangle(z, *a, *b, worldOffset, worldScale, color)
				mesh.addTriangle(z, *b, *c, worldOffset, worldScale, color)
			} else {
				mesh.addTriangle(z, *b, *a, worldOffset, worldScale, color)
				mesh.addTriangle(z, *c, *b, worldOffset, worldScale, color)
			}
		}
	}

	return mesh
}
