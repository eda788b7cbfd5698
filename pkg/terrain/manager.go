package terrain

import "github.com/leterax/voxelstream/pkg/voxel"

// ChunkManager owns the three pipeline stages (sample -> extract surface ->
// mesh) and schedules them across frames with a fixed per-frame operation
// budget. It is deliberately single-threaded: unlike the teacher's
// goroutine-per-chunk worker pool, every stage here runs inline on the
// caller's goroutine so a host render loop can interleave generation with
// drawing without synchronizing on channels or mutexes.
type ChunkManager struct {
	ChunkDegree        uint8
	SampleScale        float64
	ChunkScale         float64
	ViewDist           int32
	GenDist            int32
	OperationsPerFrame int

	Oracle voxel.FieldOracle

	chunks      map[voxel.ChunkKey]*SampleTree
	surfaceMaps map[voxel.ChunkKey]*voxel.SparseOctree[voxel.SurfacePoint]
	meshes      map[voxel.ChunkKey]*IndexedMesh

	queueChunk []voxel.ChunkCoord
	queueSfp   []voxel.ChunkCoord
	queueMesh  []voxel.ChunkCoord

	operationPending map[voxel.ChunkKey]struct{}
	chunkUpdated     map[voxel.ChunkKey]struct{}
}

// NewChunkManager builds an empty manager for chunks of the given degree
// (2^degree voxels per axis), sampled at sampleScale and rendered at
// chunkScale, against the given density field.
func NewChunkManager(degree uint8, sampleScale, chunkScale float64, viewDist, genDist int32, operationsPerFrame int, oracle voxel.FieldOracle) *ChunkManager {
	return &ChunkManager{
		ChunkDegree:        degree,
		SampleScale:        sampleScale,
		ChunkScale:         chunkScale,
		ViewDist:           viewDist,
		GenDist:            genDist,
		OperationsPerFrame: operationsPerFrame,
		Oracle:             oracle,

		chunks:      make(map[voxel.ChunkKey]*SampleTree),
		surfaceMaps: make(map[voxel.ChunkKey]*voxel.SparseOctree[voxel.SurfacePoint]),
		meshes:      make(map[voxel.ChunkKey]*IndexedMesh),

		operationPending: make(map[voxel.ChunkKey]struct{}),
		chunkUpdated:     make(map[voxel.ChunkKey]struct{}),
	}
}

func (m *ChunkManager) key(coord voxel.ChunkCoord) voxel.ChunkKey {
	return coord.Key(int32(1) << m.ChunkDegree)
}

func (m *ChunkManager) createChunk(coord voxel.ChunkCoord) {
	m.chunks[m.key(coord)] = SampleChunk(coord, m.ChunkDegree, m.SampleScale, m.Oracle)
}

func (m *ChunkManager) getNeighborChunks(chunkCoord voxel.ChunkCoord, dirs [8]voxel.LocalCoord) [8]*SampleTree {
	var ret [8]*SampleTree
	for i, dir := range dirs {
		ret[i] = m.chunks[m.key(chunkOffset(chunkCoord, dir))]
	}
	return ret
}

func (m *ChunkManager) getNeighborSurfaceChunks(chunkCoord voxel.ChunkCoord, dirs [8]voxel.LocalCoord) [8]*NeighborChunk {
	var ret [8]*NeighborChunk
	for i, dir := range dirs {
		nc := chunkOffset(chunkCoord, dir)
		surfaces, ok := m.surfaceMaps[m.key(nc)]
		if !ok {
			continue
		}
		ret[i] = &NeighborChunk{Coord: nc, Degree: m.ChunkDegree, Surfaces: surfaces}
	}
	return ret
}

func chunkOffset(coord voxel.ChunkCoord, dir voxel.LocalCoord) voxel.ChunkCoord {
	return voxel.ChunkCoord{X: coord.X + dir.X, Y: coord.Y + dir.Y, Z: coord.Z + dir.Z}
}

func (m *ChunkManager) createSurfaceMap(coord voxel.ChunkCoord) {
	key := m.key(coord)
	chunk, ok := m.chunks[key]
	if !ok {
		return
	}
	neighbors := m.getNeighborChunks(coord, voxel.PositiveDirs)
	m.surfaceMaps[key] = ExtractSurface(chunk, neighbors)
}

func (m *ChunkManager) hasSurfaceMap(coord voxel.ChunkCoord) bool {
	_, ok := m.surfaceMaps[m.key(coord)]
	return ok
}

func (m *ChunkManager) createMesh(coord voxel.ChunkCoord) {
	key := m.key(coord)
	surfaces, ok := m.surfaceMaps[key]
	if !ok {
		return
	}
	chunk := m.chunks[key]
	var unitDirsFull [8]voxel.LocalCoord
	copy(unitDirsFull[:4], voxel.UnitDirs[:])
	unitNeighbors := m.getNeighborChunks(coord, unitDirsFull)
	negNeighbors := m.getNeighborSurfaceChunks(coord, voxel.NegativeDirs)

	var unitArr [4]*SampleTree
	copy(unitArr[:], unitNeighbors[:4])

	m.meshes[key] = BuildMesh(coord, m.ChunkDegree, m.ChunkScale, chunk, surfaces, unitArr, negNeighbors)
}

// GenerateChunks drains the three work queues by up to OperationsPerFrame
// steps, in chunk -> surface -> mesh priority order: any pending chunk
// sample runs before any pending surface extraction, which runs before any
// pending mesh build. Finishing a stage for a chunk requeues its neighbors
// for the next stage, so a chunk's full pipeline completes in topological
// order across however many frames it takes.
func (m *ChunkManager) GenerateChunks(curChunk voxel.ChunkCoord) {
	doGeneration := false
	for _, c := range NearbyCoords(curChunk, m.ViewDist) {
		key := m.key(c)
		if _, pending := m.operationPending[key]; !pending {
			if _, exists := m.chunks[key]; !exists {
				doGeneration = true
				break
			}
		}
	}

	if doGeneration {
		for _, c := range NearbyCoords(curChunk, m.GenDist) {
			key := m.key(c)
			if _, pending := m.operationPending[key]; pending {
				continue
			}
			if _, exists := m.chunks[key]; exists {
				continue
			}
			m.operationPending[key] = struct{}{}
			m.queueChunk = append(m.queueChunk, c)
		}
	}

	m.chunkUpdated = make(map[voxel.ChunkKey]struct{})

	for i := 0; i < m.OperationsPerFrame; i++ {
		switch {
		case len(m.queueChunk) > 0:
			c := m.queueChunk[len(m.queueChunk)-1]
			m.queueChunk = m.queueChunk[:len(m.queueChunk)-1]
			m.createChunk(c)
			for _, dir := range voxel.NegativeDirs {
				cc := chunkOffset(c, dir)
				key := m.key(cc)
				if _, exists := m.chunks[key]; exists {
					if _, pending := m.operationPending[key]; !pending {
						m.operationPending[key] = struct{}{}
						m.queueSfp = append(m.queueSfp, cc)
					}
				}
			}
			m.queueSfp = append(m.queueSfp, c)

		case len(m.queueSfp) > 0:
			c := m.queueSfp[len(m.queueSfp)-1]
			m.queueSfp = m.queueSfp[:len(m.queueSfp)-1]
			m.createSurfaceMap(c)
			for _, dir := range voxel.PositiveDirs {
				cc := chunkOffset(c, dir)
				key := m.key(cc)
				if _, exists := m.surfaceMaps[key]; exists {
					if _, pending := m.operationPending[key]; !pending {
						m.operationPending[key] = struct{}{}
						m.queueMesh = append(m.queueMesh, cc)
					}
				}
			}
			m.queueMesh = append(m.queueMesh, c)

		case len(m.queueMesh) > 0:
			c := m.queueMesh[len(m.queueMesh)-1]
			m.queueMesh = m.queueMesh[:len(m.queueMesh)-1]
			m.createMesh(c)
			key := m.key(c)
			delete(m.operationPending, key)
			m.chunkUpdated[key] = struct{}{}

		default:
			return
		}
	}
}

// ChunkUpdated reports the set of chunks whose mesh was (re)built during the
// most recent GenerateChunks call.
func (m *ChunkManager) ChunkUpdated() map[voxel.ChunkKey]struct{} {
	return m.chunkUpdated
}

// VisibleMeshes returns every built mesh within ViewDist of curChunk.
func (m *ChunkManager) VisibleMeshes(curChunk voxel.ChunkCoord) map[voxel.ChunkKey]*IndexedMesh {
	ret := make(map[voxel.ChunkKey]*IndexedMesh)
	for _, c := range NearbyCoords(curChunk, m.ViewDist) {
		key := m.key(c)
		if mesh, ok := m.meshes[key]; ok {
			ret[key] = mesh
		}
	}
	return ret
}

// NearbyCoords enumerates every chunk coordinate within a cube of the given
// radius around orig, ordered by expanding radial shell (closest first) so a
// caller that only processes a budget's worth each frame fills in the
// nearest chunks before the farther ones.
func NearbyCoords(orig voxel.ChunkCoord, dist int32) []voxel.ChunkCoord {
	size := (2*dist + 1) * (2*dist + 1) * (2*dist + 1)
	coords := make([]voxel.ChunkCoord, 0, size)
	add := func(x, y, z int32) {
		coords = append(coords, voxel.ChunkCoord{X: orig.X + x, Y: orig.Y + y, Z: orig.Z + z})
	}

	for k := int32(0); k <= dist; k++ {
		for j := int32(0); j <= k; j++ {
			for i := -j; i <= j; i++ {
				add(i, j, k)
				if j != 0 {
					add(i, -j, k)
				}
				if k != 0 {
					add(i, j, -k)
					if j != 0 {
						add(i, -j, -k)
					}
				}
			}
			if j != 0 {
				j2 := j - 1
				for i := -j2; i <= j2; i++ {
					add(j, i, k)
					add(-j, i, k)
					add(j, i, -k)
					add(-j, i, -k)
				}
			}
		}
		if k != 0 {
			k2 := k - 1
			for j := -k2; j <= k2; j++ {
				for i := -k; i <= k; i++ {
					add(i, k, j)
					add(i, -k, j)
				}
				for i := -k2; i <= k2; i++ {
					add(k, i, j)
					add(-k, i, j)
				}
			}
		}
	}

	return coords
}
