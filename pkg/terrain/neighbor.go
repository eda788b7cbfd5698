package terrain

import "github.com/leterax/voxelstream/pkg/voxel"

// NeighborCoord is one resolved direction offset: Index selects which of the
// 8 combinatorial direction slots (PositiveDirs/NegativeDirs ordering) the
// wrapped coordinate belongs to, and Coord is the offset coordinate wrapped
// back into [0, chunkSize) on whichever axes overflowed.
type NeighborCoord struct {
	Index int
	Coord voxel.LocalCoord
}

// NeighborCoords resolves coord+dir for every dir in dirs against a chunk of
// the given degree, wrapping any axis that falls outside [0, chunkSize) and
// recording which of the 8 neighbor-chunk slots that wrap lands in.
func NeighborCoords(coord voxel.LocalCoord, dirs []voxel.LocalCoord, degree uint8) []NeighborCoord {
	chunkSize := int32(1) << degree
	ret := make([]NeighborCoord, len(dirs))
	for i, dir := range dirs {
		cur := coord.Add(dir)
		var wrap int
		if cur.X >= chunkSize || cur.X < 0 {
			wrap |= 0b001
			cur.X = ((cur.X % chunkSize) + chunkSize) % chunkSize
		}
		if cur.Y >= chunkSize || cur.Y < 0 {
			wrap |= 0b010
			cur.Y = ((cur.Y % chunkSize) + chunkSize) % chunkSize
		}
		if cur.Z >= chunkSize || cur.Z < 0 {
			wrap |= 0b100
			cur.Z = ((cur.Z % chunkSize) + chunkSize) % chunkSize
		}
		ret[i] = NeighborCoord{Index: voxel.BitwiseToDirs[wrap], Coord: cur}
	}
	return ret
}

// NeighborDist samples the signed density (voxel value minus 128, so the
// sign alone says inside/outside) at coord+dir for every dir in dirs,
// fetching from neighbors[idx] whenever the offset wrapped out of self, and
// from self otherwise (idx 0, the zero offset, always resolves to self).
func NeighborDist(self *SampleTree, coord voxel.LocalCoord, dirs []voxel.LocalCoord, neighbors []*SampleTree) []float64 {
	dists := make([]float64, len(dirs))
	coords := NeighborCoords(coord, dirs, self.Degree)
	for i, nc := range coords {
		var value uint8
		if n := neighbors[nc.Index]; nc.Index != 0 && n != nil {
			value = n.GetVoxel(nc.Coord)
		} else {
			value = self.GetVoxel(nc.Coord)
		}
		dists[i] = float64(int32(value) - 128)
	}
	return dists
}

func isIntersection(a, b float64) bool {
	return sign(a) != sign(b)
}

func sign(a float64) float64 {
	if a > 0 {
		return 1
	}
	return -1
}
