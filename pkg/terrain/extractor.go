package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/leterax/voxelstream/pkg/voxel"
)

// ExtractSurface dual-contours a sampled chunk into a sparse octree of
// SurfacePoints, one per voxel whose 12 cube edges contain at least one sign
// change. neighbors is indexed in PositiveDirs order (neighbors[0] is unused,
// the self chunk always resolves local lookups); a nil entry means that
// neighbor chunk hasn't been sampled yet and self's own field is used for any
// edge that would otherwise cross into it.
func ExtractSurface(self *SampleTree, neighbors [8]*SampleTree) *voxel.SparseOctree[voxel.SurfacePoint] {
	degree := self.Degree
	chunkSize := int32(1) << degree
	surfaces := voxel.NewSparseOctree[voxel.SurfacePoint](degree)

	var dd [12][2]float64
	var signs [12]bool

	for k := int32(0); k < chunkSize; k++ {
		for j := int32(0); j < chunkSize; j++ {
			for i := int32(0); i < chunkSize; i++ {
				coord := voxel.LocalCoord{X: i, Y: j, Z: k}
				dists := NeighborDist(self, coord, voxel.PositiveDirs[:], neighbors[:])

				acc := 0
				for d, ei := range voxel.EdgeInds {
					d0, d1 := dists[ei[0]], dists[ei[1]]
					dd[d] = [2]float64{d0, d1}
					signs[d] = isIntersection(d0, d1)
					if signs[d] {
						acc++
					}
				}
				if acc == 0 {
					continue
				}

				var r mgl64.Vec3
				for s := 0; s < 12; s++ {
					if !signs[s] {
						continue
					}
					ratio := dd[s][0] / (dd[s][0] - dd[s][1])
					base, step := voxel.EdgePairs[s][0], voxel.EdgePairs[s][1]
					r = r.Add(mgl64.Vec3{
						float64(base.X) + float64(step.X)*ratio,
						float64(base.Y) + float64(step.Y)*ratio,
						float64(base.Z) + float64(step.Z)*ratio,
					})
				}
				r = r.Mul(1.0 / float64(acc))

				normal := mgl64.Vec3{
					gradAxis(dists, voxel.EdgeIndsX),
					gradAxis(dists, voxel.EdgeIndsY),
					gradAxis(dists, voxel.EdgeIndsZ),
				}.Normalize()

				loc := voxel.Coord2Loc(coord, degree)
				surfaces.InsertValue(loc, voxel.SurfacePoint{Position: r, Normal: normal})
			}
		}
	}

	return surfaces
}

func gradAxis(dists []float64, edges [4][2]int) float64 {
	var sum float64
	for _, e := range edges {
		sum += dists[e[0]] - dists[e[1]]
	}
	return sum
}
