package voxel

// The direction tables below are the fixed geometry of a cube: the 8 corner
// offsets in two different signs, the 12 edges connecting them, and the
// permutations the wrap-around and dual-contouring logic need. They are not
// computed — they're a closed combinatorial table, so they're declared once
// here and consumed as data everywhere else.

var (
	dirZero    = LocalCoord{0, 0, 0}
	dirRight   = LocalCoord{1, 0, 0}
	dirLeft    = LocalCoord{-1, 0, 0}
	dirUp      = LocalCoord{0, 1, 0}
	dirDown    = LocalCoord{0, -1, 0}
	dirForward = LocalCoord{0, 0, 1}
	dirBack    = LocalCoord{0, 0, -1}
)

// UnitDirs is {zero, +x, +y, +z} — used by the mesher to sample the self
// voxel plus its three positive axis neighbors.
var UnitDirs = [4]LocalCoord{dirZero, dirRight, dirUp, dirForward}

// PositiveDirs enumerates all 8 combinations of +x/+y/+z (the cube corners
// reachable by only positive offsets), in the order the edge/sign-interval
// tables below assume.
var PositiveDirs = [8]LocalCoord{
	dirZero,
	dirRight,
	dirUp,
	dirForward,
	dirRight.Add(dirUp),
	dirRight.Add(dirForward),
	dirForward.Add(dirUp),
	dirRight.Add(dirForward).Add(dirUp),
}

// NegativeDirs mirrors PositiveDirs with -x/-y/-z, same combinatorial order.
var NegativeDirs = [8]LocalCoord{
	dirZero,
	dirLeft,
	dirDown,
	dirBack,
	dirLeft.Add(dirDown),
	dirLeft.Add(dirBack),
	dirBack.Add(dirDown),
	dirLeft.Add(dirBack).Add(dirDown),
}

// EdgeInds indexes pairs of PositiveDirs entries describing the 12 edges of
// the unit cube, in a fixed canonical order shared with EdgePairs.
var EdgeInds = [12][2]int{
	{0, 1}, {0, 2}, {0, 3},
	{1, 4}, {1, 5},
	{2, 4}, {2, 6},
	{3, 5}, {3, 6},
	{4, 7}, {5, 7}, {6, 7},
}

// EdgeIndsX/Y/Z group the 4 edges parallel to each axis, for gradient
// estimation from the corner distance samples.
var (
	EdgeIndsX = [4][2]int{{0, 1}, {2, 4}, {3, 5}, {6, 7}}
	EdgeIndsY = [4][2]int{{0, 2}, {1, 4}, {3, 6}, {5, 7}}
	EdgeIndsZ = [4][2]int{{0, 3}, {1, 5}, {2, 6}, {4, 7}}
)

// EdgePairs gives, for each of the 12 edges (same order as EdgeInds), the
// base offset and the axis-aligned unit step used to interpolate a surface
// point's position along that edge.
var EdgePairs = [12][2]LocalCoord{
	{dirZero, dirRight},
	{dirZero, dirUp},
	{dirZero, dirForward},
	{dirRight, dirUp},
	{dirRight, dirForward},
	{dirUp, dirRight},
	{dirUp, dirForward},
	{dirForward, dirRight},
	{dirForward, dirUp},
	{dirRight.Add(dirUp), dirForward},
	{dirRight.Add(dirForward), dirUp},
	{dirUp.Add(dirForward), dirRight},
}

// BitwiseToDirs remaps the raw zyx wrap-around bitmask (bit0=x, bit1=y,
// bit2=z) produced by axis-overflow checks into the canonical combinatorial
// position used by PositiveDirs/NegativeDirs (which order the xy/xz/yz pairs
// differently from a raw bit count).
var BitwiseToDirs = [8]int{0, 1, 2, 4, 3, 5, 6, 7}

// SfpInds names, for each of the 3 axes a voxel's feature point can form a
// quad along, the indices into a NegativeDirs-ordered neighbor surface-point
// slice of the other three corners of that quad.
var SfpInds = [3][3]int{
	{3, 6, 2},
	{1, 5, 3},
	{2, 4, 1},
}
