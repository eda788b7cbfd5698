package voxel

// FieldOracle is the host-supplied distance field the terrain pipeline
// samples to decide what's solid. Sample receives a world-space position
// (already scaled by the sampleScale passed to terrain.SampleChunk) and
// returns a density in [0, 255], where values at or below 128 are read as
// "inside" and values above 128 as "outside" — the sign of (value - 128),
// with zero counted as negative, drives every surface crossing test.
type FieldOracle interface {
	Sample(x, y, z float64) uint8
}

// FieldOracleFunc adapts a plain function to the FieldOracle interface, the
// same func-to-interface idiom used throughout the rest of this module's
// handler-style collaborators.
type FieldOracleFunc func(x, y, z float64) uint8

// Sample calls f.
func (f FieldOracleFunc) Sample(x, y, z float64) uint8 {
	return f(x, y, z)
}
