package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrAncestorFallsBackToParent(t *testing.T) {
	tree := NewSparseOctree[uint8](3)
	root := Coord2Loc(LocalCoord{0, 0, 0}, 0) // degree-0 code == 1
	tree.InsertValue(1, 200)

	leaf := Coord2Loc(LocalCoord{3, 3, 3}, 3)
	n := tree.GetOrAncestor(leaf)
	assert.Equal(t, uint8(200), n.Value)
	assert.Equal(t, LocCode(1), root)
}

func TestGetOrAncestorExactMatchWins(t *testing.T) {
	tree := NewSparseOctree[uint8](3)
	tree.InsertValue(1, 10)
	leaf := Coord2Loc(LocalCoord{1, 1, 1}, 3)
	tree.InsertValue(leaf, 250)

	n := tree.GetOrAncestor(leaf)
	assert.Equal(t, uint8(250), n.Value)
}

func TestGetOrAncestorPanicsOnZero(t *testing.T) {
	tree := NewSparseOctree[uint8](3)
	tree.InsertValue(1, 1)
	require.Panics(t, func() {
		tree.GetOrAncestor(0)
	})
}

func TestSparseOctreeKeysAndLen(t *testing.T) {
	tree := NewSparseOctree[uint8](2)
	tree.Insert(1, Node[uint8]{ChildMask: 0b11, Value: 5})
	tree.InsertValue(8, 9)
	require.Equal(t, 2, tree.Len())
	assert.ElementsMatch(t, []LocCode{1, 8}, tree.Keys())
}
