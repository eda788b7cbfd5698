package voxel

import "fmt"

// Node is one entry in a SparseOctree: a value plus a bitmask of which of its
// 8 children are materialized (a zero mask means the value is uniform across
// the whole subtree rooted here, and no children are stored).
type Node[T any] struct {
	ChildMask uint8
	Value     T
}

// SparseOctree is a linear-hashed octree of fixed maximum degree D, storing
// only the nodes that diverge from their parent's uniform value. Nodes are
// keyed by LocCode, so lookups and ancestor walks are plain map operations
// rather than pointer-chasing down a tree.
type SparseOctree[T any] struct {
	Degree uint8
	nodes  map[LocCode]Node[T]
}

// NewSparseOctree creates an empty tree for chunks of the given degree.
func NewSparseOctree[T any](degree uint8) *SparseOctree[T] {
	return &SparseOctree[T]{
		Degree: degree,
		nodes:  make(map[LocCode]Node[T]),
	}
}

// Insert stores a node at the given code, overwriting any existing entry.
func (o *SparseOctree[T]) Insert(loc LocCode, node Node[T]) {
	o.nodes[loc] = node
}

// InsertValue stores a leaf value (no materialized children) at the given code.
func (o *SparseOctree[T]) InsertValue(loc LocCode, value T) {
	o.nodes[loc] = Node[T]{Value: value}
}

// Get returns the node stored exactly at loc, if any.
func (o *SparseOctree[T]) Get(loc LocCode) (Node[T], bool) {
	n, ok := o.nodes[loc]
	return n, ok
}

// ContainsKey reports whether a node is stored exactly at loc.
func (o *SparseOctree[T]) ContainsKey(loc LocCode) bool {
	_, ok := o.nodes[loc]
	return ok
}

// GetOrAncestor walks up from loc (shifting off 3 bits at a time) until it
// finds a materialized node, returning the nearest ancestor's value. Panics
// if loc is the sentinel code 0, which can never resolve to the root.
func (o *SparseOctree[T]) GetOrAncestor(loc LocCode) Node[T] {
	if loc == 0 {
		panic("voxel: GetOrAncestor called with loc 0")
	}
	for l := loc; l != 0; l >>= 3 {
		if n, ok := o.nodes[l]; ok {
			return n
		}
	}
	panic(fmt.Sprintf("voxel: no ancestor found for loc %d (root missing)", loc))
}

// Keys returns every materialized LocCode in the tree, in no particular order.
func (o *SparseOctree[T]) Keys() []LocCode {
	keys := make([]LocCode, 0, len(o.nodes))
	for k := range o.nodes {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of materialized nodes.
func (o *SparseOctree[T]) Len() int {
	return len(o.nodes)
}
