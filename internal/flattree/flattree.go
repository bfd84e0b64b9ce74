// Package flattree implements an arena tree: nodes live in one insertion-ordered
// slice and are addressed by the index they were created at.
//
// Ids are never reused or renumbered. Deleting a node tombstones it and its
// descendants; the slots stay allocated so every other id keeps its meaning.
package flattree

import (
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring"
	"github.com/galelang/gale/internal/diagnostics"
)

// NodeId is the index a node was created at.
type NodeId int

// RootID is always the first node of a tree.
const RootID NodeId = 0

// ErrorID marks a child reference that has not been assigned yet. It is used
// while a parent is built before its children and must not survive into a
// finished tree.
const ErrorID NodeId = math.MaxInt32

type entry[T any] struct {
	value  T
	parent NodeId
}

type FlatTree[T any] struct {
	elements []entry[T]
	dead     *roaring.Bitmap
}

func NewWithRoot[T any](root T) *FlatTree[T] {
	return &FlatTree[T]{
		elements: []entry[T]{{value: root, parent: RootID}},
		dead:     roaring.NewBitmap(),
	}
}

// Len returns the number of allocated slots, live or dead.
func (t *FlatTree[T]) Len() int {
	return len(t.elements)
}

// LiveCount returns the number of live nodes.
func (t *FlatTree[T]) LiveCount() int {
	return len(t.elements) - int(t.dead.GetCardinality())
}

func (t *FlatTree[T]) check(n NodeId) {
	if n < 0 || int(n) >= len(t.elements) {
		diagnostics.Invariantf("node id %d was never issued (tree has %d nodes)", n, len(t.elements))
	}
}

// IsLive reports whether n has not been deleted.
func (t *FlatTree[T]) IsLive(n NodeId) bool {
	t.check(n)
	return !t.dead.Contains(uint32(n))
}

// NewNode appends v under parent and returns its id.
func (t *FlatTree[T]) NewNode(v T, parent NodeId) NodeId {
	if !t.IsLive(parent) {
		diagnostics.Invariantf("cannot attach node to deleted parent %d", parent)
	}
	id := NodeId(len(t.elements))
	t.elements = append(t.elements, entry[T]{value: v, parent: parent})
	return id
}

// SetNodeValue replaces the payload of a live node. The parent link is unchanged.
func (t *FlatTree[T]) SetNodeValue(n NodeId, v T) {
	if t.IsLive(n) {
		t.elements[n].value = v
	}
}

// NodeValue returns the payload of n, or false if n was deleted.
func (t *FlatTree[T]) NodeValue(n NodeId) (T, bool) {
	if !t.IsLive(n) {
		var zero T
		return zero, false
	}
	return t.elements[n].value, true
}

// MutNodeValue returns a pointer to the payload of n, or false if n was deleted.
// The pointer is invalidated by the next NewNode.
func (t *FlatTree[T]) MutNodeValue(n NodeId) (*T, bool) {
	if !t.IsLive(n) {
		return nil, false
	}
	return &t.elements[n].value, true
}

// Parent returns the id n was created under. The root is its own parent.
func (t *FlatTree[T]) Parent(n NodeId) NodeId {
	t.check(n)
	return t.elements[n].parent
}

// Children returns the live children of n in creation order.
func (t *FlatTree[T]) Children(n NodeId) []NodeId {
	t.check(n)
	var r []NodeId
	for id := int(n) + 1; id < len(t.elements); id++ {
		if t.elements[id].parent == n && !t.dead.Contains(uint32(id)) {
			r = append(r, NodeId(id))
		}
	}
	return r
}

// DeleteNode tombstones n and every node whose parent chain passes through it.
func (t *FlatTree[T]) DeleteNode(n NodeId) {
	if !t.IsLive(n) {
		return
	}
	// Children are always created after their parent, so one forward pass
	// sees every descendant after its parent.
	killed := roaring.BitmapOf(uint32(n))
	for id := int(n) + 1; id < len(t.elements); id++ {
		if killed.Contains(uint32(t.elements[id].parent)) {
			killed.Add(uint32(id))
		}
	}
	t.dead.Or(killed)
}

// All yields every live node once, in id order.
func (t *FlatTree[T]) All() iter.Seq2[NodeId, T] {
	return func(yield func(NodeId, T) bool) {
		for id := range t.elements {
			if t.dead.Contains(uint32(id)) {
				continue
			}
			if !yield(NodeId(id), t.elements[id].value) {
				return
			}
		}
	}
}

// PreOrder yields live nodes so that every node comes before its descendants.
// Children discovered last are visited first.
func (t *FlatTree[T]) PreOrder() iter.Seq2[NodeId, T] {
	return func(yield func(NodeId, T) bool) {
		if len(t.elements) == 0 || t.dead.Contains(uint32(RootID)) {
			return
		}
		children := t.childIndex()
		queue := []NodeId{RootID}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			for _, c := range children[next] {
				queue = append([]NodeId{c}, queue...)
			}
			if !yield(next, t.elements[next].value) {
				return
			}
		}
	}
}

func (t *FlatTree[T]) childIndex() map[NodeId][]NodeId {
	idx := make(map[NodeId][]NodeId)
	for id := 1; id < len(t.elements); id++ {
		if t.dead.Contains(uint32(id)) {
			continue
		}
		p := t.elements[id].parent
		idx[p] = append(idx[p], NodeId(id))
	}
	return idx
}
