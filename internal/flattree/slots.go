package flattree

import (
	"iter"

	"github.com/RoaringBitmap/roaring"
	"github.com/pkg/errors"
)

// Slot is the stored form of one node, including deleted ones.
type Slot[T any] struct {
	Value  T
	Parent NodeId
	Dead   bool
}

// Slots yields every allocated slot in id order, live or dead.
func (t *FlatTree[T]) Slots() iter.Seq2[NodeId, Slot[T]] {
	return func(yield func(NodeId, Slot[T]) bool) {
		for id, e := range t.elements {
			s := Slot[T]{Value: e.value, Parent: e.parent, Dead: t.dead.Contains(uint32(id))}
			if !yield(NodeId(id), s) {
				return
			}
		}
	}
}

// FromSlots rebuilds a tree from the output of Slots. Every parent must come
// before its children, and a live node cannot hang under a dead one.
func FromSlots[T any](slots []Slot[T]) (*FlatTree[T], error) {
	if len(slots) == 0 {
		return nil, errors.New("tree has no root")
	}
	if slots[0].Parent != RootID || slots[0].Dead {
		return nil, errors.New("root must be live and its own parent")
	}
	t := &FlatTree[T]{
		elements: make([]entry[T], 0, len(slots)),
		dead:     roaring.NewBitmap(),
	}
	for i, s := range slots {
		id := NodeId(i)
		if id != RootID && (s.Parent < 0 || s.Parent >= id) {
			return nil, errors.Errorf("node %d: parent %d is not an earlier node", id, s.Parent)
		}
		if !s.Dead && t.dead.Contains(uint32(s.Parent)) {
			return nil, errors.Errorf("node %d is live under deleted parent %d", id, s.Parent)
		}
		t.elements = append(t.elements, entry[T]{value: s.Value, parent: s.Parent})
		if s.Dead {
			t.dead.Add(uint32(id))
		}
	}
	return t, nil
}
