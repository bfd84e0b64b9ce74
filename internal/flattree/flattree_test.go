package flattree

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/galelang/gale/internal/diagnostics"
	"github.com/stretchr/testify/require"
)

func TestSingleChild(t *testing.T) {
	tr := NewWithRoot(3)
	n1 := tr.NewNode(4, RootID)

	v, ok := tr.NodeValue(RootID)
	require.True(t, ok)
	require.Equal(t, 3, v)
	v, ok = tr.NodeValue(n1)
	require.True(t, ok)
	require.Equal(t, 4, v)
	require.Equal(t, []NodeId{n1}, tr.Children(RootID))
	require.Equal(t, RootID, tr.Parent(n1))
}

func TestChildrenInInsertionOrder(t *testing.T) {
	tr := NewWithRoot("root")
	var want []NodeId
	for i := 0; i < 10; i++ {
		want = append(want, tr.NewNode("child", RootID))
		// grandchildren interleaved with siblings must not show up
		tr.NewNode("grandchild", want[len(want)-1])
	}
	require.Equal(t, want, tr.Children(RootID))
}

func TestDeleteSubtree(t *testing.T) {
	tr := NewWithRoot(3)
	n1 := tr.NewNode(4, RootID)
	n2 := tr.NewNode(5, RootID)
	n3 := tr.NewNode(6, n2)
	n4 := tr.NewNode(7, n1)

	tr.DeleteNode(n2)

	_, ok := tr.NodeValue(n2)
	require.False(t, ok)
	_, ok = tr.NodeValue(n3)
	require.False(t, ok)
	v, ok := tr.NodeValue(n4)
	require.True(t, ok)
	require.Equal(t, 7, v)
	require.Equal(t, []NodeId{n1}, tr.Children(RootID))
	require.Equal(t, 5, tr.Len())
	require.Equal(t, 3, tr.LiveCount())

	// ids issued after a deletion continue from the end
	n5 := tr.NewNode(8, n1)
	require.Equal(t, NodeId(5), n5)
}

func TestSetNodeValueKeepsParent(t *testing.T) {
	tr := NewWithRoot(0)
	n := tr.NewNode(1, RootID)
	c := tr.NewNode(2, n)
	tr.SetNodeValue(n, 10)

	v, _ := tr.NodeValue(n)
	require.Equal(t, 10, v)
	require.Equal(t, n, tr.Parent(c))

	p, ok := tr.MutNodeValue(c)
	require.True(t, ok)
	*p = 20
	v, _ = tr.NodeValue(c)
	require.Equal(t, 20, v)

	tr.DeleteNode(c)
	tr.SetNodeValue(c, 30)
	_, ok = tr.MutNodeValue(c)
	require.False(t, ok)
}

func TestIterateWithDeleted(t *testing.T) {
	tr := NewWithRoot(3)
	id := tr.NewNode(5, RootID)
	tr.NewNode(6, RootID)
	tr.DeleteNode(id)

	var ids []NodeId
	var vals []int
	for n, v := range tr.All() {
		ids = append(ids, n)
		vals = append(vals, v)
	}
	require.Equal(t, []NodeId{0, 2}, ids)
	require.Equal(t, []int{3, 6}, vals)
}

func TestPreOrderParentFirst(t *testing.T) {
	tr := NewWithRoot(0)
	a := tr.NewNode(1, RootID)
	b := tr.NewNode(2, RootID)
	a1 := tr.NewNode(3, a)
	tr.NewNode(4, b)
	tr.NewNode(5, a)
	tr.NewNode(6, a1)

	seen := map[NodeId]int{}
	i := 0
	for n, v := range tr.PreOrder() {
		got, _ := tr.NodeValue(n)
		require.Equal(t, got, v)
		seen[n] = i
		i++
	}
	require.Len(t, seen, tr.LiveCount())
	for n := range seen {
		if n == RootID {
			continue
		}
		require.Less(t, seen[tr.Parent(n)], seen[n], "parent of %d visited after it", n)
	}
}

func TestPreOrderStops(t *testing.T) {
	tr := NewWithRoot(0)
	tr.NewNode(1, RootID)
	tr.NewNode(2, RootID)
	count := 0
	for range tr.PreOrder() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestUnknownIdIsInvariantViolation(t *testing.T) {
	tr := NewWithRoot(0)
	err := func() (err error) {
		defer diagnostics.CatchInvariant(&err)
		tr.NodeValue(42)
		return nil
	}()
	require.Error(t, err)
	require.True(t, diagnostics.IsInvariant(err))

	err = func() (err error) {
		defer diagnostics.CatchInvariant(&err)
		tr.Children(ErrorID)
		return nil
	}()
	require.True(t, diagnostics.IsInvariant(err))
}

func TestAttachToDeletedParent(t *testing.T) {
	tr := NewWithRoot(0)
	n := tr.NewNode(1, RootID)
	tr.DeleteNode(n)
	err := func() (err error) {
		defer diagnostics.CatchInvariant(&err)
		tr.NewNode(2, n)
		return nil
	}()
	require.True(t, diagnostics.IsInvariant(err))
}

// model mirrors a FlatTree with plain maps for the randomized test.
type model struct {
	parent map[NodeId]NodeId
	live   map[NodeId]bool
}

func (m *model) descendants(n NodeId) []NodeId {
	out := []NodeId{n}
	for id, p := range m.parent {
		if p == n && id != n && m.live[id] {
			out = append(out, m.descendants(id)...)
		}
	}
	return out
}

func TestRandomInsertDelete(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		tr := NewWithRoot(0)
		m := &model{parent: map[NodeId]NodeId{RootID: RootID}, live: map[NodeId]bool{RootID: true}}

		for step := 0; step < 60; step++ {
			var liveIDs []NodeId
			for id, ok := range m.live {
				if ok {
					liveIDs = append(liveIDs, id)
				}
			}
			slices.Sort(liveIDs)
			pick := liveIDs[rng.Intn(len(liveIDs))]

			if rng.Intn(4) == 0 && pick != RootID {
				before := map[NodeId]int{}
				for id := range tr.All() {
					v, _ := tr.NodeValue(id)
					before[id] = v
				}
				for _, d := range m.descendants(pick) {
					m.live[d] = false
				}
				tr.DeleteNode(pick)
				for id, v := range before {
					got, ok := tr.NodeValue(id)
					require.Equal(t, m.live[id], ok, "liveness of %d", id)
					if ok {
						require.Equal(t, v, got)
					}
				}
			} else {
				id := tr.NewNode(tr.Len(), pick)
				m.parent[id] = pick
				m.live[id] = true
			}
		}

		for id, p := range m.parent {
			if !m.live[id] || id == RootID {
				continue
			}
			require.Contains(t, tr.Children(p), id)
		}
	}
}

func TestSlotsRoundTrip(t *testing.T) {
	tr := NewWithRoot("root")
	a := tr.NewNode("a", RootID)
	b := tr.NewNode("b", a)
	tr.NewNode("c", RootID)
	tr.DeleteNode(a)

	var slots []Slot[string]
	for id, s := range tr.Slots() {
		require.Equal(t, NodeId(len(slots)), id)
		slots = append(slots, s)
	}
	require.True(t, slots[b].Dead)
	require.Equal(t, a, slots[b].Parent)

	back, err := FromSlots(slots)
	require.NoError(t, err)
	require.Equal(t, tr.Len(), back.Len())
	require.Equal(t, tr.LiveCount(), back.LiveCount())
	require.Equal(t, tr.Children(RootID), back.Children(RootID))
	require.False(t, back.IsLive(b))
}

func TestFromSlotsRejectsBrokenTrees(t *testing.T) {
	tests := map[string][]Slot[int]{
		"empty":           nil,
		"dead root":       {{Dead: true}},
		"forward parent":  {{}, {Parent: 2}, {}},
		"live under dead": {{}, {Parent: 0, Dead: true}, {Parent: 1}},
	}
	for name, slots := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromSlots(slots)
			require.Error(t, err)
		})
	}
}
