package focus

import (
	"testing"

	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/node"
)

func targets(t *testing.T, n int) (*node.Arena, []node.ID) {
	t.Helper()
	arena := node.NewArena()
	kind := identity.RegisterKind("focus-test")
	ids := make([]node.ID, n)
	for i := range ids {
		ids[i] = arena.Alloc(identity.Identity{Key: uint64(i), Kind: kind}, node.Nil)
	}
	return arena, ids
}

func TestMoveWraps(t *testing.T) {
	_, ids := targets(t, 3)
	m := NewManager()
	m.SetOrder([]Target{{Node: ids[0]}, {Node: ids[1]}, {Node: ids[2]}})

	steps := []struct {
		delta int
		want  node.ID
	}{
		{1, ids[0]},
		{1, ids[1]},
		{1, ids[2]},
		{1, ids[0]},
		{-1, ids[2]},
		{-1, ids[1]},
	}
	for i, s := range steps {
		if !m.Move(s.delta) {
			t.Fatalf("step %d: Move returned false", i)
		}
		if m.Primary() != s.want {
			t.Errorf("step %d: Primary = %v, want %v", i, m.Primary(), s.want)
		}
	}
}

func TestMoveBackwardFromNothing(t *testing.T) {
	_, ids := targets(t, 2)
	m := NewManager()
	m.SetOrder([]Target{{Node: ids[0]}, {Node: ids[1]}})
	m.Move(-1)
	if m.Primary() != ids[1] {
		t.Errorf("Primary = %v, want last target", m.Primary())
	}
}

func TestMoveEmpty(t *testing.T) {
	m := NewManager()
	if m.Move(1) {
		t.Error("Move on empty order should fail")
	}
	if !m.Primary().IsNil() {
		t.Error("nothing should be focused")
	}
}

func TestRequestAndPrune(t *testing.T) {
	arena, ids := targets(t, 2)
	m := NewManager()
	m.SetOrder([]Target{{Node: ids[0]}})

	var changes int
	m.OnChange = func(_, _ node.ID) { changes++ }

	if m.Request(ids[1]) {
		t.Error("Request should reject a node outside the traversal order")
	}
	if !m.Request(ids[0]) || !m.Has(ids[0]) {
		t.Fatal("Request failed")
	}
	m.Request(ids[0])
	if changes != 1 {
		t.Errorf("OnChange called %d times, want 1", changes)
	}

	arena.Free(ids[0])
	m.Prune(arena.Contains)
	if !m.Primary().IsNil() {
		t.Error("focus should clear when the node is freed")
	}
}

func TestSetOrderDropsStaleFocus(t *testing.T) {
	_, ids := targets(t, 2)
	m := NewManager()
	m.SetOrder([]Target{{Node: ids[0]}, {Node: ids[1]}})
	m.Request(ids[1])

	m.SetOrder([]Target{{Node: ids[1]}})
	if !m.Has(ids[1]) {
		t.Fatal("focus on a node still in the order was dropped")
	}
	m.SetOrder([]Target{{Node: ids[0]}})
	if !m.Primary().IsNil() {
		t.Errorf("focus stayed on %v after it left the order", m.Primary())
	}
}

func TestMoveInDirection(t *testing.T) {
	_, ids := targets(t, 4)
	// 2x2 grid:
	//   0 1
	//   2 3
	m := NewManager()
	m.SetOrder([]Target{
		{Node: ids[0], Rect: Rect{0, 0, 10, 10}},
		{Node: ids[1], Rect: Rect{20, 0, 30, 10}},
		{Node: ids[2], Rect: Rect{0, 20, 10, 30}},
		{Node: ids[3], Rect: Rect{20, 20, 30, 30}},
	})
	m.Request(ids[0])

	m.MoveInDirection(Right)
	if m.Primary() != ids[1] {
		t.Errorf("Right: Primary = %v, want %v", m.Primary(), ids[1])
	}
	m.MoveInDirection(Down)
	if m.Primary() != ids[3] {
		t.Errorf("Down: Primary = %v, want %v", m.Primary(), ids[3])
	}
	m.MoveInDirection(Left)
	if m.Primary() != ids[2] {
		t.Errorf("Left: Primary = %v, want %v", m.Primary(), ids[2])
	}
	// Nothing further down: fall back to linear order, which wraps.
	m.MoveInDirection(Down)
	if m.Primary() != ids[3] {
		t.Errorf("fallback: Primary = %v, want %v", m.Primary(), ids[3])
	}
}
