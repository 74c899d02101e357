package core

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/node"
	"github.com/google/go-cmp/cmp"
)

var (
	kindTestRoot    = identity.RegisterKind("core-test-root")
	kindTestCounter = identity.RegisterKind("core-test-counter")
	kindTestToggle  = identity.RegisterKind("core-test-toggle")
	kindTestGroup   = identity.RegisterKind("core-test-group")
	kindTestShared  = identity.RegisterKind("core-test-shared")
)

type testRoot struct{ Container }

func (*testRoot) Kind() identity.Kind { return kindTestRoot }

type testGroup struct{ Container }

func (*testGroup) Kind() identity.Kind { return kindTestGroup }

type groupDecl struct{}

func (groupDecl) Kind() identity.Kind { return kindTestGroup }

func (groupDecl) Create(*Context) *testGroup { return &testGroup{} }

func (groupDecl) Update(*Context, *testGroup) struct{} { return struct{}{} }

func (groupDecl) Initial(*testGroup) struct{} { return struct{}{} }

// counter increments once per build, like a frame counter.
type counter struct{ count int }

func (*counter) Kind() identity.Kind { return kindTestCounter }

type counterDecl struct{}

func (counterDecl) Kind() identity.Kind { return kindTestCounter }

func (counterDecl) Create(*Context) *counter { return &counter{count: 1} }

func (counterDecl) Update(_ *Context, c *counter) int {
	c.count++
	return c.count
}

func (counterDecl) Initial(c *counter) int { return c.count }

// toggle has a declarative label and an internal pressed flag.
type toggle struct {
	label   string
	pressed bool
}

func (*toggle) Kind() identity.Kind { return kindTestToggle }

type toggleDecl struct{ label string }

func (toggleDecl) Kind() identity.Kind { return kindTestToggle }

func (d toggleDecl) Create(*Context) *toggle { return &toggle{label: d.label} }

func (d toggleDecl) Update(_ *Context, t *toggle) *toggle {
	t.label = d.label
	return t
}

func (toggleDecl) Initial(t *toggle) *toggle { return t }

type sharedA struct{}

func (*sharedA) Kind() identity.Kind { return kindTestShared }

type sharedB struct{}

func (*sharedB) Kind() identity.Kind { return kindTestShared }

type sharedADecl struct{}

func (sharedADecl) Kind() identity.Kind { return kindTestShared }

func (sharedADecl) Create(*Context) *sharedA { return &sharedA{} }

func (sharedADecl) Update(*Context, *sharedA) bool { return false }

func (sharedADecl) Initial(*sharedA) bool { return false }

type sharedBDecl struct{}

func (sharedBDecl) Kind() identity.Kind { return kindTestShared }

func (sharedBDecl) Create(*Context) *sharedB { return &sharedB{} }

func (sharedBDecl) Update(*Context, *sharedB) bool { return false }

func (sharedBDecl) Initial(*sharedB) bool { return false }

func newTestOwner(t *testing.T) (*Owner, node.ID) {
	t.Helper()
	arena := node.NewArena()
	root := arena.Alloc(identity.Identity{Kind: kindTestRoot}, node.Nil)
	arena.Install(root, &testRoot{})
	return NewOwner(arena, Services{}), root
}

func frame(o *Owner, root node.ID, fn func(*Context)) int {
	ctx := o.Begin(root)
	fn(ctx)
	return ctx.Finish()
}

func children(o *Owner, id node.ID) []node.ID {
	return o.Node(id).Payload.(ContainerPayload).ContainerState().ChildIDs()
}

func expectReconcilePanic(t *testing.T, fn func()) *errors.ReconcileError {
	t.Helper()
	var got *errors.ReconcileError
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			err, ok := r.(error)
			if !ok || !stderrors.As(err, &got) {
				panic(r)
			}
		}()
		fn()
	}()
	if got == nil {
		t.Fatal("expected a ReconcileError panic")
	}
	return got
}

func TestIdentityStability(t *testing.T) {
	o, root := newTestOwner(t)
	loc := identity.At("app.go", 10)

	var count int
	var first node.ID
	for i := 0; i < 12; i++ {
		frame(o, root, func(ctx *Context) {
			var id node.ID
			count, id = Build(ctx, loc, counterDecl{})
			if i == 0 {
				first = id
			} else if id != first {
				t.Fatalf("frame %d: node changed from %v to %v", i, first, id)
			}
		})
	}
	if count != 12 {
		t.Errorf("count = %d after 12 frames, want 12", count)
	}
}

func TestSwappedDeclarationOrder(t *testing.T) {
	o, root := newTestOwner(t)
	locA, locB := identity.At("app.go", 1), identity.At("app.go", 2)

	var a1, b1, a2, b2 node.ID
	var ta, tb *toggle
	frame(o, root, func(ctx *Context) {
		ta, a1 = Build(ctx, locA, toggleDecl{label: "A"})
		tb, b1 = Build(ctx, locB, toggleDecl{label: "B"})
	})
	ta.pressed = true

	frame(o, root, func(ctx *Context) {
		tb, b2 = Build(ctx, locB, toggleDecl{label: "B"})
		ta, a2 = Build(ctx, locA, toggleDecl{label: "A"})
	})
	if a1 != a2 || b1 != b2 {
		t.Fatalf("nodes matched by order: a %v->%v, b %v->%v", a1, a2, b1, b2)
	}
	if !ta.pressed || tb.pressed {
		t.Errorf("state swapped: A.pressed=%v B.pressed=%v", ta.pressed, tb.pressed)
	}
	if diff := cmp.Diff([]node.ID{b2, a2}, children(o, root), cmp.Comparer(func(x, y node.ID) bool { return x == y })); diff != "" {
		t.Errorf("children not in declaration order (-want +got):\n%s", diff)
	}
}

func TestPruning(t *testing.T) {
	o, root := newTestOwner(t)
	locA, locB := identity.At("app.go", 1), identity.At("app.go", 2)

	var b1 node.ID
	frame(o, root, func(ctx *Context) {
		Build(ctx, locA, counterDecl{})
		Build(ctx, locA, counterDecl{})
		_, b1 = Build(ctx, locB, counterDecl{})
	})
	frame(o, root, func(ctx *Context) {
		Build(ctx, locB, counterDecl{})
	})

	pruned := frame(o, root, func(ctx *Context) {
		Build(ctx, locA, counterDecl{})
	})
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if o.Arena().Contains(b1) {
		t.Error("pruned node still in arena")
	}
	if got := len(children(o, root)); got != 1 {
		t.Errorf("children = %d, want 1", got)
	}

	var count int
	var b2 node.ID
	frame(o, root, func(ctx *Context) {
		Build(ctx, locA, counterDecl{})
		count, b2 = Build(ctx, locB, counterDecl{})
	})
	if b2 == b1 {
		t.Error("redeclared node reused a pruned ID")
	}
	if count != 1 {
		t.Errorf("redeclared node count = %d, want fresh state", count)
	}
	if o.Arena().Len() != 3 {
		t.Errorf("arena holds %d nodes, want root + 2", o.Arena().Len())
	}
}

func TestUpdatePreservesInternalState(t *testing.T) {
	o, root := newTestOwner(t)
	loc := identity.At("app.go", 5)

	var tg *toggle
	frame(o, root, func(ctx *Context) {
		tg, _ = Build(ctx, loc, toggleDecl{label: "before"})
	})
	tg.pressed = true
	frame(o, root, func(ctx *Context) {
		tg, _ = Build(ctx, loc, toggleDecl{label: "after"})
	})
	if tg.label != "after" {
		t.Errorf("label = %q, want after", tg.label)
	}
	if !tg.pressed {
		t.Error("internal pressed flag was reset by update")
	}
}

func TestLoopOrdinals(t *testing.T) {
	o, root := newTestOwner(t)
	loc := identity.At("loop.go", 3)

	declare := func(n int) []node.ID {
		var ids []node.ID
		frame(o, root, func(ctx *Context) {
			for i := 0; i < n; i++ {
				_, id := Build(ctx, loc, counterDecl{})
				ids = append(ids, id)
			}
		})
		return ids
	}

	first := declare(4)
	second := declare(4)
	if diff := cmp.Diff(first, second, cmp.Comparer(func(x, y node.ID) bool { return x == y })); diff != "" {
		t.Errorf("loop identities unstable (-first +second):\n%s", diff)
	}
	seen := make(map[node.ID]bool)
	for _, id := range first {
		if seen[id] {
			t.Fatalf("duplicate node %v within one frame", id)
		}
		seen[id] = true
	}

	third := declare(2)
	if third[0] != first[0] || third[1] != first[1] {
		t.Error("shrinking the loop should keep the leading nodes")
	}
	if o.Arena().Contains(first[3]) {
		t.Error("tail of the loop should be pruned")
	}
}

func TestNestedContainers(t *testing.T) {
	o, root := newTestOwner(t)
	locGroup, locLeaf := identity.At("app.go", 20), identity.At("app.go", 21)

	build := func(withGroup bool) (leaf int) {
		frame(o, root, func(ctx *Context) {
			if !withGroup {
				return
			}
			_, g := Build(ctx, locGroup, groupDecl{})
			BuildChildren(ctx, g, func(ctx *Context) {
				leaf, _ = Build(ctx, locLeaf, counterDecl{})
				Build(ctx, locLeaf, counterDecl{})
			})
		})
		return leaf
	}

	build(true)
	if got := build(true); got != 2 {
		t.Errorf("nested counter = %d, want 2", got)
	}
	if o.Arena().Len() != 4 {
		t.Fatalf("arena holds %d nodes, want 4", o.Arena().Len())
	}
	build(false)
	if o.Arena().Len() != 1 {
		t.Errorf("pruning a container should free its subtree; %d nodes left", o.Arena().Len())
	}
	created, pruned := o.Stats()
	if created != 3 || pruned != 1 {
		t.Errorf("Stats = (%d, %d), want (3, 1)", created, pruned)
	}
}

func TestSameCallSiteDifferentKinds(t *testing.T) {
	o, root := newTestOwner(t)
	loc := identity.At("app.go", 30)

	var c, g node.ID
	frame(o, root, func(ctx *Context) {
		_, c = Build(ctx, loc, counterDecl{})
		_, g = Build(ctx, loc, groupDecl{})
	})
	if c == g {
		t.Error("different kinds at one site must not share a node")
	}
}

func TestCustomKeyReuse(t *testing.T) {
	o, root := newTestOwner(t)
	loc := identity.Custom(7)

	var c1, c2, g node.ID
	frame(o, root, func(ctx *Context) {
		_, c1 = Build(ctx, loc, counterDecl{})
		_, g = Build(ctx, loc, groupDecl{})
		_, c2 = Build(ctx, loc, counterDecl{})
	})
	if c1 != c2 {
		t.Errorf("same custom key and kind gave nodes %v and %v, want one", c1, c2)
	}
	if g == c1 {
		t.Error("same custom key with another kind must get its own node")
	}
	if got := len(children(o, root)); got != 2 {
		t.Errorf("root has %d children, want 2", got)
	}
}

func TestKindMismatchPanics(t *testing.T) {
	o, root := newTestOwner(t)
	loc := identity.Custom(7)

	frame(o, root, func(ctx *Context) {
		Build(ctx, loc, sharedADecl{})
	})
	err := expectReconcilePanic(t, func() {
		frame(o, root, func(ctx *Context) {
			Build(ctx, loc, sharedBDecl{})
		})
	})
	if err.Op != "core.Build" {
		t.Errorf("Op = %q", err.Op)
	}
}

func TestBuildChildrenOnLeafPanics(t *testing.T) {
	o, root := newTestOwner(t)
	frame(o, root, func(ctx *Context) {
		_, leaf := Build(ctx, identity.At("app.go", 40), counterDecl{})
		err := expectReconcilePanic(t, func() {
			BuildChildren(ctx, leaf, func(*Context) {})
		})
		if err.Op != "core.BuildChildren" {
			t.Errorf("Op = %q", err.Op)
		}
	})
}

func TestValidFlags(t *testing.T) {
	o, root := newTestOwner(t)
	locA, locB := identity.At("app.go", 1), identity.At("app.go", 2)

	var a, b node.ID
	frame(o, root, func(ctx *Context) {
		_, a = Build(ctx, locA, counterDecl{})
		_, b = Build(ctx, locB, counterDecl{})
	})

	ctx := o.Begin(root)
	if o.Node(a).Valid || o.Node(b).Valid {
		t.Error("Begin should invalidate every child")
	}
	Build(ctx, locA, counterDecl{})
	if !o.Node(a).Valid || o.Node(b).Valid {
		t.Error("only the redeclared child should be valid")
	}
	if ctx.container.Declared() != 1 {
		t.Errorf("Declared = %d, want 1", ctx.container.Declared())
	}
	ctx.Finish()
}
