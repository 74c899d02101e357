// Package node stores the retained widget tree.
//
// Nodes live in an [Arena] owned by a single engine instance and are
// addressed by [ID] (slot index plus generation) rather than by pointer, so
// parent/child links are plain index lists and a stale reference to a freed
// node is detected instead of silently reading recycled state.
package node

import (
	"fmt"

	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"golang.org/x/image/math/f32"
)

// ID addresses a node in its arena. The zero ID is never allocated.
type ID struct {
	index uint32
	gen   uint32
}

// Nil is the zero ID.
var Nil ID

// IsNil reports whether id is the zero ID.
func (id ID) IsNil() bool {
	return id.gen == 0
}

func (id ID) String() string {
	if id.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("%d.%d", id.index, id.gen)
}

// Payload is the widget state stored in a node. Its kind must equal the
// kind of the node's identity for the node's whole lifetime.
type Payload interface {
	Kind() identity.Kind
}

// Parent is implemented by payloads that own child nodes.
type Parent interface {
	ChildIDs() []ID
}

// Clipper is implemented by parents that display only some of their
// children. Hidden children stay in the tree but are not drawn, hit
// tested or offered focus.
type Clipper interface {
	VisibleChildIDs() []ID
}

// VisibleChildren returns the children of p that are displayed.
func VisibleChildren(p Parent) []ID {
	if c, ok := p.(Clipper); ok {
		return c.VisibleChildIDs()
	}
	return p.ChildIDs()
}

// Disposer is implemented by payloads that release resources when their
// node is pruned.
type Disposer interface {
	Dispose()
}

type placeholder struct{}

func (placeholder) Kind() identity.Kind { return identity.KindPlaceholder }

// Node is one cell of the retained tree.
type Node struct {
	Identity identity.Identity
	// Valid is cleared at the start of the parent's build pass and set
	// again when the node is redeclared.
	Valid   bool
	Payload Payload
	Parent  ID

	// Written by the most recent layout pass.
	Size      geometry.Size
	Transform f32.Mat4
}

// IsPlaceholder reports whether the node still carries the payload it was
// allocated with.
func (n *Node) IsPlaceholder() bool {
	_, ok := n.Payload.(placeholder)
	return ok
}

type slot struct {
	node *Node
	gen  uint32
	used bool
}

// Arena owns every node of one tree. It is not safe for concurrent use.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Alloc creates a valid node with a placeholder payload.
func (a *Arena) Alloc(id identity.Identity, parent ID) ID {
	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		index = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[index]
	s.gen++
	s.used = true
	if s.node == nil {
		s.node = &Node{}
	}
	*s.node = Node{
		Identity:  id,
		Valid:     true,
		Payload:   placeholder{},
		Parent:    parent,
		Transform: geometry.Identity(),
	}
	a.live++
	return ID{index: index, gen: s.gen}
}

// Contains reports whether id refers to a live node.
func (a *Arena) Contains(id ID) bool {
	if id.IsNil() || int(id.index) >= len(a.slots) {
		return false
	}
	s := a.slots[id.index]
	return s.used && s.gen == id.gen
}

// Get returns the node for id. The pointer stays valid until the node is
// freed. Get panics on a stale or nil ID.
func (a *Arena) Get(id ID) *Node {
	if !a.Contains(id) {
		panic(&errors.ReconcileError{Op: "node.Get", Identity: "id " + id.String()})
	}
	return a.slots[id.index].node
}

// Install replaces the node's payload. It panics if the payload's kind
// differs from the node's identity kind.
func (a *Arena) Install(id ID, p Payload) {
	n := a.Get(id)
	if p.Kind() != n.Identity.Kind {
		panic(&errors.ReconcileError{
			Op:         "node.Install",
			Identity:   n.Identity.String(),
			Want:       n.Identity.Kind.String(),
			Got:        p.Kind().String(),
			StackTrace: errors.CaptureStack(),
		})
	}
	n.Payload = p
}

// Free releases the node and, recursively, every node its payload owns.
func (a *Arena) Free(id ID) {
	n := a.Get(id)
	if parent, ok := n.Payload.(Parent); ok {
		for _, child := range parent.ChildIDs() {
			if a.Contains(child) {
				a.Free(child)
			}
		}
	}
	if d, ok := n.Payload.(Disposer); ok {
		d.Dispose()
	}
	s := &a.slots[id.index]
	s.used = false
	*s.node = Node{}
	a.free = append(a.free, id.index)
	a.live--
}

// Len returns the number of live nodes.
func (a *Arena) Len() int {
	return a.live
}

// Walk visits id and its descendants in pre-order. Returning false from
// visit skips the node's children.
func (a *Arena) Walk(id ID, visit func(ID, *Node) bool) {
	n := a.Get(id)
	if !visit(id, n) {
		return
	}
	if parent, ok := n.Payload.(Parent); ok {
		for _, child := range parent.ChildIDs() {
			a.Walk(child, visit)
		}
	}
}
