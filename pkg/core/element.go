package core

import (
	"fmt"

	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/node"
)

// Declaration is the builder side of one widget kind. P is the payload
// type stored in the node and F the feedback returned to the caller.
type Declaration[P node.Payload, F any] interface {
	// Kind is the type tag of P.
	Kind() identity.Kind
	// Create returns a fresh payload for a node with no history.
	Create(ctx *Context) P
	// Update copies the declarative fields into an existing payload and
	// returns the feedback accumulated since the previous build.
	Update(ctx *Context, p P) F
	// Initial is the feedback for a freshly created payload.
	Initial(p P) F
}

// ContainerPayload is implemented by payloads that embed Container.
type ContainerPayload interface {
	node.Payload
	ContainerState() *Container
}

// Container is the child bookkeeping a container payload embeds.
//
// During a build pass children[:cursor] holds the children declared so far,
// in declaration order. The rest are children of the previous pass not yet
// redeclared; whatever remains there when the pass finishes is pruned.
type Container struct {
	children []node.ID
	index    map[identity.Identity]node.ID
	cursor   int
	counter  identity.Counter
}

// ContainerState returns c. Embedding Container satisfies ContainerPayload
// apart from Kind.
func (c *Container) ContainerState() *Container {
	return c
}

// ChildIDs returns the children in declaration order.
func (c *Container) ChildIDs() []node.ID {
	return c.children
}

// Len returns the number of children.
func (c *Container) Len() int {
	return len(c.children)
}

// Declared returns how many children have been declared in the current
// pass. After the pass finishes it equals Len.
func (c *Container) Declared() int {
	return c.cursor
}

// Query looks up a child by identity.
func (c *Container) Query(id identity.Identity) (node.ID, bool) {
	nid, ok := c.index[id]
	return nid, ok
}

// Begin starts a build pass: every child is invalidated and the occurrence
// counter restarts.
func (c *Container) Begin(arena *node.Arena) {
	for _, id := range c.children {
		arena.Get(id).Valid = false
	}
	c.cursor = 0
	c.counter.Reset()
}

// Finish ends a build pass, freeing every child that was not redeclared.
// It returns the number of children pruned.
func (c *Container) Finish(arena *node.Arena) int {
	stale := c.children[c.cursor:]
	for _, id := range stale {
		n := arena.Get(id)
		delete(c.index, n.Identity)
		arena.Free(id)
	}
	pruned := len(stale)
	clear(stale)
	c.children = c.children[:c.cursor]
	return pruned
}

func (c *Container) register(id identity.Identity, nid node.ID) {
	if c.index == nil {
		c.index = make(map[identity.Identity]node.ID)
	}
	c.index[id] = nid
	c.children = append(c.children, nid)
	c.claim(nid)
}

// claim moves nid to the cursor position. A node already claimed this pass
// (a custom key declared twice) stays where it is.
func (c *Container) claim(nid node.ID) {
	for i := c.cursor; i < len(c.children); i++ {
		if c.children[i] == nid {
			c.children[c.cursor], c.children[i] = c.children[i], c.children[c.cursor]
			c.cursor++
			return
		}
	}
}

// Build reconciles one declaration against the context's container and
// returns the feedback and the node it resolved to.
func Build[P node.Payload, F any](ctx *Context, loc identity.Location, decl Declaration[P, F]) (F, node.ID) {
	c := ctx.container
	arena := ctx.owner.arena
	id := identity.Make(loc, decl.Kind(), &c.counter)

	if nid, ok := c.Query(id); ok {
		n := arena.Get(nid)
		n.Valid = true
		c.claim(nid)
		p, ok := n.Payload.(P)
		if !ok || n.Payload.Kind() != decl.Kind() {
			var want P
			panic(&errors.ReconcileError{
				Op:         "core.Build",
				Identity:   id.String(),
				Want:       fmt.Sprintf("%s (%T)", decl.Kind(), want),
				Got:        fmt.Sprintf("%s (%T)", n.Payload.Kind(), n.Payload),
				StackTrace: errors.CaptureStack(),
			})
		}
		return decl.Update(ctx, p), nid
	}

	nid := arena.Alloc(id, ctx.parent)
	c.register(id, nid)
	p := decl.Create(ctx)
	arena.Install(nid, p)
	ctx.owner.created++
	return decl.Initial(p), nid
}

// BuildChildren runs a build pass over the container at id. It panics with
// a *errors.ReconcileError if id does not hold a container payload.
func BuildChildren(ctx *Context, id node.ID, fn func(*Context)) {
	child := ctx.owner.Begin(id)
	if fn != nil {
		fn(child)
	}
	child.Finish()
}
