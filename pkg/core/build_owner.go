package core

import (
	"log/slog"

	"github.com/go-drift/immediate/pkg/config"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/focus"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/glyph"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
	"github.com/go-drift/immediate/pkg/resource"
	"golang.org/x/image/math/f32"
)

// Layouter is implemented by payloads that take part in layout. Payloads
// that do not implement it are laid out at zero size.
type Layouter interface {
	Layout(o *Owner, id node.ID, q layout.Query) layout.Response
}

// Drawer is implemented by payloads that produce draw commands. Commands
// are in the node's local space; the owner applies the node transform.
type Drawer interface {
	Draw(o *Owner, id node.ID, list *draw.List)
}

// HitTester is implemented by payloads that customize hit testing. The ray
// is already in the node's local space.
type HitTester interface {
	HitTest(o *Owner, id node.ID, ray geometry.Ray, depth int, hits *input.Hits)
}

// EventContext accompanies an event delivered to an InputHandler.
type EventContext struct {
	Owner *Owner
	Node  node.ID
	// Hit is the hit-test record for pointer events. Keyboard events
	// carry the zero Hit.
	Hit input.Hit
}

// InputHandler is implemented by payloads that react to input. A leaf
// implementing it is hit when the ray meets its laid-out bounds.
type InputHandler interface {
	HandleEvent(ctx EventContext, ev input.Event) input.Response
}

// Focusable is implemented by payloads that can take keyboard focus.
type Focusable interface {
	Focusable() bool
}

// Services are the engine facilities builders and passes may use.
type Services struct {
	Logger    *slog.Logger
	Resources *resource.Registry
	Glyphs    glyph.Provider
	Focus     *focus.Manager
	Theme     config.Theme
}

// Owner owns one retained tree and drives the passes over it. It is not
// safe for concurrent use.
type Owner struct {
	arena    *node.Arena
	Services Services

	created int
	pruned  int
}

// NewOwner returns an owner over arena. Zero-valued services are replaced
// with defaults.
func NewOwner(arena *node.Arena, services Services) *Owner {
	if services.Logger == nil {
		services.Logger = errors.Logger()
	}
	if services.Resources == nil {
		services.Resources = resource.NewRegistry()
	}
	if services.Glyphs == nil {
		services.Glyphs = glyph.Basic()
	}
	if services.Focus == nil {
		services.Focus = focus.NewManager()
	}
	if services.Theme.FontSize == 0 {
		services.Theme = config.DefaultTheme()
	}
	return &Owner{arena: arena, Services: services}
}

// Arena returns the node arena.
func (o *Owner) Arena() *node.Arena {
	return o.arena
}

// Node returns the node for id.
func (o *Owner) Node(id node.ID) *node.Node {
	return o.arena.Get(id)
}

// Stats returns the nodes created and pruned since the last ResetStats.
func (o *Owner) Stats() (created, pruned int) {
	return o.created, o.pruned
}

// ResetStats zeroes the counters returned by Stats.
func (o *Owner) ResetStats() {
	o.created, o.pruned = 0, 0
}

// Begin opens a build pass over the container at id. It panics with a
// *errors.ReconcileError if the node is not a container.
func (o *Owner) Begin(id node.ID) *Context {
	n := o.arena.Get(id)
	cp, ok := n.Payload.(ContainerPayload)
	if !ok {
		panic(&errors.ReconcileError{
			Op:         "core.BuildChildren",
			Identity:   n.Identity.String(),
			StackTrace: errors.CaptureStack(),
		})
	}
	c := cp.ContainerState()
	c.Begin(o.arena)
	return &Context{owner: o, parent: id, container: c}
}

// Layout lays out the node and records the resolved size on it.
func (o *Owner) Layout(id node.ID, q layout.Query) layout.Response {
	n := o.arena.Get(id)
	var resp layout.Response
	if l, ok := n.Payload.(Layouter); ok {
		resp = l.Layout(o, id, q)
	}
	n.Size = resp.Size
	return resp
}

// Place sets the node's transform relative to its parent.
func (o *Owner) Place(id node.ID, m f32.Mat4) {
	o.arena.Get(id).Transform = m
}

// Draw returns the node's draw list, wrapped in the node's transform.
// Containers without a Drawer nest their children's lists.
func (o *Owner) Draw(id node.ID) draw.List {
	n := o.arena.Get(id)
	list := draw.NewList()
	list.Transform = n.Transform
	switch p := n.Payload.(type) {
	case Drawer:
		p.Draw(o, id, &list)
	case node.Parent:
		o.DrawChildren(node.VisibleChildren(p), &list)
	}
	return list
}

// DrawChildren nests each child's list into list.
func (o *Owner) DrawChildren(children []node.ID, list *draw.List) {
	for _, child := range children {
		list.Nest(o.Draw(child))
	}
}

// HitTest collects the hit candidates under ray in the subtree at id.
// ray is in the space of id's parent.
func (o *Owner) HitTest(id node.ID, ray geometry.Ray, depth int, hits *input.Hits) {
	n := o.arena.Get(id)
	inv, ok := geometry.Invert(n.Transform)
	if !ok {
		return
	}
	local := ray.Transform(inv)
	if h, ok := n.Payload.(HitTester); ok {
		h.HitTest(o, id, local, depth, hits)
		return
	}
	if _, ok := n.Payload.(InputHandler); ok {
		o.HitBounds(id, local, depth, hits)
	}
	if p, ok := n.Payload.(node.Parent); ok {
		o.HitTestChildren(node.VisibleChildren(p), local, depth+1, hits)
	}
}

// HitTestChildren hit tests each child. ray is in the parent's local space.
func (o *Owner) HitTestChildren(children []node.ID, ray geometry.Ray, depth int, hits *input.Hits) {
	for _, child := range children {
		o.HitTest(child, ray, depth, hits)
	}
}

// HitBounds records a hit on id if the local ray meets its laid-out
// bounds. It reports whether it did.
func (o *Owner) HitBounds(id node.ID, ray geometry.Ray, depth int, hits *input.Hits) bool {
	t, x, y, ok := ray.IntersectPlane()
	if !ok {
		return false
	}
	if !geometry.RectFromSize(o.arena.Get(id).Size).Contains(x, y) {
		return false
	}
	hits.Add(input.Hit{Distance: t, Node: id, Depth: depth, X: x, Y: y})
	return true
}

// Deliver hands ev to the node's InputHandler.
func (o *Owner) Deliver(id node.ID, hit input.Hit, ev input.Event) input.Response {
	h, ok := o.arena.Get(id).Payload.(InputHandler)
	if !ok {
		return input.Pass
	}
	return h.HandleEvent(EventContext{Owner: o, Node: id, Hit: hit}, ev)
}

// WalkWorld visits the displayed subtree at id in pre-order with each
// node's transform composed onto parent. Returning false skips the
// children.
func (o *Owner) WalkWorld(id node.ID, parent f32.Mat4, visit func(id node.ID, n *node.Node, world f32.Mat4) bool) {
	n := o.arena.Get(id)
	world := geometry.Mul(parent, n.Transform)
	if !visit(id, n, world) {
		return
	}
	if p, ok := n.Payload.(node.Parent); ok {
		for _, child := range node.VisibleChildren(p) {
			o.WalkWorld(child, world, visit)
		}
	}
}

// WorldRect returns the screen-space bounds of a node of the given size
// under the world transform.
func WorldRect(world f32.Mat4, size geometry.Size) focus.Rect {
	a := geometry.Apply(world, f32.Vec3{0, 0, 0})
	b := geometry.Apply(world, f32.Vec3{size.Width, size.Height, 0})
	return focus.Rect{
		Left:   min(a[0], b[0]),
		Top:    min(a[1], b[1]),
		Right:  max(a[0], b[0]),
		Bottom: max(a[1], b[1]),
	}
}

// FocusOrder returns the focusable nodes under id in pre-order, with their
// screen bounds.
func (o *Owner) FocusOrder(id node.ID) []focus.Target {
	var targets []focus.Target
	o.WalkWorld(id, geometry.Identity(), func(nid node.ID, n *node.Node, world f32.Mat4) bool {
		if f, ok := n.Payload.(Focusable); ok && f.Focusable() {
			targets = append(targets, focus.Target{Node: nid, Rect: WorldRect(world, n.Size)})
		}
		return true
	})
	return targets
}
