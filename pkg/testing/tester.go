package testing

import (
	"testing"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/engine"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
)

const (
	// DefaultTestWidth is the default logical width of the test viewport.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height of the test viewport.
	DefaultTestHeight = 600
)

// Scene declares one frame's widgets against the root context.
type Scene func(ctx *core.Context)

// WidgetTester runs full frames against an engine.Interface without a
// rasterizer: build, end, layout and draw, keeping the last results for
// assertions.
type WidgetTester struct {
	ui     *engine.Interface
	scene  Scene
	size   geometry.Size
	origin geometry.Point
	layout layout.Response
	list   draw.List
}

// NewWidgetTester creates a tester over a fresh Interface with the default
// viewport. Options are passed to engine.New.
func NewWidgetTester(opts ...engine.Option) (*WidgetTester, error) {
	size := geometry.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}
	opts = append([]engine.Option{engine.WithViewport(size)}, opts...)
	ui, err := engine.New(opts...)
	if err != nil {
		return nil, err
	}
	return &WidgetTester{ui: ui, size: size}, nil
}

// NewWidgetTesterWithT creates a tester and fails the test if the engine
// cannot be created. This is the recommended constructor for tests.
func NewWidgetTesterWithT(t testing.TB, opts ...engine.Option) *WidgetTester {
	t.Helper()
	tester, err := NewWidgetTester(opts...)
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}
	return tester
}

// SetSize sets the viewport used by later frames.
func (t *WidgetTester) SetSize(size geometry.Size) {
	t.size = size
	t.ui.SetViewport(size)
}

// SetOrigin sets where the root is drawn.
func (t *WidgetTester) SetOrigin(p geometry.Point) {
	t.origin = p
}

// Interface returns the engine under test.
func (t *WidgetTester) Interface() *engine.Interface {
	return t.ui
}

// Owner returns the tree owner.
func (t *WidgetTester) Owner() *core.Owner {
	return t.ui.Owner()
}

// Pump runs one frame with scene and remembers it for Repump.
func (t *WidgetTester) Pump(scene Scene) {
	t.scene = scene
	t.ui.NewFrame()
	if scene != nil {
		scene(t.ui.Root())
	}
	t.ui.EndFrame()
	t.layout = t.ui.GenerateLayout()
	t.list = t.ui.Draw(t.origin, t.size)
}

// Repump runs another frame with the last scene, so that input delivered
// in between is observed by the builders.
func (t *WidgetTester) Repump() {
	t.Pump(t.scene)
}

// PumpFrames runs n frames of scene.
func (t *WidgetTester) PumpFrames(n int, scene Scene) {
	for range n {
		t.Pump(scene)
	}
}

// Layout returns the root layout response of the last frame.
func (t *WidgetTester) Layout() layout.Response {
	return t.layout
}

// DrawList returns the draw list of the last frame.
func (t *WidgetTester) DrawList() draw.List {
	return t.list
}

// Root returns the root window node.
func (t *WidgetTester) Root() node.ID {
	return t.ui.RootID()
}

// Node returns the node for id.
func (t *WidgetTester) Node(id node.ID) *node.Node {
	return t.ui.Owner().Node(id)
}

// Find evaluates a finder against the current tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	return FinderResult{
		nodes:  finder.Evaluate(t.ui.Owner(), t.ui.RootID()),
		finder: finder,
	}
}

// Dump returns the tree as YAML.
func (t *WidgetTester) Dump() string {
	out, err := t.ui.Dump()
	if err != nil {
		return err.Error()
	}
	return string(out)
}
