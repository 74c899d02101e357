package engine

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/immediate/pkg/config"
	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/widgets"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func newTestInterface(t *testing.T, opts ...Option) *Interface {
	t.Helper()
	ui, err := New(opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return ui
}

// runFrame drives one full frame the way a host does.
func runFrame(ui *Interface, build func(ctx *core.Context)) layout.Response {
	ui.NewFrame()
	build(ui.Root())
	ui.EndFrame()
	resp := ui.GenerateLayout()
	ui.Draw(geometry.Point{}, geometry.Size{Width: 200, Height: 100})
	return resp
}

func TestButtonEndToEnd(t *testing.T) {
	ui := newTestInterface(t)

	var pressed []bool
	build := func(ctx *core.Context) {
		pressed = append(pressed, widgets.ButtonOf("X").Build(identity.Here(), ctx))
	}

	runFrame(ui, build)
	resp := ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true}, geometry.PointerRay(5, 5))
	if resp != input.Registered {
		t.Fatalf("press response = %v, want registered", resp)
	}
	runFrame(ui, build)
	runFrame(ui, build)

	if diff := cmp.Diff([]bool{false, true, false}, pressed); diff != "" {
		t.Errorf("press feedback mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerMissesEmptySpace(t *testing.T) {
	ui := newTestInterface(t)
	runFrame(ui, func(ctx *core.Context) {
		widgets.ButtonOf("X").Build(identity.Here(), ctx)
	})

	resp := ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true}, geometry.PointerRay(150, 90))
	if resp != input.Pass {
		t.Errorf("response = %v, want pass", resp)
	}
}

func TestFrameLifecycle(t *testing.T) {
	ui := newTestInterface(t)
	if ui.Frame() != 0 || ui.InFrame() {
		t.Fatalf("fresh interface: frame %d, in frame %v", ui.Frame(), ui.InFrame())
	}

	ui.NewFrame()
	if !ui.InFrame() || ui.Frame() != 1 {
		t.Errorf("after NewFrame: frame %d, in frame %v", ui.Frame(), ui.InFrame())
	}
	ui.EndFrame()
	if ui.InFrame() {
		t.Error("still in frame after EndFrame")
	}

	tests := []struct {
		name string
		fn   func()
	}{
		{"Root outside a frame", func() { ui.Root() }},
		{"EndFrame without NewFrame", ui.EndFrame},
		{"NewFrame twice", func() { ui.NewFrame(); ui.NewFrame() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if _, ok := r.(*errors.ReconcileError); !ok {
					t.Errorf("recovered %v, want *errors.ReconcileError", r)
				}
			}()
			tt.fn()
		})
	}
}

func TestStatsCountCreatedAndPruned(t *testing.T) {
	ui := newTestInterface(t)

	count := 3
	build := func(ctx *core.Context) {
		for range count {
			widgets.SpacerOf(1, 1).Build(identity.Here(), ctx)
		}
	}
	runFrame(ui, build)
	if got := ui.Stats(); got.Created != 3 || got.Pruned != 0 || got.Nodes != 4 {
		t.Errorf("frame 1 stats = %+v, want 3 created, 0 pruned, 4 nodes", got)
	}

	count = 1
	runFrame(ui, build)
	if got := ui.Stats(); got.Created != 0 || got.Pruned != 2 || got.Nodes != 2 || got.Frame != 2 {
		t.Errorf("frame 2 stats = %+v, want 0 created, 2 pruned, 2 nodes", got)
	}
	if n := len(ui.Timings()); n != 2 {
		t.Errorf("timings hold %d samples, want 2", n)
	}
}

func TestFocusClearedWhenNodePruned(t *testing.T) {
	ui := newTestInterface(t)

	show := true
	build := func(ctx *core.Context) {
		if show {
			widgets.ButtonOf("X").Build(identity.Here(), ctx)
		}
	}
	runFrame(ui, build)
	ui.RegisterEvent(input.FocusForwardEvent{}, geometry.Ray{})
	if ui.Focus().Primary().IsNil() {
		t.Fatal("focus forward did not focus the button")
	}

	show = false
	runFrame(ui, build)
	if !ui.Focus().Primary().IsNil() {
		t.Error("focus survived the focused node being pruned")
	}
}

func TestFocusTraversalWraps(t *testing.T) {
	ui := newTestInterface(t)
	runFrame(ui, func(ctx *core.Context) {
		for range 3 {
			widgets.ButtonOf("B").Build(identity.Here(), ctx)
		}
	})
	order := ui.Focus().Order()
	if len(order) != 3 {
		t.Fatalf("focus order has %d targets, want 3", len(order))
	}

	back := input.FocusBackwardEvent{}
	ui.RegisterEvent(back, geometry.Ray{})
	if got := ui.Focus().Primary(); got != order[2].Node {
		t.Errorf("backward from nothing focused %v, want last %v", got, order[2].Node)
	}
	ui.RegisterEvent(input.FocusForwardEvent{}, geometry.Ray{})
	if got := ui.Focus().Primary(); got != order[0].Node {
		t.Errorf("forward from last focused %v, want first %v", got, order[0].Node)
	}
	ui.RegisterEvent(input.KeyEvent{Key: input.KeyTab, Pressed: true, Modifiers: input.ModShift}, geometry.Ray{})
	if got := ui.Focus().Primary(); got != order[2].Node {
		t.Errorf("shift+tab from first focused %v, want last %v", got, order[2].Node)
	}
}

func TestArrowKeysMoveFocusSpatially(t *testing.T) {
	ui := newTestInterface(t)
	runFrame(ui, func(ctx *core.Context) {
		widgets.InlineOf(10).Build(identity.Here(), ctx, func(ctx *core.Context) {
			widgets.ButtonOf("L").Build(identity.Here(), ctx)
			widgets.ButtonOf("R").Build(identity.Here(), ctx)
		})
		widgets.ButtonOf("Below").Build(identity.Here(), ctx)
	})
	order := ui.Focus().Order()
	if len(order) != 3 {
		t.Fatalf("focus order has %d targets, want 3", len(order))
	}
	ui.Focus().Request(order[0].Node)

	ui.RegisterEvent(input.KeyEvent{Key: input.KeyRight, Pressed: true}, geometry.Ray{})
	if got := ui.Focus().Primary(); got != order[1].Node {
		t.Errorf("right moved focus to %v, want %v", got, order[1].Node)
	}
	ui.RegisterEvent(input.KeyEvent{Key: input.KeyDown, Pressed: true}, geometry.Ray{})
	if got := ui.Focus().Primary(); got != order[2].Node {
		t.Errorf("down moved focus to %v, want %v", got, order[2].Node)
	}
}

func TestPressOnNothingClearsFocus(t *testing.T) {
	ui := newTestInterface(t)
	runFrame(ui, func(ctx *core.Context) {
		widgets.ButtonOf("X").Build(identity.Here(), ctx)
	})
	ui.RegisterEvent(input.FocusForwardEvent{}, geometry.Ray{})

	ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true}, geometry.PointerRay(150, 90))
	if !ui.Focus().Primary().IsNil() {
		t.Error("press on empty space kept focus")
	}
}

func TestDrawPlacesRootAtOrigin(t *testing.T) {
	ui := newTestInterface(t)
	ui.NewFrame()
	widgets.SpacerOf(4, 4).Build(identity.Here(), ui.Root())
	ui.EndFrame()
	ui.GenerateLayout()

	list := ui.Draw(geometry.Point{X: 30, Y: 40}, geometry.Size{Width: 100, Height: 80})
	cmds := list.Flatten()
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want the window background only", len(cmds))
	}
	bg := cmds[0]
	lo := geometry.Apply(bg.Model, bg.Vertices[0].Position)
	hi := geometry.Apply(bg.Model, bg.Vertices[2].Position)
	if lo[0] != 30 || lo[1] != 40 || hi[0] != 130 || hi[1] != 120 {
		t.Errorf("background spans (%v,%v)-(%v,%v), want (30,40)-(130,120)", lo[0], lo[1], hi[0], hi[1])
	}

	// Hit testing follows the drawn placement.
	hits := ui.HitTest(geometry.PointerRay(31, 41))
	if len(hits) != 0 {
		t.Errorf("spacer is not interactive, got %d hits", len(hits))
	}
}

func TestRootObjectiveFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.RootObjective = "maximize"
	ui := newTestInterface(t, WithConfig(cfg), WithViewport(geometry.Size{Width: 50, Height: 20}))

	resp := runFrame(ui, func(ctx *core.Context) {
		widgets.SpacerOf(4, 4).Build(identity.Here(), ctx)
	})
	if diff := cmp.Diff(geometry.Size{Width: 50, Height: 20}, resp.Size); diff != "" {
		t.Errorf("root size mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Theme.FontSize = 0
	_, err := New(WithConfig(cfg))
	var fe *errors.FrameError
	if !stderrors.As(err, &fe) || fe.Kind != errors.KindConfig {
		t.Errorf("New() = %v, want a config FrameError", err)
	}
}

func TestDumpIsYAML(t *testing.T) {
	ui := newTestInterface(t)
	runFrame(ui, func(ctx *core.Context) {
		widgets.PaddingOf(2).Build(identity.Here(), ctx, func(ctx *core.Context) {
			widgets.ButtonOf("X").Build(identity.Here(), ctx)
		})
	})

	out, err := ui.Dump()
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(out, &snap); err != nil {
		t.Fatalf("dump is not valid YAML: %v\n%s", err, out)
	}
	if snap.Root.Kind != "window" || len(snap.Root.Children) != 1 {
		t.Fatalf("unexpected root: %+v", snap.Root)
	}
	pad := snap.Root.Children[0]
	if pad.Kind != "padding" || len(pad.Children) != 1 || pad.Children[0].Kind != "button" {
		t.Errorf("unexpected subtree:\n%s", out)
	}
	if got := pad.Children[0].Offset; got != (OffsetDump{X: 2, Y: 2}) {
		t.Errorf("button offset = %+v, want (2, 2)", got)
	}
	if !strings.Contains(string(out), "stats:") {
		t.Errorf("dump lacks stats:\n%s", out)
	}
}

func TestFrameTimingBufferWraps(t *testing.T) {
	b := NewFrameTimingBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Add(time.Duration(i) * time.Millisecond)
	}
	want := []time.Duration{3 * time.Millisecond, 4 * time.Millisecond, 5 * time.Millisecond}
	if diff := cmp.Diff(want, b.Samples()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
	if got := b.Mean(); got != 4*time.Millisecond {
		t.Errorf("Mean() = %v, want 4ms", got)
	}
}
