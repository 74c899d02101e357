package engine

import (
	"testing"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/draw"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/input"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/node"
	"github.com/google/go-cmp/cmp"
)

var kindProbe = identity.RegisterKind("engine-test-probe")

// probe is a leaf that claims a hit at a fixed distance wherever the ray
// lands, and answers every event with a fixed response.
type probe struct {
	name     string
	distance float32
	response input.Response
	seen     *[]string
	panics   string
}

func (*probe) Kind() identity.Kind { return kindProbe }

func (p *probe) Layout(*core.Owner, node.ID, layout.Query) layout.Response {
	if p.panics == "layout" {
		panic("probe layout")
	}
	return layout.Response{Size: geometry.Size{Width: 10, Height: 10}}
}

func (p *probe) Draw(o *core.Owner, id node.ID, list *draw.List) {
	if p.panics == "draw" {
		panic("probe draw")
	}
}

func (p *probe) HitTest(_ *core.Owner, id node.ID, _ geometry.Ray, depth int, hits *input.Hits) {
	hits.Add(input.Hit{Distance: p.distance, Node: id, Depth: depth})
}

func (p *probe) HandleEvent(_ core.EventContext, _ input.Event) input.Response {
	if p.panics == "event" {
		panic("probe event")
	}
	*p.seen = append(*p.seen, p.name)
	return p.response
}

type probeDecl struct{ probe }

func (probeDecl) Kind() identity.Kind { return kindProbe }

func (d probeDecl) Create(*core.Context) *probe {
	p := d.probe
	return &p
}

func (d probeDecl) Update(_ *core.Context, p *probe) struct{} {
	*p = d.probe
	return struct{}{}
}

func (probeDecl) Initial(*probe) struct{} { return struct{}{} }

func TestPointerPropagation(t *testing.T) {
	tests := []struct {
		name      string
		front     input.Response
		wantSeen  []string
		wantReply input.Response
	}{
		{"pass continues", input.Pass, []string{"front", "back"}, input.Registered},
		{"passive continues", input.PassivelyRegistered, []string{"front", "back"}, input.Registered},
		{"registered stops", input.Registered, []string{"front"}, input.Registered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := newTestInterface(t)
			var seen []string
			runFrame(ui, func(ctx *core.Context) {
				core.Build(ctx, identity.Here(), probeDecl{probe{name: "back", distance: 2, response: input.Registered, seen: &seen}})
				core.Build(ctx, identity.Here(), probeDecl{probe{name: "front", distance: 1, response: tt.front, seen: &seen}})
			})

			got := ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true}, geometry.PointerRay(1, 1))
			if got != tt.wantReply {
				t.Errorf("response = %v, want %v", got, tt.wantReply)
			}
			if diff := cmp.Diff(tt.wantSeen, seen); diff != "" {
				t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPassiveResponseIsReported(t *testing.T) {
	ui := newTestInterface(t)
	var seen []string
	runFrame(ui, func(ctx *core.Context) {
		core.Build(ctx, identity.Here(), probeDecl{probe{name: "only", distance: 1, response: input.PassivelyRegistered, seen: &seen}})
	})

	if got := ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true}, geometry.PointerRay(1, 1)); got != input.PassivelyRegistered {
		t.Errorf("response = %v, want passively-registered", got)
	}
}

func TestRegisterEventDuringFramePanics(t *testing.T) {
	ui := newTestInterface(t)
	ui.NewFrame()
	defer func() {
		if _, ok := recover().(*errors.ReconcileError); !ok {
			t.Error("expected a *errors.ReconcileError panic")
		}
	}()
	ui.RegisterEvent(input.CharEvent{Rune: 'a'}, geometry.Ray{})
}

type recordingHandler struct {
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(*errors.FrameError) {}

func (h *recordingHandler) HandlePanic(err *errors.PanicError) {
	h.panics = append(h.panics, err)
}

func TestRecoverPanics(t *testing.T) {
	for _, stage := range []string{"layout", "draw", "event"} {
		t.Run(stage, func(t *testing.T) {
			h := &recordingHandler{}
			errors.SetHandler(h)
			t.Cleanup(func() { errors.SetHandler(nil) })

			ui := newTestInterface(t, WithRecoverPanics(true))
			var seen []string
			runFrame(ui, func(ctx *core.Context) {
				core.Build(ctx, identity.Here(), probeDecl{probe{name: "p", distance: 1, seen: &seen, panics: stage}})
			})
			resp := ui.RegisterEvent(input.MouseButtonEvent{Button: input.ButtonLeft, Pressed: true}, geometry.PointerRay(1, 1))
			if resp != input.Pass {
				t.Errorf("response = %v, want pass", resp)
			}

			if len(h.panics) != 1 {
				t.Fatalf("recorded %d panics, want 1", len(h.panics))
			}
			if got := h.panics[0].Value; got != "probe "+stage {
				t.Errorf("panic value = %v, want %q", got, "probe "+stage)
			}
			if ui.InFrame() {
				t.Error("interface left in a frame")
			}
		})
	}
}

func TestPanicsPropagateWithoutRecovery(t *testing.T) {
	ui := newTestInterface(t, WithRecoverPanics(false))
	ui.NewFrame()
	core.Build(ui.Root(), identity.Here(), probeDecl{probe{name: "p", panics: "layout"}})
	ui.EndFrame()

	defer func() {
		if r := recover(); r != "probe layout" {
			t.Errorf("recovered %v, want the layout panic", r)
		}
	}()
	ui.GenerateLayout()
}
