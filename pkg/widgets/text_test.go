package widgets_test

import (
	stderrors "errors"
	"testing"

	"github.com/go-drift/immediate/pkg/core"
	"github.com/go-drift/immediate/pkg/engine"
	"github.com/go-drift/immediate/pkg/errors"
	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/go-drift/immediate/pkg/glyph"
	"github.com/go-drift/immediate/pkg/identity"
	"github.com/go-drift/immediate/pkg/layout"
	"github.com/go-drift/immediate/pkg/resource"
	immtest "github.com/go-drift/immediate/pkg/testing"
	"github.com/go-drift/immediate/pkg/widgets"
	"github.com/google/go-cmp/cmp"
)

func TestLabel_MeasuresText(t *testing.T) {
	tester := immtest.NewWidgetTesterWithT(t)
	tester.SetSize(geometry.Size{})

	tester.Pump(func(ctx *core.Context) {
		if err := widgets.LabelOf("abc").Build(identity.Here(), ctx); err != nil {
			t.Errorf("Build() = %v", err)
		}
	})
	id := tester.Find(immtest.ByKind(widgets.KindLabel)).First()

	// basicfont 7x13 at the default size of 13.
	if diff := cmp.Diff(geometry.Size{Width: 21, Height: 13}, tester.Node(id).Size); diff != "" {
		t.Errorf("label size mismatch (-want +got):\n%s", diff)
	}
	if got := tester.DrawList().Len(); got < 2 {
		t.Errorf("draw list has %d commands, want background and glyphs", got)
	}
}

func TestLabel_DroppedFont(t *testing.T) {
	reg := resource.NewRegistry()
	font := reg.Add(resource.Font, "basic", glyph.Provider(glyph.Basic()))
	tester := immtest.NewWidgetTesterWithT(t, engine.WithResources(reg))

	var buildErr error
	scene := func(ctx *core.Context) {
		buildErr = widgets.LabelOf("hi").WithFont(font).Build(identity.Here(), ctx)
	}
	tester.Pump(scene)
	if buildErr != nil {
		t.Fatalf("live font: Build() = %v", buildErr)
	}

	reg.Drop(font)
	tester.Repump()

	if !stderrors.Is(buildErr, errors.ErrResourceDropped) {
		t.Fatalf("dropped font: Build() = %v, want ErrResourceDropped", buildErr)
	}
	var fe *errors.FrameError
	if !stderrors.As(buildErr, &fe) || fe.Kind != errors.KindResource {
		t.Errorf("error = %#v, want a resource FrameError", buildErr)
	}
	if got := tester.Layout().Horizontal; got != layout.WontDisplay {
		t.Errorf("root horizontal status = %v, want wont-display", got)
	}
}

func TestFrameCounter_Counts(t *testing.T) {
	tester := immtest.NewWidgetTesterWithT(t)

	var counts []int
	scene := func(ctx *core.Context) {
		counts = append(counts, widgets.FrameCounter{}.Build(identity.Here(), ctx))
	}
	tester.PumpFrames(4, scene)

	if diff := cmp.Diff([]int{1, 2, 3, 4}, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameCounter_RestartsAfterPrune(t *testing.T) {
	tester := immtest.NewWidgetTesterWithT(t)

	var count int
	show := true
	scene := func(ctx *core.Context) {
		if show {
			count = widgets.FrameCounter{}.Build(identity.Here(), ctx)
		}
	}
	tester.PumpFrames(3, scene)
	show = false
	tester.Repump()
	show = true
	tester.Repump()

	if count != 1 {
		t.Errorf("count after re-adding = %d, want 1", count)
	}
}

func TestImage_DroppedTexture(t *testing.T) {
	reg := resource.NewRegistry()
	tex := reg.Add(resource.Texture, "logo", struct{}{})
	tester := immtest.NewWidgetTesterWithT(t, engine.WithResources(reg))

	var buildErr error
	scene := func(ctx *core.Context) {
		buildErr = widgets.Image{Texture: tex, Width: 8, Height: 8}.Build(identity.Here(), ctx)
	}
	tester.Pump(scene)
	if buildErr != nil {
		t.Fatalf("live texture: Build() = %v", buildErr)
	}
	cmds := tester.DrawList().Flatten()
	last := cmds[len(cmds)-1]
	if last.Texture == nil || *last.Texture != tex {
		t.Errorf("last command texture = %v, want %v", last.Texture, tex)
	}

	reg.Drop(tex)
	tester.Repump()
	if !stderrors.Is(buildErr, errors.ErrResourceDropped) {
		t.Errorf("dropped texture: Build() = %v, want ErrResourceDropped", buildErr)
	}
}

func TestImage_WrongResourceKind(t *testing.T) {
	reg := resource.NewRegistry()
	font := reg.Add(resource.Font, "basic", glyph.Provider(glyph.Basic()))
	tester := immtest.NewWidgetTesterWithT(t, engine.WithResources(reg))

	var buildErr error
	tester.Pump(func(ctx *core.Context) {
		buildErr = widgets.Image{Texture: font, Width: 8, Height: 8}.Build(identity.Here(), ctx)
	})
	var fe *errors.FrameError
	if !stderrors.As(buildErr, &fe) || fe.Kind != errors.KindResource {
		t.Errorf("Build() = %v, want a resource FrameError", buildErr)
	}
}
