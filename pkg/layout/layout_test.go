package layout

import (
	"testing"

	"github.com/go-drift/immediate/pkg/geometry"
	"github.com/google/go-cmp/cmp"
)

func TestWorst(t *testing.T) {
	tests := []struct {
		a, b, want Status
	}{
		{Ok, Ok, Ok},
		{Ok, Inconsistencies, Inconsistencies},
		{Inconsistencies, Ok, Inconsistencies},
		{Inconsistencies, WontDisplay, WontDisplay},
		{WontDisplay, Ok, WontDisplay},
	}
	for _, tt := range tests {
		if got := Worst(tt.a, tt.b); got != tt.want {
			t.Errorf("Worst(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMergeStatusIsConjunction(t *testing.T) {
	parent := Response{}
	parent = parent.MergeStatus(Response{Horizontal: Ok, Vertical: Ok})
	parent = parent.MergeStatus(Response{Horizontal: Inconsistencies, Vertical: Ok})
	want := Response{Horizontal: Inconsistencies, Vertical: Ok}
	if diff := cmp.Diff(want, parent); diff != "" {
		t.Errorf("MergeStatus mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		minimum    float32
		bound      Bound
		objective  Objective
		wantExtent float32
		wantStatus Status
	}{
		{"unbounded minimize", 3, Unbounded, Minimize, 3, Ok},
		{"unbounded maximize", 3, Unbounded, Maximize, 3, Ok},
		{"fits minimize", 3, Finite(10), Minimize, 3, Ok},
		{"fits maximize", 3, Finite(10), Maximize, 10, Ok},
		{"overflow", 12, Finite(10), Minimize, 12, Inconsistencies},
		{"zero space", 2, Finite(0), None, 0, WontDisplay},
		{"empty content in zero space", 0, Finite(0), None, 0, Ok},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extent, status := Resolve(tt.minimum, tt.bound, tt.objective)
			if extent != tt.wantExtent || status != tt.wantStatus {
				t.Errorf("Resolve = (%v, %v), want (%v, %v)", extent, status, tt.wantExtent, tt.wantStatus)
			}
		})
	}
}

func TestQueryShrink(t *testing.T) {
	q := Query{Width: Finite(10), Height: Unbounded}
	got := q.Shrink(4, 4)
	if w, ok := got.Width.Extent(); !ok || w != 6 {
		t.Errorf("width = %v", got.Width)
	}
	if got.Height.IsBounded() {
		t.Error("unbounded height must stay unbounded")
	}
	if w, _ := q.Shrink(20, 0).Width.Extent(); w != 0 {
		t.Errorf("over-shrunk width = %v, want 0", w)
	}
}

func TestQueryWithObjective(t *testing.T) {
	q := Unconstrained().WithObjective(Horizontal, Maximize)
	if q.Objective(Horizontal) != Maximize || q.Objective(Vertical) != Minimize {
		t.Errorf("objectives = %v/%v", q.WidthObjective, q.HeightObjective)
	}
}

func TestResolveSize(t *testing.T) {
	q := Bounded(geometry.Size{Width: 5, Height: 1}, Maximize, Minimize)
	got := ResolveSize(geometry.Size{Width: 2, Height: 2}, q)
	want := Response{
		Size:       geometry.Size{Width: 5, Height: 2},
		Horizontal: Ok,
		Vertical:   Inconsistencies,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveSize mismatch (-want +got):\n%s", diff)
	}
}

func TestParseObjective(t *testing.T) {
	tests := []struct {
		in   string
		want Objective
	}{
		{"", Minimize},
		{"minimize", Minimize},
		{"Maximize", Maximize},
		{"NONE", None},
	}
	for _, tt := range tests {
		got, err := ParseObjective(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseObjective(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseObjective("biggest"); err == nil {
		t.Error("expected an error for an unknown objective")
	}
}
