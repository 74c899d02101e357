// Package layout defines the protocol a parent uses to offer space to a
// child and the child uses to report the space it will occupy.
//
// A parent sends a [Query]: an independent [Bound] per axis plus an
// [Objective] per axis. The child answers with a [Response]: the size it
// resolved to and a [Status] per axis. Statuses combine by conjunction, so
// a parent reports the worst status of any child on each axis.
package layout

import (
	"fmt"
	"strings"

	"github.com/go-drift/immediate/pkg/geometry"
)

// Axis selects the horizontal or vertical dimension.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Bound is the space available on one axis: a finite extent, or unbounded.
type Bound struct {
	extent  float32
	bounded bool
}

// Unbounded is the bound of an axis with no limit.
var Unbounded = Bound{}

// Finite returns a bound of the given extent. Negative extents clamp to 0.
func Finite(extent float32) Bound {
	if extent < 0 {
		extent = 0
	}
	return Bound{extent: extent, bounded: true}
}

// Extent returns the finite extent and whether the bound is finite.
func (b Bound) Extent() (float32, bool) {
	return b.extent, b.bounded
}

// IsBounded reports whether the bound is finite.
func (b Bound) IsBounded() bool {
	return b.bounded
}

// Shrink returns the bound reduced by d. Unbounded stays unbounded.
func (b Bound) Shrink(d float32) Bound {
	if !b.bounded {
		return b
	}
	return Finite(b.extent - d)
}

func (b Bound) String() string {
	if !b.bounded {
		return "unbounded"
	}
	return fmt.Sprintf("%g", b.extent)
}

// Objective tells a child what to do with spare space on an axis.
type Objective uint8

const (
	// None leaves sizing to the child.
	None Objective = iota
	// Minimize asks for the smallest size the child can display at.
	Minimize
	// Maximize asks the child to fill the bound.
	Maximize
)

func (o Objective) String() string {
	switch o {
	case Minimize:
		return "minimize"
	case Maximize:
		return "maximize"
	default:
		return "none"
	}
}

// ParseObjective is the inverse of Objective.String. It is case-insensitive
// and maps the empty string to Minimize.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(s) {
	case "", "minimize":
		return Minimize, nil
	case "maximize":
		return Maximize, nil
	case "none":
		return None, nil
	}
	return None, fmt.Errorf("layout: unknown objective %q", s)
}

// Query is the space a parent offers a child.
type Query struct {
	Width           Bound
	Height          Bound
	WidthObjective  Objective
	HeightObjective Objective
}

// Unconstrained returns the root query: no bounds, minimize on both axes.
func Unconstrained() Query {
	return Query{
		Width:           Unbounded,
		Height:          Unbounded,
		WidthObjective:  Minimize,
		HeightObjective: Minimize,
	}
}

// Bounded returns a query with finite bounds and the given objectives.
func Bounded(size geometry.Size, width, height Objective) Query {
	return Query{
		Width:           Finite(size.Width),
		Height:          Finite(size.Height),
		WidthObjective:  width,
		HeightObjective: height,
	}
}

// Bound returns the bound for axis.
func (q Query) Bound(axis Axis) Bound {
	if axis == Vertical {
		return q.Height
	}
	return q.Width
}

// Objective returns the objective for axis.
func (q Query) Objective(axis Axis) Objective {
	if axis == Vertical {
		return q.HeightObjective
	}
	return q.WidthObjective
}

// WithBound returns a copy of q with the bound for axis replaced.
func (q Query) WithBound(axis Axis, b Bound) Query {
	if axis == Vertical {
		q.Height = b
	} else {
		q.Width = b
	}
	return q
}

// WithObjective returns a copy of q with the objective for axis replaced.
func (q Query) WithObjective(axis Axis, o Objective) Query {
	if axis == Vertical {
		q.HeightObjective = o
	} else {
		q.WidthObjective = o
	}
	return q
}

// Shrink returns q with dx removed from the width and dy from the height.
func (q Query) Shrink(dx, dy float32) Query {
	q.Width = q.Width.Shrink(dx)
	q.Height = q.Height.Shrink(dy)
	return q
}

// Status reports how well a child fit on one axis.
type Status uint8

const (
	// Ok means the child fits.
	Ok Status = iota
	// Inconsistencies means the child renders but violates its constraints.
	Inconsistencies
	// WontDisplay means the child will not render.
	WontDisplay
)

func (s Status) String() string {
	switch s {
	case Inconsistencies:
		return "inconsistencies"
	case WontDisplay:
		return "wont-display"
	default:
		return "ok"
	}
}

// Worst returns the more severe of a and b.
func Worst(a, b Status) Status {
	if a > b {
		return a
	}
	return b
}

// Response is a child's answer to a Query.
type Response struct {
	Size       geometry.Size
	Horizontal Status
	Vertical   Status
}

// Status returns the status for axis.
func (r Response) Status(axis Axis) Status {
	if axis == Vertical {
		return r.Vertical
	}
	return r.Horizontal
}

// SetStatus returns r with the status for axis replaced.
func (r Response) SetStatus(axis Axis, s Status) Response {
	if axis == Vertical {
		r.Vertical = s
	} else {
		r.Horizontal = s
	}
	return r
}

// MergeStatus folds other's statuses into r. Sizes are left alone.
func (r Response) MergeStatus(other Response) Response {
	r.Horizontal = Worst(r.Horizontal, other.Horizontal)
	r.Vertical = Worst(r.Vertical, other.Vertical)
	return r
}

// Displayable reports whether neither axis is WontDisplay.
func (r Response) Displayable() bool {
	return r.Horizontal != WontDisplay && r.Vertical != WontDisplay
}

// Resolve picks the extent for a box whose content needs minimum on an axis
// with the given bound and objective.
//
// A minimum that exceeds a finite bound overflows and reports
// Inconsistencies; a bound of zero with non-zero content reports
// WontDisplay. Maximize fills a finite bound and degrades to the minimum
// when unbounded.
func Resolve(minimum float32, b Bound, o Objective) (float32, Status) {
	extent, bounded := b.Extent()
	if !bounded {
		return minimum, Ok
	}
	if minimum > extent {
		if extent == 0 {
			return 0, WontDisplay
		}
		return minimum, Inconsistencies
	}
	if o == Maximize {
		return extent, Ok
	}
	return minimum, Ok
}

// ResolveSize applies Resolve on both axes.
func ResolveSize(minimum geometry.Size, q Query) Response {
	w, hs := Resolve(minimum.Width, q.Width, q.WidthObjective)
	h, vs := Resolve(minimum.Height, q.Height, q.HeightObjective)
	return Response{Size: geometry.Size{Width: w, Height: h}, Horizontal: hs, Vertical: vs}
}
