// Package resource tracks backend-held resources (fonts, textures) by handle.
//
// Widgets store handles, never the resources themselves. When the backend
// drops a resource its handle goes stale, and resolving it returns an error
// wrapping [errors.ErrResourceDropped] so the failure surfaces at the point
// of use instead of rendering garbage.
package resource

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/immediate/pkg/errors"
)

// Kind is the category of a resource.
type Kind uint8

const (
	Font Kind = iota + 1
	Texture
)

func (k Kind) String() string {
	switch k {
	case Font:
		return "font"
	case Texture:
		return "texture"
	default:
		return "unknown"
	}
}

// Handle refers to a resource in a Registry. The zero Handle refers to
// nothing and never resolves.
type Handle struct {
	index uint32
	gen   uint32
	kind  Kind
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// Kind returns the category the handle was issued for.
func (h Handle) Kind() Kind {
	return h.kind
}

func (h Handle) String() string {
	return fmt.Sprintf("%s/%d.%d", h.kind, h.index, h.gen)
}

type entry struct {
	gen   uint32
	live  bool
	name  string
	value any
}

// Registry is the backend's resource table. Like the rest of the engine it
// is owned by one goroutine.
type Registry struct {
	entries []entry
	free    []uint32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add stores value and returns its handle.
func (r *Registry) Add(kind Kind, name string, value any) Handle {
	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		index = uint32(len(r.entries))
		r.entries = append(r.entries, entry{})
	}
	e := &r.entries[index]
	e.gen++
	e.live = true
	e.name = name
	e.value = value
	return Handle{index: index, gen: e.gen, kind: kind}
}

// Drop releases the resource. It reports whether h was live.
func (r *Registry) Drop(h Handle) bool {
	if !r.live(h) {
		return false
	}
	e := &r.entries[h.index]
	e.live = false
	e.value = nil
	r.free = append(r.free, h.index)
	errors.Logger().Debug("resource dropped", slog.String("handle", h.String()), slog.String("name", e.name))
	return true
}

// Live reports whether h still resolves.
func (r *Registry) Live(h Handle) bool {
	return r.live(h)
}

func (r *Registry) live(h Handle) bool {
	if h.IsZero() || int(h.index) >= len(r.entries) {
		return false
	}
	e := r.entries[h.index]
	return e.live && e.gen == h.gen
}

// Resolve returns the resource for h, or a *errors.FrameError wrapping
// errors.ErrResourceDropped if the backend no longer holds it.
func (r *Registry) Resolve(h Handle) (any, error) {
	if r == nil || !r.live(h) {
		errors.Logger().Warn("stale resource handle", slog.String("handle", h.String()))
		return nil, &errors.FrameError{
			Op:   "resource.Resolve",
			Kind: errors.KindResource,
			Node: h.String(),
			Err:  errors.ErrResourceDropped,
		}
	}
	return r.entries[h.index].value, nil
}

// Lookup resolves h and asserts the resource type.
func Lookup[T any](r *Registry, h Handle) (T, error) {
	var zero T
	v, err := r.Resolve(h)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &errors.FrameError{
			Op:   "resource.Lookup",
			Kind: errors.KindResource,
			Node: h.String(),
			Err:  fmt.Errorf("resource is %T, want %T", v, zero),
		}
	}
	return typed, nil
}
