// Package focus tracks which node receives keyboard input.
//
// The traversal order is rebuilt after every layout pass from a pre-order
// walk of focusable nodes. Linear traversal wraps around at both ends;
// directional traversal picks the nearest candidate in the requested
// direction and falls back to linear order when none qualifies.
package focus

import (
	"math"

	"github.com/go-drift/immediate/pkg/node"
)

// Rect is a node's bounds in screen space.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float32) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// IsValid returns true if the rect has positive dimensions.
func (r Rect) IsValid() bool {
	return r.Right > r.Left && r.Bottom > r.Top
}

// Direction indicates the focus traversal direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Target is one entry of the traversal order.
type Target struct {
	Node node.ID
	Rect Rect
}

// Manager owns the focus state of one engine instance.
type Manager struct {
	order   []Target
	primary node.ID

	// OnChange is called whenever the primary focus changes.
	OnChange func(previous, next node.ID)
}

// NewManager returns a manager with nothing focused.
func NewManager() *Manager {
	return &Manager{}
}

// SetOrder replaces the traversal order. Focus held by a node that is no
// longer in the order is cleared.
func (m *Manager) SetOrder(targets []Target) {
	m.order = append(m.order[:0], targets...)
	if m.indexOf(m.primary) < 0 {
		m.Clear()
	}
}

// Order returns the current traversal order.
func (m *Manager) Order() []Target {
	return m.order
}

// Primary returns the focused node, or node.Nil.
func (m *Manager) Primary() node.ID {
	return m.primary
}

// Has reports whether id holds primary focus.
func (m *Manager) Has(id node.ID) bool {
	return !id.IsNil() && m.primary == id
}

// Request focuses id. It reports false if id is not in the traversal order.
func (m *Manager) Request(id node.ID) bool {
	if m.indexOf(id) < 0 {
		return false
	}
	m.setPrimary(id)
	return true
}

// Clear removes focus.
func (m *Manager) Clear() {
	m.setPrimary(node.Nil)
}

// Prune clears focus if the focused node no longer exists.
func (m *Manager) Prune(alive func(node.ID) bool) {
	if !m.primary.IsNil() && !alive(m.primary) {
		m.Clear()
	}
}

// Move moves focus by delta positions in traversal order, wrapping at the
// ends. With nothing focused, Move(1) focuses the first target and Move(-1)
// the last.
func (m *Manager) Move(delta int) bool {
	count := len(m.order)
	if count == 0 || delta == 0 {
		return false
	}
	current := m.indexOf(m.primary)
	if current < 0 && delta < 0 {
		current = count
	}
	next := wrapIndex(current+delta, count)
	m.setPrimary(m.order[next].Node)
	return true
}

// MoveInDirection moves focus to the closest target in direction d.
func (m *Manager) MoveInDirection(d Direction) bool {
	current := m.indexOf(m.primary)
	if current < 0 || !m.order[current].Rect.IsValid() {
		return m.Move(linearDelta(d))
	}
	source := m.order[current].Rect

	var best node.ID
	bestScore := float32(math.MaxFloat32)
	for i, candidate := range m.order {
		if i == current || !candidate.Rect.IsValid() {
			continue
		}
		if !isInDirection(source, candidate.Rect, d) {
			continue
		}
		if score := directionalScore(source, candidate.Rect, d); score < bestScore {
			bestScore = score
			best = candidate.Node
		}
	}
	if best.IsNil() {
		return m.Move(linearDelta(d))
	}
	m.setPrimary(best)
	return true
}

func (m *Manager) indexOf(id node.ID) int {
	if id.IsNil() {
		return -1
	}
	for i, t := range m.order {
		if t.Node == id {
			return i
		}
	}
	return -1
}

func (m *Manager) setPrimary(id node.ID) {
	if m.primary == id {
		return
	}
	previous := m.primary
	m.primary = id
	if m.OnChange != nil {
		m.OnChange(previous, id)
	}
}

func linearDelta(d Direction) int {
	if d == Up || d == Left {
		return -1
	}
	return 1
}

func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

func isInDirection(source, target Rect, d Direction) bool {
	sx, sy := source.Center()
	tx, ty := target.Center()
	switch d {
	case Up:
		return ty < sy
	case Down:
		return ty > sy
	case Left:
		return tx < sx
	case Right:
		return tx > sx
	}
	return false
}

// directionalScore is lower for closer, better aligned targets. Cross-axis
// distance is weighted double.
func directionalScore(source, target Rect, d Direction) float32 {
	sx, sy := source.Center()
	tx, ty := target.Center()
	var primary, cross float32
	switch d {
	case Up, Down:
		primary, cross = abs(ty-sy), abs(tx-sx)
	case Left, Right:
		primary, cross = abs(tx-sx), abs(ty-sy)
	}
	return primary + cross*2
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
