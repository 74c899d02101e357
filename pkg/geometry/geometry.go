// Package geometry provides the small amount of linear algebra the engine
// needs: sizes and rectangles in widget-local space, 4x4 transforms, and
// rays for hit testing.
//
// Matrices use [f32.Mat4], which is row major: m[4*r+c] is the element in
// row r and column c. Points are column vectors, so Mul(a, b) applied to a
// point applies b first.
package geometry

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Size is a width and height in logical units.
type Size struct {
	Width  float32
	Height float32
}

// Point is a position in logical units.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle in local space.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// RectFromSize returns a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Contains reports whether the point lies inside the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (x, y float32) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Identity returns the identity transform.
func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation transform.
func Translate(x, y, z float32) f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	}
}

// Scale returns a scaling transform.
func Scale(x, y, z float32) f32.Mat4 {
	return f32.Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// Mul returns a*b.
func Mul(a, b f32.Mat4) f32.Mat4 {
	var out f32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[4*r+k] * b[4*k+c]
			}
			out[4*r+c] = sum
		}
	}
	return out
}

// IsIdentity reports whether m is exactly the identity transform.
func IsIdentity(m f32.Mat4) bool {
	return m == Identity()
}

// Apply transforms a point (w=1).
func Apply(m f32.Mat4, p f32.Vec3) f32.Vec3 {
	x := m[0]*p[0] + m[1]*p[1] + m[2]*p[2] + m[3]
	y := m[4]*p[0] + m[5]*p[1] + m[6]*p[2] + m[7]
	z := m[8]*p[0] + m[9]*p[1] + m[10]*p[2] + m[11]
	w := m[12]*p[0] + m[13]*p[1] + m[14]*p[2] + m[15]
	if w != 0 && w != 1 {
		return f32.Vec3{x / w, y / w, z / w}
	}
	return f32.Vec3{x, y, z}
}

// ApplyDirection transforms a direction (w=0).
func ApplyDirection(m f32.Mat4, d f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0]*d[0] + m[1]*d[1] + m[2]*d[2],
		m[4]*d[0] + m[5]*d[1] + m[6]*d[2],
		m[8]*d[0] + m[9]*d[1] + m[10]*d[2],
	}
}

// Invert returns the inverse of m. The second result is false when m is
// singular, in which case the identity is returned.
func Invert(m f32.Mat4) (f32.Mat4, bool) {
	// Cofactor expansion in float64 for stability.
	var a [16]float64
	for i, v := range m {
		a[i] = float64(v)
	}
	var inv [16]float64
	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] - a[9]*a[6]*a[15] + a[9]*a[7]*a[14] + a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] + a[8]*a[6]*a[15] - a[8]*a[7]*a[14] - a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] - a[8]*a[5]*a[15] + a[8]*a[7]*a[13] + a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] + a[8]*a[5]*a[14] - a[8]*a[6]*a[13] - a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] + a[9]*a[2]*a[15] - a[9]*a[3]*a[14] - a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] - a[8]*a[2]*a[15] + a[8]*a[3]*a[14] + a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] + a[8]*a[1]*a[15] - a[8]*a[3]*a[13] - a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] - a[8]*a[1]*a[14] + a[8]*a[2]*a[13] + a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] - a[5]*a[2]*a[15] + a[5]*a[3]*a[14] + a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] + a[4]*a[2]*a[15] - a[4]*a[3]*a[14] - a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] - a[4]*a[1]*a[15] + a[4]*a[3]*a[13] + a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] + a[4]*a[1]*a[14] - a[4]*a[2]*a[13] - a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] + a[5]*a[2]*a[11] - a[5]*a[3]*a[10] - a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] - a[4]*a[2]*a[11] + a[4]*a[3]*a[10] + a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] + a[4]*a[1]*a[11] - a[4]*a[3]*a[9] - a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] - a[4]*a[1]*a[10] + a[4]*a[2]*a[9] + a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if det == 0 || math.IsNaN(det) {
		return Identity(), false
	}
	var out f32.Mat4
	for i := range inv {
		out[i] = float32(inv[i] / det)
	}
	return out, true
}

// Ray is a half-line used for hit testing. Widgets live on the z=0 plane
// of their local space; a 2D pointer is a ray pointing down -z.
type Ray struct {
	Origin    f32.Vec3
	Direction f32.Vec3
}

// PointerRay returns a ray through the screen position (x, y), looking
// into the scene from z=1.
func PointerRay(x, y float32) Ray {
	return Ray{
		Origin:    f32.Vec3{x, y, 1},
		Direction: f32.Vec3{0, 0, -1},
	}
}

// Transform returns the ray mapped through m.
func (r Ray) Transform(m f32.Mat4) Ray {
	return Ray{
		Origin:    Apply(m, r.Origin),
		Direction: ApplyDirection(m, r.Direction),
	}
}

// IntersectPlane intersects the ray with the local z=0 plane. It returns
// the ray parameter t and the hit point. ok is false when the ray is
// parallel to the plane or the plane lies behind the origin.
func (r Ray) IntersectPlane() (t float32, x, y float32, ok bool) {
	if r.Direction[2] == 0 {
		return 0, 0, 0, false
	}
	t = -r.Origin[2] / r.Direction[2]
	if t < 0 {
		return 0, 0, 0, false
	}
	return t, r.Origin[0] + t*r.Direction[0], r.Origin[1] + t*r.Direction[1], true
}
