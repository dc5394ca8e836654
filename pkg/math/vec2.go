// Package math provides the small vector toolkit used for glyph outlines
// and text layout.
package math

import "math"

// Vec2 is a 2D vector or point.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product. Positive when
// other is counter-clockwise from v.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{v.Y, -v.X}
}

// Lerp interpolates between v and other.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// QuadBezier evaluates the quadratic curve p0-p1-p2 at t.
func QuadBezier(p0, p1, p2 Vec2, t float32) Vec2 {
	u := 1 - t
	return Vec2{
		u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// CubicBezier evaluates the cubic curve p0-p1-p2-p3 at t.
func CubicBezier(p0, p1, p2, p3 Vec2, t float32) Vec2 {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Vec2{
		a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// TriangleArea returns the signed area of triangle abc, positive when
// counter-clockwise.
func TriangleArea(a, b, c Vec2) float32 {
	return b.Sub(a).Cross(c.Sub(a)) / 2
}

// PolygonArea returns the signed shoelace area, positive when
// counter-clockwise.
func PolygonArea(pts []Vec2) float32 {
	var sum float32
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].Cross(pts[j])
	}
	return sum / 2
}

// PointInPolygon reports whether p lies inside pts using the even-odd rule.
func PointInPolygon(p Vec2, pts []Vec2) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}
