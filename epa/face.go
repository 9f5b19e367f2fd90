package epa

import (
	"math"

	"github.com/akmonengine/quill/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// Face is a snapshot of one polytope triangle, taken when it is the closest
// candidate to the origin. It copies the three support points so that later
// polytope expansion cannot invalidate it.
type Face struct {
	Points   [3]gjk.SupportPoint // triangle vertices, winding preserved
	Normal   mgl64.Vec3          // unit normal, outward from the polytope
	Distance float64             // distance from the origin to the face plane
}

// Edge is a directed pair of polytope vertex indices. Edges only live during
// a single Extend call, tracking the boundary of the removed region.
type Edge struct {
	A int
	B int
}

// normalFromPoints computes the non-unit normal of the triangle (a, b, c)
// as (a-b) x (c-b).
func normalFromPoints(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return a.Sub(b).Cross(c.Sub(b))
}

// sameDirection reports whether v has a strictly positive component along w.
func sameDirection(v, w mgl64.Vec3) bool {
	return v.Dot(w) > 0
}

// oppositeDirection reports whether v has a strictly negative component along w.
func oppositeDirection(v, w mgl64.Vec3) bool {
	return v.Dot(w) < 0
}

// perpendicular picks an arbitrary vector orthogonal to v by crossing v with
// the axis it is least aligned with. A zero v falls back to the up axis.
func perpendicular(v mgl64.Vec3) mgl64.Vec3 {
	axis := mgl64.Vec3{1, 0, 0}
	if math.Abs(v.X()) > math.Abs(v.Y()) {
		axis = mgl64.Vec3{0, 1, 0}
	}

	out := v.Cross(axis)
	if out.LenSqr() < degenerateNormalSqr {
		return mgl64.Vec3{0, 1, 0}
	}

	return out
}

// barycentric expresses p in barycentric coordinates of the triangle (a, b, c).
// The caller must guarantee a non-degenerate triangle.
//
// Reference: Ericson, "Real-Time Collision Detection", section 3.4.
func barycentric(p, a, b, c mgl64.Vec3) mgl64.Vec3 {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01

	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1.0 - v - w

	return mgl64.Vec3{u, v, w}
}

// cartesian recombines barycentric weights with the triangle (a, b, c).
func cartesian(weights mgl64.Vec3, a, b, c mgl64.Vec3) mgl64.Vec3 {
	return a.Mul(weights.X()).Add(b.Mul(weights.Y())).Add(c.Mul(weights.Z()))
}
