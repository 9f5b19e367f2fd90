// Package gjk implements the Gilbert-Johnson-Keerthi (GJK) algorithm over
// convex point clouds.
//
// GJK detects whether two convex hulls overlap by testing if their Minkowski
// difference contains the origin. The algorithm never builds the difference
// explicitly: it samples extreme points of it through a support function and
// evolves a simplex of 1-4 of those points toward the origin, discarding the
// Voronoi regions that provably cannot contain it.
//
// The hulls are plain vertex slices in world space. Extracting them from
// meshes, transforms or a scene layer is the caller's concern.
//
// References:
//   - Gilbert, Johnson, Keerthi: "A Fast Procedure for Computing the Distance
//     Between Complex Objects in Three-Dimensional Space" (1988)
//   - Van den Bergen: "Collision Detection in Interactive 3D Environments" (2003)
package gjk

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxIterations bounds the support-mapping loop. A simplex that has not
// settled within this many iterations is handed to EPA as a probable
// intersection instead of looping forever on numerically unstable input.
const MaxIterations = 50

// FurthestPoint returns the hull vertex with the greatest projection onto
// direction. Ties keep the first vertex encountered, so the scan is
// deterministic for a given vertex order. An empty hull yields the zero vector.
func FurthestPoint(hull []mgl64.Vec3, direction mgl64.Vec3) mgl64.Vec3 {
	max := math.Inf(-1)
	var maxV mgl64.Vec3

	for _, vertex := range hull {
		if dot := vertex.Dot(direction); dot > max {
			max = dot
			maxV = vertex
		}
	}

	return maxV
}

// MinkowskiSupport computes a support point of the Minkowski difference A - B.
//
// The difference A - B is the set of all vectors (a - b) with a ∈ A, b ∈ B;
// only its extreme points matter here, and those are found by combining the
// furthest vertex of A along direction with the furthest vertex of B against it.
//
// Returns:
//
//	SupportPoint{FurthestPoint(A, direction) - FurthestPoint(B, -direction), both witnesses}
func MinkowskiSupport(hullA, hullB []mgl64.Vec3, direction mgl64.Vec3) SupportPoint {
	supportA := FurthestPoint(hullA, direction)
	supportB := FurthestPoint(hullB, direction.Mul(-1))

	return SupportPoint{
		Minkowski: supportA.Sub(supportB),
		FromA:     supportA,
		FromB:     supportB,
	}
}

// GJK runs the support-mapping iteration for two convex hulls.
//
// Algorithm overview:
//  1. Seed the simplex with one support point along a fixed direction
//  2. Search toward the origin from the current simplex
//  3. If a new support point cannot pass the origin, the hulls are separated
//  4. Otherwise reduce the simplex to the feature closest to the origin
//  5. A tetrahedron enclosing the origin proves the hulls intersect
//
// Returns:
//   - false only when separation is proven (the new support point fell
//     strictly short of the origin). Exact boundary touching keeps iterating
//     and classifies as a collision.
//   - true when the simplex encloses the origin, or when MaxIterations ran
//     out; the second case is a probable intersection and the caller runs EPA
//     on the current simplex either way.
//
// The simplex is reset and rebuilt in place; on a true result it holds the
// 2-4 points EPA starts from.
func GJK(hullA, hullB []mgl64.Vec3, simplex *Simplex) (bool, error) {
	first := MinkowskiSupport(hullA, hullB, mgl64.Vec3{1, 1, 1})

	simplex.Reset()
	if err := simplex.Add(first); err != nil {
		return false, err
	}

	// Search toward the origin from the first support point.
	direction := first.Minkowski.Mul(-1)

	for i := 0; i < MaxIterations; i++ {
		point := MinkowskiSupport(hullA, hullB, direction)

		if oppositeDirection(point.Minkowski, direction) {
			return false, nil
		}

		if err := simplex.Add(point); err != nil {
			return false, err
		}

		if containsOrigin(simplex, &direction) {
			return true, nil
		}
	}

	return true, nil
}

// containsOrigin reduces the simplex to the feature closest to the origin and
// updates the search direction. Only the tetrahedron case can return true.
func containsOrigin(simplex *Simplex, direction *mgl64.Vec3) bool {
	switch simplex.Count {
	case 2:
		return line(simplex, direction)
	case 3:
		return triangle(simplex, direction)
	default:
		return tetrahedron(simplex, direction)
	}
}

// line handles the 2-point simplex. The origin is either past A (keep the
// segment, search perpendicular to it) or behind A (drop B, search straight
// toward the origin). A line never encloses the origin.
func line(simplex *Simplex, direction *mgl64.Vec3) bool {
	aSP := simplex.Points[1]
	bSP := simplex.Points[0]
	a := aSP.Minkowski
	b := bSP.Minkowski

	ab := b.Sub(a)
	ao := a.Mul(-1)

	if sameDirection(ab, ao) {
		*direction = ab.Cross(ao).Cross(ab)
	} else {
		simplex.Remove(bSP)
		*direction = ao
	}

	return false
}

// triangle handles the 3-point simplex. The Voronoi regions tested, in order:
// past edge AC, past edge AB, behind vertex A, then the two half-spaces above
// and below the triangle plane. The simplex keeps only the closest feature's
// vertices. A triangle never encloses the origin in 3D.
func triangle(simplex *Simplex, direction *mgl64.Vec3) bool {
	aSP := simplex.Points[2]
	bSP := simplex.Points[1]
	cSP := simplex.Points[0]
	a := aSP.Minkowski
	b := bSP.Minkowski
	c := cSP.Minkowski

	ab := b.Sub(a)
	ac := c.Sub(a)
	abc := ab.Cross(ac)
	ao := a.Mul(-1)
	acNormal := abc.Cross(ac)
	abNormal := ab.Cross(abc)

	if sameDirection(acNormal, ao) {
		if sameDirection(ac, ao) {
			simplex.Remove(bSP)
			*direction = ac.Cross(ao).Cross(ac)
		} else if sameDirection(ab, ao) {
			simplex.Remove(cSP)
			*direction = ab.Cross(ao).Cross(ab)
		} else {
			simplex.Remove(bSP)
			simplex.Remove(cSP)
			*direction = ao
		}
	} else if sameDirection(abNormal, ao) {
		if sameDirection(ab, ao) {
			simplex.Remove(cSP)
			*direction = ab.Cross(ao).Cross(ab)
		} else {
			simplex.Remove(bSP)
			simplex.Remove(cSP)
			*direction = ao
		}
	} else if sameDirection(abc, ao) {
		// Origin is above the triangle plane.
		*direction = abc.Cross(ao).Cross(abc)
	} else {
		// Origin is below the triangle plane.
		negAbc := abc.Mul(-1)
		*direction = negAbc.Cross(ao).Cross(negAbc)
	}

	return false
}

// tetrahedron handles the 4-point simplex, the only case that can prove
// enclosure. The three faces sharing the newest vertex A are tested; the base
// BCD cannot be closest because the origin was on A's side of it when A was
// added. If the origin is outside a face, the simplex drops to that face's
// closest sub-feature; if it is behind all three, it is enclosed.
func tetrahedron(simplex *Simplex, direction *mgl64.Vec3) bool {
	aSP := simplex.Points[3]
	bSP := simplex.Points[2]
	cSP := simplex.Points[1]
	dSP := simplex.Points[0]
	a := aSP.Minkowski
	b := bSP.Minkowski
	c := cSP.Minkowski
	d := dSP.Minkowski

	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	acd := ad.Cross(ac)
	abd := ab.Cross(ad)
	abc := ac.Cross(ab)

	if sameDirection(abc, ao) {
		if sameDirection(abc.Cross(ac), ao) {
			simplex.Remove(bSP)
			simplex.Remove(dSP)
			*direction = ac.Cross(ao).Cross(ac)
		} else if sameDirection(ab.Cross(abc), ao) {
			simplex.Remove(cSP)
			simplex.Remove(dSP)
			*direction = ab.Cross(ao).Cross(ab)
		} else {
			simplex.Remove(dSP)
			*direction = abc
		}
	} else if sameDirection(acd, ao) {
		if sameDirection(acd.Cross(ad), ao) {
			simplex.Remove(bSP)
			simplex.Remove(cSP)
			*direction = ad.Cross(ao).Cross(ad)
		} else if sameDirection(ac.Cross(acd), ao) {
			simplex.Remove(bSP)
			simplex.Remove(dSP)
			*direction = ac.Cross(ao).Cross(ac)
		} else {
			simplex.Remove(bSP)
			*direction = acd
		}
	} else if sameDirection(abd, ao) {
		if sameDirection(abd.Cross(ab), ao) {
			simplex.Remove(cSP)
			simplex.Remove(dSP)
			*direction = ab.Cross(ao).Cross(ab)
		} else if sameDirection(ad.Cross(abd), ao) {
			simplex.Remove(bSP)
			simplex.Remove(cSP)
			*direction = ad.Cross(ao).Cross(ad)
		} else {
			simplex.Remove(cSP)
			*direction = abd
		}
	} else {
		return true
	}

	return false
}

// sameDirection reports whether v has a strictly positive component along w.
func sameDirection(v, w mgl64.Vec3) bool {
	return v.Dot(w) > 0
}

// oppositeDirection reports whether v has a strictly negative component along w.
func oppositeDirection(v, w mgl64.Vec3) bool {
	return v.Dot(w) < 0
}
