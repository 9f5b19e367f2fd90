// Package epa implements the Expanding Polytope Algorithm for computing
// penetration data between two intersecting convex hulls.
//
// EPA runs after GJK reports a collision and answers the questions GJK
// cannot: how deep the hulls overlap, along which direction, and where on
// each hull the contact sits. Starting from the terminal GJK simplex it
// expands a polytope inside the Minkowski difference until the closest face
// stops moving; that face carries the penetration normal and depth, and
// interpolating the per-hull witnesses of its vertices yields the contact
// points.
//
// Results:
//   - Normal: unit direction of minimum translation
//   - Depth: penetration depth along Normal
//   - PointA, PointB: deepest contact point on each hull
//
// References:
//   - Van den Bergen: "Proximity Queries and Penetration Depth Computation
//     on 3D Game Objects" (2001)
package epa

import (
	"errors"
	"fmt"
	"math"

	"github.com/akmonengine/quill/gjk"
	"github.com/akmonengine/quill/hull"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// EPAMaxIterations limits polytope expansion to prevent infinite loops
	// on pathological inputs. Typical convergence: 5-15 iterations for
	// simple shapes. Past the limit the best estimate so far is returned
	// together with ErrNotConverged.
	EPAMaxIterations = 64

	// EPATolerance defines convergence. Expansion stops once a new support
	// point improves on the closest face distance by less than this.
	EPATolerance = 0.00001

	// DegeneratePenetrationEstimate is the depth reported when the polytope
	// collapsed and no geometric depth can be measured.
	DegeneratePenetrationEstimate = 0.01

	// paddingOffset scales the off-axis vertex synthesized when a 2-point
	// simplex is padded to a tetrahedron.
	paddingOffset = 0.1

	// pastOriginFactor pushes a synthesized padding vertex just beyond the
	// origin, so the padded tetrahedron strictly encloses it.
	pastOriginFactor = 1.0 + 0.00001

	// degenerateNormalSqr is the squared length under which a triangle
	// normal counts as zero-area.
	degenerateNormalSqr = 1e-16

	// minNormalLength is the length under which a direction is too short to
	// normalize safely.
	minNormalLength = 1e-8

	// polytopeInitialCapacity pre-sizes pooled polytope buffers to cover
	// typical expansion without reallocation.
	polytopeInitialCapacity = 8
)

var (
	// ErrTooFewVertices reports a simplex below 2 points, which cannot seed
	// a polytope.
	ErrTooFewVertices = errors.New("epa: fewer than two simplex vertices")

	// ErrTooManyVertices reports a simplex above 4 points.
	ErrTooManyVertices = errors.New("epa: more than four simplex vertices")

	// ErrNotConverged reports an expansion that hit EPAMaxIterations. The
	// contact returned alongside is the best estimate from the current
	// closest face.
	ErrNotConverged = errors.New("epa: failed to converge")

	// ErrDegenerateContact reports a polytope with no usable face. The
	// contact returned alongside is a coarse estimate.
	ErrDegenerateContact = errors.New("epa: degenerate contact")
)

// Contact is the penetration data for one intersecting hull pair.
type Contact struct {
	Normal mgl64.Vec3 // unit normal of the closest Minkowski boundary face
	Depth  float64    // penetration depth along Normal
	PointA mgl64.Vec3 // contact point on the first hull
	PointB mgl64.Vec3 // contact point on the second hull
}

// EPA computes the contact data for two hulls whose GJK query returned a
// collision, expanding the terminal simplex toward the Minkowski boundary.
//
// The simplex may hold 2, 3 or 4 points; smaller ones are padded during
// triangulation. Soft failures (iteration cap, collapsed polytope) still
// return a usable Contact estimate together with ErrNotConverged or
// ErrDegenerateContact; callers distinguish them with errors.Is.
//
// Parameters:
//   - hullA, hullB: world-space vertices of both hulls
//   - simplex: terminal simplex of the GJK run for the same hulls
//
// Returns the contact and an error for simplexes EPA cannot start from, or
// a soft error qualifying the estimate.
func EPA(hullA, hullB []mgl64.Vec3, simplex *gjk.Simplex) (Contact, error) {
	polytope := PolytopePool.Get().(*Polytope)
	defer PolytopePool.Put(polytope)

	if err := polytope.Triangulate(simplex); err != nil {
		return Contact{}, err
	}

	for iteration := 0; iteration < EPAMaxIterations; iteration++ {
		face, err := polytope.ClosestFace()
		if err != nil {
			return degenerateContact(hullA, hullB, polytope), fmt.Errorf("%w: polytope collapsed", ErrDegenerateContact)
		}

		support := gjk.MinkowskiSupport(hullA, hullB, face.Normal)
		depth := math.Abs(support.Minkowski.Dot(face.Normal))

		converged := depth-face.Distance < EPATolerance

		// Extend runs every iteration; a rejected duplicate also means
		// the boundary cannot move further along this normal.
		if !polytope.Extend(support) {
			converged = true
		}

		if converged {
			return contactOnFace(face, support), nil
		}
	}

	face, err := polytope.ClosestFace()
	if err != nil {
		return degenerateContact(hullA, hullB, polytope), fmt.Errorf("%w: polytope collapsed", ErrDegenerateContact)
	}
	support := gjk.MinkowskiSupport(hullA, hullB, face.Normal)

	return contactOnFace(face, support), fmt.Errorf("%w after %d iterations", ErrNotConverged, EPAMaxIterations)
}

// contactOnFace extracts the contact from the converged closest face. The
// barycentric coordinates of the final support point within the face select
// how much each vertex contributes; applying the same weights to the
// per-hull witnesses yields the contact point on each hull.
func contactOnFace(face Face, support gjk.SupportPoint) Contact {
	depth := math.Abs(support.Minkowski.Dot(face.Normal))

	weights := barycentric(support.Minkowski,
		face.Points[0].Minkowski, face.Points[1].Minkowski, face.Points[2].Minkowski)

	return Contact{
		Normal: face.Normal,
		Depth:  depth,
		PointA: cartesian(weights, face.Points[0].FromA, face.Points[1].FromA, face.Points[2].FromA),
		PointB: cartesian(weights, face.Points[0].FromB, face.Points[1].FromB, face.Points[2].FromB),
	}
}

// degenerateContact estimates a contact when every polytope face collapsed,
// which happens for flat or coincident hull pairs. The polytope vertex
// nearest the origin still gives a usable direction and depth; when even
// that is gone the hull centroids decide the normal and the depth falls
// back to a fixed estimate.
func degenerateContact(hullA, hullB []mgl64.Vec3, polytope *Polytope) Contact {
	closest := math.MaxFloat64
	closestPoint := gjk.SupportPoint{}
	for _, vertex := range polytope.vertices {
		if length := vertex.Minkowski.Len(); length < closest {
			closest = length
			closestPoint = vertex
		}
	}

	if len(polytope.vertices) > 0 && closest > minNormalLength {
		return Contact{
			Normal: closestPoint.Minkowski.Mul(1.0 / closest),
			Depth:  closest,
			PointA: closestPoint.FromA,
			PointB: closestPoint.FromB,
		}
	}

	centerA := hull.Centroid(hullA)
	centerB := hull.Centroid(hullB)

	axis := centerB.Sub(centerA)
	if axis.Len() < minNormalLength {
		axis = mgl64.Vec3{0, 1, 0}
	} else {
		axis = axis.Normalize()
	}

	middle := centerA.Add(centerB).Mul(0.5)

	return Contact{
		Normal: axis,
		Depth:  DegeneratePenetrationEstimate,
		PointA: middle,
		PointB: middle,
	}
}
