package quill

import (
	"errors"
	"fmt"

	"github.com/akmonengine/quill/epa"
	"github.com/akmonengine/quill/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrEmptyHull reports a query over a hull with no vertices.
var ErrEmptyHull = errors.New("quill: empty hull")

// coincidentSqr is the squared distance under which two object positions no
// longer distinguish a direction between their centers.
const coincidentSqr = 1e-16

// Intersect runs the full narrow phase for one pair of world-space hulls:
// GJK decides whether they intersect, EPA recovers the contact data.
//
// collision.First and collision.Second may be pre-filled by the caller; the
// geometric fields are only written on intersection. Returns:
//
//   - (false, nil) when the hulls are separated
//   - (true, nil) on a clean contact
//   - (true, err) when EPA degraded (errors.Is epa.ErrNotConverged or
//     epa.ErrDegenerateContact) and collision holds its best estimate
//   - (false, err) when the query could not run at all
func Intersect(hullA, hullB []mgl64.Vec3, collision *Collision) (bool, error) {
	if len(hullA) == 0 || len(hullB) == 0 {
		return false, fmt.Errorf("%w: %d and %d vertices", ErrEmptyHull, len(hullA), len(hullB))
	}

	simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
	defer gjk.SimplexPool.Put(simplex)
	simplex.Reset()

	hit, err := gjk.GJK(hullA, hullB, simplex)
	if err != nil {
		return false, fmt.Errorf("gjk query: %w", err)
	}
	if !hit {
		return false, nil
	}

	contact, err := epa.EPA(hullA, hullB, simplex)
	if err != nil && !recoverable(err) {
		return false, fmt.Errorf("epa query: %w", err)
	}

	collision.UnitNormal = unitNormal(collision.First, collision.Second, contact.Normal)
	collision.FirstPOC = contact.PointA
	collision.SecondPOC = contact.PointB
	collision.IntersectionVector = contact.Normal.Mul(contact.Depth)

	return true, err
}

// recoverable reports whether an EPA failure still produced a usable contact
// estimate.
func recoverable(err error) bool {
	return errors.Is(err, epa.ErrNotConverged) || errors.Is(err, epa.ErrDegenerateContact)
}

// unitNormal prefers the direction between the two object centers; a missing
// or coincident pair falls back to the contact face normal.
func unitNormal(first, second Object, faceNormal mgl64.Vec3) mgl64.Vec3 {
	if first == nil || second == nil {
		return faceNormal
	}

	axis := first.Position().Sub(second.Position())
	if axis.LenSqr() < coincidentSqr {
		return faceNormal
	}

	return axis.Normalize()
}
