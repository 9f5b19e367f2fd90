package epa

import (
	"math"
	"sync"

	"github.com/akmonengine/quill/gjk"
)

// Polytope is the expanding approximation of the Minkowski difference
// boundary. Vertices are support points carrying their per-hull witnesses;
// triangles reference vertices by index so that expansion never copies
// vertex data.
type Polytope struct {
	vertices  []gjk.SupportPoint
	triangles [][3]int

	// Reused across Extend calls to avoid per-iteration allocations.
	nextTriangles [][3]int
	edges         []Edge
}

// PolytopePool recycles Polytope instances across collision queries.
// Callers own the instance between Get and Put; Triangulate clears any
// state left by a previous use.
var PolytopePool = sync.Pool{
	New: func() interface{} {
		return &Polytope{
			vertices:      make([]gjk.SupportPoint, 0, polytopeInitialCapacity),
			triangles:     make([][3]int, 0, polytopeInitialCapacity),
			nextTriangles: make([][3]int, 0, polytopeInitialCapacity),
			edges:         make([]Edge, 0, polytopeInitialCapacity),
		}
	},
}

// Reset clears all buffers, keeping their capacity for reuse.
func (p *Polytope) Reset() {
	p.vertices = p.vertices[:0]
	p.triangles = p.triangles[:0]
	p.nextTriangles = p.nextTriangles[:0]
	p.edges = p.edges[:0]
}

// Triangulate builds the initial tetrahedron from a terminal GJK simplex.
//
// A 4-point simplex is used as is. Smaller simplexes are padded with
// synthesized vertices first:
//   - 2 points: one vertex off the segment axis, one vertex just past the
//     origin, so the segment becomes a tetrahedron enclosing the origin
//     region
//   - 3 points: one vertex just past the origin on the far side of the
//     triangle
//
// Synthesized vertices carry zero hull witnesses: they contribute nothing
// to the interpolated contact points.
//
// The four faces are emitted with one of two fixed windings, chosen so that
// every face normal points outward.
//
// Returns ErrTooFewVertices for simplexes below 2 points and
// ErrTooManyVertices above 4.
func (p *Polytope) Triangulate(simplex *gjk.Simplex) error {
	if simplex.Count < 2 {
		return ErrTooFewVertices
	}
	if simplex.Count > 4 {
		return ErrTooManyVertices
	}

	p.Reset()
	p.vertices = append(p.vertices, simplex.Points[:simplex.Count]...)

	if len(p.vertices) == 2 {
		a := p.vertices[0].Minkowski
		b := p.vertices[1].Minkowski
		ba := a.Sub(b)
		bo := b.Mul(-1)

		offAxis := ba.Cross(bo)
		if offAxis.LenSqr() < degenerateNormalSqr {
			// Origin on the segment axis: any perpendicular works.
			offAxis = perpendicular(ba)
		}

		p.vertices = append(p.vertices,
			gjk.SupportPoint{Minkowski: a.Add(offAxis.Normalize().Mul(paddingOffset))},
			gjk.SupportPoint{Minkowski: b.Add(bo.Mul(pastOriginFactor))},
		)
	} else if len(p.vertices) == 3 {
		b := p.vertices[1].Minkowski
		bo := b.Mul(-1)

		p.vertices = append(p.vertices, gjk.SupportPoint{Minkowski: b.Add(bo.Mul(pastOriginFactor))})
	}

	// Both windings describe the same tetrahedron; keep the one whose
	// normals face away from the opposite vertex.
	if p.correctOrder(0, 1, 2, 3) {
		p.triangles = append(p.triangles,
			[3]int{0, 1, 2},
			[3]int{0, 3, 1},
			[3]int{0, 2, 3},
			[3]int{1, 3, 2},
		)
	} else {
		p.triangles = append(p.triangles,
			[3]int{0, 2, 1},
			[3]int{0, 1, 3},
			[3]int{0, 3, 2},
			[3]int{1, 2, 3},
		)
	}

	return nil
}

// correctOrder reports whether the triangle (a, b, c) faces away from the
// opposite tetrahedron vertex.
func (p *Polytope) correctOrder(a, b, c, opposite int) bool {
	normal := normalFromPoints(p.vertices[a].Minkowski, p.vertices[b].Minkowski, p.vertices[c].Minkowski)
	height := p.vertices[opposite].Minkowski.Sub(p.vertices[a].Minkowski)

	return oppositeDirection(normal, height)
}

// ClosestFace scans every triangle and returns the face whose plane lies
// closest to the origin, with its normal unit-length. Triangles whose area
// collapsed below the degeneracy threshold are skipped; if none remain,
// ErrDegenerateContact is returned.
//
// Ties keep the first triangle in list order, which makes the scan
// deterministic for symmetric polytopes.
func (p *Polytope) ClosestFace() (Face, error) {
	closest := Face{Distance: math.MaxFloat64}
	found := false

	for _, triangle := range p.triangles {
		a := p.vertices[triangle[0]]
		b := p.vertices[triangle[1]]
		c := p.vertices[triangle[2]]

		normal := normalFromPoints(a.Minkowski, b.Minkowski, c.Minkowski)
		if normal.LenSqr() < degenerateNormalSqr {
			continue
		}

		// Plane equation n.x + d = 0 through a; the origin sits at
		// distance |d| / |n|.
		d := -normal.Dot(a.Minkowski)
		distance := math.Abs(d) / normal.Len()

		if distance < closest.Distance {
			closest = Face{
				Points:   [3]gjk.SupportPoint{a, b, c},
				Normal:   normal.Normalize(),
				Distance: distance,
			}
			found = true
		}
	}

	if !found {
		return Face{}, ErrDegenerateContact
	}

	return closest, nil
}

// Extend grows the polytope toward a new support point:
//  1. Reject the point if an identical vertex already exists; the boundary
//     cannot move further in that direction.
//  2. Remove every triangle that faces the new point, collecting its edges.
//     An edge shared by two removed triangles is interior to the hole and
//     cancels out; the surviving edges form the hole boundary.
//  3. Fan new triangles from the new vertex to each boundary edge.
//
// Reports whether the polytope grew.
func (p *Polytope) Extend(point gjk.SupportPoint) bool {
	for _, vertex := range p.vertices {
		if vertex.Equal(point) {
			return false
		}
	}

	index := len(p.vertices)
	p.vertices = append(p.vertices, point)

	p.nextTriangles = p.nextTriangles[:0]
	p.edges = p.edges[:0]

	for _, triangle := range p.triangles {
		a := p.vertices[triangle[0]].Minkowski
		normal := normalFromPoints(a, p.vertices[triangle[1]].Minkowski, p.vertices[triangle[2]].Minkowski)

		if sameDirection(normal, point.Minkowski.Sub(a)) {
			p.edges = addEdge(p.edges, triangle[0], triangle[1])
			p.edges = addEdge(p.edges, triangle[1], triangle[2])
			p.edges = addEdge(p.edges, triangle[2], triangle[0])
		} else {
			p.nextTriangles = append(p.nextTriangles, triangle)
		}
	}

	for _, edge := range p.edges {
		p.nextTriangles = append(p.nextTriangles, [3]int{index, edge.A, edge.B})
	}

	p.triangles, p.nextTriangles = p.nextTriangles, p.triangles

	return true
}

// addEdge records a directed edge, unless its reverse is already recorded:
// the pair then belonged to two adjacent removed triangles and both
// disappear, since that edge is interior to the hole.
func addEdge(edges []Edge, a, b int) []Edge {
	for i, edge := range edges {
		if edge.A == b && edge.B == a {
			return append(edges[:i], edges[i+1:]...)
		}
	}

	return append(edges, Edge{A: a, B: b})
}
