package gjk

import (
	"errors"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrSimplexFull reports an Add on a simplex that already holds four points.
	ErrSimplexFull = errors.New("gjk: simplex already holds four points")
	// ErrPointAbsent reports a Remove for a point the simplex does not contain.
	ErrPointAbsent = errors.New("gjk: point not present in simplex")
)

// SupportPoint pairs a point of the Minkowski difference A - B with the two
// hull vertices that produced it. The witness vertices ride along through the
// whole pipeline so that EPA can reconstruct one contact point per hull.
type SupportPoint struct {
	Minkowski mgl64.Vec3
	FromA     mgl64.Vec3
	FromB     mgl64.Vec3
}

// Equal reports whether two support points coincide on the Minkowski
// difference. Witness vertices are ignored: support points are copied values,
// never recomputed, so exact comparison is sufficient.
func (p SupportPoint) Equal(q SupportPoint) bool {
	return p.Minkowski == q.Minkowski
}

// Simplex is an ordered set of 0-4 support points in Minkowski difference
// space. Insertion order is significant: the reduction routines treat the
// last added point as the newest and cut Voronoi regions relative to it.
// Size progression during GJK: 1 point → 2 (line) → 3 (triangle) → 4 (tetrahedron).
type Simplex struct {
	Points [4]SupportPoint
	Count  int
}

func (s *Simplex) Reset() {
	s.Count = 0
}

// Add appends a support point, keeping insertion order.
func (s *Simplex) Add(point SupportPoint) error {
	if s.Count >= len(s.Points) {
		return ErrSimplexFull
	}
	s.Points[s.Count] = point
	s.Count++
	return nil
}

// Remove deletes the first point whose Minkowski coordinate matches,
// shifting the remainder down so insertion order is preserved. Removing an
// absent point signals a logic error in the caller and returns ErrPointAbsent.
func (s *Simplex) Remove(point SupportPoint) error {
	for i := 0; i < s.Count; i++ {
		if s.Points[i].Equal(point) {
			copy(s.Points[i:s.Count-1], s.Points[i+1:s.Count])
			s.Count--
			return nil
		}
	}
	return ErrPointAbsent
}

var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex{}
	},
}
