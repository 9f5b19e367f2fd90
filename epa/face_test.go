package epa

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// Helper functions for testing
func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func isNormalized(v mgl64.Vec3, tolerance float64) bool {
	length := v.Len()
	return math.Abs(length-1.0) < tolerance
}

// TestNormalFromPoints tests the triangle normal computation
func TestNormalFromPoints(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  mgl64.Vec3
		expected mgl64.Vec3
	}{
		{
			name:     "unit_triangle_in_xy_plane",
			a:        mgl64.Vec3{1, 0, 0},
			b:        mgl64.Vec3{0, 0, 0},
			c:        mgl64.Vec3{0, 1, 0},
			expected: mgl64.Vec3{0, 0, 1},
		},
		{
			name:     "reversed_winding_flips_normal",
			a:        mgl64.Vec3{0, 1, 0},
			b:        mgl64.Vec3{0, 0, 0},
			c:        mgl64.Vec3{1, 0, 0},
			expected: mgl64.Vec3{0, 0, -1},
		},
		{
			name:     "colinear_points_collapse_to_zero",
			a:        mgl64.Vec3{0, 0, 0},
			b:        mgl64.Vec3{1, 1, 1},
			c:        mgl64.Vec3{2, 2, 2},
			expected: mgl64.Vec3{0, 0, 0},
		},
		{
			name:     "duplicate_points_collapse_to_zero",
			a:        mgl64.Vec3{1, 2, 3},
			b:        mgl64.Vec3{1, 2, 3},
			c:        mgl64.Vec3{4, 5, 6},
			expected: mgl64.Vec3{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalFromPoints(tt.a, tt.b, tt.c)

			if !vec3ApproxEqual(result, tt.expected, 1e-12) {
				t.Errorf("normalFromPoints(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.c, result, tt.expected)
			}
		})
	}
}

// TestPerpendicular tests the orthogonal fallback vector used when a padded
// segment passes through the origin
func TestPerpendicular(t *testing.T) {
	tests := []struct {
		name  string
		input mgl64.Vec3
	}{
		{name: "x_axis", input: mgl64.Vec3{1, 0, 0}},
		{name: "y_axis", input: mgl64.Vec3{0, 1, 0}},
		{name: "z_axis", input: mgl64.Vec3{0, 0, 1}},
		{name: "negative_diagonal", input: mgl64.Vec3{-1, -2, -3}},
		{name: "tiny_but_valid", input: mgl64.Vec3{0, 0, 0.001}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := perpendicular(tt.input)

			if result.LenSqr() == 0 {
				t.Errorf("perpendicular(%v) returned the zero vector", tt.input)
			}
			if dot := result.Dot(tt.input); dot != 0 {
				t.Errorf("perpendicular(%v) = %v is not orthogonal, dot = %v", tt.input, result, dot)
			}
		})
	}

	t.Run("zero_vector_falls_back_to_up", func(t *testing.T) {
		result := perpendicular(mgl64.Vec3{0, 0, 0})

		if result != (mgl64.Vec3{0, 1, 0}) {
			t.Errorf("perpendicular(zero) = %v, want {0, 1, 0}", result)
		}
	})
}

// TestBarycentric tests barycentric coordinates against the triangle corners
// and interior points
func TestBarycentric(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{1, 0, 0}
	c := mgl64.Vec3{0, 1, 0}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected mgl64.Vec3
	}{
		{name: "corner_a", point: a, expected: mgl64.Vec3{1, 0, 0}},
		{name: "corner_b", point: b, expected: mgl64.Vec3{0, 1, 0}},
		{name: "corner_c", point: c, expected: mgl64.Vec3{0, 0, 1}},
		{name: "edge_midpoint_ab", point: mgl64.Vec3{0.5, 0, 0}, expected: mgl64.Vec3{0.5, 0.5, 0}},
		{name: "centroid", point: mgl64.Vec3{1.0 / 3.0, 1.0 / 3.0, 0}, expected: mgl64.Vec3{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := barycentric(tt.point, a, b, c)

			if !vec3ApproxEqual(weights, tt.expected, 1e-12) {
				t.Errorf("barycentric(%v) = %v, want %v", tt.point, weights, tt.expected)
			}
		})
	}
}

// TestBarycentricCartesianRoundTrip verifies that recombining barycentric
// weights reconstructs the original point for an arbitrary triangle
func TestBarycentricCartesianRoundTrip(t *testing.T) {
	a := mgl64.Vec3{1, 0, -2}
	b := mgl64.Vec3{3, 4, 1}
	c := mgl64.Vec3{-2, 1, 5}

	points := []mgl64.Vec3{
		a,
		b,
		c,
		a.Add(b).Add(c).Mul(1.0 / 3.0),
		a.Mul(0.25).Add(b.Mul(0.25)).Add(c.Mul(0.5)),
	}

	for _, point := range points {
		weights := barycentric(point, a, b, c)
		back := cartesian(weights, a, b, c)

		if !vec3ApproxEqual(back, point, 1e-10) {
			t.Errorf("round trip of %v gave %v (weights %v)", point, back, weights)
		}
	}
}

// TestCartesian tests weight recombination with exact binary fractions
func TestCartesian(t *testing.T) {
	a := mgl64.Vec3{2, 0, 0}
	b := mgl64.Vec3{0, 4, 0}
	c := mgl64.Vec3{0, 0, 8}

	result := cartesian(mgl64.Vec3{0.5, 0.25, 0.25}, a, b, c)
	expected := mgl64.Vec3{1, 1, 2}

	if result != expected {
		t.Errorf("cartesian = %v, want %v", result, expected)
	}
}

// TestAddEdge tests boundary edge bookkeeping, in particular the
// cancellation of an edge by its reverse
func TestAddEdge(t *testing.T) {
	t.Run("distinct edges accumulate", func(t *testing.T) {
		edges := addEdge(nil, 0, 1)
		edges = addEdge(edges, 1, 2)

		if len(edges) != 2 {
			t.Fatalf("expected 2 edges, got %d", len(edges))
		}
		if edges[0] != (Edge{A: 0, B: 1}) || edges[1] != (Edge{A: 1, B: 2}) {
			t.Errorf("unexpected edges %v", edges)
		}
	})

	t.Run("reverse edge cancels", func(t *testing.T) {
		edges := addEdge(nil, 0, 1)
		edges = addEdge(edges, 1, 2)
		edges = addEdge(edges, 1, 0)

		if len(edges) != 1 {
			t.Fatalf("expected 1 edge after cancellation, got %d", len(edges))
		}
		if edges[0] != (Edge{A: 1, B: 2}) {
			t.Errorf("surviving edge = %v, want {1 2}", edges[0])
		}
	})

	t.Run("same direction does not cancel", func(t *testing.T) {
		edges := addEdge(nil, 0, 1)
		edges = addEdge(edges, 0, 1)

		if len(edges) != 2 {
			t.Errorf("expected 2 edges, got %d", len(edges))
		}
	})
}
