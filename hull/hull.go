// Package hull provides convex point-cloud helpers: shape generators for
// common hulls, world-space placement through Pose, and the Body type that
// binds a local hull to a pose.
//
// A hull is a plain []mgl64.Vec3 holding the vertices of a convex shape.
// Interior points are tolerated by the collision routines but add no
// information, so generators only emit the extreme vertices.
package hull

import "github.com/go-gl/mathgl/mgl64"

// Pose places a local-space hull in the world: rotation first, then
// translation.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewPose creates an identity pose.
func NewPose() Pose {
	return Pose{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// Apply transforms every point of a local-space hull into world space and
// returns the result as a fresh slice. The input hull is left untouched.
func (p Pose) Apply(points []mgl64.Vec3) []mgl64.Vec3 {
	world := make([]mgl64.Vec3, len(points))
	for i, point := range points {
		world[i] = p.Rotation.Rotate(point).Add(p.Position)
	}

	return world
}

// Box generates the 8 corners of an axis-aligned box centered on the origin,
// defined by its half-extents (half-width, half-height, half-depth).
func Box(halfExtents mgl64.Vec3) []mgl64.Vec3 {
	return []mgl64.Vec3{
		{-halfExtents.X(), -halfExtents.Y(), -halfExtents.Z()},
		{+halfExtents.X(), -halfExtents.Y(), -halfExtents.Z()},
		{-halfExtents.X(), +halfExtents.Y(), -halfExtents.Z()},
		{+halfExtents.X(), +halfExtents.Y(), -halfExtents.Z()},
		{-halfExtents.X(), -halfExtents.Y(), +halfExtents.Z()},
		{+halfExtents.X(), -halfExtents.Y(), +halfExtents.Z()},
		{-halfExtents.X(), +halfExtents.Y(), +halfExtents.Z()},
		{+halfExtents.X(), +halfExtents.Y(), +halfExtents.Z()},
	}
}

// Tetrahedron generates the 4 vertices of a regular tetrahedron inscribed in
// the cube of the given half-extent, centered on the origin.
func Tetrahedron(halfExtent float64) []mgl64.Vec3 {
	return []mgl64.Vec3{
		{+halfExtent, +halfExtent, +halfExtent},
		{+halfExtent, -halfExtent, -halfExtent},
		{-halfExtent, +halfExtent, -halfExtent},
		{-halfExtent, -halfExtent, +halfExtent},
	}
}

// Centroid returns the arithmetic mean of the hull vertices, or the zero
// vector for an empty hull. For the symmetric generators above this matches
// the geometric center.
func Centroid(points []mgl64.Vec3) mgl64.Vec3 {
	if len(points) == 0 {
		return mgl64.Vec3{}
	}

	sum := mgl64.Vec3{}
	for _, point := range points {
		sum = sum.Add(point)
	}

	return sum.Mul(1.0 / float64(len(points)))
}

// Body binds a local-space hull to a world pose.
type Body struct {
	Points []mgl64.Vec3
	Pose   Pose
}

// Position returns the world position of the body.
func (b *Body) Position() mgl64.Vec3 {
	return b.Pose.Position
}

// World returns the hull vertices in world space.
func (b *Body) World() []mgl64.Vec3 {
	return b.Pose.Apply(b.Points)
}
