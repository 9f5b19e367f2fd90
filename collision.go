package quill

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Object identifies one participant of a collision query. The narrow phase
// only needs a world position, used to orient the reported normal; callers
// typically implement it on their own body or entity type.
type Object interface {
	Position() mgl64.Vec3
}

// Collision describes one intersecting pair.
//
// UnitNormal points from the second object toward the first whenever the two
// positions distinguish a direction. IntersectionVector is the contact normal
// scaled by the penetration depth: translating the second hull by it (or the
// first by its negation) separates the pair.
type Collision struct {
	First  Object
	Second Object

	UnitNormal         mgl64.Vec3
	FirstPOC           mgl64.Vec3
	SecondPOC          mgl64.Vec3
	IntersectionVector mgl64.Vec3
}

// CompareLess orders two collisions by penetration depth, shallowest first.
// Squared lengths order the same as lengths and skip the square root.
func CompareLess(a, b Collision) bool {
	return a.IntersectionVector.LenSqr() < b.IntersectionVector.LenSqr()
}

// SortCollisions sorts collisions in place by ascending penetration depth.
func SortCollisions(collisions []Collision) {
	sort.Slice(collisions, func(i, j int) bool {
		return CompareLess(collisions[i], collisions[j])
	})
}
