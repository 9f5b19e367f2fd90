package main

import (
	"fmt"

	"github.com/akmonengine/quill"
	"github.com/akmonengine/quill/hull"
	"github.com/go-gl/mathgl/mgl64"
)

func newCube(position mgl64.Vec3, halfExtent float64) *hull.Body {
	return &hull.Body{
		Points: hull.Box(mgl64.Vec3{halfExtent, halfExtent, halfExtent}),
		Pose:   hull.Pose{Position: position, Rotation: mgl64.QuatIdent()},
	}
}

func main() {
	// Single pair query.
	first := newCube(mgl64.Vec3{0, 0, 0}, 0.5)
	second := newCube(mgl64.Vec3{0.5, 0.25, 0}, 0.5)

	collision := quill.Collision{First: first, Second: second}
	hit, err := quill.Intersect(first.World(), second.World(), &collision)
	if err != nil {
		fmt.Printf("contact degraded: %v\n", err)
	}

	fmt.Printf("single pair: hit=%v\n", hit)
	if hit {
		fmt.Printf("  unit normal:         %v\n", collision.UnitNormal)
		fmt.Printf("  intersection vector: %v\n", collision.IntersectionVector)
		fmt.Printf("  point on first:      %v\n", collision.FirstPOC)
		fmt.Printf("  point on second:     %v\n", collision.SecondPOC)
	}

	// Batch query over a loose stack of cubes and one remote cube.
	bodies := []*hull.Body{
		newCube(mgl64.Vec3{0, 0, 0}, 0.5),
		newCube(mgl64.Vec3{0, 0.9, 0}, 0.5),
		newCube(mgl64.Vec3{0, 1.8, 0}, 0.5),
		newCube(mgl64.Vec3{4, 0, 0}, 0.5),
	}

	var pairs []quill.Pair
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			pairs = append(pairs, quill.Pair{
				First:      bodies[i],
				Second:     bodies[j],
				FirstHull:  bodies[i].World(),
				SecondHull: bodies[j].World(),
			})
		}
	}

	detector := quill.Detector{Workers: 4}
	collisions := detector.Detect(pairs)

	fmt.Printf("batch: %d collisions out of %d candidate pairs\n", len(collisions), len(pairs))
	for i, c := range collisions {
		fmt.Printf("  %d: depth=%.4f normal=%v first=%v second=%v\n",
			i, c.IntersectionVector.Len(), c.UnitNormal, c.First.Position(), c.Second.Position())
	}
}
