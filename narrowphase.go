package quill

import (
	"sync"

	"github.com/akmonengine/quill/epa"
	"github.com/akmonengine/quill/gjk"
	"github.com/go-gl/mathgl/mgl64"
)

const DEFAULT_WORKERS = 1

// Pair is one candidate couple for the narrow phase. The hulls are
// world-space vertices; First and Second are optional identities carried
// through to the resulting Collision.
type Pair struct {
	First      Object
	Second     Object
	FirstHull  []mgl64.Vec3
	SecondHull []mgl64.Vec3
}

// candidate is a pair whose GJK stage proved an intersection, together with
// the terminal simplex the EPA stage expands.
type candidate struct {
	pair    Pair
	simplex *gjk.Simplex
}

// Detector runs narrow-phase queries over batches of candidate pairs, with a
// fixed pool of workers per stage.
type Detector struct {
	Workers int
}

// Detect runs GJK then EPA over all pairs and returns the confirmed
// collisions sorted by ascending penetration depth.
//
// Pairs whose contact data degraded (non-convergence, degenerate polytope)
// keep their best-estimate collision; pairs that cannot be queried at all
// (a hull without vertices) are dropped.
func (d *Detector) Detect(pairs []Pair) []Collision {
	workersCount := max(DEFAULT_WORKERS, d.Workers)

	pairChan := make(chan Pair, workersCount)
	go func() {
		defer close(pairChan)

		for _, pair := range pairs {
			pairChan <- pair
		}
	}()

	collisions := make([]Collision, 0, len(pairs))
	for collision := range d.epaPass(d.gjkPass(pairChan, workersCount), workersCount) {
		collisions = append(collisions, collision)
	}

	SortCollisions(collisions)

	return collisions
}

// gjkPass fans the pairs over workers running the GJK stage. Hits keep their
// pooled simplex for the EPA stage; misses return it immediately.
func (d *Detector) gjkPass(pairs <-chan Pair, workersCount int) <-chan candidate {
	candidates := make(chan candidate, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(candidates)

		for i := 0; i < workersCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for pair := range pairs {
					if len(pair.FirstHull) == 0 || len(pair.SecondHull) == 0 {
						continue
					}

					simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
					simplex.Reset()

					hit, err := gjk.GJK(pair.FirstHull, pair.SecondHull, simplex)
					if hit && err == nil {
						candidates <- candidate{pair: pair, simplex: simplex}
					} else {
						gjk.SimplexPool.Put(simplex)
					}
				}
			}()
		}

		wg.Wait()
	}()

	return candidates
}

// epaPass fans the candidates over workers running the EPA stage and builds
// the final collisions.
func (d *Detector) epaPass(candidates <-chan candidate, workersCount int) <-chan Collision {
	collisions := make(chan Collision, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(collisions)

		for i := 0; i < workersCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for c := range candidates {
					contact, err := epa.EPA(c.pair.FirstHull, c.pair.SecondHull, c.simplex)
					gjk.SimplexPool.Put(c.simplex)
					if err != nil && !recoverable(err) {
						continue
					}

					collisions <- Collision{
						First:              c.pair.First,
						Second:             c.pair.Second,
						UnitNormal:         unitNormal(c.pair.First, c.pair.Second, contact.Normal),
						FirstPOC:           contact.PointA,
						SecondPOC:          contact.PointB,
						IntersectionVector: contact.Normal.Mul(contact.Depth),
					}
				}
			}()
		}

		wg.Wait()
	}()

	return collisions
}
