package overlapd

import (
	"sync/atomic"

	"github.com/unixpickle/essentials"
)

// A ShapePair couples two shapes for a batch query.
type ShapePair struct {
	A Shape
	B Shape
}

// PairwiseIntersections answers Intersects for every pair, fanning
// the checks across Goroutines. Lazily cached fields are forced up
// front so the same shape can appear in many pairs.
//
// The concurrency argument caps the number of Goroutines; 0 means
// GOMAXPROCS.
func PairwiseIntersections(pairs []ShapePair, eps float64, concurrency int) []bool {
	warmPairs(pairs)
	res := make([]bool, len(pairs))
	essentials.ConcurrentMap(concurrency, len(pairs), func(i int) {
		res[i] = Intersects(pairs[i].A, pairs[i].B, eps)
	})
	return res
}

// PairwiseDistances answers Distance for every pair, fanning the
// computations across Goroutines.
//
// The concurrency argument caps the number of Goroutines; 0 means
// GOMAXPROCS.
func PairwiseDistances(pairs []ShapePair, eps float64, concurrency int) []float64 {
	warmPairs(pairs)
	res := make([]float64, len(pairs))
	essentials.ConcurrentMap(concurrency, len(pairs), func(i int) {
		res[i] = Distance(pairs[i].A, pairs[i].B, eps)
	})
	return res
}

// AnyIntersects reports whether any pair intersects. Once one hit is
// found the remaining checks are skipped.
func AnyIntersects(pairs []ShapePair, eps float64, concurrency int) bool {
	warmPairs(pairs)
	var found atomic.Bool
	essentials.ConcurrentMap(concurrency, len(pairs), func(i int) {
		if found.Load() {
			return
		}
		if Intersects(pairs[i].A, pairs[i].B, eps) {
			found.Store(true)
		}
	})
	return found.Load()
}

// warmPairs forces lazy fields before the shapes are read from many
// Goroutines at once.
func warmPairs(pairs []ShapePair) {
	seen := map[Shape]bool{}
	for _, p := range pairs {
		for _, s := range []Shape{p.A, p.B} {
			if !seen[s] {
				seen[s] = true
				s.Warm()
			}
		}
	}
}
