package generator

import (
	"math"
	"math/rand/v2"

	"github.com/cbnu/campus-ontology/internal/model"
)

// between returns a uniform int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// pick returns one element of a non-empty pool.
func pick[T any](rng *rand.Rand, pool []T) T {
	return pool[rng.IntN(len(pool))]
}

// sample draws k distinct elements without replacement. k is clamped to the
// pool size.
func sample[T any](rng *rand.Rand, pool []T, k int) []T {
	k = min(k, len(pool))
	if k <= 0 {
		return nil
	}
	perm := rng.Perm(len(pool))
	out := make([]T, k)
	for i := range k {
		out[i] = pool[perm[i]]
	}
	return out
}

// weighted returns an index into weights chosen proportionally.
func weighted(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func keys[T model.Node](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Key()
	}
	return out
}

func personName(rng *rand.Rand) string {
	return pick(rng, lastNames) + " " + pick(rng, firstNames)
}
