// Package kmeans implements weighted k-means refinement: a single call
// runs standard weighted Lloyd iterations, seeded from the caller's
// cluster centers rather than randomly, over at most a fixed number of
// sampled points.
//
// The structure generalizes a typical palette-refinement k-means helper
// to take explicit per-sample weights and a deterministic seed instead of
// rand.Perm over uniform-weight pixels.
package kmeans

import (
	"math/rand"

	"github.com/willibrandon/palettize/colorspace"
)

// seed is the fixed RNG seed the refinement contract requires so repeated
// runs over the same input produce the same sample and therefore the same
// refined palette.
const seed = 1234

// minSampleFloor is the hard minimum sample budget (256x256 points),
// regardless of the caller's requested maxSamples.
const minSampleFloor = 256 * 256

// Refine runs niter weighted Lloyd iterations seeded from seeds, sampling
// at most maxSamples points (floored at minSampleFloor) from colors. It
// returns one refined color per seed, in the same order as seeds.
//
// If niter <= 0, Refine returns a copy of seeds unchanged — refinement is
// the caller's decision to skip, not this package's.
func Refine(colors []colorspace.Color, weights []float64, seeds []colorspace.Color, niter, maxSamples int) []colorspace.Color {
	centers := make([]colorspace.Color, len(seeds))
	copy(centers, seeds)

	if niter <= 0 || len(colors) == 0 || len(centers) == 0 {
		return centers
	}

	budget := maxSamples
	if budget < minSampleFloor {
		budget = minSampleFloor
	}
	perCenter := budget / len(centers)
	if perCenter < 1 {
		perCenter = 1
	}
	sampleCap := perCenter * len(centers)

	sampleIdx, sampleW := sample(colors, weights, sampleCap)

	assignments := make([]int, len(sampleIdx))
	for iter := 0; iter < niter; iter++ {
		for i, ci := range sampleIdx {
			assignments[i] = nearestCenter(colors[ci], centers)
		}

		sums := make([]colorspace.Color, len(centers))
		weightTotals := make([]float64, len(centers))
		for i, ci := range sampleIdx {
			c := assignments[i]
			w := sampleW[i]
			sums[c] = sums[c].Add(colors[ci].Scale(colorspace.Color{w, w, w}))
			weightTotals[c] += w
		}

		for c := range centers {
			if weightTotals[c] > 0 {
				inv := 1 / weightTotals[c]
				centers[c] = sums[c].Scale(colorspace.Color{inv, inv, inv})
			}
			// Centers with no assigned samples this iteration keep their
			// previous position rather than collapsing to the origin.
		}
	}

	return centers
}

// sample picks up to cap indices into colors (with their matching
// weights, defaulting to 1 when weights is nil), deterministically
// shuffled by the fixed seed so repeated calls over the same colors slice
// pick the same subset.
func sample(colors []colorspace.Color, weights []float64, cap int) ([]int, []float64) {
	n := len(colors)
	if cap >= n {
		idx := make([]int, n)
		w := make([]float64, n)
		for i := range idx {
			idx[i] = i
			w[i] = sampleWeight(weights, i)
		}
		return idx, w
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)[:cap]

	idx := make([]int, cap)
	w := make([]float64, cap)
	for i, p := range perm {
		idx[i] = p
		w[i] = sampleWeight(weights, p)
	}
	return idx, w
}

func sampleWeight(weights []float64, i int) float64 {
	if weights == nil {
		return 1
	}
	return weights[i]
}

func nearestCenter(c colorspace.Color, centers []colorspace.Color) int {
	best := 0
	bestDist := sqDist(c, centers[0])
	for i := 1; i < len(centers); i++ {
		d := sqDist(c, centers[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func sqDist(a, b colorspace.Color) float64 {
	diff := a.Sub(b)
	return diff[0]*diff[0] + diff[1]*diff[1] + diff[2]*diff[2]
}
