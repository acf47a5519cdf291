package quantize

import (
	"math"

	"github.com/willibrandon/palettize/colorspace"
)

// splitCluster computes a candidate split of c along its principal axis:
// bucket-sort the cluster's own colors, find the boundary that maximizes
// one-dimensional between-groups sum of squares, and partition
// the cluster's indices accordingly. Returns errUnsplittable if c cannot be
// split (size <= 1, PCA failure, or a degenerate bucket layout that leaves
// one side empty).
func splitCluster(c *colorCluster) (*clusterPair, error) {
	axis, err := c.principalAxis()
	if err != nil {
		return nil, err
	}

	colors := c.ownColors()
	weights := c.ownWeights()
	buckets := bucketSort(colors, axis, bucketCount)

	splitIndex, ok := bestSplitIndex(colors, weights, buckets)
	if !ok {
		return nil, errUnsplittable
	}

	var leftIdx, rightIdx []int
	for i, idx := range c.indices {
		if buckets[i] <= splitIndex {
			leftIdx = append(leftIdx, idx)
		} else {
			rightIdx = append(rightIdx, idx)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return nil, errUnsplittable
	}

	return &clusterPair{
		left:  newColorCluster(c.colors, c.weights, leftIdx),
		right: newColorCluster(c.colors, c.weights, rightIdx),
	}, nil
}

// bestSplitIndex finds the bucket boundary maximizing the weighted
// between-groups sum of squares. ok is false when no boundary leaves both
// sides non-empty.
func bestSplitIndex(colors []colorspace.Color, weights []float64, buckets []int) (index int, ok bool) {
	var bucketSums [3][]float64
	bucketWeight := make([]float64, bucketCount)
	for j := 0; j < 3; j++ {
		bucketSums[j] = make([]float64, bucketCount)
	}
	for i, col := range colors {
		b := buckets[i]
		w := weights[i]
		bucketWeight[b] += w
		for j := 0; j < 3; j++ {
			bucketSums[j][b] += w * col[j]
		}
	}
	for b := 1; b < bucketCount; b++ {
		bucketWeight[b] += bucketWeight[b-1]
		for j := 0; j < 3; j++ {
			bucketSums[j][b] += bucketSums[j][b-1]
		}
	}

	totalWeight := bucketWeight[bucketCount-1]
	var totalSum [3]float64
	for j := 0; j < 3; j++ {
		totalSum[j] = bucketSums[j][bucketCount-1]
	}

	best := -1
	bestF := math.Inf(-1)
	for i := 0; i < bucketCount-1; i++ {
		cLeft := bucketWeight[i]
		cRight := totalWeight - cLeft
		if cLeft <= 0 || cRight <= 0 {
			continue
		}
		var f float64
		for j := 0; j < 3; j++ {
			sLeft := bucketSums[j][i]
			sRight := totalSum[j] - sLeft
			f += sLeft*sLeft/cLeft + sRight*sRight/cRight
		}
		if f > bestF {
			bestF = f
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// splitBenefit is the distortion the parent would give up by adopting
// pair's children: 0 when no candidate pair exists.
func splitBenefit(parent *colorCluster, pair *clusterPair) float64 {
	if pair == nil {
		return 0
	}
	return parent.clusterDistortion() - pair.left.clusterDistortion() - pair.right.clusterDistortion()
}
