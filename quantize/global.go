package quantize

import (
	"errors"
	"fmt"
	"math"

	"github.com/willibrandon/palettize/colorspace"
	"github.com/willibrandon/palettize/internal/pca"
)

// globalQuantize runs the principal-axis dynamic-programming partition:
// a Wu-style DP over cumulative cell distortion finds, for each
// k = 1..min(maxGlobalClusters, targetK), the optimal k-cell partition of
// the bucket axis, stopping as soon as the aggregate directional bias
// against the global axis drops below threshold.
func globalQuantize(colors []colorspace.Color, weights []float64, targetK int) ([]*colorCluster, error) {
	axisResult, err := pca.Weighted(colors, weights)
	if err != nil {
		return nil, fmt.Errorf("global axis: %w", err)
	}
	globalAxis := axisResult.Axis

	bucketMap := bucketSort(colors, globalAxis, bucketCount)
	mc := buildMomentsCache(colors, bucketMap, bucketCount)

	maxK := maxGlobalClusters
	if targetK < maxK {
		maxK = targetK
	}
	if maxK < 1 {
		maxK = 1
	}

	e := make([][]float64, maxK+1)
	l := make([][]int, maxK+1)
	for k := range e {
		e[k] = make([]float64, bucketCount+1)
		l[k] = make([]int, bucketCount+1)
	}

	var chosenBoundaries []int
	for k := 1; k <= maxK; k++ {
		if k == 1 {
			for n := 1; n <= bucketCount; n++ {
				e[1][n] = mc.cellDistortion(0, n)
				l[1][n] = 0
			}
		} else {
			for n := k; n <= bucketCount; n++ {
				best := math.Inf(1)
				bestT := -1
				for t := k - 1; t <= n-1; t++ {
					cost := e[k-1][t] + mc.cellDistortion(t, n)
					if cost < best {
						best = cost
						bestT = t
					}
				}
				e[k][n] = best
				l[k][n] = bestT
			}
		}

		boundaries := reconstructBoundaries(l, k, bucketCount)
		chosenBoundaries = boundaries

		total := e[k][bucketCount]
		if total < distortionEpsilon {
			break
		}

		bias, err := aggregateCellBias(mc, boundaries, globalAxis, total)
		if err != nil {
			return nil, fmt.Errorf("cell bias: %w", err)
		}
		if bias < globalBiasThreshold {
			break
		}
	}

	clusters := buildClustersFromBoundaries(colors, weights, bucketMap, chosenBoundaries)
	if len(clusters) == 0 {
		return nil, errors.New("global quantizer produced no clusters")
	}
	return clusters, nil
}

// reconstructBoundaries backtracks through l to recover the k-cell
// partition's bucket boundaries q_0=0 < q_1 < ... < q_k=bucketCount.
func reconstructBoundaries(l [][]int, k, bucketCount int) []int {
	boundaries := make([]int, k+1)
	cur := bucketCount
	for i := k; i >= 1; i-- {
		boundaries[i] = cur
		cur = l[i][cur]
	}
	boundaries[0] = cur
	return boundaries
}

// aggregateCellBias computes the early-termination bias statistic: the
// distortion-weighted sum of directional bias over cells that are
// themselves strongly biased toward axis.
func aggregateCellBias(mc *momentsCache, boundaries []int, axis colorspace.Color, total float64) (float64, error) {
	var sum float64
	for i := 0; i < len(boundaries)-1; i++ {
		a, b := boundaries[i], boundaries[i+1]
		bias, err := mc.cellBias(a, b, axis)
		if err != nil {
			return 0, err
		}
		if bias >= cellBiasThreshold {
			dist := mc.cellDistortion(a, b)
			sum += (dist / total) * bias
		}
	}
	return sum, nil
}

// buildClustersFromBoundaries gathers, for each cell, the indices of every
// pixel whose bucket falls inside it.
func buildClustersFromBoundaries(colors []colorspace.Color, weights []float64, bucketMap []int, boundaries []int) []*colorCluster {
	k := len(boundaries) - 1
	clusters := make([]*colorCluster, 0, k)
	for i := 0; i < k; i++ {
		lo, hi := boundaries[i], boundaries[i+1]
		var idxs []int
		for j, b := range bucketMap {
			if b >= lo && b < hi {
				idxs = append(idxs, j)
			}
		}
		if len(idxs) == 0 {
			continue
		}
		clusters = append(clusters, newColorCluster(colors, weights, idxs))
	}
	return clusters
}
