package quantize

import (
	"math"

	"github.com/willibrandon/palettize/colorspace"
	"github.com/willibrandon/palettize/internal/pca"
)

// momentsEpsilon guards the divisions in cellBias against a near-zero norm.
const momentsEpsilon = 1e-12

// momentsCache holds cumulative zeroth/first/second moments over B buckets,
// giving O(1) queries of any contiguous cell's count, sum, sum-of-squares,
// and covariance. Index 0 of every array is all zero; slot j
// corresponds to bucket j-1. The cache is always built with implicit
// weight 1 per color, regardless of any per-pixel weights the caller
// supplied elsewhere in the pipeline — see the "GQ cache stays unweighted"
// design note.
type momentsCache struct {
	bucketCount int
	w0          []float64
	w1          [3][]float64
	w2          []float64
	wrs         [3][3][]float64
}

// buildMomentsCache accumulates moments over colors bucketed by buckets
// (as produced by bucketSort) and makes every array cumulative.
func buildMomentsCache(colors []colorspace.Color, buckets []int, bucketCount int) *momentsCache {
	mc := &momentsCache{
		bucketCount: bucketCount,
		w0:          make([]float64, bucketCount+1),
		w2:          make([]float64, bucketCount+1),
	}
	for c := 0; c < 3; c++ {
		mc.w1[c] = make([]float64, bucketCount+1)
		for s := 0; s < 3; s++ {
			mc.wrs[c][s] = make([]float64, bucketCount+1)
		}
	}

	for i, color := range colors {
		slot := buckets[i] + 1
		mc.w0[slot]++
		for c := 0; c < 3; c++ {
			mc.w1[c][slot] += color[c]
		}
		mc.w2[slot] += color[0]*color[0] + color[1]*color[1] + color[2]*color[2]
		for r := 0; r < 3; r++ {
			for s := r; s < 3; s++ {
				mc.wrs[r][s][slot] += color[r] * color[s]
			}
		}
	}

	for slot := 1; slot <= bucketCount; slot++ {
		mc.w0[slot] += mc.w0[slot-1]
		mc.w2[slot] += mc.w2[slot-1]
		for c := 0; c < 3; c++ {
			mc.w1[c][slot] += mc.w1[c][slot-1]
		}
		for r := 0; r < 3; r++ {
			for s := r; s < 3; s++ {
				mc.wrs[r][s][slot] += mc.wrs[r][s][slot-1]
			}
		}
	}
	// Mirror the upper triangle so cellCovariance can read either side.
	for r := 0; r < 3; r++ {
		for s := r + 1; s < 3; s++ {
			mc.wrs[s][r] = mc.wrs[r][s]
		}
	}

	return mc
}

// cellCount returns w0[b] - w0[a] for cell (a, b].
func (mc *momentsCache) cellCount(a, b int) float64 {
	return mc.w0[b] - mc.w0[a]
}

// cellSum returns, per channel, w1[b] - w1[a] for cell (a, b].
func (mc *momentsCache) cellSum(a, b int) colorspace.Color {
	return colorspace.Color{
		mc.w1[0][b] - mc.w1[0][a],
		mc.w1[1][b] - mc.w1[1][a],
		mc.w1[2][b] - mc.w1[2][a],
	}
}

// cellDistortion returns the sum of squared deviations from the mean over
// cell (a, b] in O(1). Returns 0 for an empty cell.
func (mc *momentsCache) cellDistortion(a, b int) float64 {
	dw0 := mc.cellCount(a, b)
	if dw0 == 0 {
		return 0
	}
	sum := mc.cellSum(a, b)
	sumSq := mc.w2[b] - mc.w2[a]
	return sumSq - (sum[0]*sum[0]+sum[1]*sum[1]+sum[2]*sum[2])/dw0
}

// cellCovariance returns the 3x3 covariance matrix over cell (a, b] in
// O(1). Returns the zero matrix for an empty cell.
func (mc *momentsCache) cellCovariance(a, b int) [3][3]float64 {
	var cov [3][3]float64
	dw0 := mc.cellCount(a, b)
	if dw0 == 0 {
		return cov
	}
	sum := mc.cellSum(a, b)
	for r := 0; r < 3; r++ {
		for s := 0; s < 3; s++ {
			raw := mc.wrs[r][s][b] - mc.wrs[r][s][a]
			cov[r][s] = raw/dw0 - (sum[r]*sum[s])/(dw0*dw0)
		}
	}
	return cov
}

// cellPCA solves the cell's covariance for its principal axis.
func (mc *momentsCache) cellPCA(a, b int) (colorspace.Color, error) {
	cov := mc.cellCovariance(a, b)
	return pca.AxisFromCovariance(cov)
}

// cellBias returns the cell's directional bias against axis: how
// aligned the cell's own principal axis is with axis, in [0, 1].
func (mc *momentsCache) cellBias(a, b int, axis colorspace.Color) (float64, error) {
	v, err := mc.cellPCA(a, b)
	if err != nil {
		return 0, err
	}
	normAxis := norm(axis)
	normV := norm(v)
	if normAxis*normV < momentsEpsilon {
		return 0, nil
	}
	cos := math.Abs(dot(v, axis)) / (normAxis * normV)
	if cos > 1 {
		cos = 1
	}
	return cos, nil
}

func norm(c colorspace.Color) float64 {
	return math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
}
