package quantize

import (
	"errors"

	"github.com/willibrandon/palettize/colorspace"
	"github.com/willibrandon/palettize/internal/pca"
)

// errUnsplittable marks a cluster that cannot produce a candidate split:
// size <= 1, or its principal axis failed to compute.
var errUnsplittable = errors.New("quantize: cluster unsplittable")

// colorCluster is a subset of the dataset named by indices into a shared
// backing colors/weights slice. It owns no data; derived fields (center,
// distortion, axis, the subset itself) are computed on first access and
// memoized.
type colorCluster struct {
	colors  []colorspace.Color // full dataset, shared, never mutated
	weights []float64          // full dataset, shared, may be nil
	indices []int

	ownColorsCache  []colorspace.Color
	ownWeightsCache []float64

	center     *colorspace.Color
	distortion *float64

	axisTried bool
	axisVal   colorspace.Color
	axisErr   error
}

func newColorCluster(colors []colorspace.Color, weights []float64, indices []int) *colorCluster {
	return &colorCluster{colors: colors, weights: weights, indices: indices}
}

// size is the number of pixels belonging to the cluster.
func (c *colorCluster) size() int { return len(c.indices) }

// ownColors returns (and memoizes) the cluster's own color subset.
func (c *colorCluster) ownColors() []colorspace.Color {
	if c.ownColorsCache == nil {
		c.ownColorsCache = make([]colorspace.Color, len(c.indices))
		for i, idx := range c.indices {
			c.ownColorsCache[i] = c.colors[idx]
		}
	}
	return c.ownColorsCache
}

// ownWeights returns (and memoizes) the cluster's own weight subset,
// defaulting every entry to 1 when the dataset carries no weights.
func (c *colorCluster) ownWeights() []float64 {
	if c.ownWeightsCache == nil {
		c.ownWeightsCache = make([]float64, len(c.indices))
		for i, idx := range c.indices {
			c.ownWeightsCache[i] = datasetWeight(c.weights, idx)
		}
	}
	return c.ownWeightsCache
}

func datasetWeight(weights []float64, idx int) float64 {
	if weights == nil {
		return 1
	}
	return weights[idx]
}

// centerColor returns (and memoizes) the cluster's weighted mean color.
func (c *colorCluster) centerColor() colorspace.Color {
	if c.center != nil {
		return *c.center
	}
	colors := c.ownColors()
	weights := c.ownWeights()

	var sum colorspace.Color
	var sumW float64
	for i, col := range colors {
		w := weights[i]
		sum = sum.Add(col.Scale(colorspace.Color{w, w, w}))
		sumW += w
	}
	var result colorspace.Color
	if sumW > 0 {
		inv := 1 / sumW
		result = sum.Scale(colorspace.Color{inv, inv, inv})
	}
	c.center = &result
	return result
}

// clusterDistortion returns (and memoizes) the cluster's weighted
// distortion, sum_i w_i * ||color_i - center||^2.
func (c *colorCluster) clusterDistortion() float64 {
	if c.distortion != nil {
		return *c.distortion
	}
	center := c.centerColor()
	colors := c.ownColors()
	weights := c.ownWeights()

	var total float64
	for i, col := range colors {
		diff := col.Sub(center)
		total += weights[i] * (diff[0]*diff[0] + diff[1]*diff[1] + diff[2]*diff[2])
	}
	c.distortion = &total
	return total
}

// principalAxis returns (and memoizes) the cluster's principal axis via
// weighted PCA. A cluster of size <= 1, or one whose covariance fails to
// decompose, is unsplittable.
func (c *colorCluster) principalAxis() (colorspace.Color, error) {
	if c.axisTried {
		return c.axisVal, c.axisErr
	}
	c.axisTried = true

	if c.size() <= 1 {
		c.axisErr = errUnsplittable
		return colorspace.Color{}, c.axisErr
	}

	result, err := pca.Weighted(c.ownColors(), c.ownWeights())
	if err != nil {
		c.axisErr = err
		return colorspace.Color{}, err
	}
	c.axisVal = result.Axis
	return c.axisVal, nil
}

// clusterPair holds two candidate children produced by speculatively
// splitting a cluster. When the local quantizer adopts a pair, the right
// child replaces the parent and the left child is appended; candidate pairs
// that are never selected are simply dropped.
type clusterPair struct {
	left, right *colorCluster
}
