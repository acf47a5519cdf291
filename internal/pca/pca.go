// Package pca implements weighted principal component analysis and the
// symmetric 3x3 eigendecomposition it depends on, both treated as external
// collaborators by the quantization pipeline. The eigensolver wraps
// gonum.org/v1/gonum/mat's LAPACK-style dsyev implementation so callers
// never see gonum's own calling convention.
package pca

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/willibrandon/palettize/colorspace"
)

// ErrEigenFailed is returned when the underlying symmetric eigensolver
// fails to converge. Per the eigensolver contract, the caller should treat
// this as "cannot analyze this cluster" rather than retry.
var ErrEigenFailed = errors.New("pca: symmetric eigendecomposition failed to converge")

// Result holds a completed weighted-PCA analysis.
type Result struct {
	// Axis is the principal axis: the eigenvector of the largest eigenvalue.
	Axis colorspace.Color
	// ExplainedVariance is the fraction of total variance along Axis.
	ExplainedVariance float64
}

// Weighted runs weighted PCA over colors. weights may be nil, in
// which case every sample is weighted 1. Returns ErrEigenFailed if the
// covariance matrix's eigendecomposition does not converge.
func Weighted(colors []colorspace.Color, weights []float64) (Result, error) {
	if len(colors) == 0 {
		return Result{}, errors.New("pca: no samples")
	}

	mean, sumW := weightedMean(colors, weights)
	cov := weightedCovariance(colors, weights, mean, sumW)

	values, vectors, err := EigenSym(cov)
	if err != nil {
		return Result{}, err
	}

	// gonum returns eigenvalues ascending; the principal axis is the last
	// (largest-eigenvalue) eigenvector, the last column.
	axis := colorspace.Color{vectors[0][2], vectors[1][2], vectors[2][2]}

	var total float64
	for _, v := range values {
		total += v
	}

	var explained float64
	const epsilon = 1e-12
	if total > epsilon {
		explained = values[2] / total
	}

	return Result{Axis: axis, ExplainedVariance: explained}, nil
}

func weightedMean(colors []colorspace.Color, weights []float64) (colorspace.Color, float64) {
	var mean colorspace.Color
	var sumW float64
	for i, c := range colors {
		w := sampleWeight(weights, i)
		mean = mean.Add(c.Scale(colorspace.Color{w, w, w}))
		sumW += w
	}
	if sumW == 0 {
		return colorspace.Color{}, 0
	}
	inv := 1 / sumW
	return mean.Scale(colorspace.Color{inv, inv, inv}), sumW
}

// weightedCovariance accumulates the weighted covariance matrix with a
// BLAS-style symmetric rank-one update per centered sample, via gonum's
// SymRankOne.
func weightedCovariance(colors []colorspace.Color, weights []float64, mean colorspace.Color, sumW float64) [3][3]float64 {
	cov := mat.NewSymDense(3, nil)
	for i, c := range colors {
		w := sampleWeight(weights, i)
		diff := c.Sub(mean)
		cov.SymRankOne(cov, w, mat.NewVecDense(3, diff[:]))
	}

	var out [3][3]float64
	if sumW == 0 {
		return out
	}
	inv := 1 / sumW
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = cov.At(r, c) * inv
		}
	}
	return out
}

// AxisFromCovariance solves the eigenproblem for an already-assembled
// covariance matrix and returns just the principal axis, for callers (the
// moments cache's cell queries) that already have the 3x3 in hand and
// don't need the full Weighted sample-accumulation path.
func AxisFromCovariance(cov [3][3]float64) (colorspace.Color, error) {
	_, vectors, err := EigenSym(cov)
	if err != nil {
		return colorspace.Color{}, err
	}
	return colorspace.Color{vectors[0][2], vectors[1][2], vectors[2][2]}, nil
}

func sampleWeight(weights []float64, i int) float64 {
	if weights == nil {
		return 1
	}
	return weights[i]
}

// EigenSym decomposes a real symmetric 3x3 matrix: only the upper
// triangle of cov is read, matching "only the lower triangle required" up
// to the usual symmetric-matrix convention of picking one triangle.
// Eigenvalues are returned ascending with eigenvectors as columns in the
// same order. Exported so callers with an already-computed covariance
// (e.g. the moments cache's O(1) cell covariance) can solve it directly
// without going through Weighted's sample-accumulation path.
func EigenSym(cov [3][3]float64) (values [3]float64, vectors [3][3]float64, err error) {
	data := make([]float64, 9)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			data[r*3+c] = cov[r][c]
		}
	}
	sym := mat.NewSymDense(3, data)

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return values, vectors, ErrEigenFailed
	}

	rawValues := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	copy(values[:], rawValues)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			vectors[r][c] = vecs.At(r, c)
		}
	}
	return values, vectors, nil
}
