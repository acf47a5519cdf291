package quantize

import (
	"github.com/willibrandon/palettize/colorspace"
	"github.com/willibrandon/palettize/internal/kmeans"
)

// refinePalette runs the optional k-means refinement pass, a thin wrapper
// over internal/kmeans so the rest of the pipeline never calls that
// package directly.
func refinePalette(colors []colorspace.Color, weights []float64, seeds []colorspace.Color, niter, maxSamples int) []colorspace.Color {
	return kmeans.Refine(colors, weights, seeds, niter, maxSamples)
}
