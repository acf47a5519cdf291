// Package quantize implements the palette construction pipeline: a
// principal-axis global quantizer, a greedy variance-guided local
// splitter, optional k-means refinement, and Riemersma space-filling-curve
// dithering. See the top-level entry point, Quantize.
package quantize

import (
	"errors"

	"github.com/willibrandon/palettize/colorspace"
)

// Image is the pipeline's input: a flat color matrix with optional
// per-pixel weights.
type Image struct {
	// Width and Height are the pixel dimensions. Colors must have exactly
	// Width*Height entries.
	Width, Height int
	// Colors holds one sRGB color per pixel, row-major (pixel (x, y) is at
	// index y*Width+x), each channel in [0, 1].
	Colors []colorspace.Color
	// Weights holds one weight per pixel, each >= 1, or nil for uniform
	// weight 1.
	Weights []float64
}

// Options controls how Quantize builds and applies the palette.
type Options struct {
	// PaletteSize is the target palette size K; must be >= 1.
	PaletteSize int
	// Dither enables Riemersma dithering when producing the index map.
	// When false, mapping uses plain nearest-neighbor.
	Dither bool
	// PaletteOnly skips producing the index map entirely.
	PaletteOnly bool
	// ColorSpace is the working space palette construction runs in.
	// Dithered mapping always runs in Linear Rec2020; plain
	// nearest-neighbor mapping always runs in ICtCp, regardless of this
	// setting — only palette construction (GQ/LQ/refinement) uses it.
	ColorSpace colorspace.Space
	// KMeansIterations: <= 0 disables refinement.
	KMeansIterations int
	// KMeansMaxSamples is the requested sample cap for refinement; a hard
	// minimum of 256*256 is enforced internally regardless of this value.
	KMeansMaxSamples int
}

// Result is the pipeline's output.
type Result struct {
	// Palette has length Options.PaletteSize. Entries beyond what GQ/LQ
	// converged to are the sentinel Color{-1, -1, -1}.
	Palette []colorspace.Color
	// PaletteMap has length Width*Height, each an index into Palette; nil
	// when Options.PaletteOnly is set or on error.
	PaletteMap []int
}

// sentinelColor fills unused palette slots.
var sentinelColor = colorspace.Color{-1, -1, -1}

// maxPixels is the memory ceiling: W*H above this is rejected outright.
const maxPixels = 40000 * 40000

// Fixed pipeline constants.
const (
	bucketCount          = 512
	maxGlobalClusters    = 12
	cellBiasThreshold    = 0.9
	globalBiasThreshold  = 0.1
	distortionEpsilon    = 1e-9
	splitBenefitEpsilon  = 1e-9
)

var (
	// ErrQuantizationFailed means GQ or LQ produced no clusters (an
	// internal PCA/eigensolver failure, not a validation error).
	ErrQuantizationFailed = errors.New("quantize: quantization failed")
	// ErrEmptyImage means Width*Height == 0. Quantize also wraps it when
	// Colors does not hold exactly Width*Height entries.
	ErrEmptyImage = errors.New("quantize: empty image")
	// ErrInvalidPaletteSize means Options.PaletteSize < 1.
	ErrInvalidPaletteSize = errors.New("quantize: palette size must be >= 1")
	// ErrImageTooLarge means Width*Height exceeds the memory ceiling.
	ErrImageTooLarge = errors.New("quantize: image too large")
)
