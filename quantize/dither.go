package quantize

import (
	"math"

	"github.com/willibrandon/palettize/colorspace"
	"github.com/willibrandon/palettize/internal/hilbert"
	"github.com/willibrandon/palettize/internal/nnindex"
)

// errorQueueSize (Q) and errorQueueRatio (QR) fix the Riemersma error
// queue's length and the geometric ratio between its oldest and newest
// weight.
const (
	errorQueueSize  = 16
	errorQueueRatio = 16.0
)

// errorQueueWeights returns the Q geometric weights G[0]=1/QR .. G[Q-1]=1.
func errorQueueWeights() [errorQueueSize]float64 {
	m := math.Exp(math.Log(errorQueueRatio) / float64(errorQueueSize-1))
	var g [errorQueueSize]float64
	weight := 1 / errorQueueRatio
	for i := range g {
		g[i] = weight
		weight *= m
	}
	return g
}

// ditherRiemersma maps colors (W*H, row-major) onto palette via Riemersma
// space-filling-curve dithering: a Hilbert traversal of the image
// diffuses each pixel's quantization error, weighted by a geometric decay
// over the last errorQueueSize residuals, into the candidate color fed to
// the nearest-neighbor search. The candidate is deliberately not clamped
// to [0, 1]. Returns the palette index chosen for every pixel.
func ditherRiemersma(colors []colorspace.Color, width, height int, palette []colorspace.Color) []int {
	img := make([]colorspace.Color, len(colors))
	copy(img, colors)

	idx := nnindex.Build(palette, colorspace.Rec2020LuminanceWeights)
	paletteMap := make([]int, width*height)
	weights := errorQueueWeights()

	var eq [errorQueueSize]colorspace.Color

	level := hilbert.Order(max(width, height))
	hilbert.Walk(level, func(x, y int) {
		if x < 0 || x >= width || y < 0 || y >= height {
			return
		}

		var e colorspace.Color
		for i, w := range weights {
			e = e.Add(eq[i].Scale(colorspace.Color{w, w, w}))
		}

		pos := y*width + x
		current := img[pos]
		candidate := current.Add(e)

		p, _ := idx.Nearest(candidate)
		img[pos] = palette[p]
		paletteMap[pos] = p

		copy(eq[:errorQueueSize-1], eq[1:])
		eq[errorQueueSize-1] = current.Sub(palette[p])
	})

	return paletteMap
}

// mapNearest maps colors onto palette with plain (undithered) nearest
// neighbor, unweighted.
func mapNearest(colors []colorspace.Color, palette []colorspace.Color) []int {
	idx := nnindex.Build(palette, colorspace.Color{1, 1, 1})
	out := make([]int, len(colors))
	for i, c := range colors {
		p, _ := idx.Nearest(c)
		out[i] = p
	}
	return out
}
