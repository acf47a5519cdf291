package colorspace

import "math"

// Rec2020LuminanceWeights are the square roots of the Rec2020 Y-luminance
// coefficients. Scaling both palette points and queries by these before
// computing Euclidean distance yields the perceptually-weighted distance
// the Riemersma dither's nearest-neighbor search wants.
var Rec2020LuminanceWeights = Color{
	math.Sqrt(0.2627),
	math.Sqrt(0.678),
	math.Sqrt(0.0593),
}

// Scale multiplies each channel of c by the matching channel of w.
func (c Color) Scale(w Color) Color {
	return Color{c[0] * w[0], c[1] * w[1], c[2] * w[2]}
}

// Add returns c + o, channel-wise.
func (c Color) Add(o Color) Color {
	return Color{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

// Sub returns c - o, channel-wise.
func (c Color) Sub(o Color) Color {
	return Color{c[0] - o[0], c[1] - o[1], c[2] - o[2]}
}
