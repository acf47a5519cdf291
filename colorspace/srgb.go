package colorspace

import "math"

// srgbMatrix is sRGB (gamma-decoded, i.e. linear) to CIE XYZ.
var srgbMatrix = matrix3{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

var srgbMatrixInverse = srgbMatrix.inverse()

// srgbEOTF decodes a gamma-encoded sRGB channel value to linear light.
func srgbEOTF(c float64) float64 {
	if c <= 0.0404500 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// srgbInverseEOTF encodes a linear channel value to gamma-encoded sRGB.
func srgbInverseEOTF(c float64) float64 {
	c = clamp01(c)
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}
