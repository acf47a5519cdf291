package colorspace

import "math"

// lmsMatrix converts Linear Rec2020 to LMS cone responses, per the
// glossary's /4096 mixing matrix.
var lmsMatrix = matrix3{
	{1688.0 / 4096, 2146.0 / 4096, 262.0 / 4096},
	{683.0 / 4096, 2951.0 / 4096, 462.0 / 4096},
	{99.0 / 4096, 309.0 / 4096, 3688.0 / 4096},
}

var lmsMatrixInverse = lmsMatrix.inverse()

// ictcpMatrix maps PQ-encoded L'M'S' to (I, Ct, Cp), with Ct already
// halved so that downstream Euclidean distance needs no further scaling.
var ictcpMatrix = matrix3{
	{0.5, 0.5, 0},
	{6610.0 / 4096 / 2, -13613.0 / 4096 / 2, 7003.0 / 4096 / 2},
	{17933.0 / 4096, -17390.0 / 4096, -543.0 / 4096},
}

var ictcpMatrixInverse = ictcpMatrix.inverse()

// ST2084 (PQ) constants, fixed per the glossary.
const (
	pqM1 = 0.1593017578125
	pqM2 = 78.84375
	pqC1 = 0.8359375
	pqC2 = 18.8515625
	pqC3 = 18.6875
)

// pqEncode applies the ST2084 inverse EOTF: linear light to the PQ signal.
func pqEncode(y float64) float64 {
	if y < 0 {
		y = 0
	}
	ym1 := math.Pow(y, pqM1)
	return math.Pow((pqC1+pqC2*ym1)/(1+pqC3*ym1), pqM2)
}

// pqDecode applies the ST2084 EOTF: PQ signal back to linear light.
func pqDecode(n float64) float64 {
	if n < 0 {
		n = 0
	}
	nm2 := math.Pow(n, 1/pqM2)
	num := nm2 - pqC1
	if num < 0 {
		num = 0
	}
	denom := pqC2 - pqC3*nm2
	if denom <= 0 {
		return 0
	}
	return math.Pow(num/denom, 1/pqM1)
}

func linearRec2020ToICtCp(c Color) Color {
	lms := lmsMatrix.mulVec(c)
	encoded := Color{pqEncode(lms[0]), pqEncode(lms[1]), pqEncode(lms[2])}
	return ictcpMatrix.mulVec(encoded)
}

func ictcpToLinearRec2020(c Color) Color {
	encoded := ictcpMatrixInverse.mulVec(c)
	lms := Color{pqDecode(encoded[0]), pqDecode(encoded[1]), pqDecode(encoded[2])}
	return lmsMatrixInverse.mulVec(lms)
}
