package colorspace

import "math"

// D65 reference white in CIE XYZ, used by the CIELuv conversions.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883

	luvEpsilon = 0.008856
	luvKappa   = 903.3
)

var (
	whiteUPrime = 4 * whiteX / (whiteX + 15*whiteY + 3*whiteZ)
	whiteVPrime = 9 * whiteY / (whiteX + 15*whiteY + 3*whiteZ)
)

// xyzToLuv converts CIE XYZ to CIELuv against the D65 white point.
func xyzToLuv(c Color) Color {
	x, y, z := c[0], c[1], c[2]
	denom := x + 15*y + 3*z
	var uPrime, vPrime float64
	if denom > 0 {
		uPrime = 4 * x / denom
		vPrime = 9 * y / denom
	}

	yr := y / whiteY
	var l float64
	if yr > luvEpsilon {
		l = 116*math.Cbrt(yr) - 16
	} else {
		l = luvKappa * yr
	}

	u := 13 * l * (uPrime - whiteUPrime)
	v := 13 * l * (vPrime - whiteVPrime)
	return Color{l, u, v}
}

// luvToXYZ inverts xyzToLuv.
func luvToXYZ(c Color) Color {
	l, u, v := c[0], c[1], c[2]
	if l <= 0 {
		return Color{0, 0, 0}
	}

	uPrime := u/(13*l) + whiteUPrime
	vPrime := v/(13*l) + whiteVPrime

	var y float64
	if l > luvKappa*luvEpsilon {
		y = whiteY * math.Pow((l+16)/116, 3)
	} else {
		y = whiteY * l / luvKappa
	}

	if vPrime == 0 {
		return Color{0, y, 0}
	}

	x := y * 9 * uPrime / (4 * vPrime)
	z := y * (12 - 3*uPrime - 20*vPrime) / (4 * vPrime)
	return Color{x, y, z}
}
