// Package colorspace implements the fixed color-space conversions the
// quantization pipeline treats as external collaborators: sRGB, CIE XYZ,
// Linear Rec2020, CIELuv, and ICtCp. Every conversion is a pure function
// over a single Color; none of them allocate or hold state beyond the
// matrices computed once at init time.
package colorspace

// Color is a single sample in whatever color space the caller is working in.
type Color [3]float64

// Space identifies one of the working color spaces the pipeline converts
// between. The zero value is SRGB.
type Space int

const (
	SRGB Space = iota
	CIELuv
	ICtCp
	LinearRec2020
)

func (s Space) String() string {
	switch s {
	case SRGB:
		return "sRGB"
	case CIELuv:
		return "CIELuv"
	case ICtCp:
		return "ICtCp"
	case LinearRec2020:
		return "LinearRec2020"
	default:
		return "unknown"
	}
}

// Convert maps a single color from one space to another, routing through
// CIE XYZ as the hub space. Convert(c, s, s) is the identity.
func Convert(c Color, from, to Space) Color {
	if from == to {
		return c
	}
	return fromXYZ(toXYZ(c, from), to)
}

// ConvertAll converts every color in place, routing through XYZ.
func ConvertAll(colors []Color, from, to Space) {
	if from == to {
		return
	}
	for i, c := range colors {
		colors[i] = fromXYZ(toXYZ(c, from), to)
	}
}

func toXYZ(c Color, from Space) Color {
	switch from {
	case SRGB:
		return srgbMatrix.mulVec(Color{
			srgbEOTF(c[0]), srgbEOTF(c[1]), srgbEOTF(c[2]),
		})
	case LinearRec2020:
		return rec2020ToXYZMatrix.mulVec(c)
	case CIELuv:
		return luvToXYZ(c)
	case ICtCp:
		return rec2020ToXYZMatrix.mulVec(ictcpToLinearRec2020(c))
	default:
		return c
	}
}

func fromXYZ(c Color, to Space) Color {
	switch to {
	case SRGB:
		lin := srgbMatrixInverse.mulVec(c)
		return Color{srgbInverseEOTF(lin[0]), srgbInverseEOTF(lin[1]), srgbInverseEOTF(lin[2])}
	case LinearRec2020:
		return xyzToRec2020Matrix.mulVec(c)
	case CIELuv:
		return xyzToLuv(c)
	case ICtCp:
		return linearRec2020ToICtCp(xyzToRec2020Matrix.mulVec(c))
	default:
		return c
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
