package colorspace

import "gonum.org/v1/gonum/mat"

// matrix3 is a row-major 3x3 matrix applied to a Color as a column vector.
type matrix3 [3][3]float64

func (m matrix3) mulVec(v Color) Color {
	return Color{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// inverse computes the matrix inverse via gonum/mat so every derived
// "reverse" conversion is exact with respect to the forward matrices given
// in the glossary, rather than a second independently-rounded constant.
func (m matrix3) inverse() matrix3 {
	data := make([]float64, 0, 9)
	for _, row := range m {
		data = append(data, row[:]...)
	}
	dense := mat.NewDense(3, 3, data)

	var inv mat.Dense
	if err := inv.Inverse(dense); err != nil {
		panic("colorspace: singular conversion matrix: " + err.Error())
	}

	var out matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = inv.At(r, c)
		}
	}
	return out
}
