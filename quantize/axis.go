package quantize

import "github.com/willibrandon/palettize/colorspace"

// axisEpsilon is the spread threshold below which axis sort falls back to
// round-robin bucket assignment rather than dividing by a near-zero range.
const axisEpsilon = 1e-9

// bucketSort projects each color onto axis and assigns it a bucket in
// [0, bucketCount). The colors themselves are never reordered; only the
// returned bucket index per color changes.
func bucketSort(colors []colorspace.Color, axis colorspace.Color, bucketCount int) []int {
	n := len(colors)
	buckets := make([]int, n)
	if n == 0 {
		return buckets
	}

	proj := make([]float64, n)
	dmin, dmax := dot(colors[0], axis), dot(colors[0], axis)
	proj[0] = dmin
	for i := 1; i < n; i++ {
		d := dot(colors[i], axis)
		proj[i] = d
		if d < dmin {
			dmin = d
		}
		if d > dmax {
			dmax = d
		}
	}

	span := dmax - dmin
	if span < axisEpsilon {
		for i := range buckets {
			buckets[i] = i % bucketCount
		}
		return buckets
	}

	scale := float64(bucketCount) / span
	for i, d := range proj {
		b := int((d - dmin) * scale)
		if b >= bucketCount {
			b = bucketCount - 1
		}
		if b < 0 {
			b = 0
		}
		buckets[i] = b
	}
	return buckets
}

func dot(c, axis colorspace.Color) float64 {
	return c[0]*axis[0] + c[1]*axis[1] + c[2]*axis[2]
}
