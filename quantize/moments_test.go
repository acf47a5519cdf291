package quantize

import (
	"math"
	"testing"

	"github.com/willibrandon/palettize/colorspace"
)

func naiveDistortion(colors []colorspace.Color) float64 {
	var mean colorspace.Color
	for _, c := range colors {
		mean = mean.Add(c)
	}
	n := float64(len(colors))
	if n == 0 {
		return 0
	}
	inv := 1 / n
	mean = mean.Scale(colorspace.Color{inv, inv, inv})

	var total float64
	for _, c := range colors {
		diff := c.Sub(mean)
		total += diff[0]*diff[0] + diff[1]*diff[1] + diff[2]*diff[2]
	}
	return total
}

func TestMomentsCacheDistortionMatchesNaive(t *testing.T) {
	colors := []colorspace.Color{
		{0.1, 0.2, 0.3}, {0.2, 0.1, 0.5}, {0.9, 0.8, 0.1},
		{0.4, 0.4, 0.4}, {0.0, 1.0, 0.5}, {0.6, 0.3, 0.2},
	}
	buckets := bucketSort(colors, colorspace.Color{1, 1, 1}, 8)
	mc := buildMomentsCache(colors, buckets, 8)

	for a := 0; a < 8; a++ {
		for b := a + 1; b <= 8; b++ {
			var subset []colorspace.Color
			for i, bucket := range buckets {
				if bucket >= a && bucket < b {
					subset = append(subset, colors[i])
				}
			}
			got := mc.cellDistortion(a, b)
			want := naiveDistortion(subset)
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("cellDistortion(%d,%d) = %v, want %v (n=%d)", a, b, got, want, len(subset))
			}
		}
	}
}

func TestMomentsCacheEmptyCell(t *testing.T) {
	colors := []colorspace.Color{{0, 0, 0}, {1, 1, 1}}
	buckets := bucketSort(colors, colorspace.Color{1, 0, 0}, 4)
	mc := buildMomentsCache(colors, buckets, 4)

	if d := mc.cellDistortion(2, 2); d != 0 {
		t.Fatalf("empty cell distortion = %v, want 0", d)
	}
	cov := mc.cellCovariance(2, 2)
	for r := 0; r < 3; r++ {
		for s := 0; s < 3; s++ {
			if cov[r][s] != 0 {
				t.Fatalf("empty cell covariance[%d][%d] = %v, want 0", r, s, cov[r][s])
			}
		}
	}
}

func TestCellBiasAlignedAxisNearOne(t *testing.T) {
	colors := []colorspace.Color{
		{0, 0.5, 0.5}, {0.2, 0.5, 0.5}, {0.4, 0.5, 0.5}, {0.6, 0.5, 0.5}, {0.8, 0.5, 0.5}, {1, 0.5, 0.5},
	}
	axis := colorspace.Color{1, 0, 0}
	buckets := bucketSort(colors, axis, 4)
	mc := buildMomentsCache(colors, buckets, 4)

	bias, err := mc.cellBias(0, 4, axis)
	if err != nil {
		t.Fatalf("cellBias: %v", err)
	}
	if bias < 0.9 {
		t.Fatalf("cellBias for a perfectly axis-aligned cell = %v, want close to 1", bias)
	}
}
