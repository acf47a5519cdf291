// Package nnindex wraps gonum.org/v1/gonum/spatial/kdtree behind a small
// build/find-nearest contract: build an index over a fixed point set,
// then repeatedly query it for the single nearest point.
package nnindex

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/willibrandon/palettize/colorspace"
)

// Index is a nearest-neighbor index over a fixed, scaled set of palette
// colors. Build once per dither or mapping call; query many times.
type Index struct {
	tree   *kdtree.Tree
	points scaledPoints
	scale  colorspace.Color
}

// Build constructs an index over points, scaling each channel by scale
// before insertion. Nearest applies the same scale to every query — see
// colorspace.Rec2020LuminanceWeights.
func Build(points []colorspace.Color, scale colorspace.Color) *Index {
	scaled := make(scaledPoints, len(points))
	for i, p := range points {
		scaled[i] = point{value: p.Scale(scale), index: i}
	}

	return &Index{
		tree:   kdtree.New(scaled, false),
		points: scaled,
		scale:  scale,
	}
}

// Nearest returns the palette index of the point nearest query and the
// squared distance to it. query is given unscaled; Nearest scales it by
// Build's scale before searching, and the distance is in scaled space.
func (idx *Index) Nearest(query colorspace.Color) (index int, sqDist float64) {
	scaledQuery := point{value: query.Scale(idx.scale)}
	nearest, dist := idx.tree.Nearest(scaledQuery)
	return nearest.(point).index, dist
}

// point is a single indexed palette color implementing kdtree.Comparable.
type point struct {
	value colorspace.Color
	index int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.value[d] - c.(point).value[d]
}

func (p point) Dims() int { return 3 }

func (p point) Distance(c kdtree.Comparable) float64 {
	o := c.(point)
	var sum float64
	for i := 0; i < 3; i++ {
		diff := p.value[i] - o.value[i]
		sum += diff * diff
	}
	return sum
}

// scaledPoints implements kdtree.Interface over a slice of point.
type scaledPoints []point

func (s scaledPoints) Len() int { return len(s) }

func (s scaledPoints) Slice(start, end int) kdtree.Interface { return s[start:end] }

// Pivot fully sorts the slice along dimension d and returns the median
// index — a full sort is a valid (if not asymptotically optimal) special
// case of "partition around a pivot", and the palette point sets this
// index ever sees are small (at most a few hundred colors).
func (s scaledPoints) Pivot(d kdtree.Dim) int {
	sort.Sort(dimSorter{points: s, dim: d})
	return len(s) / 2
}

type dimSorter struct {
	points scaledPoints
	dim    kdtree.Dim
}

func (d dimSorter) Len() int { return len(d.points) }
func (d dimSorter) Less(i, j int) bool {
	return d.points[i].value[d.dim] < d.points[j].value[d.dim]
}
func (d dimSorter) Swap(i, j int) { d.points[i], d.points[j] = d.points[j], d.points[i] }

func (s scaledPoints) Bounds() *kdtree.Bounding {
	if len(s) == 0 {
		return nil
	}
	min := s[0].value
	max := s[0].value
	for _, p := range s[1:] {
		for d := 0; d < 3; d++ {
			if p.value[d] < min[d] {
				min[d] = p.value[d]
			}
			if p.value[d] > max[d] {
				max[d] = p.value[d]
			}
		}
	}
	return &kdtree.Bounding{Min: point{value: min}, Max: point{value: max}}
}
