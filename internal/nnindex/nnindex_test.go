package nnindex

import (
	"testing"

	"github.com/willibrandon/palettize/colorspace"
)

func TestNearestPicksClosest(t *testing.T) {
	palette := []colorspace.Color{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	idx := Build(palette, colorspace.Color{1, 1, 1})

	got, _ := idx.Nearest(colorspace.Color{0.9, 0.1, 0.05})
	if got != 1 {
		t.Fatalf("Nearest: got index %d, want 1", got)
	}

	got, _ = idx.Nearest(colorspace.Color{0.02, 0.02, 0.02})
	if got != 0 {
		t.Fatalf("Nearest: got index %d, want 0", got)
	}
}

func TestNearestRespectsScale(t *testing.T) {
	palette := []colorspace.Color{
		{0, 0, 0},
		{0.2, 0, 1},
	}
	// With blue heavily down-weighted, a query that's far in blue but
	// exactly at black in R and G should still prefer black, even though
	// the second entry is closer to it without scaling.
	idx := Build(palette, colorspace.Color{1, 1, 0.01})

	got, _ := idx.Nearest(colorspace.Color{0, 0, 1})
	if got != 0 {
		t.Fatalf("Nearest with scale: got index %d, want 0 (scale should suppress blue)", got)
	}
}

func TestNearestSinglePoint(t *testing.T) {
	idx := Build([]colorspace.Color{{0.5, 0.5, 0.5}}, colorspace.Color{1, 1, 1})
	got, _ := idx.Nearest(colorspace.Color{0.9, 0.1, 0.1})
	if got != 0 {
		t.Fatalf("Nearest with single point: got %d, want 0", got)
	}
}
