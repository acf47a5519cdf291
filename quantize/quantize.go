package quantize

import (
	"fmt"

	"github.com/willibrandon/palettize/colorspace"
)

// Quantize reduces img to a palette of at most opts.PaletteSize colors and,
// unless opts.PaletteOnly is set, a per-pixel index into that palette.
//
// Pipeline: the global quantizer seeds an initial cluster set, the local
// quantizer splits it to the target size, optional k-means refines the
// cluster centers, and mapping (Riemersma dithering, or plain nearest
// neighbor when dithering is off) produces the index map.
func Quantize(img Image, opts Options) (Result, error) {
	n := img.Width * img.Height
	if n == 0 {
		return Result{}, ErrEmptyImage
	}
	if opts.PaletteSize < 1 {
		return Result{}, ErrInvalidPaletteSize
	}
	if n > maxPixels {
		return Result{}, ErrImageTooLarge
	}
	if len(img.Colors) != n {
		return Result{}, fmt.Errorf("%w: Colors has %d entries, want %d", ErrEmptyImage, len(img.Colors), n)
	}

	workingSpace := opts.ColorSpace

	colors := make([]colorspace.Color, n)
	copy(colors, img.Colors)
	colorspace.ConvertAll(colors, colorspace.SRGB, workingSpace)

	clusters, err := globalQuantize(colors, img.Weights, opts.PaletteSize)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrQuantizationFailed, err)
	}
	clusters = localQuantize(clusters, opts.PaletteSize)
	if len(clusters) == 0 {
		return Result{}, ErrQuantizationFailed
	}

	palette := make([]colorspace.Color, opts.PaletteSize)
	for i := range palette {
		palette[i] = sentinelColor
	}
	for i, c := range clusters {
		palette[i] = c.centerColor()
	}

	if opts.KMeansIterations > 0 {
		seeds := palette[:len(clusters)]
		refined := refinePalette(colors, img.Weights, seeds, opts.KMeansIterations, opts.KMeansMaxSamples)
		copy(palette[:len(clusters)], refined)
	}

	result := Result{}

	if !opts.PaletteOnly {
		mapSpace := colorspace.ICtCp
		if opts.Dither {
			mapSpace = colorspace.LinearRec2020
		}

		mapColors := make([]colorspace.Color, n)
		copy(mapColors, img.Colors)
		colorspace.ConvertAll(mapColors, colorspace.SRGB, mapSpace)

		mapPalette := make([]colorspace.Color, len(clusters))
		copy(mapPalette, palette[:len(clusters)])
		colorspace.ConvertAll(mapPalette, workingSpace, mapSpace)

		if opts.Dither {
			result.PaletteMap = ditherRiemersma(mapColors, img.Width, img.Height, mapPalette)
		} else {
			result.PaletteMap = mapNearest(mapColors, mapPalette)
		}
	}

	for i, c := range palette {
		if c == sentinelColor {
			continue
		}
		palette[i] = colorspace.Convert(c, workingSpace, colorspace.SRGB)
	}
	result.Palette = palette

	return result, nil
}
