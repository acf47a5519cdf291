package quantize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/palettize/colorspace"
)

func solidImage(w, h int, c colorspace.Color) Image {
	colors := make([]colorspace.Color, w*h)
	for i := range colors {
		colors[i] = c
	}
	return Image{Width: w, Height: h, Colors: colors}
}

func TestQuantizeRejectsEmptyImage(t *testing.T) {
	_, err := Quantize(Image{}, Options{PaletteSize: 4})
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestQuantizeRejectsInvalidPaletteSize(t *testing.T) {
	img := solidImage(2, 2, colorspace.Color{0.5, 0.5, 0.5})
	_, err := Quantize(img, Options{PaletteSize: 0})
	assert.ErrorIs(t, err, ErrInvalidPaletteSize)
}

func TestQuantizeRejectsImageTooLarge(t *testing.T) {
	img := Image{Width: 40001, Height: 40001, Colors: nil}
	_, err := Quantize(img, Options{PaletteSize: 4})
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

// Scenario 1: 2x2 solid.
func TestQuantizeScenario1SolidImage(t *testing.T) {
	img := solidImage(2, 2, colorspace.Color{0.5, 0.5, 0.5})
	result, err := Quantize(img, Options{PaletteSize: 4})
	require.NoError(t, err)

	validCount := 0
	for _, c := range result.Palette {
		if c != sentinelColor {
			validCount++
			assert.InDeltaSlice(t, []float64{0.5, 0.5, 0.5}, c[:], 1e-6)
		}
	}
	assert.Equal(t, 1, validCount)

	require.Len(t, result.PaletteMap, 4)
	assert.Equal(t, []int{0, 0, 0, 0}, result.PaletteMap)
}

// Scenario 2: 2x1 bi-color.
func TestQuantizeScenario2BiColor(t *testing.T) {
	img := Image{
		Width: 2, Height: 1,
		Colors: []colorspace.Color{{1, 0, 0}, {0, 0, 1}},
	}
	result, err := Quantize(img, Options{PaletteSize: 2, ColorSpace: colorspace.SRGB})
	require.NoError(t, err)
	require.Len(t, result.Palette, 2)

	foundRed, foundBlue := false, false
	for _, c := range result.Palette {
		if c[0] > 0.5 && c[2] < 0.5 {
			foundRed = true
		}
		if c[2] > 0.5 && c[0] < 0.5 {
			foundBlue = true
		}
	}
	assert.True(t, foundRed, "expected a red-ish palette entry")
	assert.True(t, foundBlue, "expected a blue-ish palette entry")
	assert.NotEqual(t, result.PaletteMap[0], result.PaletteMap[1])
}

// Scenario 4: K=1 on a larger mixed-color input.
func TestQuantizeScenario4PaletteSizeOneIsWeightedMean(t *testing.T) {
	var colors []colorspace.Color
	for i := 0; i < 1200; i++ {
		colors = append(colors, colorspace.Color{
			float64(i%17) / 17, float64((i*3)%13) / 13, float64((i*7)%11) / 11,
		})
	}
	img := Image{Width: 1200, Height: 1, Colors: colors}
	result, err := Quantize(img, Options{PaletteSize: 1, ColorSpace: colorspace.SRGB})
	require.NoError(t, err)

	require.Len(t, result.Palette, 1)
	assert.NotEqual(t, sentinelColor, result.Palette[0])
	for _, p := range result.PaletteMap {
		assert.Equal(t, 0, p)
	}
}

// Scenario 5: K > unique colors.
func TestQuantizeScenario5MoreSlotsThanUniqueColors(t *testing.T) {
	img := Image{
		Width: 3, Height: 1,
		Colors: []colorspace.Color{{0, 0, 0}, {0.5, 0.5, 0.5}, {1, 1, 1}},
	}
	result, err := Quantize(img, Options{PaletteSize: 8, ColorSpace: colorspace.SRGB})
	require.NoError(t, err)
	require.Len(t, result.Palette, 8)

	validCount := 0
	for _, c := range result.Palette {
		if c != sentinelColor {
			validCount++
		}
	}
	assert.Equal(t, 3, validCount)
}

// Scenario 6: dither on a ramp.
func TestQuantizeScenario6DitherApproximatesRamp(t *testing.T) {
	const w = 32
	colors := make([]colorspace.Color, w)
	for i := range colors {
		colors[i] = colorspace.Color{float64(i) / float64(w-1), float64(i) / float64(w-1), float64(i) / float64(w-1)}
	}
	img := Image{Width: w, Height: 1, Colors: colors}
	result, err := Quantize(img, Options{PaletteSize: 2, Dither: true, ColorSpace: colorspace.SRGB})
	require.NoError(t, err)
	require.Len(t, result.PaletteMap, w)

	for _, p := range result.PaletteMap {
		assert.True(t, p == 0 || p == 1)
	}

	var lowCount int
	for _, p := range result.PaletteMap {
		if p == 0 {
			lowCount++
		}
	}
	assert.Greater(t, lowCount, 0)
	assert.Less(t, lowCount, w)
}

func TestQuantizePaletteOnlySkipsMapping(t *testing.T) {
	img := solidImage(3, 3, colorspace.Color{0.2, 0.4, 0.6})
	result, err := Quantize(img, Options{PaletteSize: 2, PaletteOnly: true})
	require.NoError(t, err)
	assert.Nil(t, result.PaletteMap)
}

func TestQuantizeKMeansRefinementKeepsSolidColorCenter(t *testing.T) {
	img := solidImage(2, 2, colorspace.Color{0.3, 0.3, 0.3})
	result, err := Quantize(img, Options{PaletteSize: 1, KMeansIterations: 3, ColorSpace: colorspace.SRGB})
	require.NoError(t, err)
	require.Len(t, result.Palette, 1)
	assert.InDeltaSlice(t, []float64{0.3, 0.3, 0.3}, result.Palette[0][:], 1e-3)
}

func TestQuantizeSingleColumnSucceeds(t *testing.T) {
	img := Image{Width: 1, Height: 5, Colors: []colorspace.Color{
		{0, 0, 0}, {0.25, 0.25, 0.25}, {0.5, 0.5, 0.5}, {0.75, 0.75, 0.75}, {1, 1, 1},
	}}
	_, err := Quantize(img, Options{PaletteSize: 3})
	require.NoError(t, err)
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrEmptyImage, ErrInvalidPaletteSize))
	assert.False(t, errors.Is(ErrQuantizationFailed, ErrImageTooLarge))
}
