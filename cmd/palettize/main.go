// Command palettize reduces a PNG image to a small color palette and
// writes a paletted PNG plus a text palette dump, exercising the
// quantize package end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"

	"github.com/willibrandon/palettize/colorspace"
	"github.com/willibrandon/palettize/pkg/config"
	"github.com/willibrandon/palettize/quantize"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	var (
		showVersion      = flag.Bool("version", false, "Show version information")
		debugMode        = flag.Bool("debug", false, "Enable debug logging")
		dither           = flag.Bool("dither", false, "Enable Riemersma dithering")
		paletteSize      = flag.Int("palette-size", 0, "Target palette size (0 = use config default)")
		colorSpaceFlag   = flag.String("color-space", "", "Palette color space: srgb, cieluv, ictcp (empty = use config default)")
		kmeansIterations = flag.Int("kmeans-iterations", -1, "K-means refinement iterations (-1 = use config default)")
		previewWidth     = flag.Uint("preview-width", 0, "Write a side-by-side preview thumbnail of this width (0 = skip)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("palettize version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *debugMode {
		cfg.LogLevel = "debug"
	}

	baseLogger := createLogger(cfg.LogLevel)
	runID := uuid.New().String()[:8]
	ctx := mtlog.PushProperty(context.Background(), "RunID", runID)
	logger := baseLogger.WithContext(ctx)

	args := flag.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: palettize [flags] <input.png> <output.png>")
		os.Exit(1)
	}
	inputPath, outputPath := args[0], args[1]

	effectiveK := cfg.PaletteSize
	if *paletteSize > 0 {
		effectiveK = *paletteSize
	}
	effectiveSpace := cfg.ColorSpace
	if *colorSpaceFlag != "" {
		effectiveSpace = *colorSpaceFlag
	}
	effectiveIters := cfg.KMeansIterations
	if *kmeansIterations >= 0 {
		effectiveIters = *kmeansIterations
	}
	effectiveDither := cfg.Dither || *dither

	space, err := parseColorSpace(effectiveSpace)
	if err != nil {
		logger.Error("Invalid color space {ColorSpace}: {Error}", effectiveSpace, err)
		os.Exit(1)
	}

	logger.Information("Quantizing {Path} to {Colors} colors (dither={Dither}, space={ColorSpace})",
		inputPath, effectiveK, effectiveDither, space.String())

	start := time.Now()
	srcImg, err := readPNG(inputPath)
	if err != nil {
		logger.Error("Failed to read {Path}: {Error}", inputPath, err)
		os.Exit(1)
	}

	img := imageToQuantizeImage(srcImg)
	result, err := quantize.Quantize(img, quantize.Options{
		PaletteSize:      effectiveK,
		Dither:           effectiveDither,
		ColorSpace:       space,
		KMeansIterations: effectiveIters,
		KMeansMaxSamples: 256 * 256,
	})
	if err != nil {
		logger.Error("Quantization failed: {Error}", err)
		os.Exit(1)
	}

	outImg := resultToImage(img.Width, img.Height, result)
	if err := writePNG(outputPath, outImg); err != nil {
		logger.Error("Failed to write {Path}: {Error}", outputPath, err)
		os.Exit(1)
	}

	palettePath := outputPath + ".palette.txt"
	if err := writePaletteDump(palettePath, result.Palette); err != nil {
		logger.Error("Failed to write palette dump {Path}: {Error}", palettePath, err)
		os.Exit(1)
	}

	if *previewWidth > 0 {
		previewPath := outputPath + ".preview.png"
		if err := writePreview(previewPath, srcImg, outImg, *previewWidth); err != nil {
			logger.Error("Failed to write preview {Path}: {Error}", previewPath, err)
			os.Exit(1)
		}
		logger.Information("Wrote preview thumbnail to {Path}", previewPath)
	}

	logger.Information("Quantized {Path} to {Colors} colors in {Elapsed}", inputPath, effectiveK, time.Since(start))
}

func createLogger(logLevel string) core.Logger {
	sink := sinks.NewConsoleSink()

	var opts []mtlog.Option
	opts = append(opts, mtlog.WithSink(sink))

	switch logLevel {
	case "debug":
		opts = append(opts, mtlog.WithMinimumLevel(core.DebugLevel))
	case "warn":
		opts = append(opts, mtlog.WithMinimumLevel(core.WarningLevel))
	case "error":
		opts = append(opts, mtlog.WithMinimumLevel(core.ErrorLevel))
	default:
		opts = append(opts, mtlog.WithMinimumLevel(core.InformationLevel))
	}

	return mtlog.New(opts...)
}

func parseColorSpace(s string) (colorspace.Space, error) {
	switch strings.ToLower(s) {
	case "srgb", "":
		return colorspace.SRGB, nil
	case "cieluv":
		return colorspace.CIELuv, nil
	case "ictcp":
		return colorspace.ICtCp, nil
	default:
		return colorspace.SRGB, fmt.Errorf("unknown color space %q", s)
	}
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// imageToQuantizeImage converts a decoded PNG into the pipeline's flat
// sRGB color representation.
func imageToQuantizeImage(src image.Image) quantize.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	colors := make([]colorspace.Color, w*h)
	const maxVal = 65535.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			colors[y*w+x] = colorspace.Color{float64(r) / maxVal, float64(g) / maxVal, float64(b) / maxVal}
		}
	}
	return quantize.Image{Width: w, Height: h, Colors: colors}
}

// resultToImage paints the quantized palette back onto an RGBA image using
// the palette map; falls back to palette[0] per pixel if no map was
// produced (PaletteMap is nil only when PaletteOnly is set, which this
// CLI never requests since it always writes an output image).
func resultToImage(w, h int, result quantize.Result) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := 0
			if result.PaletteMap != nil {
				idx = result.PaletteMap[y*w+x]
			}
			c := result.Palette[idx]
			out.Set(x, y, colorToNRGBA(c))
		}
	}
	return out
}

func colorToNRGBA(c colorspace.Color) color.NRGBA {
	clamp := func(v float64) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v*255 + 0.5)
	}
	return color.NRGBA{R: clamp(c[0]), G: clamp(c[1]), B: clamp(c[2]), A: 255}
}

func writePaletteDump(path string, palette []colorspace.Color) error {
	var sb strings.Builder
	for i, c := range palette {
		if c[0] < 0 {
			fmt.Fprintf(&sb, "%3d: (unused)\n", i)
			continue
		}
		hex := colorful.Color{R: c[0], G: c[1], B: c[2]}.Clamped().Hex()
		fmt.Fprintf(&sb, "%3d: %s\n", i, hex)
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// writePreview renders a side-by-side thumbnail of the original and
// quantized images using nfnt/resize.
func writePreview(path string, original image.Image, quantized image.Image, width uint) error {
	leftThumb := resize.Resize(width, 0, original, resize.Lanczos3)
	rightThumb := resize.Resize(width, 0, quantized, resize.Lanczos3)

	lb := leftThumb.Bounds()
	rb := rightThumb.Bounds()
	h := lb.Dy()
	if rb.Dy() > h {
		h = rb.Dy()
	}

	out := image.NewNRGBA(image.Rect(0, 0, lb.Dx()+rb.Dx(), h))
	for y := 0; y < lb.Dy(); y++ {
		for x := 0; x < lb.Dx(); x++ {
			out.Set(x, y, leftThumb.At(lb.Min.X+x, lb.Min.Y+y))
		}
	}
	for y := 0; y < rb.Dy(); y++ {
		for x := 0; x < rb.Dx(); x++ {
			out.Set(lb.Dx()+x, y, rightThumb.At(rb.Min.X+x, rb.Min.Y+y))
		}
	}

	return writePNG(path, out)
}
