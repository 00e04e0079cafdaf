// Package pixelcore converts, downscales and quantizes images.
//
// The heavy lifting happens in the sub packages: [pixel] holds the packed
// storage types, [colorspace] the conversions to float working colors,
// [frame] the sliding neighborhood used by [downscale], and [palette] the
// nearest color search used by [quantize]. This package wires them up for
// plain [image.Image] values.
package pixelcore

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/downscale"
	"github.com/BeatGlow/pixelcore/draw"
	"github.com/BeatGlow/pixelcore/palette"
	"github.com/BeatGlow/pixelcore/pixel"
	"github.com/BeatGlow/pixelcore/quantize"
)

var debug bool

func init() {
	debug = os.Getenv("PIXELCORE_DEBUG") != ""
}

// Errors
var (
	ErrSize   = errors.New("pixelcore: invalid size")
	ErrColors = errors.New("pixelcore: palette size must be in [1, 256]")
	ErrMethod = errors.New("pixelcore: unknown quantization method")
)

// Downscale reduces src with kernel k in linear light.
func Downscale(ctx context.Context, src image.Image, k downscale.Kernel, opts downscale.Options) (*pixel.Bitmap[pixel.RGBA64], error) {
	in, err := pixel.BitmapFromImage[pixel.RGBA64](src)
	if err != nil {
		return nil, err
	}
	out, err := downscale.New[pixel.RGBA64, colorspace.Linear, colorspace.Linear](ctx, in.Buffer, colorspace.SRGB[pixel.RGBA64]{}, k, opts)
	if err != nil {
		return nil, err
	}
	if debug {
		log.Printf("pixelcore: downscaled %v to %dx%d", src.Bounds().Size(), out.Width, out.Height)
	}
	return &pixel.Bitmap[pixel.RGBA64]{Buffer: out}, nil
}

// Resize scales src to w×h. Whole ratios from 2 to 5 on both axes use the
// box kernel in linear light, other sizes use interp.
func Resize(ctx context.Context, src image.Image, w, h int, interp draw.Interpolator) (*pixel.Bitmap[pixel.RGBA64], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, w, h)
	}
	r := src.Bounds()
	if rx, ry, ok := wholeRatio(r.Dx(), r.Dy(), w, h); ok {
		k, err := downscale.Box(rx, ry)
		if err != nil {
			return nil, err
		}
		return Downscale(ctx, src, k, downscale.DefaultOptions)
	}
	if interp == nil {
		interp = draw.CatmullRom
	}
	dst, err := pixel.NewBitmap[pixel.RGBA64](w, h)
	if err != nil {
		return nil, err
	}
	if debug {
		log.Printf("pixelcore: scaling %v to %dx%d with %T", r.Size(), w, h, interp)
	}
	draw.Scale(dst, dst.Bounds(), src, r, draw.Src, interp)
	return dst, nil
}

func wholeRatio(sw, sh, w, h int) (rx, ry int, ok bool) {
	if sw%w != 0 || sh%h != 0 {
		return 0, 0, false
	}
	rx, ry = sw/w, sh/h
	ok = rx >= downscale.MinRatio && rx <= downscale.MaxRatio &&
		ry >= downscale.MinRatio && ry <= downscale.MaxRatio
	return
}

// Quantization methods.
const (
	MedianCut   = "median"
	VarianceCut = "variance"
)

// QuantizeConfig configures Quantize.
type QuantizeConfig struct {
	// Colors is the palette size.
	Colors int

	// Method is MedianCut or VarianceCut.
	Method string

	// Metric compares colors in Oklab.
	Metric palette.Metric

	// Workers is the number of parallel bands; 0 means GOMAXPROCS.
	Workers int
}

// DefaultQuantizeConfig is a 16 color palette matched in Oklab.
var DefaultQuantizeConfig = QuantizeConfig{
	Colors: 16,
	Method: VarianceCut,
	Metric: palette.Euclidean{},
}

// Quantize reduces src to at most config.Colors colors. The palette is
// derived in linear light and matched in Oklab.
func Quantize(ctx context.Context, src image.Image, config QuantizeConfig) (*pixel.Indexed, error) {
	if config.Colors < 1 || config.Colors > 256 {
		return nil, fmt.Errorf("%w: %d", ErrColors, config.Colors)
	}
	if config.Metric == nil {
		config.Metric = palette.Euclidean{}
	}
	in, err := pixel.BitmapFromImage[pixel.RGBA32](src)
	if err != nil {
		return nil, err
	}
	space := colorspace.SRGBOklab[pixel.RGBA32]{}
	hist := quantize.HistogramOf[pixel.RGBA32, colorspace.Linear](in.Buffer, space)

	var colors []colorspace.Linear
	switch config.Method {
	case MedianCut:
		colors = quantize.MedianCut(hist.All(), config.Colors)
	case VarianceCut, "":
		colors = quantize.VarianceCut(hist.All(), config.Colors)
	default:
		return nil, fmt.Errorf("%w: %q", ErrMethod, config.Method)
	}

	lookup, err := palette.New[colorspace.Linear, colorspace.Oklab](colors, space, config.Metric)
	if err != nil {
		return nil, err
	}
	pal := make(color.Palette, len(colors))
	for i, c := range colors {
		pal[i] = space.Encode(c)
	}
	dst, err := pixel.NewIndexed(in.Width, in.Height, pixel.DepthFor(len(pal)), pal)
	if err != nil {
		return nil, err
	}
	if debug {
		log.Printf("pixelcore: %d distinct colors to %d", hist.Len(), len(colors))
	}
	if err = quantize.Remap(ctx, dst, in.Buffer, space, lookup, config.Workers); err != nil {
		return nil, err
	}
	return dst, nil
}
