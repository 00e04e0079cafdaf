package quantize

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/internal/band"
	"github.com/BeatGlow/pixelcore/palette"
	"github.com/BeatGlow/pixelcore/pixel"
)

// Remap errors.
var (
	ErrSize    = errors.New("quantize: destination size mismatch")
	ErrPalette = errors.New("quantize: palette does not fit index depth")
)

// Remap stores the index of the nearest palette entry of every src pixel in
// dst. Rows are split into bands processed by up to workers goroutines
// sharing lookup; ctx is checked between rows.
func Remap[S any, W, K colorspace.Tuple](ctx context.Context, dst *pixel.Indexed, src pixel.Buffer[S], dec colorspace.Decoder[S, W], lookup *palette.Lookup[W, K], workers int) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("quantize: %w", err)
	}
	if dst.Rect.Dx() != src.Width || dst.Rect.Dy() != src.Height {
		return fmt.Errorf("%w: have %v, want %dx%d", ErrSize, dst.Rect.Size(), src.Width, src.Height)
	}
	if lookup.Len() > 1<<dst.Depth {
		return fmt.Errorf("%w: %d colors, %d bits", ErrPalette, lookup.Len(), dst.Depth)
	}
	if debug {
		log.Printf("quantize: remap %dx%d to %d colors", src.Width, src.Height, lookup.Len())
	}

	x0, y0 := dst.Rect.Min.X, dst.Rect.Min.Y
	err := band.Run(ctx, src.Height, workers, func(ctx context.Context, b0, b1 int) error {
		return band.Rows(ctx, b0, b1, func(y int) error {
			for x, s := range src.Row(y) {
				dst.SetColorIndex(x0+x, y0+y, uint8(lookup.FindNearest(dec.Decode(s))))
			}
			return nil
		})
	})
	if debug {
		s := lookup.Stats()
		log.Printf("quantize: %d cube cells, %.2f candidates per cell, %d cached colors", s.Cells, s.AvgCandidates, s.CacheEntries)
	}
	return err
}
