package downscale

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/frame"
	"github.com/BeatGlow/pixelcore/internal/band"
	"github.com/BeatGlow/pixelcore/pixel"
)

var ErrSize = errors.New("downscale: destination size mismatch")

// Options configure Run.
type Options struct {
	// OOBX and OOBY are the out of bounds policies of the source.
	OOBX, OOBY frame.Mode

	// Workers is the number of parallel bands; 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions mirror at the image border and use every CPU.
var DefaultOptions = Options{
	OOBX: frame.MirrorHalf,
	OOBY: frame.MirrorHalf,
}

// OutputSize returns the size of a w×h image reduced with k. Partial blocks
// at the right and bottom edges are dropped.
func OutputSize(w, h int, k Kernel) (int, int, error) {
	rx, ry := k.Ratio()
	if w < rx || h < ry {
		return 0, 0, fmt.Errorf("%w: %dx%d source smaller than %d×%d block", pixel.ErrSize, w, h, rx, ry)
	}
	return w / rx, h / ry, nil
}

// Run reduces src into dst with kernel k. dst must have the size OutputSize
// reports. Output rows are split into bands, each processed by its own frame;
// ctx is checked between output rows.
func Run[S any, W, K colorspace.Tuple](ctx context.Context, dst, src pixel.Buffer[S], space colorspace.Space[S, W, K], k Kernel, opts Options) error {
	if err := src.Validate(); err != nil {
		return fmt.Errorf("downscale: source: %w", err)
	}
	if err := dst.Validate(); err != nil {
		return fmt.Errorf("downscale: destination: %w", err)
	}
	w, h, err := OutputSize(src.Width, src.Height, k)
	if err != nil {
		return err
	}
	if dst.Width != w || dst.Height != h {
		return fmt.Errorf("%w: have %dx%d, want %dx%d", ErrSize, dst.Width, dst.Height, w, h)
	}

	rx, ry := k.Ratio()
	if debug {
		log.Printf("downscale: %dx%d -> %dx%d with %v", src.Width, src.Height, w, h, k)
	}
	return band.Run(ctx, h, opts.Workers, func(ctx context.Context, y0, y1 int) error {
		f, err := frame.New(src, space, frame.Options{
			StartY: y0*ry + ry/2,
			OOBX:   opts.OOBX,
			OOBY:   opts.OOBY,
		})
		if err != nil {
			return err
		}
		defer f.Close()

		if debug {
			log.Printf("downscale: band %d-%d, %s rows", y0, y1, f.LoadPath())
		}
		var scratch Scratch[W]
		return band.Rows(ctx, y0, y1, func(y int) error {
			if y > y0 {
				f.MoveDownBy(ry)
			}
			f.SeekToColumn(rx / 2)
			row := dst.Row(y)
			for x := range row {
				if x > 0 {
					f.MoveBy(rx)
				}
				row[x] = Average(f, k, space, &scratch)
			}
			return nil
		})
	})
}

// New allocates the destination for src and runs k over it.
func New[S any, W, K colorspace.Tuple](ctx context.Context, src pixel.Buffer[S], space colorspace.Space[S, W, K], k Kernel, opts Options) (pixel.Buffer[S], error) {
	w, h, err := OutputSize(src.Width, src.Height, k)
	if err != nil {
		return pixel.Buffer[S]{}, err
	}
	dst, err := pixel.NewBuffer[S](w, h)
	if err != nil {
		return pixel.Buffer[S]{}, err
	}
	if err := Run(ctx, dst, src, space, k, opts); err != nil {
		return pixel.Buffer[S]{}, err
	}
	return dst, nil
}
