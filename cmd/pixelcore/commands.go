package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/pixelcore"
	"github.com/BeatGlow/pixelcore/downscale"
	"github.com/BeatGlow/pixelcore/draw"
	"github.com/BeatGlow/pixelcore/frame"
	"github.com/BeatGlow/pixelcore/framebuffer"
	"github.com/BeatGlow/pixelcore/palette"
	"github.com/BeatGlow/pixelcore/pixel"
)

func newKernel(name string, ratio int, strength float32) (downscale.Kernel, error) {
	switch strings.ToLower(name) {
	case "box":
		return downscale.Box(ratio, ratio)
	case "adaptive":
		return downscale.Adaptive(ratio, strength)
	case "dpid":
		return downscale.DPID(ratio, strength)
	case "ssim":
		return downscale.SSIM(ratio, strength)
	default:
		return nil, fmt.Errorf("unsupported kernel %q", name)
	}
}

func newDownscaleCommand() *cobra.Command {
	var (
		kernel   string
		ratio    int
		strength float32
		oobX     string
		oobY     string
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "downscale <input> <output>",
		Short: "Reduce an image by a whole ratio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strength") {
				strength = float32(math.NaN())
			}
			k, err := newKernel(kernel, ratio, strength)
			if err != nil {
				return err
			}
			opts := downscale.Options{Workers: workers}
			if opts.OOBX, err = frame.ParseMode(oobX); err != nil {
				return err
			}
			if opts.OOBY, err = frame.ParseMode(oobY); err != nil {
				return err
			}

			src, err := load(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			out, err := pixelcore.Downscale(cmd.Context(), src, k, opts)
			if err != nil {
				return err
			}
			printer.Printf("%s: %d×%d in %s using %s\n", k, out.Width, out.Height, time.Since(start), simdLevel())

			img, err := rotated[pixel.RGBA64](out, rotationOf(cmd))
			if err != nil {
				return err
			}
			return save(args[1], img)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&kernel, "kernel", "k", "box", "kernel (box, adaptive, dpid, ssim)")
	flags.IntVarP(&ratio, "ratio", "n", 2, "reduction ratio (2 to 5)")
	flags.Float32VarP(&strength, "strength", "s", 0, "kernel strength; unset selects the kernel default")
	flags.StringVar(&oobX, "oob-x", frame.MirrorHalf.String(), "horizontal out of bounds mode")
	flags.StringVar(&oobY, "oob-y", frame.MirrorHalf.String(), "vertical out of bounds mode")
	flags.IntVarP(&workers, "workers", "j", 0, "parallel bands; 0 uses every CPU")
	return cmd
}

func newResizeCommand() *cobra.Command {
	var (
		width, height int
		interp        string
	)
	cmd := &cobra.Command{
		Use:   "resize <input> <output>",
		Short: "Scale an image to an arbitrary size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := draw.ParseInterpolator(interp)
			if err != nil {
				return err
			}
			src, err := load(args[0])
			if err != nil {
				return err
			}
			size := src.Bounds().Size()
			if width <= 0 && height <= 0 {
				return fmt.Errorf("need --width or --height")
			}
			if width <= 0 {
				width = max(1, size.X*height/size.Y)
			}
			if height <= 0 {
				height = max(1, size.Y*width/size.X)
			}
			out, err := pixelcore.Resize(cmd.Context(), src, width, height, in)
			if err != nil {
				return err
			}
			img, err := rotated[pixel.RGBA64](out, rotationOf(cmd))
			if err != nil {
				return err
			}
			return save(args[1], img)
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&width, "width", "W", 0, "output width; 0 keeps the aspect ratio")
	flags.IntVarP(&height, "height", "H", 0, "output height; 0 keeps the aspect ratio")
	flags.StringVarP(&interp, "interpolator", "i", "catmull-rom", "interpolator (nearest, approx, bilinear, catmull-rom)")
	return cmd
}

func parseMetric(name string) (palette.Metric, error) {
	for _, m := range []palette.Metric{
		palette.Euclidean{},
		palette.Manhattan{},
		palette.Chebyshev{},
		palette.Perceptual,
	} {
		if m.(fmt.Stringer).String() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unsupported metric %q", name)
}

func newQuantizeCommand() *cobra.Command {
	var (
		config = pixelcore.DefaultQuantizeConfig
		metric string
	)
	cmd := &cobra.Command{
		Use:   "quantize <input> <output>",
		Short: "Reduce an image to a small palette",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if config.Metric, err = parseMetric(metric); err != nil {
				return err
			}
			src, err := load(args[0])
			if err != nil {
				return err
			}
			start := time.Now()
			out, err := pixelcore.Quantize(cmd.Context(), src, config)
			if err != nil {
				return err
			}
			printer.Printf("%s cut to %d colors at %d bits per pixel in %s\n",
				config.Method, len(out.Palette), out.Depth, time.Since(start))

			img, err := rotated[pixel.RGBA32](out, rotationOf(cmd))
			if err != nil {
				return err
			}
			return save(args[1], img)
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&config.Colors, "colors", "c", config.Colors, "palette size (1 to 256)")
	flags.StringVarP(&config.Method, "method", "m", config.Method, "palette method (median, variance)")
	flags.StringVar(&metric, "metric", "euclidean", "color distance (euclidean, manhattan, chebyshev, weighted-euclidean)")
	flags.IntVarP(&config.Workers, "workers", "j", 0, "parallel bands; 0 uses every CPU")
	return cmd
}

func newPatternCommand() *cobra.Command {
	var (
		kind          string
		width, height int
		cell          int
	)
	cmd := &cobra.Command{
		Use:   "pattern <output>",
		Short: "Render a test pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dst, err := pixel.NewBitmap[pixel.RGBA32](width, height)
			if err != nil {
				return err
			}
			r := dst.Bounds()
			switch kind {
			case "checkerboard":
				draw.Checkerboard(dst, r, cell, color.White, color.Black)
			case "ramp":
				draw.Ramp(dst, r, color.Black, color.White)
			case "grid":
				dst.Fill(color.Black)
				draw.Grid(dst, r, cell, color.White)
			case "chart":
				draw.Chart(dst, r, color.White, color.Black)
			default:
				return fmt.Errorf("unsupported pattern %q", kind)
			}
			img, err := rotated[pixel.RGBA32](dst, rotationOf(cmd))
			if err != nil {
				return err
			}
			return save(args[0], img)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&kind, "kind", "p", "chart", "pattern (checkerboard, ramp, grid, chart)")
	flags.IntVarP(&width, "width", "W", 320, "image width")
	flags.IntVarP(&height, "height", "H", 240, "image height")
	flags.IntVar(&cell, "cell", 8, "checkerboard cell and grid step")
	return cmd
}

func newDumpCommand() *cobra.Command {
	var format, order string
	cmd := &cobra.Command{
		Use:   "dump <input> <output" + framebuffer.Extension + ">",
		Short: "Write an image as a compressed raw frame buffer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, ok := dumpers[format]
			if !ok {
				return fmt.Errorf("unsupported format %q, supported are %s", format, dumpFormats())
			}
			bo, err := parseOrder(order)
			if err != nil {
				return err
			}
			src, err := load(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err = dump(f, src, rotationOf(cmd), bo); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&format, "format", "f", framebuffer.FormatRGB24.String(), "storage format ("+dumpFormats()+")")
	flags.StringVarP(&order, "order", "o", "big", "byte order (big, little, native)")
	return cmd
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>...",
		Short: "Describe images and frame buffer dumps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer.Printf("simd: %s\n", simdLevel())
			for _, name := range args {
				if err := info(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func info(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.HasSuffix(name, framebuffer.Extension) {
		i, err := framebuffer.ReadInfo(f)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		printer.Printf("%s: %s dump, %d×%d, %d bits per pixel, %s\n",
			name, i.Format, i.Width, i.Height, i.BitsPerPixel, i.Order)
		return nil
	}

	c, format, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	printer.Printf("%s: %s image, %d×%d (%d pixels)\n", name, format, c.Width, c.Height, c.Width*c.Height)
	return nil
}
