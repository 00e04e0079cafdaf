// Command pixelcore downscales, resizes and quantizes images.
package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/BeatGlow/pixelcore"
	"github.com/BeatGlow/pixelcore/framebuffer"
	"github.com/BeatGlow/pixelcore/internal/simd"
	"github.com/BeatGlow/pixelcore/pixel"
)

var printer = message.NewPrinter(language.English)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var rotation string
	root := &cobra.Command{
		Use:           "pixelcore",
		Short:         "Downscale, resize and quantize images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := pixelcore.ParseRotation(rotation); !ok {
				return fmt.Errorf("unsupported rotation %q", rotation)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&rotation, "rotate", "r", "0", "rotate output (0, 90, 180, 270)")
	root.AddCommand(
		newDownscaleCommand(),
		newResizeCommand(),
		newQuantizeCommand(),
		newPatternCommand(),
		newDumpCommand(),
		newInfoCommand(),
	)
	return root
}

func rotationOf(cmd *cobra.Command) pixelcore.Rotation {
	s, _ := cmd.Flags().GetString("rotate")
	r, _ := pixelcore.ParseRotation(s)
	return r
}

func load(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	printer.Printf("read %s: %s image, %d×%d (%d pixels)\n", name, format,
		img.Bounds().Dx(), img.Bounds().Dy(), img.Bounds().Dx()*img.Bounds().Dy())
	return img, nil
}

// save encodes img by the extension of name: .bmp, .tif, .tiff or png.
func save(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	printer.Printf("wrote %s: %d×%d\n", name, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

// rotated returns img turned by r, converted to storage type S.
func rotated[S pixel.Storage[S]](img image.Image, r pixelcore.Rotation) (image.Image, error) {
	if r == pixelcore.NoRotation {
		return img, nil
	}
	b, err := pixel.BitmapFromImage[S](img)
	if err != nil {
		return nil, err
	}
	return &pixel.Bitmap[S]{Buffer: pixelcore.Rotate(b.Buffer, r)}, nil
}

type dumper func(w io.Writer, img image.Image, r pixelcore.Rotation, order binary.ByteOrder) error

func dumpAs[S framebuffer.Storage[S]](w io.Writer, img image.Image, r pixelcore.Rotation, order binary.ByteOrder) error {
	b, err := pixel.BitmapFromImage[S](img)
	if err != nil {
		return err
	}
	return framebuffer.Write(w, pixelcore.Rotate(b.Buffer, r), order)
}

var dumpers = map[string]dumper{
	framebuffer.FormatMono.String():   dumpAs[pixel.Mono],
	framebuffer.FormatGray2.String():  dumpAs[pixel.Gray2],
	framebuffer.FormatGray4.String():  dumpAs[pixel.Gray4],
	framebuffer.FormatGray8.String():  dumpAs[pixel.Gray8],
	framebuffer.FormatGray16.String(): dumpAs[pixel.Gray16],
	framebuffer.FormatCRGB15.String(): dumpAs[pixel.CRGB15],
	framebuffer.FormatCRGB16.String(): dumpAs[pixel.CRGB16],
	framebuffer.FormatRGB24.String():  dumpAs[pixel.RGB24],
	framebuffer.FormatRGBA32.String(): dumpAs[pixel.RGBA32],
	framebuffer.FormatRGBA40.String(): dumpAs[pixel.RGBA40],
	framebuffer.FormatRGBA64.String(): dumpAs[pixel.RGBA64],
}

func dumpFormats() string {
	names := lo.Keys(dumpers)
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func parseOrder(s string) (binary.ByteOrder, error) {
	switch strings.ToLower(s) {
	case "big", "be":
		return binary.BigEndian, nil
	case "little", "le":
		return binary.LittleEndian, nil
	case "native":
		return binary.NativeEndian, nil
	default:
		return nil, fmt.Errorf("unsupported byte order %q", s)
	}
}

func simdLevel() string {
	return fmt.Sprintf("%s (batch %d)", simd.CurrentLevel(), simd.BatchSize())
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
