package pixelcore

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BeatGlow/pixelcore/downscale"
	"github.com/BeatGlow/pixelcore/draw"
	"github.com/BeatGlow/pixelcore/pixel"
)

func TestRotation(t *testing.T) {
	for _, test := range []struct {
		Test string
		Want Rotation
	}{
		{"0", NoRotation},
		{"cw", Rotate90},
		{"flip", Rotate180},
		{"270", Rotate270},
	} {
		t.Run(test.Test, func(it *testing.T) {
			v, ok := ParseRotation(test.Test)
			if !ok || v != test.Want {
				it.Errorf("expected %s, got %s", test.Want, v)
			}
		})
	}
	if _, ok := ParseRotation("45"); ok {
		t.Error("ParseRotation(45) succeeded")
	}
}

func TestRotate(t *testing.T) {
	// 3×2:
	//  0 1 2
	//  3 4 5
	buf := pixel.Buffer[int]{Pix: []int{0, 1, 2, 3, 4, 5}, Width: 3, Height: 2, Stride: 3}
	tests := []struct {
		r    Rotation
		w, h int
		want []int
	}{
		{NoRotation, 3, 2, []int{0, 1, 2, 3, 4, 5}},
		{Rotate90, 2, 3, []int{3, 0, 4, 1, 5, 2}},
		{Rotate180, 3, 2, []int{5, 4, 3, 2, 1, 0}},
		{Rotate270, 2, 3, []int{2, 5, 1, 4, 0, 3}},
	}
	for _, test := range tests {
		got := Rotate(buf, test.r)
		if got.Width != test.w || got.Height != test.h {
			t.Errorf("%s: size %dx%d, expected %dx%d", test.r, got.Width, got.Height, test.w, test.h)
		}
		if diff := cmp.Diff(test.want, got.Pix); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", test.r, diff)
		}
	}
}

func checkerboard(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	draw.Checkerboard(img, img.Bounds(), 1, color.White, color.Black)
	return img
}

func TestDownscale(t *testing.T) {
	k, err := downscale.Box(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Downscale(context.Background(), checkerboard(8, 6), k, downscale.DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 4 || out.Height != 3 {
		t.Fatalf("unexpected size %dx%d", out.Width, out.Height)
	}
	first := out.Pix[0]
	for _, p := range out.Pix {
		if p != first {
			t.Fatalf("expected uniform output, got %v and %v", first, p)
		}
	}
	// Linear light mean of black and white is brighter than gamma mid-gray.
	if first.R <= 0x8000 || first.R != first.G || first.A != 0xffff {
		t.Errorf("unexpected gray %+v", first)
	}
}

func TestResize(t *testing.T) {
	src := checkerboard(9, 9)
	out, err := Resize(context.Background(), src, 3, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Errorf("unexpected bounds %v", out.Bounds())
	}

	out, err = Resize(context.Background(), src, 4, 5, draw.ApproxBiLinear)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 4, 5) {
		t.Errorf("unexpected bounds %v", out.Bounds())
	}

	if _, err = Resize(context.Background(), src, 0, 5, nil); !errors.Is(err, ErrSize) {
		t.Errorf("expected ErrSize, got %v", err)
	}
}

func TestQuantize(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	draw.Ramp(src, src.Bounds(), color.NRGBA{R: 0xff, A: 0xff}, color.NRGBA{B: 0xff, A: 0xff})

	for _, method := range []string{MedianCut, VarianceCut} {
		config := DefaultQuantizeConfig
		config.Colors = 4
		config.Method = method
		out, err := Quantize(context.Background(), src, config)
		if err != nil {
			t.Fatalf("%s: %v", method, err)
		}
		if len(out.Palette) != 4 || out.Depth != 2 {
			t.Errorf("%s: %d colors at depth %d", method, len(out.Palette), out.Depth)
		}
		// Left edge and right edge map to different entries.
		if out.ColorIndexAt(0, 0) == out.ColorIndexAt(15, 0) {
			t.Errorf("%s: red and blue share index %d", method, out.ColorIndexAt(0, 0))
		}
	}

	config := DefaultQuantizeConfig
	config.Colors = 0
	if _, err := Quantize(context.Background(), src, config); !errors.Is(err, ErrColors) {
		t.Errorf("expected ErrColors, got %v", err)
	}
	config = DefaultQuantizeConfig
	config.Method = "octree"
	if _, err := Quantize(context.Background(), src, config); !errors.Is(err, ErrMethod) {
		t.Errorf("expected ErrMethod, got %v", err)
	}
}
