package quantize

import (
	"context"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/palette"
	"github.com/BeatGlow/pixelcore/pixel"
)

func TestHistogram(t *testing.T) {
	src, err := pixel.NewBuffer[pixel.Gray8](4, 2)
	require.NoError(t, err)
	for i, v := range []uint8{0, 255, 0, 0, 128, 255, 0, 128} {
		src.Pix[i] = pixel.Gray8{Y: v}
	}
	h := HistogramOf(src, colorspace.Raw[pixel.Gray8]{})
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, uint64(8), h.Total())

	var got []uint32
	for _, n := range h.All() {
		got = append(got, n)
	}
	if diff := cmp.Diff([]uint32{4, 2, 2}, got); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint32(4), h.Count(colorspace.Gamma{0, 0, 0, 1}))
	assert.Zero(t, h.Count(colorspace.Gamma{0.3, 0, 0, 1}))

	nan := float32(math.NaN())
	h.Add(colorspace.Gamma{nan, 0, 0, 1}, 3)
	h.Add(colorspace.Gamma{0, 0, 0, 1}, 0)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, uint64(8), h.Total())
}

func TestMedianCutFewColors(t *testing.T) {
	h := NewHistogram[colorspace.Linear]()
	h.Add(colorspace.Linear{1, 0, 0, 1}, 1)
	h.Add(colorspace.Linear{0, 1, 0, 1}, 5)
	got := MedianCut(h.All(), 4)
	assert.Equal(t, []colorspace.Linear{{0, 1, 0, 1}, {1, 0, 0, 1}}, got)
	assert.Nil(t, MedianCut(h.All(), 0))
	assert.Equal(t, got, VarianceCut(h.All(), 2))
}

func TestVarianceCutClusters(t *testing.T) {
	// Four tight clusters must come out as four palette entries near their
	// centers.
	centers := []colorspace.Linear{
		{0.1, 0.1, 0.1, 1},
		{0.9, 0.1, 0.1, 1},
		{0.1, 0.9, 0.1, 1},
		{0.1, 0.1, 0.9, 1},
	}
	h := NewHistogram[colorspace.Linear]()
	for _, c := range centers {
		for d := float32(-0.02); d <= 0.02; d += 0.01 {
			h.Add(colorspace.Linear{c[0] + d, c[1], c[2] - d, 1}, 10)
		}
	}
	got := VarianceCut(h.All(), 4)
	require.Len(t, got, 4)
	for _, c := range centers {
		found := false
		for _, p := range got {
			if (palette.Euclidean{}).Distance(c, p) < 0.05 {
				found = true
			}
		}
		assert.True(t, found, "no palette entry near %v: %v", c, got)
	}
}

func TestMedianCutWeighted(t *testing.T) {
	h := NewHistogram[colorspace.Linear]()
	h.Add(colorspace.Linear{0, 0, 0, 1}, 1)
	h.Add(colorspace.Linear{0.2, 0.2, 0.2, 1}, 1)
	h.Add(colorspace.Linear{1, 1, 1, 1}, 100)
	got := MedianCut(h.All(), 2)
	require.Len(t, got, 2)
	assert.Contains(t, got, colorspace.Linear{1, 1, 1, 1})
}

func TestRemap(t *testing.T) {
	src, err := pixel.NewBuffer[pixel.RGB24](13, 9)
	require.NoError(t, err)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			src.SetPix(x, y, pixel.RGB24{R: uint8(x * 19), G: uint8(y * 28), B: 0x40})
		}
	}
	space := colorspace.SRGBOklab[pixel.RGB24]{}
	colors := MedianCut(HistogramOf(src, space).All(), 12)
	require.Len(t, colors, 12)

	lookup, err := palette.New(colors, space, palette.Euclidean{})
	require.NoError(t, err)

	pal := make(color.Palette, len(colors))
	for i, c := range colors {
		pal[i] = space.Encode(c)
	}
	dst, err := pixel.NewIndexed(src.Width, src.Height, pixel.DepthFor(len(pal)), pal)
	require.NoError(t, err)
	require.NoError(t, Remap(context.Background(), dst, src, space, lookup, 4))

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			want := lookup.FindNearest(space.Decode(src.PixAt(x, y)))
			require.Equal(t, uint8(want), dst.ColorIndexAt(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestRemapErrors(t *testing.T) {
	src, err := pixel.NewBuffer[pixel.Gray8](4, 4)
	require.NoError(t, err)
	space := colorspace.Raw[pixel.Gray8]{}
	colors := []colorspace.Gamma{{0, 0, 0, 1}, {0.3, 0.3, 0.3, 1}, {0.6, 0.6, 0.6, 1}, {1, 1, 1, 1}}
	lookup, err := palette.New(colors, space, palette.Euclidean{})
	require.NoError(t, err)

	small, err := pixel.NewIndexed(3, 4, 2, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, Remap(context.Background(), small, src, space, lookup, 1), ErrSize)

	mono, err := pixel.NewIndexed(4, 4, 1, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, Remap(context.Background(), mono, src, space, lookup, 1), ErrPalette)
}
