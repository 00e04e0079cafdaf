package colorspace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/pixelcore/pixel"
)

var nan = float32(math.NaN())

func TestAccumulator(t *testing.T) {
	var acc Accumulator[Linear]
	assert.Equal(t, Linear{}, acc.Result(), "empty accumulator")

	acc.Add(Linear{1, 0, 0, 1}, 3)
	acc.Add(Linear{0, 1, 0, 1}, 1)
	acc.Add(Linear{9, 9, 9, 9}, 0)
	acc.Add(Linear{9, 9, 9, 9}, -1)
	acc.Add(Linear{9, 9, 9, 9}, nan)
	assert.InDelta(t, 4, acc.Weight(), 1e-6)

	r := acc.Result()
	assert.InDelta(t, 0.75, r[0], 1e-6)
	assert.InDelta(t, 0.25, r[1], 1e-6)
	assert.InDelta(t, 0, r[2], 1e-6)
	assert.InDelta(t, 1, r[3], 1e-6)

	acc.Reset()
	acc.AddUnit(Linear{0.5, 0.5, 0.5, 1})
	acc.AddUnit(Linear{1, 1, 1, 1})
	assert.InDelta(t, 0.75, acc.Result()[0], 1e-6)
}

func TestLuma255(t *testing.T) {
	assert.InDelta(t, 255, Luma255(Linear{1, 1, 1, 1}), 1e-3)
	assert.InDelta(t, 0, Luma255(Gamma{0, 0, 0, 1}), 1e-6)
	assert.InDelta(t, 0.7152*255, Luma255(Linear{nan, 1, 0, 1}), 1e-3)
}

func TestLerpAndClamp(t *testing.T) {
	assert.Equal(t, Linear{0.5, 0.5, 0.5, 1}, Lerp(Linear{0, 0, 0, 1}, Linear{1, 1, 1, 1}, 0.5))
	assert.Equal(t, Gamma{0, 1, 0.25, 0}, Clamp01(Gamma{-1, 2, 0.25, nan}))
	assert.True(t, Finite(Linear{1, 2, 3, 4}))
	assert.False(t, Finite(Linear{1, nan, 3, 4}))
	assert.False(t, Finite(Linear{1, float32(math.Inf(1)), 3, 4}))
	assert.Equal(t, Oklab{0.5, 0, 0, 1}, Opaque[Oklab](0.5, 0, 0))
}

func testSpaceRoundTrip[S pixel.Storage[S], W, K Tuple](t *testing.T, cs Space[S, W, K], n int, gen func(int) S) {
	t.Helper()
	for i := 0; i < n; i++ {
		p := gen(i)
		if got := cs.Encode(cs.Decode(p)); got != p {
			t.Fatalf("%T: Encode(Decode(%+v)) = %+v", cs, p, got)
		}
	}
}

func TestRawRoundTrip(t *testing.T) {
	testSpaceRoundTrip[pixel.Gray16, Gamma, Gamma](t, Raw[pixel.Gray16]{}, 1<<16, func(i int) pixel.Gray16 { return pixel.Gray16{Y: uint16(i)} })
	testSpaceRoundTrip[pixel.CRGB16, Gamma, Gamma](t, Raw[pixel.CRGB16]{}, 1<<16, func(i int) pixel.CRGB16 { return pixel.CRGB16{V: uint16(i)} })
	testSpaceRoundTrip[pixel.RGBA32, Gamma, Gamma](t, Raw[pixel.RGBA32]{}, 1<<16, func(i int) pixel.RGBA32 {
		return pixel.RGBA32{uint8(i), uint8(i >> 8), uint8(i * 7), uint8(i >> 4)}
	})
	testSpaceRoundTrip[pixel.RGBA40, Gamma, Gamma](t, Raw[pixel.RGBA40]{}, 1<<16, func(i int) pixel.RGBA40 {
		return pixel.RGBA40{V: uint64(i)*0x9e3779b97 & (1<<40 - 1)}
	})
}

func TestSRGBRoundTrip(t *testing.T) {
	testSpaceRoundTrip[pixel.Gray8, Linear, Linear](t, SRGB[pixel.Gray8]{}, 256, func(i int) pixel.Gray8 { return pixel.Gray8{Y: uint8(i)} })
	testSpaceRoundTrip[pixel.Gray16, Linear, Linear](t, SRGB[pixel.Gray16]{}, 1<<16, func(i int) pixel.Gray16 { return pixel.Gray16{Y: uint16(i)} })
	testSpaceRoundTrip[pixel.CRGB15, Linear, Linear](t, SRGB[pixel.CRGB15]{}, 1<<15, func(i int) pixel.CRGB15 { return pixel.CRGB15{V: uint16(i)} })
	testSpaceRoundTrip[pixel.RGBA64, Linear, Oklab](t, SRGBOklab[pixel.RGBA64]{}, 1<<16, func(i int) pixel.RGBA64 {
		return pixel.RGBA64{uint16(i), uint16(i * 31), uint16(i * 97), uint16(i * 13)}
	})
}

func TestEncodeClamps(t *testing.T) {
	cs := Raw[pixel.RGBA32]{}
	tests := []struct {
		in   Gamma
		want pixel.RGBA32
	}{
		{Gamma{2, -1, 0.5, 1}, pixel.RGBA32{0xff, 0, 0x80, 0xff}},
		{Gamma{nan, nan, nan, nan}, pixel.RGBA32{}},
		{Gamma{float32(math.Inf(1)), float32(math.Inf(-1)), 0, 1}, pixel.RGBA32{0xff, 0, 0, 0xff}},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, cs.Encode(test.in), "Encode(%v)", test.in)
	}

	srgb := SRGB[pixel.RGB24]{}
	assert.Equal(t, pixel.RGB24{0xff, 0, 0}, srgb.Encode(Linear{5, nan, -3, 1}))
}

func TestSRGBDecode(t *testing.T) {
	cs := SRGB[pixel.Gray8]{}
	assert.InDelta(t, 0.2158605, cs.Decode(pixel.Gray8{Y: 128})[0], 1e-5)
	assert.Equal(t, float32(1), cs.Decode(pixel.Gray8{Y: 255})[0])
	assert.Equal(t, float32(1), cs.Decode(pixel.Gray8{Y: 7})[3], "alpha stays linear")
}

func TestOklab(t *testing.T) {
	white := LinearToOklab(Linear{1, 1, 1, 0.5})
	assert.InDelta(t, 1, white[0], 1e-3)
	assert.InDelta(t, 0, white[1], 1e-3)
	assert.InDelta(t, 0, white[2], 1e-3)
	assert.Equal(t, float32(0.5), white[3])

	black := LinearToOklab(Linear{0, 0, 0, 1})
	assert.InDelta(t, 0, black[0], 1e-6)
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds[Linear, Linear](SRGB[pixel.RGB24]{})
	assert.Equal(t, Linear{0, 0, 0, 0}, lo)
	assert.Equal(t, Linear{1, 1, 1, 1}, hi)

	olo, ohi := Bounds[Linear, Oklab](SRGBOklab[pixel.RGB24]{})
	require.Less(t, olo[1], float32(0))
	require.Greater(t, ohi[1], float32(0))
}

func TestIdentity(t *testing.T) {
	assert.True(t, IsIdentityProjection[Linear, Linear](SRGB[pixel.RGB24]{}))
	assert.True(t, IsIdentityProjection[Gamma, Gamma](Raw[pixel.RGB24]{}))
	assert.False(t, IsIdentityProjection[Linear, Oklab](SRGBOklab[pixel.RGB24]{}))
	assert.True(t, IsIdentityProjection[Linear, Linear](Passthrough{}))

	assert.True(t, IsPassthrough[Linear, Linear](Passthrough{}))
	assert.False(t, IsPassthrough[pixel.RGB24, Linear](SRGB[pixel.RGB24]{}))
}
