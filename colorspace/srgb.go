package colorspace

import (
	"math"

	"github.com/BeatGlow/pixelcore/pixel"
)

// sRGBToLinearLUT provides O(1) decoding of 8-bit channels, which covers
// every channel that is exactly representable in 8 bits.
var sRGBToLinearLUT [256]float32

func init() {
	for i := range sRGBToLinearLUT {
		sRGBToLinearLUT[i] = float32(srgbToLinear(float64(i) / 255))
	}
}

func srgbToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

func linearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

func decodeSRGB(u pixel.UNorm32) float32 {
	if b := u.Uint8(); pixel.FromUint8(b) == u {
		return sRGBToLinearLUT[b]
	}
	return float32(srgbToLinear(float64(u.Float())))
}

// encodeSRGB is exact in float64 so that Decode∘Encode round trips 16-bit
// channels.
func encodeSRGB(l float32) pixel.UNorm32 {
	switch {
	case !(l > 0):
		return pixel.UNormZero
	case l >= 1:
		return pixel.UNormOne
	}
	return pixel.FromFloat(float32(linearToSRGB(float64(l))))
}
