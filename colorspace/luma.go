package colorspace

import "math"

// Rec. 709 luma weights.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Luma255 returns the Rec. 709 luma of the first three components on a 0..255
// scale. Non-finite components count as 0.
func Luma255[W Tuple](w W) float32 {
	y := lumaR*finite(w[0]) + lumaG*finite(w[1]) + lumaB*finite(w[2])
	return y * 255
}

func finite(c float32) float32 {
	if c != c || c > math.MaxFloat32 || c < -math.MaxFloat32 {
		return 0
	}
	return c
}
