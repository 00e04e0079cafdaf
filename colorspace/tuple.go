package colorspace

import "math"

// Tuple is the constraint for Working and Key colors: three components and
// alpha. Three-component colors carry alpha 1.
type Tuple interface {
	~[4]float32
}

// Linear is linear-light RGB with straight alpha.
type Linear [4]float32

// Gamma is non-linear (gamma encoded) RGB with straight alpha, the channels
// exactly as stored, scaled to [0,1].
type Gamma [4]float32

// Oklab is the Oklab perceptual space: lightness, a, b and alpha.
type Oklab [4]float32

// Alpha returns the alpha component.
func Alpha[W Tuple](w W) float32 {
	return w[3]
}

// Opaque returns a three-component color with alpha 1.
func Opaque[W Tuple](c1, c2, c3 float32) W {
	return W{c1, c2, c3, 1}
}

// Lerp interpolates between a and b, t in [0,1].
func Lerp[W Tuple](a, b W, t float32) W {
	var r W
	for i := range r {
		r[i] = a[i] + (b[i]-a[i])*t
	}
	return r
}

// Finite reports whether all components are finite.
func Finite[W Tuple](w W) bool {
	for _, c := range w {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}

// Clamp01 clamps every component to [0,1]; NaN becomes 0.
func Clamp01[W Tuple](w W) W {
	for i, c := range w {
		w[i] = clamp01(c)
	}
	return w
}

func clamp01(c float32) float32 {
	switch {
	case !(c > 0): // also catches NaN
		return 0
	case c > 1:
		return 1
	}
	return c
}
