package colorspace

import (
	"math"

	"github.com/BeatGlow/pixelcore/pixel"
)

// Decoder converts Storage to Working.
type Decoder[S any, W Tuple] interface {
	Decode(S) W
}

// Encoder converts Working to Storage. Implementations clamp out of range
// components and encode NaN as 0.
type Encoder[W Tuple, S any] interface {
	Encode(W) S
}

// Projector converts Working to Key.
type Projector[W, K Tuple] interface {
	Project(W) K
}

// Space is the full conversion triad.
type Space[S any, W, K Tuple] interface {
	Decoder[S, W]
	Encoder[W, S]
	Projector[W, K]
}

// IdentityCodec is implemented by spaces whose Storage and Working types are
// the same type and whose Decode and Encode return their argument.
type IdentityCodec interface {
	IdentityCodec()
}

// IdentityProjection is implemented by spaces whose Key and Working types are
// the same type and whose Project returns its argument.
type IdentityProjection interface {
	IdentityProjection()
}

// KeyBounds is implemented by projectors whose Key components 0..2 are not
// confined to [0,1].
type KeyBounds[K Tuple] interface {
	KeyBounds() (lo, hi K)
}

// Bounds returns the Key range of projector p, [0,1] per component unless p
// implements KeyBounds.
func Bounds[W, K Tuple](p Projector[W, K]) (lo, hi K) {
	if b, ok := p.(KeyBounds[K]); ok {
		return b.KeyBounds()
	}
	return K{0, 0, 0, 0}, K{1, 1, 1, 1}
}

// IsIdentityProjection reports whether Project returns its argument
// unchanged, so the Key plane can share the Working plane.
func IsIdentityProjection[W, K Tuple](p Projector[W, K]) bool {
	if _, ok := p.(IdentityProjection); !ok {
		return false
	}
	_, same := any([]W(nil)).([]K)
	return same
}

// IsPassthrough reports whether Decode and Encode are the identity, so rows
// can be copied without conversion.
func IsPassthrough[S any, W Tuple](d Decoder[S, W]) bool {
	if _, ok := d.(IdentityCodec); !ok {
		return false
	}
	_, same := any([]S(nil)).([]W)
	return same
}

// Raw decodes storage channels straight to floats. Working and Key are the
// same Gamma tuple.
type Raw[S pixel.Storage[S]] struct{}

func (Raw[S]) Decode(s S) Gamma {
	n := s.Normalized()
	return Gamma{n[0].Float(), n[1].Float(), n[2].Float(), n[3].Float()}
}

func (Raw[S]) Encode(w Gamma) S {
	var s S
	return s.FromNormalized([4]pixel.UNorm32{
		pixel.FromFloat(w[0]),
		pixel.FromFloat(w[1]),
		pixel.FromFloat(w[2]),
		pixel.FromFloat(w[3]),
	})
}

func (Raw[S]) Project(w Gamma) Gamma { return w }

func (Raw[S]) IdentityProjection() {}

// SRGB decodes sRGB encoded storage to linear light. Working and Key are the
// same Linear tuple.
type SRGB[S pixel.Storage[S]] struct{}

func (SRGB[S]) Decode(s S) Linear {
	n := s.Normalized()
	return Linear{decodeSRGB(n[0]), decodeSRGB(n[1]), decodeSRGB(n[2]), n[3].Float()}
}

func (SRGB[S]) Encode(w Linear) S {
	var s S
	return s.FromNormalized([4]pixel.UNorm32{
		encodeSRGB(w[0]),
		encodeSRGB(w[1]),
		encodeSRGB(w[2]),
		pixel.FromFloat(w[3]),
	})
}

func (SRGB[S]) Project(w Linear) Linear { return w }

func (SRGB[S]) IdentityProjection() {}

// SRGBOklab decodes like SRGB and projects to Oklab for perceptual distance.
type SRGBOklab[S pixel.Storage[S]] struct{}

func (SRGBOklab[S]) Decode(s S) Linear { return SRGB[S]{}.Decode(s) }

func (SRGBOklab[S]) Encode(w Linear) S { return SRGB[S]{}.Encode(w) }

func (SRGBOklab[S]) Project(w Linear) Oklab {
	return LinearToOklab(w)
}

func (SRGBOklab[S]) KeyBounds() (lo, hi Oklab) {
	return Oklab{0, -0.5, -0.5, 0}, Oklab{1, 0.5, 0.5, 1}
}

// Passthrough is the space of buffers that already hold Linear values:
// Storage, Working and Key are all Linear.
type Passthrough struct{}

func (Passthrough) Decode(s Linear) Linear  { return s }
func (Passthrough) Encode(w Linear) Linear  { return w }
func (Passthrough) Project(w Linear) Linear { return w }
func (Passthrough) IdentityCodec()          {}
func (Passthrough) IdentityProjection()     {}

// LinearToOklab projects linear-light RGB to Oklab; alpha is kept.
func LinearToOklab(c Linear) Oklab {
	r, g, b := float64(c[0]), float64(c[1]), float64(c[2])
	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)
	return Oklab{
		float32(0.2104542553*l + 0.7936177850*m - 0.0040720468*s),
		float32(1.9779984951*l - 2.4285922050*m + 0.4505937099*s),
		float32(0.0259040371*l + 0.7827717662*m - 0.8086757660*s),
		c[3],
	}
}

// Interface checks.
var (
	_ Space[pixel.RGBA32, Gamma, Gamma]  = Raw[pixel.RGBA32]{}
	_ Space[pixel.RGB24, Linear, Linear] = SRGB[pixel.RGB24]{}
	_ Space[pixel.RGB24, Linear, Oklab]  = SRGBOklab[pixel.RGB24]{}
	_ Space[Linear, Linear, Linear]      = Passthrough{}
	_ IdentityCodec                      = Passthrough{}
	_ IdentityProjection                 = SRGB[pixel.Gray8]{}
	_ KeyBounds[Oklab]                   = SRGBOklab[pixel.Gray8]{}
)
