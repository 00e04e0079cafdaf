package pixel

import "image/color"

// Storage is implemented by every packed pixel type. S is the implementing type
// itself, so generic code can construct an S from the zero value.
type Storage[S any] interface {
	comparable
	color.Color

	// Normalized returns the R, G, B, A channels (straight alpha) as UNorm32.
	Normalized() [4]UNorm32

	// FromNormalized packs straight-alpha R, G, B, A channels into a new S.
	// Channels the type does not store are dropped.
	FromNormalized([4]UNorm32) S

	// BitsPerPixel is the number of significant bits of the packed value.
	BitsPerPixel() int
}

// Convert converts between any two storage types through UNorm32.
func Convert[D Storage[D], S Storage[S]](s S) D {
	var d D
	return d.FromNormalized(s.Normalized())
}

// NormalizedOf returns the straight-alpha channels of any color.Color.
func NormalizedOf(c color.Color) [4]UNorm32 {
	switch c := c.(type) {
	case interface{ Normalized() [4]UNorm32 }:
		return c.Normalized()
	case color.NRGBA:
		return [4]UNorm32{FromUint8(c.R), FromUint8(c.G), FromUint8(c.B), FromUint8(c.A)}
	case color.NRGBA64:
		return [4]UNorm32{FromUint16(c.R), FromUint16(c.G), FromUint16(c.B), FromUint16(c.A)}
	case color.Gray:
		return grayNormalized(FromUint8(c.Y))
	case color.Gray16:
		return grayNormalized(FromUint16(c.Y))
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return [4]UNorm32{}
	}
	if a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return [4]UNorm32{FromBits(r, 16), FromBits(g, 16), FromBits(b, 16), FromBits(a, 16)}
}

// rgbaOf implements color.Color for normalized straight-alpha channels.
func rgbaOf(n [4]UNorm32) (r, g, b, a uint32) {
	a = uint32(n[3].Uint16())
	r = uint32(n[0].Uint16()) * a / 0xffff
	g = uint32(n[1].Uint16()) * a / 0xffff
	b = uint32(n[2].Uint16()) * a / 0xffff
	return
}

func modelOf[S Storage[S]](c color.Color) color.Color {
	if s, ok := c.(S); ok {
		return s
	}
	var s S
	return s.FromNormalized(NormalizedOf(c))
}

// ModelOf returns the color.Model of storage type S.
func ModelOf[S Storage[S]]() color.Model {
	var s S
	if m, ok := models[any(s)]; ok {
		return m
	}
	return color.ModelFunc(modelOf[S])
}

// Models for the storage types.
var (
	MonoModel   color.Model = color.ModelFunc(modelOf[Mono])
	Gray2Model  color.Model = color.ModelFunc(modelOf[Gray2])
	Gray4Model  color.Model = color.ModelFunc(modelOf[Gray4])
	Gray8Model  color.Model = color.ModelFunc(modelOf[Gray8])
	Gray16Model color.Model = color.ModelFunc(modelOf[Gray16])
	CRGB15Model color.Model = color.ModelFunc(modelOf[CRGB15])
	CRGB16Model color.Model = color.ModelFunc(modelOf[CRGB16])
	RGB24Model  color.Model = color.ModelFunc(modelOf[RGB24])
	RGBA32Model color.Model = color.ModelFunc(modelOf[RGBA32])
	RGBA40Model color.Model = color.ModelFunc(modelOf[RGBA40])
	RGBA64Model color.Model = color.ModelFunc(modelOf[RGBA64])
)

// models maps the zero value of each storage type to its shared model, so
// ModelOf hands out comparable model values.
var models = map[any]color.Model{
	Mono{}:   MonoModel,
	Gray2{}:  Gray2Model,
	Gray4{}:  Gray4Model,
	Gray8{}:  Gray8Model,
	Gray16{}: Gray16Model,
	CRGB15{}: CRGB15Model,
	CRGB16{}: CRGB16Model,
	RGB24{}:  RGB24Model,
	RGBA32{}: RGBA32Model,
	RGBA40{}: RGBA40Model,
	RGBA64{}: RGBA64Model,
}

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func (c Mono) Normalized() [4]UNorm32 {
	if c.On {
		return grayNormalized(UNormOne)
	}
	return grayNormalized(UNormZero)
}

// FromNormalized thresholds the luma at one half.
func (Mono) FromNormalized(n [4]UNorm32) Mono {
	return Mono{On: lumaOf(n[0], n[1], n[2]) >= UNormHalf}
}

func (Mono) BitsPerPixel() int { return 1 }

// Gray2 represents a 2-bit grayscale color, Y in [0,3].
type Gray2 struct {
	Y uint8
}

func (c Gray2) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y & 3)
	y |= y << 2
	y |= y << 4
	y |= y << 8
	return y, y, y, 0xffff
}

func (c Gray2) Normalized() [4]UNorm32 {
	return grayNormalized(FromBits(uint32(c.Y&3), 2))
}

func (Gray2) FromNormalized(n [4]UNorm32) Gray2 {
	return Gray2{Y: uint8(lumaOf(n[0], n[1], n[2]).Bits(2))}
}

func (Gray2) BitsPerPixel() int { return 2 }

// Gray4 represents a 4-bit grayscale color, Y in [0,15].
type Gray4 struct {
	Y uint8
}

func (c Gray4) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y & 0xf)
	y |= y << 4
	y |= y << 8
	return y, y, y, 0xffff
}

func (c Gray4) Normalized() [4]UNorm32 {
	return grayNormalized(FromBits(uint32(c.Y&0xf), 4))
}

func (Gray4) FromNormalized(n [4]UNorm32) Gray4 {
	return Gray4{Y: uint8(lumaOf(n[0], n[1], n[2]).Bits(4))}
}

func (Gray4) BitsPerPixel() int { return 4 }

// Gray8 represents an 8-bit grayscale color.
type Gray8 struct {
	Y uint8
}

func (c Gray8) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y)
	y |= y << 8
	return y, y, y, 0xffff
}

func (c Gray8) Normalized() [4]UNorm32 {
	return grayNormalized(FromUint8(c.Y))
}

func (Gray8) FromNormalized(n [4]UNorm32) Gray8 {
	return Gray8{Y: lumaOf(n[0], n[1], n[2]).Uint8()}
}

func (Gray8) BitsPerPixel() int { return 8 }

// Gray16 represents a 16-bit grayscale color.
type Gray16 struct {
	Y uint16
}

func (c Gray16) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y)
	return y, y, y, 0xffff
}

func (c Gray16) Normalized() [4]UNorm32 {
	return grayNormalized(FromUint16(c.Y))
}

func (Gray16) FromNormalized(n [4]UNorm32) Gray16 {
	return Gray16{Y: lumaOf(n[0], n[1], n[2]).Uint16()}
}

func (Gray16) BitsPerPixel() int { return 16 }

// CRGB15 represents a 15-bit 5-5-5 RGB color.
type CRGB15 struct {
	// CIgnore, 1, CRed, 5, CGreen, 5, CBlue, 5
	V uint16
}

func (c CRGB15) RGBA() (r, g, b, a uint32) {
	return rgbaOf(c.Normalized())
}

func (c CRGB15) Normalized() [4]UNorm32 {
	return [4]UNorm32{
		FromBits(uint32(c.V>>10)&0x1f, 5),
		FromBits(uint32(c.V>>5)&0x1f, 5),
		FromBits(uint32(c.V)&0x1f, 5),
		UNormOne,
	}
}

func (CRGB15) FromNormalized(n [4]UNorm32) CRGB15 {
	return CRGB15{uint16(n[0].Bits(5)<<10 | n[1].Bits(5)<<5 | n[2].Bits(5))}
}

func (CRGB15) BitsPerPixel() int { return 15 }

// CRGB16 represents a 16-bit 5-6-5 RGB color.
type CRGB16 struct {
	// CRed, 5, CGreen, 6, CBlue, 5
	V uint16
}

func (c CRGB16) RGBA() (r, g, b, a uint32) {
	return rgbaOf(c.Normalized())
}

func (c CRGB16) Normalized() [4]UNorm32 {
	return [4]UNorm32{
		FromBits(uint32(c.V>>11)&0x1f, 5),
		FromBits(uint32(c.V>>5)&0x3f, 6),
		FromBits(uint32(c.V)&0x1f, 5),
		UNormOne,
	}
}

func (CRGB16) FromNormalized(n [4]UNorm32) CRGB16 {
	return CRGB16{uint16(n[0].Bits(5)<<11 | n[1].Bits(6)<<5 | n[2].Bits(5))}
}

func (CRGB16) BitsPerPixel() int { return 16 }

// RGB24 represents a 24-bit 8-8-8 RGB color.
type RGB24 struct {
	R, G, B uint8
}

func (c RGB24) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xffff
}

func (c RGB24) Normalized() [4]UNorm32 {
	return [4]UNorm32{FromUint8(c.R), FromUint8(c.G), FromUint8(c.B), UNormOne}
}

func (RGB24) FromNormalized(n [4]UNorm32) RGB24 {
	return RGB24{n[0].Uint8(), n[1].Uint8(), n[2].Uint8()}
}

func (RGB24) BitsPerPixel() int { return 24 }

// RGBA32 represents a 32-bit 8-8-8-8 RGBA color with straight alpha, like
// [color.NRGBA].
type RGBA32 struct {
	R, G, B, A uint8
}

func (c RGBA32) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

func (c RGBA32) Normalized() [4]UNorm32 {
	return [4]UNorm32{FromUint8(c.R), FromUint8(c.G), FromUint8(c.B), FromUint8(c.A)}
}

func (RGBA32) FromNormalized(n [4]UNorm32) RGBA32 {
	return RGBA32{n[0].Uint8(), n[1].Uint8(), n[2].Uint8(), n[3].Uint8()}
}

func (RGBA32) BitsPerPixel() int { return 32 }

// RGBA40 represents a 40-bit 10-10-10-10 RGBA color with straight alpha.
type RGBA40 struct {
	// CRed, 10, CGreen, 10, CBlue, 10, CAlpha, 10 in the low 40 bits
	V uint64
}

func (c RGBA40) RGBA() (r, g, b, a uint32) {
	return rgbaOf(c.Normalized())
}

func (c RGBA40) Normalized() [4]UNorm32 {
	return [4]UNorm32{
		FromBits(uint32(c.V>>30)&0x3ff, 10),
		FromBits(uint32(c.V>>20)&0x3ff, 10),
		FromBits(uint32(c.V>>10)&0x3ff, 10),
		FromBits(uint32(c.V)&0x3ff, 10),
	}
}

func (RGBA40) FromNormalized(n [4]UNorm32) RGBA40 {
	return RGBA40{
		uint64(n[0].Bits(10))<<30 |
			uint64(n[1].Bits(10))<<20 |
			uint64(n[2].Bits(10))<<10 |
			uint64(n[3].Bits(10)),
	}
}

func (RGBA40) BitsPerPixel() int { return 40 }

// RGBA64 represents a 64-bit 16-16-16-16 RGBA color with straight alpha, like
// [color.NRGBA64].
type RGBA64 struct {
	R, G, B, A uint16
}

func (c RGBA64) RGBA() (r, g, b, a uint32) {
	return color.NRGBA64(c).RGBA()
}

func (c RGBA64) Normalized() [4]UNorm32 {
	return [4]UNorm32{FromUint16(c.R), FromUint16(c.G), FromUint16(c.B), FromUint16(c.A)}
}

func (RGBA64) FromNormalized(n [4]UNorm32) RGBA64 {
	return RGBA64{n[0].Uint16(), n[1].Uint16(), n[2].Uint16(), n[3].Uint16()}
}

func (RGBA64) BitsPerPixel() int { return 64 }

func isStorage[S Storage[S]]() {}

// Interface checks.
var (
	_ = isStorage[Mono]
	_ = isStorage[Gray2]
	_ = isStorage[Gray4]
	_ = isStorage[Gray8]
	_ = isStorage[Gray16]
	_ = isStorage[CRGB15]
	_ = isStorage[CRGB16]
	_ = isStorage[RGB24]
	_ = isStorage[RGBA32]
	_ = isStorage[RGBA40]
	_ = isStorage[RGBA64]
)
