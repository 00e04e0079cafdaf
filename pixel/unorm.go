package pixel

import "math"

// UNorm32 is a normalized [0,1] value in 0.32 fixed point.
//
// A channel of n bits maps onto the full UNorm32 range, so 0 is 0 and the
// largest n-bit value is [UNormOne] regardless of n.
type UNorm32 uint32

// Range limits.
const (
	UNormZero UNorm32 = 0
	UNormOne  UNorm32 = math.MaxUint32
	UNormHalf UNorm32 = 1 << 31
)

// FromBits scales the n-bit channel value v to UNorm32. Values above the n-bit
// maximum saturate.
func FromBits(v uint32, n uint) UNorm32 {
	switch {
	case n == 0:
		return UNormZero
	case n >= 32:
		return UNorm32(v)
	}
	max := uint64(1)<<n - 1
	x := min(uint64(v), max)
	return UNorm32((x*math.MaxUint32 + max/2) / max)
}

// Bits scales u to an n-bit channel value. Bits(FromBits(v, n), n) == v for
// every v that fits in n bits.
func (u UNorm32) Bits(n uint) uint32 {
	switch {
	case n == 0:
		return 0
	case n >= 32:
		return uint32(u)
	}
	max := uint64(1)<<n - 1
	return uint32((uint64(u)*max + math.MaxUint32/2) / math.MaxUint32)
}

// FromUint8 is shorthand for FromBits(v, 8).
func FromUint8(v uint8) UNorm32 {
	return UNorm32(uint32(v) * 0x01010101)
}

// FromUint16 is shorthand for FromBits(v, 16).
func FromUint16(v uint16) UNorm32 {
	return UNorm32(uint32(v) * 0x00010001)
}

// Uint8 is shorthand for u.Bits(8).
func (u UNorm32) Uint8() uint8 {
	return uint8(u.Bits(8))
}

// Uint16 is shorthand for u.Bits(16).
func (u UNorm32) Uint16() uint16 {
	return uint16(u.Bits(16))
}

// FromFloat converts f in [0,1] to UNorm32. Out of range values are clamped,
// NaN and -Inf become 0 and +Inf becomes [UNormOne].
func FromFloat(f float32) UNorm32 {
	switch {
	case !(f > 0): // also catches NaN
		return UNormZero
	case f >= 1:
		return UNormOne
	}
	return UNorm32(float64(f)*math.MaxUint32 + 0.5)
}

// Float returns u as a float32 in [0,1].
func (u UNorm32) Float() float32 {
	return float32(float64(u) / math.MaxUint32)
}

// lumaOf computes the Rec. 601 luma of normalized r, g, b, with the same
// weights image/color uses for Gray models.
func lumaOf(r, g, b UNorm32) UNorm32 {
	return UNorm32((299*uint64(r) + 587*uint64(g) + 114*uint64(b) + 500) / 1000)
}

func grayNormalized(y UNorm32) [4]UNorm32 {
	return [4]UNorm32{y, y, y, UNormOne}
}
