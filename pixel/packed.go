package pixel

// Packer is implemented by storage types that have a canonical packed
// integer form: the channels at their native widths, red in the most
// significant bits, alpha in the least significant ones. Gray types pack Y
// and Mono packs 0 or 1.
type Packer[S any] interface {
	Packed() uint64
	FromPacked(uint64) S
}

// BytesPerPixel is the number of bytes a packed value of s occupies.
func BytesPerPixel[S Storage[S]]() int {
	var s S
	return (s.BitsPerPixel() + 7) / 8
}

func (c Mono) Packed() uint64 {
	if c.On {
		return 1
	}
	return 0
}

func (Mono) FromPacked(v uint64) Mono { return Mono{On: v&1 != 0} }

func (c Gray2) Packed() uint64 { return uint64(c.Y & 3) }

func (Gray2) FromPacked(v uint64) Gray2 { return Gray2{Y: uint8(v & 3)} }

func (c Gray4) Packed() uint64 { return uint64(c.Y & 0xf) }

func (Gray4) FromPacked(v uint64) Gray4 { return Gray4{Y: uint8(v & 0xf)} }

func (c Gray8) Packed() uint64 { return uint64(c.Y) }

func (Gray8) FromPacked(v uint64) Gray8 { return Gray8{Y: uint8(v)} }

func (c Gray16) Packed() uint64 { return uint64(c.Y) }

func (Gray16) FromPacked(v uint64) Gray16 { return Gray16{Y: uint16(v)} }

func (c CRGB15) Packed() uint64 { return uint64(c.V & 0x7fff) }

func (CRGB15) FromPacked(v uint64) CRGB15 { return CRGB15{V: uint16(v & 0x7fff)} }

func (c CRGB16) Packed() uint64 { return uint64(c.V) }

func (CRGB16) FromPacked(v uint64) CRGB16 { return CRGB16{V: uint16(v)} }

func (c RGB24) Packed() uint64 {
	return uint64(c.R)<<16 | uint64(c.G)<<8 | uint64(c.B)
}

func (RGB24) FromPacked(v uint64) RGB24 {
	return RGB24{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func (c RGBA32) Packed() uint64 {
	return uint64(c.R)<<24 | uint64(c.G)<<16 | uint64(c.B)<<8 | uint64(c.A)
}

func (RGBA32) FromPacked(v uint64) RGBA32 {
	return RGBA32{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

func (c RGBA40) Packed() uint64 { return c.V & (1<<40 - 1) }

func (RGBA40) FromPacked(v uint64) RGBA40 { return RGBA40{V: v & (1<<40 - 1)} }

func (c RGBA64) Packed() uint64 {
	return uint64(c.R)<<48 | uint64(c.G)<<32 | uint64(c.B)<<16 | uint64(c.A)
}

func (RGBA64) FromPacked(v uint64) RGBA64 {
	return RGBA64{R: uint16(v >> 48), G: uint16(v >> 32), B: uint16(v >> 16), A: uint16(v)}
}

func isPacker[S Packer[S]]() {}

// Interface checks.
var (
	_ = isPacker[Mono]
	_ = isPacker[Gray2]
	_ = isPacker[Gray4]
	_ = isPacker[Gray8]
	_ = isPacker[Gray16]
	_ = isPacker[CRGB15]
	_ = isPacker[CRGB16]
	_ = isPacker[RGB24]
	_ = isPacker[RGBA32]
	_ = isPacker[RGBA40]
	_ = isPacker[RGBA64]
)
