package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrDepth is returned for unsupported index depths.
var ErrDepth = errors.New("pixel: index depth must be 1, 2, 4 or 8 bits")

// Indexed is a palette image with indices packed at 1, 2, 4 or 8 bits per
// pixel, most significant bits first.
type Indexed struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the packed palette indices.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int

	// Depth is the number of bits per index.
	Depth int

	// Palette maps indices to colors.
	Palette color.Palette
}

// DepthFor returns the smallest supported depth that can address n colors.
func DepthFor(n int) int {
	switch {
	case n <= 2:
		return 1
	case n <= 4:
		return 2
	case n <= 16:
		return 4
	default:
		return 8
	}
}

// NewIndexed allocates a w×h indexed image of the given depth.
func NewIndexed(w, h, depth int, palette color.Palette) (*Indexed, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, w, h)
	}
	switch depth {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrDepth, depth)
	}
	if len(palette) > 1<<depth {
		return nil, fmt.Errorf("pixel: %d colors do not fit in %d bits per index", len(palette), depth)
	}
	stride := (w*depth + 7) / 8 // round up to whole bytes
	return &Indexed{
		Rect:    image.Rect(0, 0, w, h),
		Pix:     make([]byte, stride*h),
		Stride:  stride,
		Depth:   depth,
		Palette: palette,
	}, nil
}

func (p *Indexed) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Indexed) ColorModel() color.Model {
	return p.Palette
}

func (p *Indexed) locate(x, y int) (index int, shift uint, mask byte) {
	perByte := 8 / p.Depth
	index = (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/perByte
	shift = uint((perByte - 1 - (x-p.Rect.Min.X)%perByte) * p.Depth)
	mask = byte(1<<p.Depth - 1)
	return
}

// ColorIndexAt returns the palette index at (x, y).
func (p *Indexed) ColorIndexAt(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return 0
	}
	index, shift, mask := p.locate(x, y)
	return (p.Pix[index] >> shift) & mask
}

// SetColorIndex stores palette index i at (x, y).
func (p *Indexed) SetColorIndex(x, y int, i uint8) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	index, shift, mask := p.locate(x, y)
	p.Pix[index] = (p.Pix[index] &^ (mask << shift)) | (i&mask)<<shift
}

func (p *Indexed) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) || len(p.Palette) == 0 {
		return color.Transparent
	}
	i := int(p.ColorIndexAt(x, y))
	if i >= len(p.Palette) {
		return color.Transparent
	}
	return p.Palette[i]
}

// Set stores the index of the palette color closest to c.
func (p *Indexed) Set(x, y int, c color.Color) {
	if len(p.Palette) == 0 {
		return
	}
	p.SetColorIndex(x, y, uint8(p.Palette.Index(c)))
}

func (p *Indexed) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func (p *Indexed) Fill(c color.Color) {
	if len(p.Palette) == 0 {
		return
	}
	value := byte(p.Palette.Index(c))
	for bits := p.Depth; bits < 8; bits <<= 1 {
		value |= value << bits
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

var _ image.PalettedImage = (*Indexed)(nil)
