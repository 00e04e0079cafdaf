package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/pixelcore/draw"
)

// Buffer errors.
var (
	ErrSize       = errors.New("pixel: width and height must be positive")
	ErrStride     = errors.New("pixel: stride is smaller than width")
	ErrBufferSize = errors.New("pixel: buffer too small for dimensions")
)

// Image is a drawable image with whole-image helpers.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer is a flat row-major pixel buffer. S may be any value type: a packed
// storage type, or a float tuple when storage and working space coincide.
type Buffer[S any] struct {
	// Pix are the image pixels.
	Pix []S

	// Width and Height are the image dimensions in pixels.
	Width, Height int

	// Stride is the Pix stride (in pixels) between vertically adjacent pixels.
	// It may exceed Width for row alignment.
	Stride int
}

// NewBuffer allocates a w×h buffer with Stride == w.
func NewBuffer[S any](w, h int) (Buffer[S], error) {
	if w <= 0 || h <= 0 {
		return Buffer[S]{}, fmt.Errorf("%w: %dx%d", ErrSize, w, h)
	}
	return Buffer[S]{
		Pix:    make([]S, w*h),
		Width:  w,
		Height: h,
		Stride: w,
	}, nil
}

// WrapBuffer wraps existing pixels without copying.
func WrapBuffer[S any](pix []S, w, h, stride int) (Buffer[S], error) {
	b := Buffer[S]{Pix: pix, Width: w, Height: h, Stride: stride}
	if err := b.Validate(); err != nil {
		return Buffer[S]{}, err
	}
	return b, nil
}

// Validate checks the dimensions against the backing slice.
func (b Buffer[S]) Validate() error {
	switch {
	case b.Width <= 0 || b.Height <= 0:
		return fmt.Errorf("%w: %dx%d", ErrSize, b.Width, b.Height)
	case b.Stride < b.Width:
		return fmt.Errorf("%w: stride %d, width %d", ErrStride, b.Stride, b.Width)
	case len(b.Pix) < (b.Height-1)*b.Stride+b.Width:
		return fmt.Errorf("%w: have %d pixels, need %d", ErrBufferSize, len(b.Pix), (b.Height-1)*b.Stride+b.Width)
	}
	return nil
}

func (b Buffer[S]) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

func (b Buffer[S]) PixOffset(x, y int) int {
	return y*b.Stride + x
}

// Row returns row y limited to Width pixels.
func (b Buffer[S]) Row(y int) []S {
	off := y * b.Stride
	return b.Pix[off : off+b.Width : off+b.Width]
}

// PixAt returns the pixel at (x, y), or the zero value outside the buffer.
func (b Buffer[S]) PixAt(x, y int) S {
	if uint(x) >= uint(b.Width) || uint(y) >= uint(b.Height) {
		var zero S
		return zero
	}
	return b.Pix[y*b.Stride+x]
}

// SetPix sets the pixel at (x, y); out of bounds writes are ignored.
func (b Buffer[S]) SetPix(x, y int, v S) {
	if uint(x) >= uint(b.Width) || uint(y) >= uint(b.Height) {
		return
	}
	b.Pix[y*b.Stride+x] = v
}

// Rows returns the sub-buffer of rows [y0, y1), sharing pixels with b.
func (b Buffer[S]) Rows(y0, y1 int) Buffer[S] {
	y0 = max(y0, 0)
	y1 = min(y1, b.Height)
	if y1 <= y0 {
		return Buffer[S]{Width: b.Width, Stride: b.Stride}
	}
	return Buffer[S]{
		Pix:    b.Pix[y0*b.Stride : (y1-1)*b.Stride+b.Width],
		Width:  b.Width,
		Height: y1 - y0,
		Stride: b.Stride,
	}
}

// FillPix sets every pixel to v.
func (b Buffer[S]) FillPix(v S) {
	for y := 0; y < b.Height; y++ {
		row := b.Row(y)
		for i := range row {
			row[i] = v
		}
	}
}

func (b Buffer[S]) Clear() {
	var zero S
	b.FillPix(zero)
}

// Bitmap is a Buffer of a storage type, usable as a [draw.Image].
type Bitmap[S Storage[S]] struct {
	Buffer[S]
}

// NewBitmap allocates a w×h bitmap.
func NewBitmap[S Storage[S]](w, h int) (*Bitmap[S], error) {
	b, err := NewBuffer[S](w, h)
	if err != nil {
		return nil, err
	}
	return &Bitmap[S]{Buffer: b}, nil
}

func (p *Bitmap[S]) ColorModel() color.Model {
	return ModelOf[S]()
}

func (p *Bitmap[S]) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Bounds()) {
		return color.Transparent
	}
	return p.Pix[y*p.Stride+x]
}

func (p *Bitmap[S]) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Bounds()) {
		return
	}
	p.Pix[y*p.Stride+x] = modelOf[S](c).(S)
}

func (p *Bitmap[S]) Fill(c color.Color) {
	p.FillPix(modelOf[S](c).(S))
}

// BitmapFromImage converts any image into a new bitmap of storage type S.
func BitmapFromImage[S Storage[S]](src image.Image) (*Bitmap[S], error) {
	r := src.Bounds()
	dst, err := NewBitmap[S](r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst, nil
}

// Interface checks.
var (
	_ Image = (*Bitmap[RGBA32])(nil)
	_ Image = (*Bitmap[Gray4])(nil)
	_ Image = (*Indexed)(nil)
)
