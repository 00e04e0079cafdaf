// Package draw provides drawing primitives, synthetic test patterns and
// scalers for pixel bitmaps, on top of [image/draw] and
// [golang.org/x/image/draw].
package draw

import (
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Image is an image that can be drawn on, such as a pixel.Bitmap.
type Image = draw.Image

// Op is a Porter-Duff compositing operator.
type Op = draw.Op

// Compositing operators.
const (
	Over = draw.Over
	Src  = draw.Src
)

// Draw composes src onto the part of dst within r, aligning r.Min with sp.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	draw.DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// Interpolator scales images; see [golang.org/x/image/draw.Interpolator].
type Interpolator = xdraw.Interpolator

// Interpolators for Scale, fastest first.
var (
	NearestNeighbor Interpolator = xdraw.NearestNeighbor
	ApproxBiLinear  Interpolator = xdraw.ApproxBiLinear
	BiLinear        Interpolator = xdraw.BiLinear
	CatmullRom      Interpolator = xdraw.CatmullRom
)

var interpolators = map[string]Interpolator{
	"nearest":     NearestNeighbor,
	"approx":      ApproxBiLinear,
	"bilinear":    BiLinear,
	"catmull-rom": CatmullRom,
	"catmullrom":  CatmullRom,
}

// Scale scales the part of src within sr to the part of dst within dr. A nil
// interp uses CatmullRom.
func Scale(dst Image, dr image.Rectangle, src image.Image, sr image.Rectangle, op Op, interp Interpolator) {
	if interp == nil {
		interp = CatmullRom
	}
	interp.Scale(dst, dr, src, sr, op, nil)
}

// ParseInterpolator returns the interpolator by name: "nearest", "approx",
// "bilinear" or "catmull-rom".
func ParseInterpolator(name string) (Interpolator, error) {
	if interp, ok := interpolators[name]; ok {
		return interp, nil
	}
	return nil, fmt.Errorf("draw: unknown interpolator %q", name)
}
