package draw

import (
	"image"
	"image/color"
)

// Checkerboard fills r with size×size cells alternating between a and b,
// starting with a at r.Min.
func Checkerboard(dst Image, r image.Rectangle, size int, a, b color.Color) {
	if size <= 0 {
		size = 1
	}
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if ((x-r.Min.X)/size+(y-r.Min.Y)/size)%2 == 0 {
				dst.Set(x, y, a)
			} else {
				dst.Set(x, y, b)
			}
		}
	}
}

// Ramp fills r with a horizontal gradient from one color to another, linear in
// the 16-bit straight alpha channel values.
func Ramp(dst Image, r image.Rectangle, from, to color.Color) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	var (
		a = color.NRGBA64Model.Convert(from).(color.NRGBA64)
		b = color.NRGBA64Model.Convert(to).(color.NRGBA64)
		n = max(r.Dx()-1, 1)
	)
	lerp := func(p, q uint16, i int) uint16 {
		return uint16((int(p)*(n-i) + int(q)*i + n/2) / n)
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		i := x - r.Min.X
		c := color.NRGBA64{
			R: lerp(a.R, b.R, i),
			G: lerp(a.G, b.G, i),
			B: lerp(a.B, b.B, i),
			A: lerp(a.A, b.A, i),
		}
		VerticalLine(dst, x, r.Min.Y, r.Dy(), c)
	}
}

// Grid draws horizontal and vertical lines every step pixels.
func Grid(dst Image, r image.Rectangle, step int, c color.Color) {
	if step <= 0 || r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y += step {
		HorizontalLine(dst, r.Min.X, y, r.Dx(), c)
	}
	for x := r.Min.X; x < r.Max.X; x += step {
		VerticalLine(dst, x, r.Min.Y, r.Dy(), c)
	}
}

// Chart draws a resolution chart into r: a background, a border, both
// diagonals, a coarse grid and a solid box in the middle. Downscaling kernels
// treat its thin lines very differently, so it shows resampling artifacts plainly.
func Chart(dst Image, r image.Rectangle, fg, bg color.Color) {
	if r.Empty() {
		return
	}
	Box(dst, r, bg)
	Grid(dst, r, max(r.Dx(), r.Dy())/8, fg)
	Rectangle(dst, r, fg)
	Line(dst, r.Min, r.Max.Sub(image.Pt(1, 1)), fg)
	Line(dst, image.Pt(r.Min.X, r.Max.Y-1), image.Pt(r.Max.X-1, r.Min.Y), fg)
	c := r.Min.Add(r.Size().Div(2))
	q := r.Size().Div(8)
	Box(dst, image.Rectangle{Min: c.Sub(q), Max: c.Add(q)}, fg)
}
