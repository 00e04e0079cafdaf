package pixelcore

import "github.com/BeatGlow/pixelcore/pixel"

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// ParseRotation parses a rotation in degrees or by name.
func ParseRotation(s string) (Rotation, bool) {
	switch s {
	case "", "no", "0":
		return NoRotation, true
	case "90", "right", "cw":
		return Rotate90, true
	case "180", "flip":
		return Rotate180, true
	case "270", "left", "ccw":
		return Rotate270, true
	}
	return NoRotation, false
}

// Rotate returns a rotated copy of buf.
func Rotate[S any](buf pixel.Buffer[S], r Rotation) pixel.Buffer[S] {
	w, h := buf.Width, buf.Height
	if r%2 == 1 {
		w, h = h, w
	}
	out := pixel.Buffer[S]{
		Pix:    make([]S, w*h),
		Width:  w,
		Height: h,
		Stride: w,
	}
	for y := 0; y < buf.Height; y++ {
		for x, v := range buf.Row(y) {
			var dx, dy int
			switch r % 4 {
			case Rotate90:
				dx, dy = buf.Height-1-y, x
			case Rotate180:
				dx, dy = buf.Width-1-x, buf.Height-1-y
			case Rotate270:
				dx, dy = y, buf.Width-1-x
			default:
				dx, dy = x, y
			}
			out.Pix[dy*w+dx] = v
		}
	}
	return out
}
