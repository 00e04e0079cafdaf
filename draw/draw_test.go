package draw

import (
	"image"
	"image/color"
	"testing"
)

func TestCheckerboard(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 7, 7))
	Checkerboard(dst, dst.Bounds(), 1, color.White, color.Black)
	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			want := uint8(0)
			if (x+y)%2 == 0 {
				want = 0xff
			}
			if v := dst.GrayAt(x, y).Y; v != want {
				t.Fatalf("pixel (%d,%d) is %#02x, expected %#02x", x, y, v, want)
			}
		}
	}
}

func TestCheckerboardCells(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 8, 8))
	Checkerboard(dst, dst.Bounds(), 4, color.White, color.Black)
	if dst.GrayAt(3, 3).Y != 0xff || dst.GrayAt(4, 3).Y != 0 || dst.GrayAt(4, 4).Y != 0xff {
		t.Error("unexpected 4×4 cell layout")
	}
}

func TestRamp(t *testing.T) {
	dst := image.NewGray16(image.Rect(0, 0, 3, 2))
	Ramp(dst, dst.Bounds(), color.Black, color.White)
	for y := 0; y < 2; y++ {
		for x, want := range []uint16{0, 0x8000, 0xffff} {
			if v := dst.Gray16At(x, y).Y; v != want {
				t.Errorf("pixel (%d,%d) is %#04x, expected %#04x", x, y, v, want)
			}
		}
	}
}

func TestRectangle(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 6, 5))
	Rectangle(dst, image.Rect(1, 1, 5, 4), color.White)
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			edge := (x == 1 || x == 4) && y >= 1 && y <= 3 || (y == 1 || y == 3) && x >= 1 && x <= 4
			if got := dst.GrayAt(x, y).Y == 0xff; got != edge {
				t.Errorf("pixel (%d,%d): set=%t, expected %t", x, y, got, edge)
			}
		}
	}
}

func TestBox(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 4, 4))
	Box(dst, image.Rect(1, 1, 3, 4), color.White)
	count := 0
	for _, v := range dst.Pix {
		if v == 0xff {
			count++
		}
	}
	if count != 6 {
		t.Errorf("expected 6 pixels set, got %d", count)
	}
}

func TestLine(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 4, 4))
	Line(dst, image.Pt(3, 3), image.Pt(0, 0), color.White)
	for i := 0; i < 4; i++ {
		if dst.GrayAt(i, i).Y != 0xff {
			t.Errorf("diagonal pixel (%d,%d) not set", i, i)
		}
	}
}

func TestChart(t *testing.T) {
	dst := image.NewGray(image.Rect(0, 0, 64, 64))
	Chart(dst, dst.Bounds(), color.White, color.Black)
	if dst.GrayAt(0, 0).Y != 0xff || dst.GrayAt(32, 32).Y != 0xff {
		t.Error("expected border and center box to be drawn")
	}
	if dst.GrayAt(3, 10).Y != 0 {
		t.Error("expected background between grid lines")
	}
}

func TestScale(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	Checkerboard(src, src.Bounds(), 2, color.White, color.Black)
	dst := image.NewGray(image.Rect(0, 0, 2, 2))
	Scale(dst, dst.Bounds(), src, src.Bounds(), Src, NearestNeighbor)
	if dst.GrayAt(0, 0).Y != 0xff || dst.GrayAt(1, 0).Y != 0 {
		t.Errorf("unexpected nearest neighbor result %v", dst.Pix)
	}

	// A nil interpolator falls back to CatmullRom.
	flat := image.NewGray(image.Rect(0, 0, 4, 4))
	Draw(flat, flat.Bounds(), image.NewUniform(color.Gray{Y: 0x80}), image.Point{}, Src)
	Scale(dst, dst.Bounds(), flat, flat.Bounds(), Src, nil)
	for i, v := range dst.Pix {
		if v != 0x80 {
			t.Errorf("pixel %d is %#02x after nil interpolator scale, expected 0x80", i, v)
		}
	}

	for _, name := range []string{"nearest", "approx", "bilinear", "catmull-rom"} {
		if _, err := ParseInterpolator(name); err != nil {
			t.Errorf("ParseInterpolator(%q): %v", name, err)
		}
	}
	if _, err := ParseInterpolator("lanczos"); err == nil {
		t.Error("ParseInterpolator(lanczos) succeeded")
	}
}
