package framebuffer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/BeatGlow/pixelcore/pixel"
)

func testRoundTrip[S Storage[S]](t *testing.T, order binary.ByteOrder, gen func(r *rand.Rand) S) {
	t.Helper()
	r := rand.New(rand.NewPCG(1, 2))
	buf, err := pixel.NewBuffer[S](13, 7)
	if err != nil {
		t.Fatal(err)
	}
	for i := range buf.Pix {
		buf.Pix[i] = gen(r)
	}

	var out bytes.Buffer
	if err := Write(&out, buf, order); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, info, err := Read[S](&out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.Format != FormatOf[S]() || info.Width != 13 || info.Height != 7 {
		t.Errorf("unexpected info %+v", info)
	}
	if diff := cmp.Diff(buf.Pix, got.Pix); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", info.Format, diff)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian, binary.NativeEndian, nil} {
		testRoundTrip(t, order, func(r *rand.Rand) pixel.Mono { return pixel.Mono{On: r.IntN(2) == 1} })
		testRoundTrip(t, order, func(r *rand.Rand) pixel.Gray2 { return pixel.Gray2{Y: uint8(r.IntN(4))} })
		testRoundTrip(t, order, func(r *rand.Rand) pixel.Gray4 { return pixel.Gray4{Y: uint8(r.IntN(16))} })
		testRoundTrip(t, order, func(r *rand.Rand) pixel.Gray16 { return pixel.Gray16{Y: uint16(r.Uint32())} })
		testRoundTrip(t, order, func(r *rand.Rand) pixel.CRGB15 { return pixel.CRGB15{V: uint16(r.IntN(1 << 15))} })
		testRoundTrip(t, order, func(r *rand.Rand) pixel.CRGB16 { return pixel.CRGB16{V: uint16(r.Uint32())} })
		testRoundTrip(t, order, func(r *rand.Rand) pixel.RGB24 {
			return pixel.RGB24{R: uint8(r.Uint32()), G: uint8(r.Uint32()), B: uint8(r.Uint32())}
		})
		testRoundTrip(t, order, func(r *rand.Rand) pixel.RGBA40 { return pixel.RGBA40{V: r.Uint64() & (1<<40 - 1)} })
		testRoundTrip(t, order, func(r *rand.Rand) pixel.RGBA64 {
			return pixel.RGBA64{R: uint16(r.Uint32()), G: uint16(r.Uint32()), B: uint16(r.Uint32()), A: uint16(r.Uint32())}
		})
	}
}

func TestByteOrder(t *testing.T) {
	buf, err := pixel.NewBuffer[pixel.CRGB16](1, 1)
	if err != nil {
		t.Fatal(err)
	}
	buf.Pix[0] = pixel.CRGB16{V: 0x1234}

	for _, test := range []struct {
		order binary.ByteOrder
		want  []byte
	}{
		{binary.BigEndian, []byte{0x12, 0x34}},
		{binary.LittleEndian, []byte{0x34, 0x12}},
	} {
		b := make([]byte, 2)
		putPacked(b, buf.Pix[0].Packed(), isLittle(test.order))
		if !bytes.Equal(b, test.want) {
			t.Errorf("%v: packed %x, expected %x", test.order, b, test.want)
		}
	}
}

func TestReadErrors(t *testing.T) {
	if _, _, err := Read[pixel.Gray8](bytes.NewReader([]byte("not a dump at all"))); !errors.Is(err, ErrMagic) {
		t.Errorf("expected ErrMagic, got %v", err)
	}

	buf, err := pixel.NewBuffer[pixel.Gray8](2, 2)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err = Write(&out, buf, binary.BigEndian); err != nil {
		t.Fatal(err)
	}
	if _, _, err = Read[pixel.RGB24](bytes.NewReader(out.Bytes())); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}

	tests := []struct {
		name string
		h    header
		want error
	}{
		{"huge", header{Width: 0xffffffff, Height: 0xffffffff}, ErrSize},
		{"over limit", header{Width: 1 << 15, Height: 1 << 14}, ErrSize},
		{"empty", header{Width: 0, Height: 4}, ErrSize},
		{"bits per pixel", header{Width: 2, Height: 2, BitsPerPixel: 16}, ErrFormat},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			h := test.h
			h.Magic, h.Version, h.Format = magic, version, uint8(FormatGray8)
			if h.BitsPerPixel == 0 {
				h.BitsPerPixel = 8
			}
			var raw bytes.Buffer
			if err := binary.Write(&raw, binary.LittleEndian, &h); err != nil {
				it.Fatal(err)
			}
			if _, _, err := Read[pixel.Gray8](&raw); !errors.Is(err, test.want) {
				it.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}

	info, err := ReadInfo(bytes.NewReader(out.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if info.Format != FormatGray8 || info.BitsPerPixel != 8 || info.Order != binary.BigEndian {
		t.Errorf("unexpected info %+v", info)
	}
}
