// Package framebuffer stores pixel buffers as raw frame dumps: a fixed
// binary header describing the pixel layout followed by the packed pixels,
// zstd compressed.
package framebuffer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/BeatGlow/pixelcore/pixel"
)

// Errors
var (
	ErrMagic  = errors.New("framebuffer: not a frame dump")
	ErrFormat = errors.New("framebuffer: unsupported pixel format")
	ErrSize   = errors.New("framebuffer: invalid dimensions")
)

// MaxPixels bounds the size of a dump Read accepts.
const MaxPixels = 1 << 28

// Extension is the customary file name extension of frame dumps.
const Extension = ".raw.zst"

var magic = [4]byte{'P', 'X', 'F', 'B'}

const version = 1

// Format identifies the storage type of a dump.
type Format uint8

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatMono
	FormatGray2
	FormatGray4
	FormatGray8
	FormatGray16
	FormatCRGB15
	FormatCRGB16
	FormatRGB24
	FormatRGBA32
	FormatRGBA40
	FormatRGBA64
)

var formatNames = [...]string{
	"unknown", "mono", "gray2", "gray4", "gray8", "gray16",
	"crgb15", "crgb16", "rgb24", "rgba32", "rgba40", "rgba64",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// FormatOf returns the format of storage type S.
func FormatOf[S pixel.Storage[S]]() Format {
	var s S
	switch any(s).(type) {
	case pixel.Mono:
		return FormatMono
	case pixel.Gray2:
		return FormatGray2
	case pixel.Gray4:
		return FormatGray4
	case pixel.Gray8:
		return FormatGray8
	case pixel.Gray16:
		return FormatGray16
	case pixel.CRGB15:
		return FormatCRGB15
	case pixel.CRGB16:
		return FormatCRGB16
	case pixel.RGB24:
		return FormatRGB24
	case pixel.RGBA32:
		return FormatRGBA32
	case pixel.RGBA40:
		return FormatRGBA40
	case pixel.RGBA64:
		return FormatRGBA64
	}
	return FormatUnknown
}

// Info describes a dump.
type Info struct {
	Format        Format
	Width, Height int
	BitsPerPixel  int
	Order         binary.ByteOrder
}

type header struct {
	Magic        [4]byte
	Version      uint8
	Format       uint8
	BitsPerPixel uint8
	LittleEndian uint8
	Width        uint32
	Height       uint32
}

// Storage is the constraint for dumpable storage types.
type Storage[S any] interface {
	pixel.Storage[S]
	pixel.Packer[S]
}

// Write dumps buf to w, packing each pixel into its BytesPerPixel in the given
// byte order. A nil order means big endian.
func Write[S Storage[S]](w io.Writer, buf pixel.Buffer[S], order binary.ByteOrder) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("framebuffer: %w", err)
	}
	format := FormatOf[S]()
	if format == FormatUnknown {
		return ErrFormat
	}
	var zero S
	h := header{
		Magic:        magic,
		Version:      version,
		Format:       uint8(format),
		BitsPerPixel: uint8(zero.BitsPerPixel()),
		Width:        uint32(buf.Width),
		Height:       uint32(buf.Height),
	}
	little := isLittle(order)
	if little {
		h.LittleEndian = 1
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	bpp := pixel.BytesPerPixel[S]()
	row := make([]byte, buf.Width*bpp)
	for y := 0; y < buf.Height; y++ {
		for x, s := range buf.Row(y) {
			putPacked(row[x*bpp:(x+1)*bpp], s.Packed(), little)
		}
		if _, err = enc.Write(row); err != nil {
			_ = enc.Close()
			return err
		}
	}
	return enc.Close()
}

// ReadInfo reads the header of a dump.
func ReadInfo(r io.Reader) (Info, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Info{}, fmt.Errorf("framebuffer: header: %w", err)
	}
	if h.Magic != magic || h.Version != version {
		return Info{}, ErrMagic
	}
	info := Info{
		Format:       Format(h.Format),
		Width:        int(h.Width),
		Height:       int(h.Height),
		BitsPerPixel: int(h.BitsPerPixel),
		Order:        binary.BigEndian,
	}
	if h.LittleEndian != 0 {
		info.Order = binary.LittleEndian
	}
	return info, nil
}

// Read reads a dump of storage type S.
func Read[S Storage[S]](r io.Reader) (pixel.Buffer[S], Info, error) {
	br := bufio.NewReader(r)
	info, err := ReadInfo(br)
	if err != nil {
		return pixel.Buffer[S]{}, info, err
	}
	if want := FormatOf[S](); info.Format != want {
		return pixel.Buffer[S]{}, info, fmt.Errorf("%w: dump is %s, want %s", ErrFormat, info.Format, want)
	}
	var zero S
	if info.BitsPerPixel != zero.BitsPerPixel() {
		return pixel.Buffer[S]{}, info, fmt.Errorf("%w: %s dump with %d bits per pixel", ErrFormat, info.Format, info.BitsPerPixel)
	}
	// Both dimensions fit in 32 bits, so the product cannot overflow uint64.
	if info.Width <= 0 || info.Height <= 0 || uint64(info.Width)*uint64(info.Height) > MaxPixels {
		return pixel.Buffer[S]{}, info, fmt.Errorf("%w: %dx%d", ErrSize, info.Width, info.Height)
	}
	buf, err := pixel.NewBuffer[S](info.Width, info.Height)
	if err != nil {
		return pixel.Buffer[S]{}, info, fmt.Errorf("framebuffer: %w", err)
	}

	dec, err := zstd.NewReader(br)
	if err != nil {
		return pixel.Buffer[S]{}, info, err
	}
	defer dec.Close()

	little := isLittle(info.Order)
	bpp := pixel.BytesPerPixel[S]()
	row := make([]byte, info.Width*bpp)
	for y := 0; y < info.Height; y++ {
		if _, err = io.ReadFull(dec, row); err != nil {
			return pixel.Buffer[S]{}, info, fmt.Errorf("framebuffer: row %d: %w", y, err)
		}
		out := buf.Row(y)
		for x := range out {
			out[x] = zero.FromPacked(getPacked(row[x*bpp:(x+1)*bpp], little))
		}
	}
	return buf, info, nil
}

func isLittle(order binary.ByteOrder) bool {
	if order == nil {
		return false
	}
	var b [2]byte
	order.PutUint16(b[:], 1)
	return b[0] == 1
}

func putPacked(b []byte, v uint64, little bool) {
	n := len(b)
	for i := range b {
		shift := 8 * (n - 1 - i)
		if little {
			shift = 8 * i
		}
		b[i] = byte(v >> shift)
	}
}

func getPacked(b []byte, little bool) (v uint64) {
	n := len(b)
	for i := range b {
		shift := 8 * (n - 1 - i)
		if little {
			shift = 8 * i
		}
		v |= uint64(b[i]) << shift
	}
	return
}
