// Package frame implements a sliding 5×5 neighborhood over a pixel buffer.
//
// A Frame keeps five decoded rows of the source in an arena. Every source
// pixel in those rows is decoded and projected once when its row is loaded;
// window reads are plain index arithmetic. Moving down one row rotates the row
// offsets and loads a single new row. Out of bounds pixels are synthesized
// per axis by a [Mode] when a row is loaded, never on read.
//
// A Frame is not safe for concurrent use. Independent frames over the same
// source, typically one per band of rows, may run concurrently.
package frame

import (
	"errors"
	"fmt"

	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/internal/pool"
	"github.com/BeatGlow/pixelcore/internal/simd"
	"github.com/BeatGlow/pixelcore/pixel"
)

// Window geometry.
const (
	Radius = 2
	Size   = 2*Radius + 1
)

// Errors.
var (
	ErrEmpty          = pixel.ErrSize
	ErrStride         = pixel.ErrStride
	ErrBufferTooSmall = pixel.ErrBufferSize
	ErrStartRow       = errors.New("frame: start row outside image")
	ErrMode           = errors.New("frame: invalid out of bounds mode")
	ErrClosed         = errors.New("frame: closed")
)

// Options configure a Frame.
type Options struct {
	// StartY is the row the window is centered on after construction.
	StartY int

	// OOBX and OOBY are the out of bounds policies per axis.
	OOBX, OOBY Mode
}

// DefaultOptions start at the top row and repeat border pixels.
var DefaultOptions = Options{
	OOBX: Constant,
	OOBY: Constant,
}

// Pixel is a buffered Working color with its Key.
type Pixel[W, K colorspace.Tuple] struct {
	Work W
	Key  K
}

type loadPath int

const (
	loadFull loadPath = iota
	loadDecode
	loadCopy
)

var loadPathNames = [...]string{"decode+project", "decode", "copy"}

// Frame is a sliding window over a source buffer of storage type S decoded to
// Working type W and projected to Key type K.
type Frame[S any, W, K colorspace.Tuple] struct {
	src   pixel.Buffer[S]
	space colorspace.Space[S, W, K]
	oobX  Mode
	oobY  Mode

	// padded row length
	stride int

	// Row slots are offsets into the planes, top row first.
	rows [Size]int

	work []W
	key  []K

	path  loadPath
	srcW  []W // src.Pix when S is W
	cx    int
	cy    int
	close func()
}

// New creates a frame over src, centered on (0, opts.StartY).
func New[S any, W, K colorspace.Tuple](src pixel.Buffer[S], space colorspace.Space[S, W, K], opts Options) (*Frame[S, W, K], error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	for _, m := range []Mode{opts.OOBX, opts.OOBY} {
		if m < Constant || m > Transparent {
			return nil, fmt.Errorf("%w: %d", ErrMode, int(m))
		}
	}
	if opts.StartY < 0 || opts.StartY >= src.Height {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrStartRow, opts.StartY, src.Height)
	}

	f := &Frame[S, W, K]{
		src:    src,
		space:  space,
		oobX:   opts.OOBX,
		oobY:   opts.OOBY,
		stride: src.Width + 2*Radius,
	}
	for i := range f.rows {
		f.rows[i] = i * f.stride
	}

	n := Size * f.stride
	wp := pool.For[W]()
	f.work = wp.Get(n)
	if colorspace.IsIdentityProjection[W, K](space) {
		f.key = any(f.work).([]K)
		f.path = loadDecode
		f.close = func() { wp.Put(f.work) }
	} else {
		kp := pool.For[K]()
		f.key = kp.Get(n)
		f.close = func() {
			wp.Put(f.work)
			kp.Put(f.key)
		}
	}
	if f.path == loadDecode && colorspace.IsPassthrough[S, W](space) {
		f.srcW = any(src.Pix).([]W)
		f.path = loadCopy
	}

	f.SeekToRow(opts.StartY)
	return f, nil
}

// Width returns the source width.
func (f *Frame[S, W, K]) Width() int { return f.src.Width }

// Height returns the source height.
func (f *Frame[S, W, K]) Height() int { return f.src.Height }

// X returns the column the window is centered on.
func (f *Frame[S, W, K]) X() int { return f.cx }

// Y returns the row the window is centered on.
func (f *Frame[S, W, K]) Y() int { return f.cy }

// LoadPath describes how rows are loaded: "copy", "decode" or
// "decode+project".
func (f *Frame[S, W, K]) LoadPath() string { return loadPathNames[f.path] }

// SeekToRow centers the window on row y, loading all five rows.
func (f *Frame[S, W, K]) SeekToRow(y int) {
	f.checkOpen()
	f.cy = y
	for i, off := range f.rows {
		f.loadRow(off, y-Radius+i)
	}
}

// MoveDown moves the window one row down. The top row slot is reused for the
// new bottom row; the other four rows are not touched.
func (f *Frame[S, W, K]) MoveDown() {
	f.checkOpen()
	top := f.rows[0]
	copy(f.rows[:], f.rows[1:])
	f.rows[Size-1] = top
	f.cy++
	f.loadRow(top, f.cy+Radius)
}

// MoveDownBy moves the window n rows. Moves of a full window height or more,
// and upward moves, reload all rows.
func (f *Frame[S, W, K]) MoveDownBy(n int) {
	switch {
	case n == 0:
	case n < 0 || n >= Size:
		f.SeekToRow(f.cy + n)
	default:
		for ; n > 0; n-- {
			f.MoveDown()
		}
	}
}

// SeekToColumn centers the window on column x.
func (f *Frame[S, W, K]) SeekToColumn(x int) { f.cx = x }

// MoveRight moves the window one column right.
func (f *Frame[S, W, K]) MoveRight() { f.cx++ }

// MoveBy moves the window dx columns.
func (f *Frame[S, W, K]) MoveBy(dx int) { f.cx += dx }

// index returns the plane index of the window pixel at (dx, dy). Columns
// beyond the padding, which a cursor moved past the image edge reaches, are
// resolved by the column policy; ok is false when that yields no pixel.
func (f *Frame[S, W, K]) index(dx, dy int) (i int, ok bool) {
	if dx < -Radius || dx > Radius || dy < -Radius || dy > Radius {
		panic(fmt.Sprintf("frame: offset (%d, %d) outside window", dx, dy))
	}
	x := f.cx + dx
	if x < -Radius || x >= f.src.Width+Radius {
		if x, ok = f.oobX.Resolve(x, f.src.Width); !ok {
			return 0, false
		}
	}
	return f.rows[dy+Radius] + Radius + x, true
}

// Work returns the Working color at offset (dx, dy) from the window center,
// dx and dy in [-2, 2].
func (f *Frame[S, W, K]) Work(dx, dy int) W {
	i, ok := f.index(dx, dy)
	if !ok {
		var zero W
		return zero
	}
	return f.work[i]
}

// Key returns the Key color at offset (dx, dy) from the window center.
func (f *Frame[S, W, K]) Key(dx, dy int) K {
	i, ok := f.index(dx, dy)
	if !ok {
		var zero K
		return zero
	}
	return f.key[i]
}

// Neighbor returns the Working and Key colors at offset (dx, dy).
func (f *Frame[S, W, K]) Neighbor(dx, dy int) Pixel[W, K] {
	i, ok := f.index(dx, dy)
	if !ok {
		return Pixel[W, K]{}
	}
	return Pixel[W, K]{Work: f.work[i], Key: f.key[i]}
}

// BlockOrigin returns the offset of the top-left pixel of an n-pixel block
// axis when the window is centered on pixel n/2 of that axis.
func BlockOrigin(n int) int {
	return -(n / 2)
}

// Block copies the n×m block (n columns, m rows, both in [1, 5]) around the
// window center into dst in row-major order and returns dst[:n*m]. The block
// starts at BlockOrigin(n), BlockOrigin(m).
func (f *Frame[S, W, K]) Block(n, m int, dst []W) []W {
	if n < 1 || n > Size || m < 1 || m > Size {
		panic(fmt.Sprintf("frame: block %d×%d outside window", n, m))
	}
	dst = dst[:n*m]
	ox, oy := BlockOrigin(n), BlockOrigin(m)
	if x := f.cx + ox; x < -Radius || x+n > f.src.Width+Radius {
		for j := 0; j < m; j++ {
			for i := 0; i < n; i++ {
				dst[j*n+i] = f.Work(ox+i, oy+j)
			}
		}
		return dst
	}
	x0 := Radius + f.cx + ox
	y0 := Radius + oy
	for j := 0; j < m; j++ {
		off := f.rows[y0+j] + x0
		copy(dst[j*n:(j+1)*n], f.work[off:off+n])
	}
	return dst
}

// At decodes and projects the source pixel at (x, y), bypassing the window.
// Coordinates outside the image are resolved by the frame's policies.
func (f *Frame[S, W, K]) At(x, y int) Pixel[W, K] {
	rx, okx := f.oobX.Resolve(x, f.src.Width)
	ry, oky := f.oobY.Resolve(y, f.src.Height)
	if !okx || !oky {
		return Pixel[W, K]{}
	}
	w := f.space.Decode(f.src.Pix[ry*f.src.Stride+rx])
	return Pixel[W, K]{Work: w, Key: f.space.Project(w)}
}

// Close returns the arena to its pool. Close is idempotent; a closed frame
// panics on movement.
func (f *Frame[S, W, K]) Close() error {
	if f.close != nil {
		f.close()
		f.close = nil
		f.work, f.key = nil, nil
	}
	return nil
}

func (f *Frame[S, W, K]) checkOpen() {
	if f.work == nil {
		panic(ErrClosed)
	}
}

// loadRow fills the padded row at plane offset off from source row y.
func (f *Frame[S, W, K]) loadRow(off, y int) {
	work := f.work[off : off+f.stride]
	key := f.key[off : off+f.stride]

	ry, ok := f.oobY.Resolve(y, f.src.Height)
	if !ok {
		clear(work)
		if f.path == loadFull {
			clear(key)
		}
		return
	}

	width := f.src.Width
	start := ry * f.src.Stride
	inner := work[Radius : Radius+width]
	switch f.path {
	case loadCopy:
		copy(inner, f.srcW[start:start+width])
	case loadDecode:
		for i, s := range f.src.Pix[start : start+width] {
			inner[i] = f.space.Decode(s)
		}
	default:
		// Decode a batch, then project it while it is still in cache.
		src := f.src.Pix[start : start+width]
		innerKey := key[Radius : Radius+width]
		for i, j := range simd.Chunks(width) {
			for k, s := range src[i:j] {
				inner[i+k] = f.space.Decode(s)
			}
			for k, w := range inner[i:j] {
				innerKey[i+k] = f.space.Project(w)
			}
		}
	}

	for i := 0; i < Radius; i++ {
		f.pad(work, key, i, i-Radius)
		f.pad(work, key, Radius+width+i, width+i)
	}
}

// pad sets padded slot i of a row to source column x.
func (f *Frame[S, W, K]) pad(work []W, key []K, i, x int) {
	rx, ok := f.oobX.Resolve(x, f.src.Width)
	if !ok {
		var zw W
		work[i] = zw
		if f.path == loadFull {
			var zk K
			key[i] = zk
		}
		return
	}
	work[i] = work[Radius+rx]
	if f.path == loadFull {
		key[i] = key[Radius+rx]
	}
}
