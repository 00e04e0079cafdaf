// Package downscale reduces images by integer ratios with content-aware
// weighting kernels.
//
// A kernel reduces an N×M block (N, M in 2..5) read through a [frame.Frame]
// to one output pixel: it assigns a weight per block pixel from the block's
// luma, the weights are normalized to sum to 1 and the Working colors are
// accumulated and encoded once.
package downscale

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/samber/lo"

	"github.com/BeatGlow/pixelcore/frame"
)

var debug bool

func init() {
	debug = os.Getenv("PIXELCORE_DEBUG") != ""
}

// Supported ratios.
const (
	MinRatio = 2
	MaxRatio = 5
)

// Epsilon guards weight normalization against vanishing denominators.
const Epsilon = 1e-6

// Default strength parameters.
const (
	DefaultEdgeSensitivity = 0.5
	DefaultLambda          = 1.0
	DefaultStructureWeight = 0.5
)

var ErrRatio = errors.New("downscale: ratio must be in [2, 5]")

// Kernel is a weighting strategy.
type Kernel interface {
	// Ratio returns the block size.
	Ratio() (x, y int)

	// Weights fills w[:N*M] with non-negative block weights, row-major.
	// They need not be normalized.
	Weights(win *Window, w []float32)
}

// Neighborhood is implemented by kernels that read luma around the block,
// outside Window.N × Window.M.
type Neighborhood interface {
	Neighborhood() bool
}

// Window is the luma, on a 0..255 scale, of the 5×5 frame window around a
// block of N columns and M rows.
type Window struct {
	// Luma is row-major; the window center is Luma[12].
	Luma [frame.Size * frame.Size]float32

	N, M int
}

// At returns the luma of block pixel (i, j). Coordinates outside the block
// may be used and are clamped to the window.
func (w *Window) At(i, j int) float32 {
	x := min(max(frame.Radius+frame.BlockOrigin(w.N)+i, 0), frame.Size-1)
	y := min(max(frame.Radius+frame.BlockOrigin(w.M)+j, 0), frame.Size-1)
	return w.Luma[y*frame.Size+x]
}

// Mean returns the mean block luma.
func (w *Window) Mean() float32 {
	var sum float32
	for j := 0; j < w.M; j++ {
		for i := 0; i < w.N; i++ {
			sum += w.At(i, j)
		}
	}
	return sum / float32(w.N*w.M)
}

type ratio struct {
	x, y int
}

func newRatio(x, y int) (ratio, error) {
	if x < MinRatio || x > MaxRatio || y < MinRatio || y > MaxRatio {
		return ratio{}, fmt.Errorf("%w: %d×%d", ErrRatio, x, y)
	}
	return ratio{x, y}, nil
}

func (r ratio) Ratio() (x, y int) { return r.x, r.y }

// strength clamps p to [from, to]; NaN yields def.
func strength(p, from, to, def float32) float32 {
	if p != p {
		return def
	}
	return lo.Clamp(p, from, to)
}

type box struct {
	ratio
}

// Box returns the uniform kernel: every pixel weighs 1/(x·y).
func Box(x, y int) (Kernel, error) {
	r, err := newRatio(x, y)
	if err != nil {
		return nil, err
	}
	return box{r}, nil
}

func (k box) Weights(win *Window, w []float32) {
	u := 1 / float32(win.N*win.M)
	for i := range w[:win.N*win.M] {
		w[i] = u
	}
}

func (k box) String() string { return fmt.Sprintf("box %d×%d", k.x, k.y) }

type adaptive struct {
	ratio
	sensitivity float32
}

// Adaptive returns the gradient-adaptive kernel for r×r blocks. Pixels on
// luma edges gain up to edgeSensitivity (clamped to [0, 1]) on top of the
// uniform weight. 3×3 blocks estimate the gradient with a Sobel operator,
// other sizes with central differences.
func Adaptive(r int, edgeSensitivity float32) (Kernel, error) {
	rr, err := newRatio(r, r)
	if err != nil {
		return nil, err
	}
	return adaptive{rr, strength(edgeSensitivity, 0, 1, DefaultEdgeSensitivity)}, nil
}

func (k adaptive) Neighborhood() bool { return true }

func (k adaptive) Weights(win *Window, w []float32) {
	base := 1 / float32(win.N*win.M)
	s := k.sensitivity
	for j := 0; j < win.M; j++ {
		for i := 0; i < win.N; i++ {
			var g float32
			if win.N == 3 && win.M == 3 {
				g = sobel(win, i, j)
			} else {
				g = central(win, i, j)
			}
			w[j*win.N+i] = base + sigmoid(g/255*s*4)*s
		}
	}
}

func (k adaptive) String() string {
	return fmt.Sprintf("adaptive %d×%d s=%.2f", k.x, k.y, k.sensitivity)
}

// central estimates the gradient magnitude at (i, j) from its immediate
// neighbors.
func central(win *Window, i, j int) float32 {
	gx := (win.At(i+1, j) - win.At(i-1, j)) / 2
	gy := (win.At(i, j+1) - win.At(i, j-1)) / 2
	return float32(math.Hypot(float64(gx), float64(gy)))
}

// sobel estimates the gradient magnitude at (i, j) with the 3×3 Sobel
// operator, normalized to the scale of central.
func sobel(win *Window, i, j int) float32 {
	l := func(dx, dy int) float32 { return win.At(i+dx, j+dy) }
	gx := (l(1, -1) + 2*l(1, 0) + l(1, 1)) - (l(-1, -1) + 2*l(-1, 0) + l(-1, 1))
	gy := (l(-1, 1) + 2*l(0, 1) + l(1, 1)) - (l(-1, -1) + 2*l(0, -1) + l(1, -1))
	return float32(math.Hypot(float64(gx), float64(gy))) / 8
}

// sigmoid saturates x to (-1, 1).
func sigmoid(x float32) float32 {
	return x / (1 + abs(x))
}

type dpid struct {
	ratio
	lambda float32
}

// DPID returns the detail-preserving kernel for r×r blocks. A pixel weighs
// 1 + λ·|luma − mean|/128, λ clamped to [0, 2].
func DPID(r int, lambda float32) (Kernel, error) {
	rr, err := newRatio(r, r)
	if err != nil {
		return nil, err
	}
	return dpid{rr, strength(lambda, 0, 2, DefaultLambda)}, nil
}

func (k dpid) Weights(win *Window, w []float32) {
	mean := win.Mean()
	for j := 0; j < win.M; j++ {
		for i := 0; i < win.N; i++ {
			w[j*win.N+i] = 1 + k.lambda*abs(win.At(i, j)-mean)/128
		}
	}
}

func (k dpid) String() string {
	return fmt.Sprintf("dpid %d×%d λ=%.2f", k.x, k.y, k.lambda)
}

type ssim struct {
	ratio
	structure float32
}

// SSIM returns the variance-weighted kernel for r×r blocks. A pixel weighs
// u·(1−s) + s·var/Σvar, with u the uniform weight, var = (luma − mean)² and
// s = structureWeight clamped to [0, 1].
func SSIM(r int, structureWeight float32) (Kernel, error) {
	rr, err := newRatio(r, r)
	if err != nil {
		return nil, err
	}
	return ssim{rr, strength(structureWeight, 0, 1, DefaultStructureWeight)}, nil
}

func (k ssim) Weights(win *Window, w []float32) {
	n := win.N * win.M
	mean := win.Mean()
	var total float32
	for j := 0; j < win.M; j++ {
		for i := 0; i < win.N; i++ {
			d := win.At(i, j) - mean
			w[j*win.N+i] = d * d
			total += d * d
		}
	}
	u := 1 / float32(n)
	s := k.structure
	inv := 1 / (total + Epsilon)
	for i := range w[:n] {
		w[i] = u*(1-s) + s*w[i]*inv
	}
}

func (k ssim) String() string {
	return fmt.Sprintf("ssim %d×%d s=%.2f", k.x, k.y, k.structure)
}

// Normalize scales w to sum to 1. Negative and NaN weights count as 0; when
// the sum vanishes every weight becomes uniform.
func Normalize(w []float32) {
	var sum float32
	for i, v := range w {
		if !(v > 0) || v > math.MaxFloat32 {
			v = 0
			w[i] = 0
		}
		sum += v
	}
	if !(sum >= Epsilon) || sum > math.MaxFloat32 {
		u := 1 / float32(len(w))
		for i := range w {
			w[i] = u
		}
		return
	}
	inv := 1 / sum
	for i := range w {
		w[i] *= inv
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Interface checks.
var (
	_ Kernel       = box{}
	_ Kernel       = adaptive{}
	_ Neighborhood = adaptive{}
	_ Kernel       = dpid{}
	_ Kernel       = ssim{}
)
