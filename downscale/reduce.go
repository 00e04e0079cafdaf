package downscale

import (
	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/frame"
)

// Scratch is per-worker state for Reduce. The zero value is ready to use.
type Scratch[W colorspace.Tuple] struct {
	win     Window
	block   [frame.Size * frame.Size]W
	weights [frame.Size * frame.Size]float32
	acc     colorspace.Accumulator[W]
}

// Weights returns the normalized weights of the last Reduce, row-major.
func (s *Scratch[W]) Weights() []float32 {
	return s.weights[:s.win.N*s.win.M]
}

// Reduce reduces the block around the window center of f with kernel k. The
// block's top-left pixel is at offset frame.BlockOrigin of each axis.
func Reduce[S any, W, K colorspace.Tuple](f *frame.Frame[S, W, K], k Kernel, s *Scratch[W]) W {
	if s == nil {
		s = new(Scratch[W])
	}
	n, m := k.Ratio()
	s.win.N, s.win.M = n, m
	block := f.Block(n, m, s.block[:])
	weights := s.weights[:n*m]

	if _, uniform := k.(box); uniform {
		k.Weights(&s.win, weights)
	} else {
		if nb, ok := k.(Neighborhood); ok && nb.Neighborhood() {
			for dy := -frame.Radius; dy <= frame.Radius; dy++ {
				for dx := -frame.Radius; dx <= frame.Radius; dx++ {
					s.win.Luma[(dy+frame.Radius)*frame.Size+dx+frame.Radius] = colorspace.Luma255(f.Work(dx, dy))
				}
			}
		} else {
			x0 := frame.Radius + frame.BlockOrigin(n)
			y0 := frame.Radius + frame.BlockOrigin(m)
			for j := 0; j < m; j++ {
				for i := 0; i < n; i++ {
					s.win.Luma[(y0+j)*frame.Size+x0+i] = colorspace.Luma255(block[j*n+i])
				}
			}
		}
		k.Weights(&s.win, weights)
	}
	Normalize(weights)

	s.acc.Reset()
	for i, w := range weights {
		s.acc.Add(block[i], w)
	}
	if s.acc.Weight() == 0 {
		// Every weight was lost to underflow; fall back to the plain mean.
		for _, c := range block {
			s.acc.AddUnit(c)
		}
	}
	return s.acc.Result()
}

// Average reduces the block around the window center of f and encodes it.
func Average[S any, W, K colorspace.Tuple](f *frame.Frame[S, W, K], k Kernel, enc colorspace.Encoder[W, S], s *Scratch[W]) S {
	return enc.Encode(Reduce(f, k, s))
}
