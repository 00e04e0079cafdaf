// Package quantize reduces images to a palette: it counts colors, derives a
// palette by median cut and remaps pixels through a [palette.Lookup].
package quantize

import (
	"iter"
	"os"

	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/palette"
	"github.com/BeatGlow/pixelcore/pixel"
)

var debug bool

func init() {
	debug = os.Getenv("PIXELCORE_DEBUG") != ""
}

// Histogram counts Working colors in first-seen order.
type Histogram[W colorspace.Tuple] struct {
	index map[W]int
	bins  []palette.Entry[W]
	total uint64
}

// NewHistogram returns an empty histogram.
func NewHistogram[W colorspace.Tuple]() *Histogram[W] {
	return &Histogram[W]{index: make(map[W]int)}
}

// HistogramOf decodes every pixel of src and counts it.
func HistogramOf[S comparable, W colorspace.Tuple](src pixel.Buffer[S], dec colorspace.Decoder[S, W]) *Histogram[W] {
	h := NewHistogram[W]()
	// Decode each distinct storage value once.
	decoded := make(map[S]W)
	for y := 0; y < src.Height; y++ {
		for _, s := range src.Row(y) {
			w, ok := decoded[s]
			if !ok {
				w = dec.Decode(s)
				decoded[s] = w
			}
			h.Add(w, 1)
		}
	}
	return h
}

// Add counts w n times. Non-finite colors are skipped.
func (h *Histogram[W]) Add(w W, n uint32) {
	if n == 0 || !colorspace.Finite(w) {
		return
	}
	if i, ok := h.index[w]; ok {
		h.bins[i].Count += n
	} else {
		h.index[w] = len(h.bins)
		h.bins = append(h.bins, palette.Entry[W]{Color: w, Count: n})
	}
	h.total += uint64(n)
}

// Len returns the number of distinct colors.
func (h *Histogram[W]) Len() int { return len(h.bins) }

// Total returns the number of counted pixels.
func (h *Histogram[W]) Total() uint64 { return h.total }

// Count returns the count of w.
func (h *Histogram[W]) Count(w W) uint32 {
	if i, ok := h.index[w]; ok {
		return h.bins[i].Count
	}
	return 0
}

// All yields colors and counts in first-seen order.
func (h *Histogram[W]) All() iter.Seq2[W, uint32] {
	return palette.Entries(h.bins)
}
