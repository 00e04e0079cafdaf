package quantize

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/BeatGlow/pixelcore/colorspace"
	"github.com/BeatGlow/pixelcore/palette"
)

type cutBox[W colorspace.Tuple] struct {
	entries []palette.Entry[W]
	axis    int
	extent  float32
}

func newCutBox[W colorspace.Tuple](entries []palette.Entry[W]) cutBox[W] {
	b := cutBox[W]{entries: entries}
	for a := 0; a < 4; a++ {
		low, high := entries[0].Color[a], entries[0].Color[a]
		for _, e := range entries[1:] {
			low = min(low, e.Color[a])
			high = max(high, e.Color[a])
		}
		if d := high - low; d > b.extent {
			b.axis, b.extent = a, d
		}
	}
	return b
}

// sortAxis orders b's entries along its widest axis and returns the total
// count.
func (b cutBox[W]) sortAxis() uint64 {
	slices.SortStableFunc(b.entries, func(x, y palette.Entry[W]) int {
		return cmp.Compare(x.Color[b.axis], y.Color[b.axis])
	})
	var total uint64
	for _, e := range b.entries {
		total += uint64(e.Count)
	}
	return total
}

// medianSplit returns the cut index at the count-weighted median.
func medianSplit[W colorspace.Tuple](b cutBox[W]) int {
	total := b.sortAxis()
	var acc uint64
	cut := 1
	for i, e := range b.entries[:len(b.entries)-1] {
		acc += uint64(e.Count)
		cut = i + 1
		if 2*acc >= total {
			break
		}
	}
	return cut
}

// varianceSplit returns the cut index that minimizes the summed
// count-weighted squared deviation of both halves along the axis.
func varianceSplit[W colorspace.Tuple](b cutBox[W]) int {
	b.sortAxis()
	var n, sum, sq float64
	for _, e := range b.entries {
		v, c := float64(e.Color[b.axis]), float64(e.Count)
		n += c
		sum += c * v
		sq += c * v * v
	}
	best, bestSSE := 1, math.Inf(1)
	var ln, lsum, lsq float64
	for i, e := range b.entries[:len(b.entries)-1] {
		v, c := float64(e.Color[b.axis]), float64(e.Count)
		ln += c
		lsum += c * v
		lsq += c * v * v
		rn, rsum, rsq := n-ln, sum-lsum, sq-lsq
		if sse := (lsq - lsum*lsum/ln) + (rsq - rsum*rsum/rn); sse < bestSSE {
			best, bestSSE = i+1, sse
		}
	}
	return best
}

func (b cutBox[W]) mean() W {
	var acc colorspace.Accumulator[W]
	for _, e := range b.entries {
		acc.Add(e.Color, float32(e.Count))
	}
	return acc.Result()
}

// MedianCut derives a palette of at most n colors from a histogram. The box
// with the widest component, alpha included, is split at the count-weighted
// median of that component until there are n boxes or no box can be split;
// each box yields its count-weighted mean. When the histogram has at most n
// colors they are returned as is, most frequent first.
func MedianCut[W colorspace.Tuple](hist iter.Seq2[W, uint32], n int) []W {
	return cut(hist, n, medianSplit[W])
}

// VarianceCut is MedianCut with boxes split where the squared deviation
// along the widest component is least, which keeps clusters together.
func VarianceCut[W colorspace.Tuple](hist iter.Seq2[W, uint32], n int) []W {
	return cut(hist, n, varianceSplit[W])
}

func cut[W colorspace.Tuple](hist iter.Seq2[W, uint32], n int, split func(cutBox[W]) int) []W {
	if n <= 0 {
		return nil
	}
	var entries []palette.Entry[W]
	for c, count := range hist {
		if count > 0 {
			entries = append(entries, palette.Entry[W]{Color: c, Count: count})
		}
	}
	if len(entries) <= n {
		return palette.FromHistogram(palette.Entries(entries), n)
	}

	boxes := []cutBox[W]{newCutBox(entries)}
	for len(boxes) < n {
		i := -1
		for j, b := range boxes {
			if len(b.entries) > 1 && b.extent > 0 && (i < 0 || b.extent > boxes[i].extent) {
				i = j
			}
		}
		if i < 0 {
			break
		}
		b := boxes[i]
		k := split(b)
		boxes[i] = newCutBox(b.entries[:k])
		boxes = append(boxes, newCutBox(b.entries[k:]))
	}
	return lo.Map(boxes, func(b cutBox[W], _ int) W { return b.mean() })
}
