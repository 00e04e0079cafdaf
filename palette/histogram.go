package palette

import (
	"cmp"
	"iter"
	"slices"

	"github.com/samber/lo"

	"github.com/BeatGlow/pixelcore/colorspace"
)

// Entry is a histogram bin.
type Entry[W colorspace.Tuple] struct {
	Color W
	Count uint32
}

// FromHistogram returns the n most frequent colors of hist, most frequent
// first. Equal counts keep their order in hist. Colors must be unique in hist
// and zero counts are skipped.
func FromHistogram[W colorspace.Tuple](hist iter.Seq2[W, uint32], n int) []W {
	var entries []Entry[W]
	for c, count := range hist {
		if count > 0 {
			entries = append(entries, Entry[W]{Color: c, Count: count})
		}
	}
	slices.SortStableFunc(entries, func(a, b Entry[W]) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return lo.Map(entries, func(e Entry[W], _ int) W { return e.Color })
}

// Entries adapts a slice of bins to the sequence FromHistogram takes.
func Entries[W colorspace.Tuple](bins []Entry[W]) iter.Seq2[W, uint32] {
	return func(yield func(W, uint32) bool) {
		for _, b := range bins {
			if !yield(b.Color, b.Count) {
				return
			}
		}
	}
}
