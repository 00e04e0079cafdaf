// Package palette finds the nearest palette entry for a Working color.
//
// A Lookup owns an immutable palette, its Key projections, an optional cube
// that narrows the search to a few candidates per Key-space cell, and a
// concurrent cache of answered queries. The result always equals that of a
// full linear scan: the first palette entry with minimal distance wins.
package palette

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/BeatGlow/pixelcore/colorspace"
)

// MaxSize is the largest palette a Lookup accepts.
const MaxSize = 1 << 16

// Defaults.
const (
	DefaultCubeBits        = 4
	DefaultMinCubePalette  = 9
	DefaultMaxCubePalette  = 256
	DefaultMaxCacheEntries = 1 << 16
)

var ErrPaletteSize = errors.New("palette: invalid palette size")

type options struct {
	cubeBits        int
	minCubePalette  int
	maxCubePalette  int
	maxCacheEntries int
}

// Option configures a Lookup.
type Option func(*options)

// WithCubeBits sets the cube resolution per axis, clamped to [1, 6].
func WithCubeBits(bits int) Option {
	return func(o *options) { o.cubeBits = min(max(bits, 1), 6) }
}

// WithCubeRange builds the cube only for palettes with more than lo and at
// most hi entries, hi being capped at 256. WithCubeRange(0, 0) disables the
// cube.
func WithCubeRange(lo, hi int) Option {
	return func(o *options) { o.minCubePalette, o.maxCubePalette = lo, hi }
}

// WithMaxCacheEntries bounds the number of cached queries. Zero disables the
// cache.
func WithMaxCacheEntries(n int) Option {
	return func(o *options) { o.maxCacheEntries = max(n, 0) }
}

// Lookup is a nearest-color search over a fixed palette. It is safe for
// concurrent use.
type Lookup[W, K colorspace.Tuple] struct {
	colors []W
	keys   [][4]float32
	proj   colorspace.Projector[W, K]
	metric Metric
	cube   *cube

	cache      sync.Map // W -> int
	cached     atomic.Int64
	maxEntries int64
}

// Stats describes a Lookup.
type Stats struct {
	Colors        int
	Cells         int
	MaxCandidates int
	AvgCandidates float64
	CacheEntries  int
}

// New builds a lookup over colors, which are copied. Keys are projected with
// proj and compared with metric.
func New[W, K colorspace.Tuple](colors []W, proj colorspace.Projector[W, K], metric Metric, opts ...Option) (*Lookup[W, K], error) {
	if len(colors) == 0 || len(colors) > MaxSize {
		return nil, fmt.Errorf("%w: %d entries", ErrPaletteSize, len(colors))
	}
	o := options{
		cubeBits:        DefaultCubeBits,
		minCubePalette:  DefaultMinCubePalette,
		maxCubePalette:  DefaultMaxCubePalette,
		maxCacheEntries: DefaultMaxCacheEntries,
	}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Lookup[W, K]{
		colors:     append([]W(nil), colors...),
		keys:       make([][4]float32, len(colors)),
		proj:       proj,
		metric:     metric,
		maxEntries: int64(o.maxCacheEntries),
	}
	finite := true
	for i, c := range l.colors {
		l.keys[i] = [4]float32(proj.Project(c))
		finite = finite && colorspace.Finite(l.keys[i])
	}
	if n := len(colors); finite && n > o.minCubePalette && n <= min(o.maxCubePalette, DefaultMaxCubePalette) {
		lo, hi := colorspace.Bounds(proj)
		l.cube = buildCube(l.keys, metric, o.cubeBits, [4]float32(lo), [4]float32(hi))
	}
	for _, c := range l.colors {
		l.FindNearest(c)
	}
	return l, nil
}

// FindNearest returns the index of the palette entry closest to w.
func (l *Lookup[W, K]) FindNearest(w W) int {
	if v, ok := l.cache.Load(w); ok {
		return v.(int)
	}
	k := [4]float32(l.proj.Project(w))
	var i int
	if cands, ok := l.cube.candidates(k); ok {
		i = l.scan(k, cands)
	} else {
		i = l.scanAll(k)
	}
	l.store(w, i)
	return i
}

// Nearest returns the palette entry closest to w.
func (l *Lookup[W, K]) Nearest(w W) W {
	return l.colors[l.FindNearest(w)]
}

// Colors returns a copy of the palette.
func (l *Lookup[W, K]) Colors() []W {
	return append([]W(nil), l.colors...)
}

// Len returns the palette size.
func (l *Lookup[W, K]) Len() int {
	return len(l.colors)
}

// Stats returns the palette, cube and cache sizes.
func (l *Lookup[W, K]) Stats() Stats {
	s := Stats{
		Colors:       len(l.colors),
		CacheEntries: int(l.cached.Load()),
	}
	if l.cube != nil {
		s.Cells, s.MaxCandidates, s.AvgCandidates = l.cube.stats()
	}
	return s
}

func (l *Lookup[W, K]) store(w W, i int) {
	// NaN keys never compare equal and would only grow the map.
	if !colorspace.Finite(w) || l.cached.Load() >= l.maxEntries {
		return
	}
	if _, loaded := l.cache.LoadOrStore(w, i); !loaded {
		l.cached.Add(1)
	}
}

// scan returns the candidate with minimal distance to k. Candidates are in
// ascending palette order, so ties resolve to the first entry.
func (l *Lookup[W, K]) scan(k [4]float32, cands []uint8) int {
	best, bestD := int(cands[0]), l.metric.Distance(k, l.keys[cands[0]])
	for _, c := range cands[1:] {
		if bestD == 0 {
			break
		}
		if d := l.metric.Distance(k, l.keys[c]); d < bestD {
			best, bestD = int(c), d
		}
	}
	return best
}

func (l *Lookup[W, K]) scanAll(k [4]float32) int {
	best, bestD := 0, l.metric.Distance(k, l.keys[0])
	for i := 1; i < len(l.keys) && bestD != 0; i++ {
		if d := l.metric.Distance(k, l.keys[i]); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
