package palette

import "math"

// cube partitions Key components 0..2 into 2^bits cells per axis. Each cell
// lists every palette entry that can be nearest to some point in the cell.
type cube struct {
	bits  int
	lo    [3]float32
	hi    [3]float32
	scale [3]float32

	// Candidates of cell i are list[offs[i]:offs[i+1]], ascending.
	offs []uint32
	list []uint8
}

// Relative slack on the candidate radius against float rounding.
const radiusEpsilon = 1e-4

func buildCube(keys [][4]float32, metric Metric, bits int, lo, hi [4]float32) *cube {
	c := &cube{bits: bits}
	side := 1 << bits
	for a := 0; a < 3; a++ {
		c.lo[a], c.hi[a] = lo[a], hi[a]
		for _, k := range keys {
			c.lo[a] = min(c.lo[a], k[a])
			c.hi[a] = max(c.hi[a], k[a])
		}
		if !(c.hi[a] > c.lo[a]) {
			c.hi[a] = c.lo[a] + 1
		}
		c.scale[a] = float32(side) / (c.hi[a] - c.lo[a])
	}

	var size [3]float32
	for a := range size {
		size[a] = (c.hi[a] - c.lo[a]) / float32(side)
	}

	// A query's alpha may be anywhere in [0,1]; cell centers sit at 0.5.
	origin := [4]float32{0, 0, 0, 0.5}
	diag := metric.Distance(origin, [4]float32{size[0], size[1], size[2], 0.5})
	alphaSlack := metric.Distance(origin, [4]float32{0, 0, 0, 1})
	radius := 2*diag + 2*alphaSlack

	cells := side * side * side
	c.offs = make([]uint32, cells+1)
	dist := make([]float32, len(keys))
	for i := 0; i < cells; i++ {
		center := [4]float32{
			c.lo[0] + (float32(i&(side-1))+0.5)*size[0],
			c.lo[1] + (float32(i>>bits&(side-1))+0.5)*size[1],
			c.lo[2] + (float32(i>>(2*bits))+0.5)*size[2],
			0.5,
		}
		dmin := float32(math.Inf(1))
		for j, k := range keys {
			dist[j] = metric.Distance(center, k)
			dmin = min(dmin, dist[j])
		}
		limit := dmin + radius
		limit += limit*radiusEpsilon + radiusEpsilon
		for j, d := range dist {
			if d <= limit {
				c.list = append(c.list, uint8(j))
			}
		}
		c.offs[i+1] = uint32(len(c.list))
	}
	return c
}

// candidates returns the candidate list for key k. ok is false when there is
// no cube or k lies outside it, and the caller must scan the whole palette.
func (c *cube) candidates(k [4]float32) (list []uint8, ok bool) {
	if c == nil || !(k[3] >= 0 && k[3] <= 1) {
		return nil, false
	}
	side := 1 << c.bits
	cell := 0
	for a := 2; a >= 0; a-- {
		v := k[a]
		if !(v >= c.lo[a] && v <= c.hi[a]) {
			return nil, false
		}
		i := min(int((v-c.lo[a])*c.scale[a]), side-1)
		cell = cell<<c.bits | i
	}
	list = c.list[c.offs[cell]:c.offs[cell+1]]
	return list, len(list) > 0
}

func (c *cube) stats() (cells, maxCandidates int, avg float64) {
	cells = len(c.offs) - 1
	for i := 0; i < cells; i++ {
		maxCandidates = max(maxCandidates, int(c.offs[i+1]-c.offs[i]))
	}
	return cells, maxCandidates, float64(len(c.list)) / float64(cells)
}
