package palette

import "math"

// Metric is a distance between Key colors. Implementations must be symmetric,
// non-negative, zero for equal colors and satisfy the triangle inequality.
//
// The cube also assumes the distance depends only on a-b and is a norm of it,
// as for every metric in this package. Disable the cube with
// WithCubeRange(0, 0) for other metrics.
type Metric interface {
	Distance(a, b [4]float32) float32
}

// Euclidean is the L2 distance over all four components.
type Euclidean struct{}

func (Euclidean) Distance(a, b [4]float32) float32 {
	d0, d1, d2, d3 := a[0]-b[0], a[1]-b[1], a[2]-b[2], a[3]-b[3]
	return float32(math.Sqrt(float64(d0*d0 + d1*d1 + d2*d2 + d3*d3)))
}

func (Euclidean) String() string { return "euclidean" }

// Manhattan is the L1 distance over all four components.
type Manhattan struct{}

func (Manhattan) Distance(a, b [4]float32) float32 {
	return abs(a[0]-b[0]) + abs(a[1]-b[1]) + abs(a[2]-b[2]) + abs(a[3]-b[3])
}

func (Manhattan) String() string { return "manhattan" }

// Chebyshev is the L∞ distance over all four components.
type Chebyshev struct{}

func (Chebyshev) Distance(a, b [4]float32) float32 {
	return max(abs(a[0]-b[0]), abs(a[1]-b[1]), abs(a[2]-b[2]), abs(a[3]-b[3]))
}

func (Chebyshev) String() string { return "chebyshev" }

// WeightedEuclidean is the L2 distance with per-component weights. Negative
// weights count as 0.
type WeightedEuclidean struct {
	Weights [4]float32
}

func (m WeightedEuclidean) Distance(a, b [4]float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += max(m.Weights[i], 0) * d * d
	}
	return float32(math.Sqrt(float64(sum)))
}

func (WeightedEuclidean) String() string { return "weighted-euclidean" }

// Perceptual weights for RGB-like keys, after the Rec. 601 luma weights.
var Perceptual = WeightedEuclidean{Weights: [4]float32{0.299, 0.587, 0.114, 1}}

func abs(f float32) float32 {
	return math.Float32frombits(math.Float32bits(f) &^ (1 << 31))
}

// Interface checks.
var (
	_ Metric = Euclidean{}
	_ Metric = Manhattan{}
	_ Metric = Chebyshev{}
	_ Metric = WeightedEuclidean{}
)
