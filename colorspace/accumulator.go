package colorspace

// Accumulator sums weighted Working colors and normalizes once, when the
// result is read.
type Accumulator[W Tuple] struct {
	sum    [4]float64
	weight float64
}

// Add adds w with the given weight. Non-positive and NaN weights are ignored.
func (a *Accumulator[W]) Add(w W, weight float32) {
	if !(weight > 0) {
		return
	}
	f := float64(weight)
	for i, c := range w {
		a.sum[i] += float64(c) * f
	}
	a.weight += f
}

// AddUnit adds w with weight 1.
func (a *Accumulator[W]) AddUnit(w W) {
	for i, c := range w {
		a.sum[i] += float64(c)
	}
	a.weight++
}

// Weight returns the total weight added so far.
func (a *Accumulator[W]) Weight() float32 {
	return float32(a.weight)
}

// Reset clears the accumulator for reuse.
func (a *Accumulator[W]) Reset() {
	*a = Accumulator[W]{}
}

// Result returns the weighted mean. An empty accumulator yields the zero
// tuple.
func (a *Accumulator[W]) Result() W {
	var r W
	if a.weight <= 0 {
		return r
	}
	inv := 1 / a.weight
	for i := range r {
		r[i] = float32(a.sum[i] * inv)
	}
	return r
}
