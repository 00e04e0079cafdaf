package simd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetect(t *testing.T) {
	l, n := detect(true)
	if l != Scalar || n != Batch4 {
		t.Fatalf("detect(disabled) = %s, %d", l, n)
	}
	l, n = detect(false)
	switch n {
	case Batch4, Batch8, Batch16, Batch32:
	default:
		t.Fatalf("detect() = %s, unexpected batch %d", l, n)
	}
	if l.String() == "unknown" {
		t.Fatalf("detect() level %d has no name", l)
	}
}

func TestChunks(t *testing.T) {
	tests := []struct {
		n, step int
		want    [][2]int
	}{
		{0, 4, nil},
		{3, 4, [][2]int{{0, 3}}},
		{8, 4, [][2]int{{0, 4}, {4, 8}}},
		{9, 4, [][2]int{{0, 4}, {4, 8}, {8, 9}}},
		{33, 32, [][2]int{{0, 32}, {32, 33}}},
	}
	for _, test := range tests {
		var got [][2]int
		for i, j := range chunks(test.n, test.step) {
			got = append(got, [2]int{i, j})
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("chunks(%d, %d) mismatch (-want +got):\n%s", test.n, test.step, diff)
		}
	}

	var n int
	for i, j := range Chunks(100) {
		if j-i > BatchSize() {
			t.Fatalf("chunk [%d, %d) exceeds batch %d", i, j, BatchSize())
		}
		n += j - i
	}
	if n != 100 {
		t.Fatalf("Chunks(100) covered %d elements", n)
	}
}

func TestChunksBreak(t *testing.T) {
	var calls int
	for range chunks(100, 4) {
		calls++
		if calls == 2 {
			break
		}
	}
	if calls != 2 {
		t.Fatalf("iteration continued after break: %d calls", calls)
	}
}
