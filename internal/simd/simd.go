// Package simd selects the batch width used by bulk pixel loops.
//
// The width is detected once at init from the CPU features reported by
// golang.org/x/sys/cpu. Setting PIXELCORE_NO_SIMD forces the narrowest batch.
package simd

import (
	"iter"
	"os"
	"strconv"

	"golang.org/x/sys/cpu"
)

// Level is the instruction set class the batch width was derived from.
type Level int

const (
	Scalar Level = iota
	SSE2
	AVX2
	AVX512
	NEON
)

func (l Level) String() string {
	switch l {
	case Scalar:
		return "scalar"
	case SSE2:
		return "sse2"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	case NEON:
		return "neon"
	default:
		return "unknown"
	}
}

// Batch sizes in pixels.
const (
	Batch4  = 4
	Batch8  = 8
	Batch16 = 16
	Batch32 = 32
)

var (
	level Level
	batch int
)

func init() {
	level, batch = detect(noSIMD())
}

func noSIMD() bool {
	val := os.Getenv("PIXELCORE_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func detect(disabled bool) (Level, int) {
	switch {
	case disabled:
		return Scalar, Batch4
	case cpu.X86.HasAVX512F:
		return AVX512, Batch32
	case cpu.X86.HasAVX2:
		return AVX2, Batch16
	case cpu.X86.HasSSE2:
		return SSE2, Batch8
	case cpu.ARM64.HasASIMD:
		return NEON, Batch8
	}
	return Scalar, Batch4
}

// CurrentLevel returns the detected instruction set class.
func CurrentLevel() Level {
	return level
}

// BatchSize returns the number of pixels bulk loops process per step.
func BatchSize() int {
	return batch
}

// Chunks yields consecutive [i, j) ranges of at most BatchSize elements
// covering [0, n). Bulk loops run each stage over a whole chunk before the
// next stage, so a chunk stays in cache between stages.
func Chunks(n int) iter.Seq2[int, int] {
	return chunks(n, batch)
}

func chunks(n, step int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for i := 0; i < n; i += step {
			if !yield(i, min(i+step, n)) {
				return
			}
		}
	}
}
