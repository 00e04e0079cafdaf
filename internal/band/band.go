// Package band splits a range of rows into disjoint bands processed by
// parallel workers.
package band

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Func processes rows [y0, y1). Bands never overlap.
type Func func(ctx context.Context, y0, y1 int) error

// Split divides [0, n) into at most workers contiguous bands of near equal
// height. It returns the band start rows followed by n.
func Split(n, workers int) []int {
	if n <= 0 {
		return []int{0}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, n)
	bounds := make([]int, workers+1)
	for i := range bounds {
		bounds[i] = i * n / workers
	}
	return bounds
}

// Run calls fn once per band of [0, n), each on its own goroutine, and waits
// for all of them. The first error cancels the context passed to the other
// bands and is returned. workers <= 0 means GOMAXPROCS.
func Run(ctx context.Context, n, workers int, fn Func) error {
	if n <= 0 {
		return ctx.Err()
	}
	bounds := Split(n, workers)
	if len(bounds) == 2 {
		return fn(ctx, 0, n)
	}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i+1 < len(bounds); i++ {
		y0, y1 := bounds[i], bounds[i+1]
		g.Go(func() error {
			return fn(ctx, y0, y1)
		})
	}
	return g.Wait()
}

// Rows calls fn for each row in [y0, y1), checking ctx before every row.
func Rows(ctx context.Context, y0, y1 int, fn func(y int) error) error {
	for y := y0; y < y1; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(y); err != nil {
			return err
		}
	}
	return nil
}
