// Package parallel provides the data-parallel dispatch primitive the
// engine's per-edge and per-pixel kernels run under: identical work items
// are split across a host worker pool, the same shape of dispatch a device
// kernel launch would use without actually requiring a device.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Options controls how For splits and schedules work.
type Options struct {
	// UseDevice is a documented hook for a future device backend. No device
	// backend is implemented; kernels always run on the host worker pool
	// regardless of its value.
	UseDevice bool
	// MaxWorkers caps the number of goroutines used to process a single
	// For call. Zero means GOMAXPROCS.
	MaxWorkers int
}

// For invokes fn(idx) for every idx in [0, n) on a pool of goroutines and
// waits for all invocations to complete. fn must be a pure function of idx,
// the shared read-only scene, and disjoint-per-idx output slices: no
// invocation may read another invocation's output.
func For(n int, opts Options, fn func(idx int) error) error {
	if n <= 0 {
		return nil
	}

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	var g errgroup.Group
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		g.Go(func() error {
			for idx := start; idx < end; idx++ {
				if err := fn(idx); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// ForEach is a convenience wrapper for kernels that cannot fail.
func ForEach(n int, opts Options, fn func(idx int)) {
	_ = For(n, opts, func(idx int) error {
		fn(idx)
		return nil
	})
}
