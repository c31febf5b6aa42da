// Package parallel provides chunked parallel execution for tensor kernels.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls how kernel loops are split across goroutines.
type Config struct {
	Workers      int // Number of worker goroutines.
	MinPerWorker int // Minimum elements per worker before splitting pays off.
}

// Default returns a configuration based on the CPU count.
func Default() Config {
	return Config{
		Workers:      runtime.GOMAXPROCS(0),
		MinPerWorker: 4096,
	}
}

// Ranges executes f over disjoint [start, end) chunks of [0, n).
// Small inputs run sequentially; larger ones are split across workers.
// Chunks never overlap, so f may write to disjoint output elements
// without synchronization.
func Ranges(n int, cfg Config, f func(start, end int)) {
	if cfg.Workers <= 1 || n < 2*cfg.MinPerWorker {
		f(0, n)
		return
	}

	chunk := (n + cfg.Workers - 1) / cfg.Workers
	if chunk < cfg.MinPerWorker {
		chunk = cfg.MinPerWorker
	}

	var g errgroup.Group
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		g.Go(func() error {
			f(start, end)
			return nil
		})
	}
	// Workers cannot fail; Wait only joins them.
	_ = g.Wait()
}
