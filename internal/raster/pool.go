package raster

import (
	"errors"
	"runtime"
	"sync"
	"time"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one rasterizer is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// Pool hands out SVGRasterizers to concurrent documents, each with its own
// browser. Rasterizers are created on first acquire, so a batch that never
// needs SVG never starts Chrome.
type Pool struct {
	size    int
	timeout time.Duration

	mu      sync.Mutex
	all     []*SVGRasterizer
	idle    chan *SVGRasterizer
	created int
	closed  bool
}

// NewPool creates a pool with capacity for n rasterizers.
func NewPool(n int, timeout time.Duration) *Pool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &Pool{
		size:    n,
		timeout: timeout,
		all:     make([]*SVGRasterizer, 0, n),
		idle:    make(chan *SVGRasterizer, n),
	}
}

// Acquire returns an idle rasterizer, creates one while under capacity,
// or blocks until one is released.
func (p *Pool) Acquire() *SVGRasterizer {
	select {
	case r := <-p.idle:
		return r
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		r := NewSVGRasterizer(p.timeout)
		p.all = append(p.all, r)
		p.mu.Unlock()
		return r
	}
	p.mu.Unlock()

	return <-p.idle
}

// Release returns r to the pool.
func (p *Pool) Release(r *SVGRasterizer) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.idle <- r
}

// Close shuts down every rasterizer the pool created.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	all := p.all
	p.mu.Unlock()

	var errs []error
	for _, r := range all {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return p.size
}

// ResolvePoolSize picks the number of parallel workers.
// An explicit positive value wins; otherwise half of GOMAXPROCS,
// clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
