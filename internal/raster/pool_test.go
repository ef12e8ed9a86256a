package raster_test

// Notes:
// - Rasterizers start Chrome lazily, so acquiring and closing never
//   launches a browser here.

import (
	"runtime"
	"testing"
	"time"

	"github.com/alnah/go-pdf2html/internal/raster"
)

func TestPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	p := raster.NewPool(2, time.Second)
	defer p.Close()

	a := p.Acquire()
	b := p.Acquire()
	if a == b {
		t.Fatal("two acquires returned the same rasterizer")
	}

	p.Release(a)
	if got := p.Acquire(); got != a {
		t.Error("released rasterizer was not reused")
	}
}

func TestPool_BlocksAtCapacity(t *testing.T) {
	t.Parallel()

	p := raster.NewPool(1, time.Second)
	defer p.Close()

	first := p.Acquire()
	got := make(chan *raster.SVGRasterizer)
	go func() { got <- p.Acquire() }()

	select {
	case <-got:
		t.Fatal("Acquire did not block at capacity")
	case <-time.After(50 * time.Millisecond):
	}

	p.Release(first)
	select {
	case r := <-got:
		if r != first {
			t.Error("blocked Acquire received a different rasterizer")
		}
	case <-time.After(time.Second):
		t.Fatal("Acquire still blocked after Release")
	}
}

func TestPool_Close(t *testing.T) {
	t.Parallel()

	p := raster.NewPool(0, 0)
	if p.Size() != raster.MinPoolSize {
		t.Errorf("Size() = %d, want %d", p.Size(), raster.MinPoolSize)
	}
	r := p.Acquire()
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	p.Release(r) // no-op after close
}

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	if got := raster.ResolvePoolSize(3); got != 3 {
		t.Errorf("ResolvePoolSize(3) = %d, want 3", got)
	}

	want := runtime.GOMAXPROCS(0) / 2
	want = max(raster.MinPoolSize, min(want, raster.MaxPoolSize))
	if got := raster.ResolvePoolSize(0); got != want {
		t.Errorf("ResolvePoolSize(0) = %d, want %d", got, want)
	}
}
