// Package rgbapool provides a pixel buffer pool backed by sync.Pool.
// Buffers are reused sequentially within one operation; the pool must not
// be shared across concurrent operations.
package rgbapool

import (
	"fmt"
	"image"
	"sync"

	"github.com/user/slidecast/pkg/ports"
)

// Pool implements ports.BufferPool. All buffers of one pool share the
// dimensions of the first acquisition.
type Pool struct {
	mu     sync.Mutex
	pool   sync.Pool
	width  int
	height int
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{}
}

// Acquire returns a buffer of the requested dimensions. Requesting
// dimensions different from earlier acquisitions resets the pool.
func (p *Pool) Acquire(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("rgbapool: invalid dimensions %dx%d", width, height)
	}

	p.mu.Lock()
	if width != p.width || height != p.height {
		p.pool = sync.Pool{}
		p.width = width
		p.height = height
	}
	p.mu.Unlock()

	if buf, ok := p.pool.Get().(*image.RGBA); ok {
		return buf, nil
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

// Release returns a buffer for reuse. Buffers of stale dimensions are
// dropped.
func (p *Pool) Release(buf *image.RGBA) {
	if buf == nil {
		return
	}
	p.mu.Lock()
	match := buf.Bounds().Dx() == p.width && buf.Bounds().Dy() == p.height
	p.mu.Unlock()
	if match {
		p.pool.Put(buf)
	}
}

// Ensure Pool implements ports.BufferPool
var _ ports.BufferPool = (*Pool)(nil)
