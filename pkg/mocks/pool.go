package mocks

import (
	"image"
	"sync"

	"github.com/user/slidecast/pkg/ports"
)

// BufferPool is a mock implementation of ports.BufferPool that
// allocates fresh buffers and counts acquires and releases.
type BufferPool struct {
	mu sync.Mutex

	AcquireFunc func(width, height int) (*image.RGBA, error)

	Acquired int
	Released int
}

func (m *BufferPool) Acquire(width, height int) (*image.RGBA, error) {
	m.mu.Lock()
	m.Acquired++
	m.mu.Unlock()
	if m.AcquireFunc != nil {
		return m.AcquireFunc(width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height)), nil
}

func (m *BufferPool) Release(buf *image.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Released++
}

var _ ports.BufferPool = (*BufferPool)(nil)
