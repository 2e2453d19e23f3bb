// Package compositor renders one source image into a fixed-size canvas:
// scale down when the image exceeds the canvas, center it, and fill the
// remaining area with the background color.
package compositor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/user/slidecast/pkg/ports"
	"github.com/user/slidecast/pkg/timeline"
)

// singleBackground is the fixed neutral fill used by single mode regardless
// of the configured background color.
var singleBackground = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// Compositor composes source images into canvas-sized pixel buffers.
// Each Compose call is self-contained; no drawing state is shared across
// concurrent invocations.
type Compositor struct {
	renderer ports.Renderer
	pool     ports.BufferPool
}

// New creates a Compositor drawing with the given renderer and acquiring
// buffers from the given pool.
func New(renderer ports.Renderer, pool ports.BufferPool) *Compositor {
	return &Compositor{renderer: renderer, pool: pool}
}

// Compose renders src into a buffer of the canvas dimensions. The returned
// buffer comes from the pool; callers release it once the sink has
// consumed it. A pool failure is reported without touching any frame
// already appended downstream.
func (c *Compositor) Compose(src image.Image, canvas timeline.Dimension, mode timeline.Mode, bg color.Color) (*image.RGBA, error) {
	buf, err := c.pool.Acquire(canvas.Width, canvas.Height)
	if err != nil {
		return nil, fmt.Errorf("acquire pixel buffer: %w", err)
	}

	background := bg
	if mode == timeline.ModeSingle || background == nil {
		background = singleBackground
	}
	dc := c.renderer.CanvasFor(buf, background)

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	// Dimensions exceeding the canvas are downscaled to the nearest
	// multiple of 16 for encoder block alignment.
	tw, th := w, h
	if tw > canvas.Width {
		tw = alignToBlock(canvas.Width)
	}
	if th > canvas.Height {
		th = alignToBlock(canvas.Height)
	}
	if tw != w || th != h {
		src = c.renderer.ResizeImage(src, tw, th)
	}

	x, y := 0, 0
	if mode != timeline.ModeSingle {
		x = (canvas.Width - tw) / 2
		y = (canvas.Height - th) / 2
	}
	dc.DrawImage(src, x, y)

	return buf, nil
}

// alignToBlock rounds to the nearest multiple of 16, half away from zero.
func alignToBlock(v int) int {
	return int(math.Round(float64(v)/16)) * 16
}
