package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/slidecast/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer. The default
// canvas draws for real so composition tests can inspect pixels.
type Renderer struct {
	CanvasForFunc   func(buf *image.RGBA, bg color.Color) ports.Canvas
	DecodeImageFunc func(data []byte) (image.Image, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	ResizeCalls []ResizeCall
}

// ResizeCall records a call to ResizeImage.
type ResizeCall struct {
	Width  int
	Height int
}

func (m *Renderer) CanvasFor(buf *image.RGBA, bg color.Color) ports.Canvas {
	if m.CanvasForFunc != nil {
		return m.CanvasForFunc(buf, bg)
	}
	draw.Draw(buf, buf.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{buf: buf}
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	m.ResizeCalls = append(m.ResizeCalls, ResizeCall{Width: width, Height: height})
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas backed by a real
// RGBA buffer.
type Canvas struct {
	buf *image.RGBA
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(m.buf, dst, img, b.Min, draw.Over)
}

func (m *Canvas) ToImage() image.Image {
	return m.buf
}

var _ ports.Canvas = (*Canvas)(nil)
