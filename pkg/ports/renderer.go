package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts the image processing operations the compositor needs.
type Renderer interface {
	// CanvasFor wraps an existing pixel buffer in a drawing canvas and
	// fills it with the background color.
	CanvasFor(buf *image.RGBA, bg color.Color) Canvas

	// DecodeImage decodes image file data into an image.Image.
	DecodeImage(data []byte) (image.Image, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// Canvas provides the drawing operations for compositing one frame.
type Canvas interface {
	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// ToImage returns the canvas content.
	ToImage() image.Image
}
