package ports

import (
	"image"
)

// FrameSink accepts timestamped pixel payloads and writes them into an
// encoded video stream.
type FrameSink interface {
	// IsReady reports whether the sink can accept another frame right now.
	IsReady() bool

	// Ready returns a channel that receives a signal whenever the sink
	// transitions back to the ready state. Callers that found IsReady
	// false wait on this channel instead of spinning.
	Ready() <-chan struct{}

	// Append writes one frame at the given presentation timestamp.
	// It returns false when the sink rejected the frame.
	Append(frame *image.RGBA, timestampMs int) bool

	// MarkFinished finalizes the video track. No appends may follow.
	MarkFinished() error

	// EndSessionAt truncates the encoding session at the given timestamp.
	// Frames scheduled past the cut-off are discarded.
	EndSessionAt(timestampMs int)
}

// SinkOpener creates a FrameSink writing to outputPath with the given
// canvas dimensions.
type SinkOpener func(outputPath string, width, height int) (FrameSink, error)

// BufferPool hands out pixel buffers for frame composition. Buffers are
// safe for sequential reuse within one operation but must not be shared
// across concurrent operations.
type BufferPool interface {
	// Acquire returns a buffer of the requested dimensions.
	Acquire(width, height int) (*image.RGBA, error)

	// Release returns a buffer to the pool for reuse.
	Release(buf *image.RGBA)
}
