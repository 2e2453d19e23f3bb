package ports

import (
	"image"
)

// TransformMatrix holds the affine coefficients of a video track's display
// matrix. Translation is ignored; the four coefficients are enough to
// classify the recording orientation.
type TransformMatrix struct {
	A, B, C, D float64
}

// IdentityTransform is the display matrix of an upright landscape track.
var IdentityTransform = TransformMatrix{A: 1, B: 0, C: 0, D: 1}

// ClipInfo describes a video asset before any samples are decoded.
type ClipInfo struct {
	Width      int
	Height     int
	DurationMs int
	Transform  TransformMatrix
}

// Sample is one decoded video frame with its presentation time.
type Sample struct {
	Image       image.Image
	TimestampMs int
	DurationMs  int
}

// MediaDecoder reads existing media assets.
type MediaDecoder interface {
	// Probe returns clip metadata without decoding samples.
	Probe(path string) (ClipInfo, error)

	// ReadSamples decodes every video sample of the asset, in original
	// presentation order.
	ReadSamples(path string) ([]Sample, error)

	// AudioDurationSec returns the duration of the asset's audio track
	// in seconds.
	AudioDurationSec(path string) (float64, error)
}
