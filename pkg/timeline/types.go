// Package timeline computes the frame timeline for one generation request:
// which image is shown when, for how long, and which audio segments are
// placed where on the output timeline.
package timeline

import (
	"image"
	"image/color"
)

// Mode selects how images and audio tracks are paired.
type Mode int

const (
	// ModeSingle shows one image for the whole duration of all audio
	// tracks played back to back.
	ModeSingle Mode = iota
	// ModeMultiple pairs one audio track with one image; extra audio
	// tracks beyond the image count are dropped.
	ModeMultiple
	// ModeSingleAudioMultipleImage shares one audio track across all
	// images in equal slices.
	ModeSingleAudioMultipleImage
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeMultiple:
		return "multiple"
	case ModeSingleAudioMultipleImage:
		return "single-audio"
	default:
		return "unknown"
	}
}

// MinClipDurationSec is the minimum duration of any generated clip and of
// any single image slot paired with a very short audio track.
const MinClipDurationSec = 3.0

// Dimension represents width and height in pixels.
type Dimension struct {
	Width  int
	Height int
}

// Request describes one generation run. It is immutable once handed to
// the scheduler.
type Request struct {
	// Images is the ordered sequence of source images.
	Images []image.Image

	// AudioPaths is the ordered sequence of audio source references.
	AudioPaths []string

	Mode Mode

	// MaxDurationSec caps the total output duration. 0 means uncapped.
	MaxDurationSec float64

	// ScaleWidth overrides the output canvas width for non-single modes.
	// 0 derives the canvas from the first image.
	ScaleWidth int

	// OptimizeAspect scales the canvas height to preserve the first
	// image's aspect ratio when ScaleWidth is set.
	OptimizeAspect bool

	// Background fills the canvas behind each image. Single mode ignores
	// it and uses a fixed neutral background.
	Background color.Color
}

// AudioSegment is one audio track placed on the output timeline. Durations
// are whole seconds; a segment truncated to zero by the duration cap is
// skipped by the muxer.
type AudioSegment struct {
	Path        string
	DurationSec float64
	OffsetSec   float64
}

// FrameEntry schedules one image onto the output timeline.
type FrameEntry struct {
	ImageIndex  int
	TimestampMs int
	Canvas      Dimension
}

// Schedule is the computed frame timeline for one request. It is consumed,
// never mutated.
type Schedule struct {
	Frames           []FrameEntry
	Canvas           Dimension
	AudioSegments    []AudioSegment
	TotalDurationSec float64
}
