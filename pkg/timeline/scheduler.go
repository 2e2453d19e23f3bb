package timeline

import (
	"fmt"
	"math"

	"github.com/user/slidecast/pkg/media"
)

// BuildSchedule computes the frame timeline and audio segment placement for
// one request. audioDurationsSec holds the pre-decoded duration of each
// audio track, in the same order as req.AudioPaths.
func BuildSchedule(req Request, audioDurationsSec []float64) (*Schedule, error) {
	if len(req.Images) == 0 || len(audioDurationsSec) == 0 {
		return nil, fmt.Errorf("schedule: %w", media.ErrNoInputAssets)
	}

	canvas := canvasFor(req)

	consumed := consumedDurations(req, audioDurationsSec)
	segments := buildAudioSegments(req.AudioPaths, consumed, req.MaxDurationSec)

	var frames []FrameEntry
	var total float64

	switch req.Mode {
	case ModeSingle:
		total = cappedTotal(segments, req.MaxDurationSec)
		frames = singleFrames(total, canvas)
	case ModeMultiple:
		frames = multipleFrames(segments, canvas)
		total = cappedTotal(segments, req.MaxDurationSec)
	case ModeSingleAudioMultipleImage:
		// The cap is intentionally not applied to the per-image slice
		// arithmetic in this mode; the production loop still ends the
		// session at the cap.
		audioDur := math.Round(audioDurationsSec[0])
		frames = sharedAudioFrames(audioDur, len(req.Images), canvas)
		total = math.Max(audioDur, MinClipDurationSec)
	default:
		return nil, fmt.Errorf("schedule: unknown mode %d", req.Mode)
	}

	return &Schedule{
		Frames:           frames,
		Canvas:           canvas,
		AudioSegments:    segments,
		TotalDurationSec: total,
	}, nil
}

// consumedDurations selects and rounds the audio durations a mode actually
// uses: all tracks for single mode, one per image for multiple mode, the
// first track only for shared-audio mode.
func consumedDurations(req Request, durations []float64) []float64 {
	switch req.Mode {
	case ModeMultiple:
		if len(durations) > len(req.Images) {
			durations = durations[:len(req.Images)]
		}
	case ModeSingleAudioMultipleImage:
		durations = durations[:1]
	}

	rounded := make([]float64, len(durations))
	for i, d := range durations {
		rounded[i] = math.Round(d)
	}
	return rounded
}

// buildAudioSegments lays the consumed tracks end to end. Once the running
// total reaches the cap, the current track's duration is clamped to the
// exact remainder and every later track gets duration zero.
func buildAudioSegments(paths []string, durations []float64, capSec float64) []AudioSegment {
	segments := make([]AudioSegment, len(durations))
	offset := 0.0
	for i, d := range durations {
		if capSec > 0 && offset+d > capSec {
			d = capSec - offset
		}
		segments[i] = AudioSegment{
			Path:        paths[i],
			DurationSec: d,
			OffsetSec:   offset,
		}
		offset += d
	}
	return segments
}

// cappedTotal is the total output duration: the consumed audio laid end to
// end, at least MinClipDurationSec, at most the cap.
func cappedTotal(segments []AudioSegment, capSec float64) float64 {
	total := 0.0
	for _, s := range segments {
		total += s.DurationSec
	}
	total = math.Max(total, MinClipDurationSec)
	if capSec > 0 && total > capSec {
		total = capSec
	}
	return total
}

// singleFrames duplicates the single image into two frame slots so the
// encoder always has at least two samples.
func singleFrames(totalSec float64, canvas Dimension) []FrameEntry {
	const slots = 2
	frameDurSec := math.Ceil(totalSec / slots)
	frames := make([]FrameEntry, slots)
	for i := range frames {
		frames[i] = FrameEntry{
			ImageIndex:  0,
			TimestampMs: i * int(frameDurSec*1000),
			Canvas:      canvas,
		}
	}
	return frames
}

// multipleFrames gives each image the duration of its paired audio track.
// Tracks of one second or less stretch to the minimum clip duration.
func multipleFrames(segments []AudioSegment, canvas Dimension) []FrameEntry {
	frames := make([]FrameEntry, len(segments))
	elapsed := 0.0
	for i, seg := range segments {
		frames[i] = FrameEntry{
			ImageIndex:  i,
			TimestampMs: int(elapsed * 1000),
			Canvas:      canvas,
		}
		if seg.DurationSec <= 1 {
			elapsed += math.Max(seg.DurationSec, MinClipDurationSec)
		} else {
			elapsed += seg.DurationSec
		}
	}
	return frames
}

// sharedAudioFrames slices one audio track evenly across all images.
func sharedAudioFrames(audioDurSec float64, imageCount int, canvas Dimension) []FrameEntry {
	slice := audioDurSec / float64(imageCount)
	frames := make([]FrameEntry, imageCount)
	elapsed := 0.0
	for i := range frames {
		frames[i] = FrameEntry{
			ImageIndex:  i,
			TimestampMs: int(elapsed * 1000),
			Canvas:      canvas,
		}
		elapsed += slice
	}
	return frames
}

// canvasFor derives the output canvas: the first image's size for single
// mode, or the caller-supplied scale width otherwise. Dimensions are
// rounded up to even values for encoder compatibility.
func canvasFor(req Request) Dimension {
	bounds := req.Images[0].Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if req.Mode != ModeSingle && req.ScaleWidth > 0 {
		if req.OptimizeAspect && w > 0 {
			h = h * req.ScaleWidth / w
		}
		w = req.ScaleWidth
	}

	return Dimension{Width: evenUp(w), Height: evenUp(h)}
}

func evenUp(v int) int {
	return (v + 1) / 2 * 2
}
