// Package ffmpegdecoder implements ports.MediaDecoder with an external
// ffmpeg process for pixel data and ffprobe/mp4ff for metadata.
package ffmpegdecoder

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/slidecast/pkg/adapters/ffmpegpath"
	"github.com/user/slidecast/pkg/adapters/mp4probe"
	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/ports"
)

// Decoder implements ports.MediaDecoder.
type Decoder struct {
	ffmpegPath  string
	ffprobePath string
}

// New creates a Decoder, locating ffmpeg and ffprobe.
func New() (*Decoder, error) {
	ffmpegPath, err := ffmpegpath.Find()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrDecoderStart, err)
	}
	ffprobePath, err := ffmpegpath.FindProbe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrDecoderStart, err)
	}
	return &Decoder{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}, nil
}

// Probe returns the clip's dimensions, duration and display transform.
// Container structure comes from mp4ff; the rotation comes from ffprobe
// since mp4ff does not expose the tkhd matrix.
func (d *Decoder) Probe(path string) (ports.ClipInfo, error) {
	info, err := mp4probe.ProbeFile(path)
	if err != nil {
		return ports.ClipInfo{}, err
	}

	rotation, err := d.probeRotation(path)
	if err != nil {
		return ports.ClipInfo{}, err
	}

	return ports.ClipInfo{
		Width:      info.Width,
		Height:     info.Height,
		DurationMs: info.DurationMs,
		Transform:  transformForRotation(rotation),
	}, nil
}

// ReadSamples decodes every video frame via ffmpeg's rawvideo output and
// pairs the frames with the container's sample timestamps.
func (d *Decoder) ReadSamples(path string) ([]ports.Sample, error) {
	probeInfo, err := mp4probe.ProbeFile(path)
	if err != nil {
		return nil, err
	}
	if probeInfo.Width <= 0 || probeInfo.Height <= 0 {
		return nil, fmt.Errorf("%s: no video dimensions: %w", path, media.ErrSourceClipUnreadable)
	}

	cmd := exec.Command(d.ffmpegPath,
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %w", media.ErrDecoderStart, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start ffmpeg: %w", media.ErrDecoderStart, err)
	}

	frameSize := probeInfo.Width * probeInfo.Height * 4
	var samples []ports.Sample
	for i := 0; ; i++ {
		pix := make([]byte, frameSize)
		if _, err := io.ReadFull(stdout, pix); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, fmt.Errorf("read frame %d: %w", i, err)
		}

		frame := &image.RGBA{
			Pix:    pix,
			Stride: probeInfo.Width * 4,
			Rect:   image.Rect(0, 0, probeInfo.Width, probeInfo.Height),
		}
		samples = append(samples, ports.Sample{
			Image:       frame,
			TimestampMs: timestampFor(probeInfo.SampleTimestampsMs, i),
		})
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg decode failed: %w\nstderr: %s", err, stderr.String())
	}

	// Fill sample durations from timestamp gaps.
	for i := range samples {
		if i+1 < len(samples) {
			samples[i].DurationMs = samples[i+1].TimestampMs - samples[i].TimestampMs
		}
	}
	return samples, nil
}

// AudioDurationSec probes the duration of the asset's audio in seconds.
func (d *Decoder) AudioDurationSec(path string) (float64, error) {
	out, err := exec.Command(d.ffprobePath,
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe %s: %w", media.ErrDecoderStart, path, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" || text == "N/A" {
		return 0, fmt.Errorf("%s: no audio duration: %w", path, media.ErrSourceClipUnreadable)
	}
	duration, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", text, err)
	}
	return duration, nil
}

// probeRotation reads the display rotation in degrees from stream side
// data. Missing rotation means an upright track.
func (d *Decoder) probeRotation(path string) (int, error) {
	out, err := exec.Command(d.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "side_data=rotation",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe %s: %w", media.ErrDecoderStart, path, err)
	}

	text := strings.TrimSpace(string(out))
	if text == "" {
		return 0, nil
	}
	rotation, err := strconv.Atoi(strings.Split(text, "\n")[0])
	if err != nil {
		return 0, nil
	}
	return rotation, nil
}

// transformForRotation synthesizes the affine coefficients matching a
// rotation in degrees.
func transformForRotation(degrees int) ports.TransformMatrix {
	degrees = ((degrees % 360) + 360) % 360
	switch degrees {
	case 90:
		return ports.TransformMatrix{A: 0, B: 1, C: -1, D: 0}
	case 180:
		return ports.TransformMatrix{A: -1, B: 0, C: 0, D: -1}
	case 270:
		return ports.TransformMatrix{A: 0, B: -1, C: 1, D: 0}
	default:
		return ports.IdentityTransform
	}
}

func timestampFor(timestamps []int, i int) int {
	if i < len(timestamps) {
		return timestamps[i]
	}
	if n := len(timestamps); n >= 2 {
		// Extrapolate from the last observed gap.
		last := timestamps[n-1]
		gap := timestamps[n-1] - timestamps[n-2]
		return last + gap*(i-n+1)
	}
	return 0
}

// Ensure Decoder implements ports.MediaDecoder
var _ ports.MediaDecoder = (*Decoder)(nil)
