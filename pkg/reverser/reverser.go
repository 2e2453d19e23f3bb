// Package reverser re-emits the frames of an existing clip in reverse
// temporal order while preserving the original timestamps.
package reverser

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/ports"
)

// pollInterval is the sleep between sink readiness checks. Reversal is an
// offline path, so sleep-polling is acceptable here.
const pollInterval = 50 * time.Millisecond

// Reverser reads all samples of a clip into memory and writes them back
// mirrored.
type Reverser struct {
	decoder ports.MediaDecoder
	open    ports.SinkOpener
	log     ports.Logger
}

// New creates a Reverser.
func New(decoder ports.MediaDecoder, open ports.SinkOpener, log ports.Logger) *Reverser {
	return &Reverser{decoder: decoder, open: open, log: log.WithComponent("reverser")}
}

// Reverse writes a new clip to outputPath whose n-th frame carries the
// source's n-th original presentation timestamp with the pixel payload of
// the sample at the mirrored index. The output canvas uses the source's
// orientation-corrected natural dimensions.
func (r *Reverser) Reverse(ctx context.Context, inputPath, outputPath string) (string, error) {
	if !media.SupportedExtension(inputPath) {
		return "", fmt.Errorf("%s: %w", inputPath, media.ErrUnsupportedExtension)
	}

	info, err := r.decoder.Probe(inputPath)
	if err != nil {
		return "", fmt.Errorf("%w: probe %s: %w", media.ErrDecoderStart, inputPath, err)
	}

	samples, err := r.decoder.ReadSamples(inputPath)
	if err != nil {
		return "", fmt.Errorf("read samples from %s: %w", inputPath, err)
	}
	// A single-sample clip cannot be reversed into a valid video.
	if len(samples) < 2 {
		return "", fmt.Errorf("%s has %d samples: %w", inputPath, len(samples), media.ErrSourceClipUnreadable)
	}

	width, height := media.NaturalDimensions(info)
	r.log.Debug("Reversing %d samples at %dx%d (%s)", len(samples), width, height,
		media.ClassifyOrientation(info.Transform))

	sink, err := r.open(outputPath, width, height)
	if err != nil {
		return "", fmt.Errorf("%w: %w", media.ErrEncoderStart, err)
	}

	count := len(samples)
	for i := 0; i < count; i++ {
		if err := waitReady(ctx, sink); err != nil {
			return "", err
		}
		mirrored := samples[count-1-i]
		frame := toRGBA(mirrored.Image)
		if !sink.Append(frame, samples[i].TimestampMs) {
			return "", fmt.Errorf("frame %d at %dms: %w", i, samples[i].TimestampMs, media.ErrFrameAppend)
		}
	}

	if err := sink.MarkFinished(); err != nil {
		return "", fmt.Errorf("finalize reversed track: %w", err)
	}

	return outputPath, nil
}

// toRGBA returns the sample pixels as an RGBA buffer with (0,0) origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// waitReady sleep-polls the sink until it accepts more data.
func waitReady(ctx context.Context, sink ports.FrameSink) error {
	for !sink.IsReady() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return nil
}
