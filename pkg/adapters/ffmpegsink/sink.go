// Package ffmpegsink implements ports.FrameSink by piping raw RGBA frames
// into an external ffmpeg process encoding H.264 into MP4.
//
// Appended frames carry presentation timestamps; the sink holds each frame
// on screen until the next one arrives by duplicating it at the output
// frame rate on the rawvideo pipe. Backpressure comes from a bounded frame
// queue: IsReady is false while the queue is full and the Ready channel
// fires on every dequeue.
package ffmpegsink

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"sync/atomic"

	"github.com/user/slidecast/pkg/adapters/ffmpegpath"
	"github.com/user/slidecast/pkg/ports"
)

const queueDepth = 8

// Options configures the encoder process.
type Options struct {
	// FFmpegPath overrides binary discovery.
	FFmpegPath string
	// FPS is the output frame rate. Defaults to 30.
	FPS float64
	// CRF is the x264 quality (0-51, lower is better). Defaults to 23.
	CRF int
	// Bitrate is the target bitrate in kbps. 0 lets CRF decide.
	Bitrate int
}

// Opener returns a ports.SinkOpener creating sinks with these options.
func Opener(opts Options) ports.SinkOpener {
	return func(outputPath string, width, height int) (ports.FrameSink, error) {
		return Open(outputPath, width, height, opts)
	}
}

type item struct {
	pix         []byte
	timestampMs int
}

// Sink implements ports.FrameSink on an ffmpeg process.
type Sink struct {
	width  int
	height int
	fps    float64

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer

	queue chan item
	ready chan struct{}
	done  chan error

	endAtMs  atomic.Int64
	failed   atomic.Bool
	finished atomic.Bool
}

// Open starts an ffmpeg process encoding to outputPath.
func Open(outputPath string, width, height int, opts Options) (*Sink, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("ffmpegsink: invalid dimensions %dx%d", width, height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.CRF <= 0 {
		opts.CRF = 23
	}

	ffmpegPath := opts.FFmpegPath
	if ffmpegPath == "" {
		var err error
		ffmpegPath, err = ffmpegpath.Find()
		if err != nil {
			return nil, err
		}
	}

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%.2f", opts.FPS),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-crf", fmt.Sprintf("%d", opts.CRF),
	}
	if opts.Bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", opts.Bitrate))
	}
	args = append(args,
		"-profile:v", "baseline",
		"-level", "3.1",
		"-movflags", "+faststart",
		outputPath,
	)

	s := &Sink{
		width:  width,
		height: height,
		fps:    opts.FPS,
		cmd:    exec.Command(ffmpegPath, args...),
		queue:  make(chan item, queueDepth),
		ready:  make(chan struct{}, 1),
		done:   make(chan error, 1),
	}
	s.cmd.Stderr = &s.stderr

	stdin, err := s.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpegsink: stdin pipe: %w", err)
	}
	s.stdin = stdin

	if err := s.cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpegsink: start ffmpeg: %w", err)
	}

	go s.run()
	return s, nil
}

// IsReady reports whether the frame queue has room. A failed sink reports
// ready so callers reach Append and observe the rejection.
func (s *Sink) IsReady() bool {
	return s.failed.Load() || len(s.queue) < cap(s.queue)
}

// Ready returns the readiness notification channel.
func (s *Sink) Ready() <-chan struct{} {
	return s.ready
}

// Append enqueues one frame. The pixel data is copied, so the caller may
// reuse the buffer immediately. Returns false once the sink has failed or
// been finished.
func (s *Sink) Append(frame *image.RGBA, timestampMs int) bool {
	if s.failed.Load() || s.finished.Load() {
		return false
	}

	pix := framePixels(frame, s.width, s.height)
	s.queue <- item{pix: pix, timestampMs: timestampMs}
	return !s.failed.Load()
}

// MarkFinished flushes the trailing frame, closes the pipe and waits for
// ffmpeg to finish writing the container.
func (s *Sink) MarkFinished() error {
	if !s.finished.CompareAndSwap(false, true) {
		return fmt.Errorf("ffmpegsink: already finished")
	}
	close(s.queue)

	if err := <-s.done; err != nil {
		return fmt.Errorf("ffmpegsink: ffmpeg failed: %w\nstderr: %s", err, s.stderr.String())
	}
	if s.failed.Load() {
		return fmt.Errorf("ffmpegsink: write failed\nstderr: %s", s.stderr.String())
	}
	return nil
}

// EndSessionAt truncates the session: no pixels past the timestamp reach
// the encoder.
func (s *Sink) EndSessionAt(timestampMs int) {
	s.endAtMs.Store(int64(timestampMs))
}

// run drains the queue, expanding each frame to cover the span up to the
// next frame's timestamp at the output frame rate.
func (s *Sink) run() {
	var prev *item
	for it := range s.queue {
		if prev != nil && !s.failed.Load() {
			if err := s.writeSpan(prev, it.timestampMs); err != nil {
				s.failed.Store(true)
			}
		}
		cur := it
		prev = &cur
		s.signalReady()
	}

	// Hold the last frame for one frame interval, or up to the session
	// cut-off when one is set.
	if prev != nil && !s.failed.Load() {
		end := prev.timestampMs + int(1000/s.fps)
		if capMs := int(s.endAtMs.Load()); capMs > 0 && end > capMs {
			end = capMs
		}
		if err := s.writeSpan(prev, end); err != nil {
			s.failed.Store(true)
		}
	}

	s.stdin.Close()
	s.done <- s.cmd.Wait()
}

// writeSpan writes the frame's pixels repeatedly to cover [it.timestampMs,
// untilMs) at the output frame rate, honoring the session cut-off.
func (s *Sink) writeSpan(it *item, untilMs int) error {
	if capMs := int(s.endAtMs.Load()); capMs > 0 && untilMs > capMs {
		untilMs = capMs
	}
	interval := 1000 / s.fps

	for t := float64(it.timestampMs); t < float64(untilMs); t += interval {
		if _, err := s.stdin.Write(it.pix); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sink) signalReady() {
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// framePixels returns an owned RGBA byte slice of exactly width x height.
func framePixels(frame *image.RGBA, width, height int) []byte {
	bounds := frame.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height || frame.Stride != width*4 {
		fitted := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(fitted, fitted.Bounds(), frame, bounds.Min, draw.Src)
		return fitted.Pix
	}
	pix := make([]byte, len(frame.Pix))
	copy(pix, frame.Pix)
	return pix
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
