// Package integration contains integration tests for the slidecast pipeline.
package integration

import (
	"context"
	"image"
	"image/color"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/user/slidecast/pkg/adapters/ffmpegsink"
	"github.com/user/slidecast/pkg/adapters/ggrenderer"
	"github.com/user/slidecast/pkg/adapters/logger"
	"github.com/user/slidecast/pkg/adapters/rgbapool"
	"github.com/user/slidecast/pkg/compositor"
	"github.com/user/slidecast/pkg/generator"
	"github.com/user/slidecast/pkg/mocks"
	"github.com/user/slidecast/pkg/producer"
	"github.com/user/slidecast/pkg/timeline"
)

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// TestScheduleToProducer drives a real schedule through the real compositor
// and production loop into a mock sink.
func TestScheduleToProducer(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	req := timeline.Request{
		Images:     []image.Image{solidImage(64, 48, red), solidImage(64, 48, green)},
		AudioPaths: []string{"a.m4a", "b.m4a"},
		Mode:       timeline.ModeMultiple,
		Background: color.RGBA{A: 255},
	}

	sched, err := timeline.BuildSchedule(req, []float64{5, 3})
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	pool := rgbapool.New()
	comp := compositor.New(ggrenderer.New(), pool)
	loop := producer.New(comp, pool, logger.NewNoop())

	sink := mocks.NewFrameSink()
	var pixels []color.RGBA
	sink.AppendFunc = func(frame *image.RGBA, timestampMs int) bool {
		pixels = append(pixels, frame.RGBAAt(32, 24))
		return true
	}

	if err := loop.Run(context.Background(), req, sched, sink, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.AppendCalls) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(sink.AppendCalls))
	}
	if sink.AppendCalls[0].TimestampMs != 0 || sink.AppendCalls[1].TimestampMs != 5000 {
		t.Errorf("unexpected timestamps: %+v", sink.AppendCalls)
	}
	// Each frame centers its own slide image.
	if pixels[0] != red || pixels[1] != green {
		t.Errorf("expected red then green center pixels, got %v", pixels)
	}
}

// TestGenerateEndToEnd runs one full generation with a real encoder process
// and a mock export engine.
func TestGenerateEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	workDir := t.TempDir()
	engine := &mocks.ExportEngine{}
	decoder := &mocks.MediaDecoder{
		AudioDurationSecFunc: func(path string) (float64, error) { return 2, nil },
	}

	gen := generator.New(
		decoder,
		ffmpegsink.Opener(ffmpegsink.Options{FPS: 10}),
		engine,
		mocks.NewFileSystem(),
		rgbapool.New(),
		ggrenderer.New(),
		logger.NewNoop(),
		workDir,
	)

	req := timeline.Request{
		Images: []image.Image{
			solidImage(64, 48, color.RGBA{R: 255, A: 255}),
			solidImage(64, 48, color.RGBA{B: 255, A: 255}),
		},
		AudioPaths: []string{"a.m4a", "b.m4a"},
		Mode:       timeline.ModeMultiple,
	}

	var lastWritten int
	progress := func(written, total int) {
		if written <= lastWritten {
			t.Errorf("progress must be strictly increasing, got %d after %d", written, lastWritten)
		}
		lastWritten = written
	}

	result, err := gen.Generate(context.Background(), req, filepath.Join(workDir, "out.mp4"), progress)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if result.FrameCount != 2 {
		t.Errorf("expected 2 frames, got %d", result.FrameCount)
	}
	if lastWritten != 2 {
		t.Errorf("expected 2 progress reports, got %d", lastWritten)
	}
	if len(engine.ExportCalls) != 1 {
		t.Fatalf("expected one export, got %d", len(engine.ExportCalls))
	}

	comp := engine.ExportCalls[0].Composition
	if len(comp.Audio) != 2 {
		t.Errorf("expected 2 audio inserts, got %d", len(comp.Audio))
	}
	if comp.Audio[1].OffsetMs != 2000 {
		t.Errorf("expected second track at 2000ms, got %d", comp.Audio[1].OffsetMs)
	}
}
