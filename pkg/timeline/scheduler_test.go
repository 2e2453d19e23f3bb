package timeline

import (
	"errors"
	"image"
	"testing"

	"github.com/user/slidecast/pkg/media"
)

func testImages(count, w, h int) []image.Image {
	images := make([]image.Image, count)
	for i := range images {
		images[i] = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return images
}

func testPaths(count int) []string {
	paths := make([]string, count)
	for i := range paths {
		paths[i] = "audio.m4a"
	}
	return paths
}

func TestBuildScheduleEmptyInputs(t *testing.T) {
	tests := []struct {
		name      string
		images    []image.Image
		durations []float64
	}{
		{"no images", nil, []float64{5}},
		{"no audio", testImages(1, 100, 100), nil},
		{"neither", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{Images: tt.images, AudioPaths: testPaths(len(tt.durations)), Mode: ModeMultiple}
			_, err := BuildSchedule(req, tt.durations)
			if !errors.Is(err, media.ErrNoInputAssets) {
				t.Errorf("expected ErrNoInputAssets, got %v", err)
			}
		})
	}
}

func TestBuildScheduleMultiple(t *testing.T) {
	tests := []struct {
		name          string
		imageCount    int
		durations     []float64
		wantFrames    int
		wantTotal     float64
		wantTimestamp []int
	}{
		{
			name:          "paired tracks",
			imageCount:    3,
			durations:     []float64{5, 4, 6},
			wantFrames:    3,
			wantTotal:     15,
			wantTimestamp: []int{0, 5000, 9000},
		},
		{
			name:          "extra audio dropped",
			imageCount:    2,
			durations:     []float64{5, 4, 6},
			wantFrames:    2,
			wantTotal:     9,
			wantTimestamp: []int{0, 5000},
		},
		{
			name:          "short track stretches to minimum",
			imageCount:    2,
			durations:     []float64{1, 5},
			wantFrames:    2,
			wantTotal:     6,
			wantTimestamp: []int{0, 3000},
		},
		{
			name:          "fractional durations round",
			imageCount:    2,
			durations:     []float64{4.6, 2.2},
			wantFrames:    2,
			wantTotal:     7,
			wantTimestamp: []int{0, 5000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{
				Images:     testImages(tt.imageCount, 200, 100),
				AudioPaths: testPaths(len(tt.durations)),
				Mode:       ModeMultiple,
			}
			sched, err := BuildSchedule(req, tt.durations)
			if err != nil {
				t.Fatalf("BuildSchedule failed: %v", err)
			}

			if len(sched.Frames) != tt.wantFrames {
				t.Fatalf("expected %d frames, got %d", tt.wantFrames, len(sched.Frames))
			}
			if sched.TotalDurationSec != tt.wantTotal {
				t.Errorf("expected total %.1f, got %.1f", tt.wantTotal, sched.TotalDurationSec)
			}
			for i, want := range tt.wantTimestamp {
				if sched.Frames[i].TimestampMs != want {
					t.Errorf("frame %d: expected timestamp %d, got %d", i, want, sched.Frames[i].TimestampMs)
				}
			}
		})
	}
}

func TestBuildScheduleTimestampsNonDecreasing(t *testing.T) {
	req := Request{
		Images:     testImages(4, 100, 100),
		AudioPaths: testPaths(4),
		Mode:       ModeMultiple,
	}
	sched, err := BuildSchedule(req, []float64{2, 0.5, 7, 1})
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	if sched.Frames[0].TimestampMs != 0 {
		t.Errorf("first frame must start at 0, got %d", sched.Frames[0].TimestampMs)
	}
	for i := 1; i < len(sched.Frames); i++ {
		if sched.Frames[i].TimestampMs < sched.Frames[i-1].TimestampMs {
			t.Errorf("frame %d timestamp %d is before frame %d timestamp %d",
				i, sched.Frames[i].TimestampMs, i-1, sched.Frames[i-1].TimestampMs)
		}
	}
}

func TestBuildScheduleCapClampsSegments(t *testing.T) {
	req := Request{
		Images:         testImages(3, 100, 100),
		AudioPaths:     []string{"a.m4a", "b.m4a", "c.m4a"},
		Mode:           ModeMultiple,
		MaxDurationSec: 7,
	}
	sched, err := BuildSchedule(req, []float64{5, 4, 6})
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	if sched.TotalDurationSec != 7 {
		t.Errorf("expected capped total 7, got %.1f", sched.TotalDurationSec)
	}

	segs := sched.AudioSegments
	if segs[0].DurationSec != 5 || segs[0].OffsetSec != 0 {
		t.Errorf("segment 0: got duration %.1f offset %.1f", segs[0].DurationSec, segs[0].OffsetSec)
	}
	// The second track is clamped to the exact remainder.
	if segs[1].DurationSec != 2 || segs[1].OffsetSec != 5 {
		t.Errorf("segment 1: got duration %.1f offset %.1f", segs[1].DurationSec, segs[1].OffsetSec)
	}
	if segs[2].DurationSec != 0 {
		t.Errorf("segment 2: expected zero duration, got %.1f", segs[2].DurationSec)
	}
}

func TestBuildScheduleSingle(t *testing.T) {
	tests := []struct {
		name      string
		durations []float64
		wantTotal float64
		wantTs    []int
	}{
		{"one track", []float64{10}, 10, []int{0, 5000}},
		{"all tracks consumed", []float64{4, 4}, 8, []int{0, 4000}},
		{"short audio stretches to minimum", []float64{1}, 3, []int{0, 2000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{
				Images:     testImages(1, 320, 240),
				AudioPaths: testPaths(len(tt.durations)),
				Mode:       ModeSingle,
			}
			sched, err := BuildSchedule(req, tt.durations)
			if err != nil {
				t.Fatalf("BuildSchedule failed: %v", err)
			}

			if len(sched.Frames) != 2 {
				t.Fatalf("single mode emits exactly 2 frames, got %d", len(sched.Frames))
			}
			for i, f := range sched.Frames {
				if f.ImageIndex != 0 {
					t.Errorf("frame %d: expected image 0, got %d", i, f.ImageIndex)
				}
				if f.TimestampMs != tt.wantTs[i] {
					t.Errorf("frame %d: expected timestamp %d, got %d", i, tt.wantTs[i], f.TimestampMs)
				}
			}
			if sched.TotalDurationSec != tt.wantTotal {
				t.Errorf("expected total %.1f, got %.1f", tt.wantTotal, sched.TotalDurationSec)
			}
			if sched.Canvas.Width != 320 || sched.Canvas.Height != 240 {
				t.Errorf("single mode keeps the image size, got %dx%d", sched.Canvas.Width, sched.Canvas.Height)
			}
		})
	}
}

func TestBuildScheduleSingleIgnoresExtraImages(t *testing.T) {
	req := Request{
		Images:     testImages(5, 320, 240),
		AudioPaths: testPaths(1),
		Mode:       ModeSingle,
	}
	sched, err := BuildSchedule(req, []float64{6})
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	if len(sched.Frames) != 2 {
		t.Fatalf("single mode emits exactly 2 frames, got %d", len(sched.Frames))
	}
	for i, f := range sched.Frames {
		if f.ImageIndex != 0 {
			t.Errorf("frame %d: only the first image is shown, got index %d", i, f.ImageIndex)
		}
	}
}

func TestBuildScheduleSharedAudio(t *testing.T) {
	req := Request{
		Images:     testImages(4, 100, 100),
		AudioPaths: []string{"narration.m4a", "ignored.m4a"},
		Mode:       ModeSingleAudioMultipleImage,
	}
	sched, err := BuildSchedule(req, []float64{12, 99})
	if err != nil {
		t.Fatalf("BuildSchedule failed: %v", err)
	}

	if len(sched.Frames) != 4 {
		t.Fatalf("expected one frame per image, got %d", len(sched.Frames))
	}
	want := []int{0, 3000, 6000, 9000}
	for i, f := range sched.Frames {
		if f.TimestampMs != want[i] {
			t.Errorf("frame %d: expected timestamp %d, got %d", i, want[i], f.TimestampMs)
		}
	}
	if len(sched.AudioSegments) != 1 {
		t.Fatalf("shared-audio mode consumes only the first track, got %d segments", len(sched.AudioSegments))
	}
	if sched.TotalDurationSec != 12 {
		t.Errorf("expected total 12, got %.1f", sched.TotalDurationSec)
	}
}

func TestCanvasFor(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		imgW, imgH int
		scaleWidth int
		optimize   bool
		wantW      int
		wantH      int
	}{
		{"single keeps source size", ModeSingle, 320, 240, 512, true, 320, 240},
		{"scale width only", ModeMultiple, 400, 300, 512, false, 512, 300},
		{"scale with aspect", ModeMultiple, 400, 300, 200, true, 200, 150},
		{"odd dimensions round up to even", ModeMultiple, 333, 241, 0, false, 334, 242},
		{"zero scale keeps source", ModeMultiple, 640, 480, 0, true, 640, 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{
				Images:         testImages(1, tt.imgW, tt.imgH),
				AudioPaths:     testPaths(1),
				Mode:           tt.mode,
				ScaleWidth:     tt.scaleWidth,
				OptimizeAspect: tt.optimize,
			}
			sched, err := BuildSchedule(req, []float64{5})
			if err != nil {
				t.Fatalf("BuildSchedule failed: %v", err)
			}
			if sched.Canvas.Width != tt.wantW || sched.Canvas.Height != tt.wantH {
				t.Errorf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, sched.Canvas.Width, sched.Canvas.Height)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeSingle, "single"},
		{ModeMultiple, "multiple"},
		{ModeSingleAudioMultipleImage, "single-audio"},
	}

	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
