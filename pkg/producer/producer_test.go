package producer

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/user/slidecast/pkg/compositor"
	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/mocks"
	"github.com/user/slidecast/pkg/timeline"
)

func testSchedule(frameCount int) (*timeline.Schedule, timeline.Request) {
	canvas := timeline.Dimension{Width: 64, Height: 48}
	frames := make([]timeline.FrameEntry, frameCount)
	images := make([]image.Image, frameCount)
	for i := range frames {
		frames[i] = timeline.FrameEntry{ImageIndex: i, TimestampMs: i * 1000, Canvas: canvas}
		images[i] = image.NewRGBA(image.Rect(0, 0, 64, 48))
	}
	req := timeline.Request{Images: images, Mode: timeline.ModeMultiple}
	return &timeline.Schedule{Frames: frames, Canvas: canvas}, req
}

func newLoop(pool *mocks.BufferPool) *Loop {
	comp := compositor.New(&mocks.Renderer{}, pool)
	return New(comp, pool, mocks.NewLogger())
}

func TestRunAppendsAllFrames(t *testing.T) {
	sched, req := testSchedule(3)
	sink := mocks.NewFrameSink()
	pool := &mocks.BufferPool{}

	var reports [][2]int
	progress := func(written, total int) {
		reports = append(reports, [2]int{written, total})
	}

	if err := newLoop(pool).Run(context.Background(), req, sched, sink, progress); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.AppendCalls) != 3 {
		t.Fatalf("expected 3 appends, got %d", len(sink.AppendCalls))
	}
	for i, call := range sink.AppendCalls {
		if call.TimestampMs != i*1000 {
			t.Errorf("append %d: expected timestamp %d, got %d", i, i*1000, call.TimestampMs)
		}
	}
	if !sink.FinishedCalled {
		t.Error("expected MarkFinished")
	}

	// Progress is strictly increasing and ends at total.
	want := [][2]int{{1, 3}, {2, 3}, {3, 3}}
	if len(reports) != len(want) {
		t.Fatalf("expected %d progress reports, got %d", len(want), len(reports))
	}
	for i, r := range reports {
		if r != want[i] {
			t.Errorf("report %d: expected %v, got %v", i, want[i], r)
		}
	}
}

func TestRunReleasesEveryBuffer(t *testing.T) {
	sched, req := testSchedule(4)
	sink := mocks.NewFrameSink()
	pool := &mocks.BufferPool{}

	if err := newLoop(pool).Run(context.Background(), req, sched, sink, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if pool.Acquired != 4 || pool.Released != 4 {
		t.Errorf("expected 4 acquires and 4 releases, got %d and %d", pool.Acquired, pool.Released)
	}
}

func TestRunAbortsOnAppendFailure(t *testing.T) {
	sched, req := testSchedule(3)
	pool := &mocks.BufferPool{}

	sink := mocks.NewFrameSink()
	sink.AppendFunc = func(frame *image.RGBA, timestampMs int) bool {
		return timestampMs < 1000
	}

	err := newLoop(pool).Run(context.Background(), req, sched, sink, nil)
	if !errors.Is(err, media.ErrFrameAppend) {
		t.Fatalf("expected ErrFrameAppend, got %v", err)
	}

	// The failing frame still counts as an append call, nothing after it does.
	if len(sink.AppendCalls) != 2 {
		t.Errorf("expected 2 append calls, got %d", len(sink.AppendCalls))
	}
	if sink.FinishedCalled {
		t.Error("the video track must not be finalized after a failed append")
	}
	// The rejected frame's buffer is still released.
	if pool.Released != pool.Acquired {
		t.Errorf("expected all buffers released, got %d of %d", pool.Released, pool.Acquired)
	}
}

func TestRunEndsSessionAtCap(t *testing.T) {
	sched, req := testSchedule(2)
	req.MaxDurationSec = 7.5
	sink := mocks.NewFrameSink()

	if err := newLoop(&mocks.BufferPool{}).Run(context.Background(), req, sched, sink, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sink.EndSessionMs != 7500 {
		t.Errorf("expected session end at 7500ms, got %d", sink.EndSessionMs)
	}
}

func TestRunStoresCapBeforeFirstAppend(t *testing.T) {
	// A streaming sink writes each frame's span as soon as the next
	// frame arrives, so the cap must be in place before any append.
	sched, req := testSchedule(3)
	req.MaxDurationSec = 4
	sink := mocks.NewFrameSink()

	capAtFirstAppend := 0
	sink.AppendFunc = func(frame *image.RGBA, timestampMs int) bool {
		if timestampMs == 0 {
			capAtFirstAppend = sink.EndSessionMs
		}
		return true
	}

	if err := newLoop(&mocks.BufferPool{}).Run(context.Background(), req, sched, sink, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if capAtFirstAppend != 4000 {
		t.Errorf("expected the cap stored before the first append, saw %d", capAtFirstAppend)
	}
}

func TestRunNoCapLeavesSessionOpen(t *testing.T) {
	sched, req := testSchedule(2)
	sink := mocks.NewFrameSink()

	if err := newLoop(&mocks.BufferPool{}).Run(context.Background(), req, sched, sink, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sink.EndSessionMs != -1 {
		t.Errorf("expected no session end, got %d", sink.EndSessionMs)
	}
}

func TestRunWaitsForReadiness(t *testing.T) {
	sched, req := testSchedule(1)
	sink := mocks.NewFrameSink()
	sink.ReadyScript = []bool{false, true}

	if err := newLoop(&mocks.BufferPool{}).Run(context.Background(), req, sched, sink, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.AppendCalls) != 1 {
		t.Errorf("expected the frame to be appended after the sink drained, got %d appends", len(sink.AppendCalls))
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	sched, req := testSchedule(1)
	sink := mocks.NewFrameSink()
	sink.ReadyScript = []bool{false}
	sink.ReadyCh = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newLoop(&mocks.BufferPool{}).Run(ctx, req, sched, sink, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sink.AppendCalls) != 0 {
		t.Errorf("no frame may be appended after cancellation, got %d", len(sink.AppendCalls))
	}
}
