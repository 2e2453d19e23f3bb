// Package producer drives the frame schedule against a backpressure-aware
// frame sink: compose, wait for readiness, append, report progress.
package producer

import (
	"context"
	"fmt"

	"github.com/user/slidecast/pkg/compositor"
	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/ports"
	"github.com/user/slidecast/pkg/timeline"
)

// Progress is invoked once per successfully appended frame with a strictly
// increasing written count.
type Progress func(written, total int)

// Loop produces the frames of one schedule in order.
type Loop struct {
	comp *compositor.Compositor
	pool ports.BufferPool
	log  ports.Logger
}

// New creates a production loop.
func New(comp *compositor.Compositor, pool ports.BufferPool, log ports.Logger) *Loop {
	return &Loop{comp: comp, pool: pool, log: log.WithComponent("producer")}
}

// Run appends every scheduled frame to the sink at its presentation
// timestamp, then finalizes the video track. An append failure aborts the
// remaining schedule; frames already written stay in place. When the
// request carries a duration cap it is stored on the sink before the
// first append, so the sink never streams span bytes past the cap even
// when its writer runs ahead of the schedule.
func (l *Loop) Run(ctx context.Context, req timeline.Request, sched *timeline.Schedule, sink ports.FrameSink, progress Progress) error {
	total := len(sched.Frames)
	l.log.Debug("Producing %d frames at %dx%d", total, sched.Canvas.Width, sched.Canvas.Height)

	if req.MaxDurationSec > 0 {
		sink.EndSessionAt(int(req.MaxDurationSec * 1000))
	}

	for i, entry := range sched.Frames {
		if err := waitReady(ctx, sink); err != nil {
			return err
		}

		frame, err := l.comp.Compose(req.Images[entry.ImageIndex], entry.Canvas, req.Mode, req.Background)
		if err != nil {
			return fmt.Errorf("compose frame %d: %w", i, err)
		}

		ok := sink.Append(frame, entry.TimestampMs)
		l.pool.Release(frame)
		if !ok {
			return fmt.Errorf("frame %d at %dms: %w", i, entry.TimestampMs, media.ErrFrameAppend)
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	if err := sink.MarkFinished(); err != nil {
		return fmt.Errorf("finalize video track: %w", err)
	}

	l.log.Debug("Schedule exhausted after %d frames", total)
	return nil
}

// waitReady suspends until the sink signals readiness. The sink's Ready
// channel fires on every busy-to-ready transition, so no busy loop is
// needed.
func waitReady(ctx context.Context, sink ports.FrameSink) error {
	for !sink.IsReady() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sink.Ready():
		}
	}
	return nil
}
