// Package generator coordinates one generation, reversal or concatenation
// at a time: scheduling, frame production, and muxing.
package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/user/slidecast/pkg/compositor"
	"github.com/user/slidecast/pkg/concat"
	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/muxer"
	"github.com/user/slidecast/pkg/ports"
	"github.com/user/slidecast/pkg/producer"
	"github.com/user/slidecast/pkg/reverser"
	"github.com/user/slidecast/pkg/timeline"
)

// DefaultOutputName is used when the caller supplies no output filename.
const DefaultOutputName = "slidecast.mp4"

// Result describes a completed generation.
type Result struct {
	Path             string
	FrameCount       int
	TotalDurationSec float64
}

// Generator is the service object coordinating media operations. It is
// stateless between calls and supports one in-flight operation at a time.
type Generator struct {
	mu sync.Mutex

	decoder ports.MediaDecoder
	open    ports.SinkOpener
	engine  ports.ExportEngine
	fs      ports.FileSystem
	pool    ports.BufferPool
	render  ports.Renderer
	log     ports.Logger
	workDir string
}

// New creates a Generator. workDir holds intermediate silent-video files.
func New(
	decoder ports.MediaDecoder,
	open ports.SinkOpener,
	engine ports.ExportEngine,
	fs ports.FileSystem,
	pool ports.BufferPool,
	render ports.Renderer,
	log ports.Logger,
	workDir string,
) *Generator {
	return &Generator{
		decoder: decoder,
		open:    open,
		engine:  engine,
		fs:      fs,
		pool:    pool,
		render:  render,
		log:     log,
		workDir: workDir,
	}
}

// Generate renders the request into a single video at outputPath and muxes
// the audio tracks in. Exactly one of result or error is returned; progress
// already reported is never retracted on a later failure.
func (g *Generator) Generate(ctx context.Context, req timeline.Request, outputPath string, progress producer.Progress) (Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(req.Images) == 0 || len(req.AudioPaths) == 0 {
		return Result{}, fmt.Errorf("generate: %w", media.ErrNoInputAssets)
	}
	if outputPath == "" {
		outputPath = filepath.Join(g.workDir, DefaultOutputName)
	}

	if err := g.fs.MkdirAll(g.workDir); err != nil {
		return Result{}, fmt.Errorf("%w: %s: %w", media.ErrStorageDirectory, g.workDir, err)
	}

	durations, err := g.audioDurations(req.AudioPaths)
	if err != nil {
		return Result{}, err
	}

	sched, err := timeline.BuildSchedule(req, durations)
	if err != nil {
		return Result{}, err
	}
	g.log.Info("Scheduled %d frames over %.1fs in %s mode", len(sched.Frames), sched.TotalDurationSec, req.Mode)

	silentPath := filepath.Join(g.workDir, "video-only.mp4")
	sink, err := g.open(silentPath, sched.Canvas.Width, sched.Canvas.Height)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", media.ErrEncoderStart, err)
	}

	comp := compositor.New(g.render, g.pool)
	loop := producer.New(comp, g.pool, g.log)
	if err := loop.Run(ctx, req, sched, sink, progress); err != nil {
		return Result{}, err
	}

	mux := muxer.New(g.engine, g.fs, g.log)
	finalPath, err := mux.Mux(ctx, silentPath, sched.AudioSegments, outputPath)
	if err != nil {
		return Result{}, err
	}

	g.log.Info("Generated %s", finalPath)
	return Result{
		Path:             finalPath,
		FrameCount:       len(sched.Frames),
		TotalDurationSec: sched.TotalDurationSec,
	}, nil
}

// Reverse re-emits an existing clip's frames in reverse temporal order.
func (g *Generator) Reverse(ctx context.Context, inputPath, outputPath string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return reverser.New(g.decoder, g.open, g.log).Reverse(ctx, inputPath, outputPath)
}

// Concat lays existing clips end to end into one asset.
func (g *Generator) Concat(ctx context.Context, inputPaths []string, outputPath string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return concat.New(g.decoder, g.engine, g.log).Concat(ctx, inputPaths, outputPath)
}

// audioDurations probes the duration of every audio source up front.
func (g *Generator) audioDurations(paths []string) ([]float64, error) {
	durations := make([]float64, len(paths))
	for i, path := range paths {
		d, err := g.decoder.AudioDurationSec(path)
		if err != nil {
			return nil, fmt.Errorf("%w: audio %s: %w", media.ErrDecoderStart, path, err)
		}
		durations[i] = d
	}
	return durations, nil
}
