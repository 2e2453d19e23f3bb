// Package muxer assembles the final asset: the silent rendered video plus
// the trimmed, offset audio segments, handed to the export backend.
package muxer

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/ports"
	"github.com/user/slidecast/pkg/timeline"
)

// Muxer builds compositions and exports them.
type Muxer struct {
	engine ports.ExportEngine
	fs     ports.FileSystem
	log    ports.Logger
}

// New creates a Muxer.
func New(engine ports.ExportEngine, fs ports.FileSystem, log ports.Logger) *Muxer {
	return &Muxer{engine: engine, fs: fs, log: log.WithComponent("muxer")}
}

// Mux builds a composition with the silent video copied verbatim and each
// audio segment inserted at its precomputed offset, then exports it to
// outputPath at highest quality. Segments truncated to zero duration by
// the cap are skipped. On success the silent temp file is removed.
func (m *Muxer) Mux(ctx context.Context, silentVideoPath string, segments []timeline.AudioSegment, outputPath string) (string, error) {
	comp := ports.Composition{
		Video: []ports.TrackInsert{{SourcePath: silentVideoPath}},
	}
	for _, seg := range segments {
		if seg.DurationSec <= 0 {
			m.log.Debug("Skipping zero-length audio segment %s", seg.Path)
			continue
		}
		comp.Audio = append(comp.Audio, ports.TrackInsert{
			SourcePath: seg.Path,
			DurationMs: int(seg.DurationSec * 1000),
			OffsetMs:   int(seg.OffsetSec * 1000),
		})
	}

	if err := m.engine.Export(ctx, comp, outputPath, ports.QualityHighest); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", media.ErrExportCancelled, err)
		}
		return "", fmt.Errorf("export composition: %w", err)
	}

	if err := m.fs.Remove(silentVideoPath); err != nil {
		// The final asset is already in place.
		m.log.Warn("Could not remove temp video %s: %s", silentVideoPath, err)
	}

	return outputPath, nil
}
