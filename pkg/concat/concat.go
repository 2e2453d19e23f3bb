// Package concat lays multiple existing clips end to end into a single
// composition and exports it.
package concat

import (
	"context"
	"fmt"

	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/ports"
)

// Concatenator builds end-to-end compositions from existing assets.
type Concatenator struct {
	decoder ports.MediaDecoder
	engine  ports.ExportEngine
	log     ports.Logger
}

// New creates a Concatenator.
func New(decoder ports.MediaDecoder, engine ports.ExportEngine, log ports.Logger) *Concatenator {
	return &Concatenator{decoder: decoder, engine: engine, log: log.WithComponent("concat")}
}

// Concat inserts every accepted input's full video and audio tracks at a
// running offset equal to the total duration of the assets before it. The
// composition keeps the first asset's transform; later assets' own
// transforms are not reapplied. Inputs with unsupported extensions are
// filtered out up front; nothing left is an error, not a no-op.
func (c *Concatenator) Concat(ctx context.Context, inputPaths []string, outputPath string) (string, error) {
	accepted := media.FilterSupported(inputPaths)
	if len(accepted) == 0 {
		return "", fmt.Errorf("concat: %w", media.ErrNoInputAssets)
	}
	if dropped := len(inputPaths) - len(accepted); dropped > 0 {
		c.log.Warn("Ignoring %d input(s) with unsupported extensions", dropped)
	}

	var comp ports.Composition
	offsetMs := 0
	for i, path := range accepted {
		info, err := c.decoder.Probe(path)
		if err != nil {
			return "", fmt.Errorf("%w: probe %s: %w", media.ErrDecoderStart, path, err)
		}

		insert := ports.TrackInsert{
			SourcePath: path,
			DurationMs: info.DurationMs,
			OffsetMs:   offsetMs,
		}
		comp.Video = append(comp.Video, insert)
		comp.Audio = append(comp.Audio, insert)

		if i == 0 {
			comp.Transform = info.Transform
		}
		offsetMs += info.DurationMs
	}

	c.log.Debug("Concatenating %d clips, total %dms", len(accepted), offsetMs)

	if err := c.engine.Export(ctx, comp, outputPath, ports.QualityHighest); err != nil {
		return "", fmt.Errorf("export concatenation: %w", err)
	}
	return outputPath, nil
}
