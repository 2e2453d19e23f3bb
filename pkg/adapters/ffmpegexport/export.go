// Package ffmpegexport implements ports.ExportEngine with an external
// ffmpeg process. A single-video composition keeps the video stream as-is
// and lays the audio inserts over it; a multi-video composition is
// re-encoded through the concat filter.
package ffmpegexport

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/user/slidecast/pkg/adapters/ffmpegpath"
	"github.com/user/slidecast/pkg/media"
	"github.com/user/slidecast/pkg/ports"
)

// Engine implements ports.ExportEngine.
type Engine struct {
	ffmpegPath string
	log        ports.Logger
}

// New creates an Engine, locating ffmpeg.
func New(log ports.Logger) (*Engine, error) {
	path, err := ffmpegpath.Find()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", media.ErrExportSessionStart, err)
	}
	return &Engine{ffmpegPath: path, log: log.WithComponent("export")}, nil
}

// Export renders the composition into outputPath.
func (e *Engine) Export(ctx context.Context, comp ports.Composition, outputPath string, quality ports.ExportQuality) error {
	if len(comp.Video) == 0 {
		return fmt.Errorf("%w: composition has no video inserts", media.ErrExportSessionStart)
	}

	var args []string
	if len(comp.Video) == 1 {
		args = muxArgs(comp, outputPath, quality)
	} else {
		args = concatArgs(comp, outputPath, quality)
	}

	e.log.Debug("Running ffmpeg %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", media.ErrExportSessionStart, err)
	}
	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("export interrupted: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg export failed: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}

// muxArgs copies the single video stream verbatim and assembles one audio
// track from the trimmed, delayed inserts.
func muxArgs(comp ports.Composition, outputPath string, quality ports.ExportQuality) []string {
	args := []string{"-y", "-i", comp.Video[0].SourcePath}
	for _, ins := range comp.Audio {
		args = append(args, "-i", ins.SourcePath)
	}

	if len(comp.Audio) > 0 {
		var filter strings.Builder
		var labels []string
		for i, ins := range comp.Audio {
			label := fmt.Sprintf("a%d", i)
			fmt.Fprintf(&filter, "[%d:a]atrim=start=%s:duration=%s,adelay=%d|%d[%s];",
				i+1, msToSec(ins.SourceStartMs), msToSec(ins.DurationMs), ins.OffsetMs, ins.OffsetMs, label)
			labels = append(labels, "["+label+"]")
		}
		if len(labels) > 1 {
			fmt.Fprintf(&filter, "%samix=inputs=%d:duration=longest:normalize=0[aout]",
				strings.Join(labels, ""), len(labels))
		} else {
			filter.WriteString(labels[0] + "anull[aout]")
		}
		args = append(args,
			"-filter_complex", filter.String(),
			"-map", "0:v",
			"-map", "[aout]",
			"-c:a", "aac",
		)
	} else {
		args = append(args, "-map", "0:v")
	}

	args = append(args, "-c:v", "copy")
	args = append(args, containerArgs(quality)...)
	args = append(args, outputPath)
	return args
}

// concatArgs lays every input's video and audio end to end through the
// concat filter; the output is re-encoded. The first input's display
// rotation is kept for the whole composition.
func concatArgs(comp ports.Composition, outputPath string, quality ports.ExportQuality) []string {
	args := []string{"-y"}
	for _, ins := range comp.Video {
		args = append(args, "-i", ins.SourcePath)
	}

	var filter strings.Builder
	for i := range comp.Video {
		fmt.Fprintf(&filter, "[%d:v][%d:a]", i, i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=1:a=1[v][a]", len(comp.Video))

	args = append(args,
		"-filter_complex", filter.String(),
		"-map", "[v]",
		"-map", "[a]",
		"-c:v", "libx264",
		"-crf", crfFor(quality),
		"-c:a", "aac",
	)
	if degrees := rotationFor(comp.Transform); degrees != 0 {
		args = append(args, "-metadata:s:v:0", fmt.Sprintf("rotate=%d", degrees))
	}
	args = append(args, containerArgs(quality)...)
	args = append(args, outputPath)
	return args
}

// containerArgs requests network-optimized output for the highest preset.
func containerArgs(quality ports.ExportQuality) []string {
	if quality == ports.QualityHighest {
		return []string{"-movflags", "+faststart"}
	}
	return nil
}

func crfFor(quality ports.ExportQuality) string {
	switch quality {
	case ports.QualityHighest:
		return "18"
	case ports.QualityMedium:
		return "23"
	default:
		return "28"
	}
}

func rotationFor(t ports.TransformMatrix) int {
	switch media.ClassifyOrientation(t) {
	case media.Portrait:
		return 90
	case media.PortraitUpsideDown:
		return 270
	case media.LandscapeLeft:
		return 180
	default:
		return 0
	}
}

func msToSec(ms int) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000)
}

// Ensure Engine implements ports.ExportEngine
var _ ports.ExportEngine = (*Engine)(nil)
