package ports

import (
	"context"
)

// TrackInsert places a trimmed range of a source asset's track onto the
// output timeline.
type TrackInsert struct {
	SourcePath    string
	SourceStartMs int // trim start within the source track
	DurationMs    int // trimmed length; 0 means the full track
	OffsetMs      int // insertion offset on the output timeline
}

// Composition is an in-memory timeline of video and audio inserts,
// consumed by an ExportEngine to produce one output file.
type Composition struct {
	Video []TrackInsert
	Audio []TrackInsert

	// Transform is the display matrix inherited from the first video
	// insert. Later inserts do not override it.
	Transform TransformMatrix
}

// ExportQuality selects an export preset.
type ExportQuality int

const (
	// QualityHighest requests the backend's best preset with
	// network-optimized (streamable) output.
	QualityHighest ExportQuality = iota
	QualityMedium
	QualityLow
)

// ExportEngine renders a Composition into a single media file.
// Export blocks until the backend completes; cancellation is delivered
// through the context and surfaces as a wrapped context error.
type ExportEngine interface {
	Export(ctx context.Context, comp Composition, outputPath string, quality ExportQuality) error
}
