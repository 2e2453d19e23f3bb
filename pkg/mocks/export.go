package mocks

import (
	"context"

	"github.com/user/slidecast/pkg/ports"
)

// ExportEngine is a mock implementation of ports.ExportEngine.
type ExportEngine struct {
	ExportFunc func(ctx context.Context, comp ports.Composition, outputPath string, quality ports.ExportQuality) error

	// Recorded calls for verification
	ExportCalls []ExportCall
}

// ExportCall records a call to Export.
type ExportCall struct {
	Composition ports.Composition
	OutputPath  string
	Quality     ports.ExportQuality
}

func (m *ExportEngine) Export(ctx context.Context, comp ports.Composition, outputPath string, quality ports.ExportQuality) error {
	m.ExportCalls = append(m.ExportCalls, ExportCall{
		Composition: comp,
		OutputPath:  outputPath,
		Quality:     quality,
	})
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, comp, outputPath, quality)
	}
	return nil
}

var _ ports.ExportEngine = (*ExportEngine)(nil)
