package mocks

import (
	"image"
	"sync"

	"github.com/user/slidecast/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink.
type FrameSink struct {
	mu sync.Mutex

	AppendFunc       func(frame *image.RGBA, timestampMs int) bool
	MarkFinishedFunc func() error

	// Readiness script: each IsReady call consumes one entry, then
	// the sink stays ready.
	ReadyScript []bool

	// ReadyCh overrides the channel returned by Ready. When nil every
	// Ready call yields a channel that fires immediately.
	ReadyCh chan struct{}

	// Recorded calls for verification
	AppendCalls    []AppendCall
	FinishedCalled bool
	EndSessionMs   int
}

// AppendCall records a call to Append.
type AppendCall struct {
	TimestampMs int
	Width       int
	Height      int
}

// NewFrameSink creates a new mock FrameSink.
func NewFrameSink() *FrameSink {
	return &FrameSink{EndSessionMs: -1}
}

func (m *FrameSink) IsReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ReadyScript) > 0 {
		ready := m.ReadyScript[0]
		m.ReadyScript = m.ReadyScript[1:]
		return ready
	}
	return true
}

func (m *FrameSink) Ready() <-chan struct{} {
	if m.ReadyCh != nil {
		return m.ReadyCh
	}
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	return ch
}

func (m *FrameSink) Append(frame *image.RGBA, timestampMs int) bool {
	m.mu.Lock()
	b := frame.Bounds()
	m.AppendCalls = append(m.AppendCalls, AppendCall{
		TimestampMs: timestampMs,
		Width:       b.Dx(),
		Height:      b.Dy(),
	})
	m.mu.Unlock()
	if m.AppendFunc != nil {
		return m.AppendFunc(frame, timestampMs)
	}
	return true
}

func (m *FrameSink) MarkFinished() error {
	m.mu.Lock()
	m.FinishedCalled = true
	m.mu.Unlock()
	if m.MarkFinishedFunc != nil {
		return m.MarkFinishedFunc()
	}
	return nil
}

func (m *FrameSink) EndSessionAt(timestampMs int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EndSessionMs = timestampMs
}

var _ ports.FrameSink = (*FrameSink)(nil)

// SinkOpener returns a ports.SinkOpener that hands out the given sink
// and records the open parameters.
func SinkOpener(sink *FrameSink, opened *OpenCall) ports.SinkOpener {
	return func(outputPath string, width, height int) (ports.FrameSink, error) {
		if opened != nil {
			opened.Path = outputPath
			opened.Width = width
			opened.Height = height
		}
		return sink, nil
	}
}

// OpenCall records the parameters of a sink open.
type OpenCall struct {
	Path   string
	Width  int
	Height int
}
