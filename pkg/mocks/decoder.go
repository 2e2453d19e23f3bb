package mocks

import (
	"github.com/user/slidecast/pkg/ports"
)

// MediaDecoder is a mock implementation of ports.MediaDecoder.
type MediaDecoder struct {
	ProbeFunc            func(path string) (ports.ClipInfo, error)
	ReadSamplesFunc      func(path string) ([]ports.Sample, error)
	AudioDurationSecFunc func(path string) (float64, error)

	// Recorded calls for verification
	ProbeCalls       []string
	ReadSamplesCalls []string
	AudioProbeCalls  []string
}

func (m *MediaDecoder) Probe(path string) (ports.ClipInfo, error) {
	m.ProbeCalls = append(m.ProbeCalls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.ClipInfo{Width: 640, Height: 480, DurationMs: 1000, Transform: ports.IdentityTransform}, nil
}

func (m *MediaDecoder) ReadSamples(path string) ([]ports.Sample, error) {
	m.ReadSamplesCalls = append(m.ReadSamplesCalls, path)
	if m.ReadSamplesFunc != nil {
		return m.ReadSamplesFunc(path)
	}
	return nil, nil
}

func (m *MediaDecoder) AudioDurationSec(path string) (float64, error) {
	m.AudioProbeCalls = append(m.AudioProbeCalls, path)
	if m.AudioDurationSecFunc != nil {
		return m.AudioDurationSecFunc(path)
	}
	return 1.0, nil
}

var _ ports.MediaDecoder = (*MediaDecoder)(nil)
