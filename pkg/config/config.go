// Package config provides configuration loading and management.
package config

import (
	"image"
	"image/color"
	"os"

	"github.com/user/slidecast/pkg/adapters/ffmpegsink"
	"github.com/user/slidecast/pkg/timeline"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for slidecast.
type Config struct {
	// Input/Output
	OutputPath string `yaml:"output"`
	WorkDir    string `yaml:"work_dir"`

	// Timeline
	Mode           string  `yaml:"mode"`
	MaxDurationSec float64 `yaml:"max_duration_sec"`

	// Canvas
	ScaleWidth     int    `yaml:"scale_width"`
	OptimizeAspect bool   `yaml:"optimize_aspect"`
	Background     string `yaml:"background"`

	// Encoding
	FPS     int `yaml:"fps"`
	CRF     int `yaml:"crf"`
	Bitrate int `yaml:"bitrate"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		WorkDir: ".",

		Mode: timeline.ModeMultiple.String(),

		ScaleWidth:     0,
		OptimizeAspect: false,
		Background:     "#808080",

		FPS: 30,
		CRF: 23,
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseMode maps a mode name to its timeline constant. Unknown names
// fall back to multiple.
func ParseMode(name string) timeline.Mode {
	switch name {
	case timeline.ModeSingle.String():
		return timeline.ModeSingle
	case timeline.ModeSingleAudioMultipleImage.String():
		return timeline.ModeSingleAudioMultipleImage
	default:
		return timeline.ModeMultiple
	}
}

// ToRequest builds a timeline request from the configuration and the
// decoded input assets.
func (c Config) ToRequest(images []image.Image, audioPaths []string) timeline.Request {
	return timeline.Request{
		Images:         images,
		AudioPaths:     audioPaths,
		Mode:           ParseMode(c.Mode),
		MaxDurationSec: c.MaxDurationSec,
		ScaleWidth:     c.ScaleWidth,
		OptimizeAspect: c.OptimizeAspect,
		Background:     ParseColor(c.Background),
	}
}

// ToSinkOptions builds encoder options from the configuration.
func (c Config) ToSinkOptions() ffmpegsink.Options {
	return ffmpegsink.Options{
		FPS:     float64(c.FPS),
		CRF:     c.CRF,
		Bitrate: c.Bitrate,
	}
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
