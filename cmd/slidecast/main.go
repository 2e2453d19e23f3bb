// Package main provides the CLI entry point for slidecast.
package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/slidecast/pkg/adapters/ffmpegdecoder"
	"github.com/user/slidecast/pkg/adapters/ffmpegexport"
	"github.com/user/slidecast/pkg/adapters/ffmpegsink"
	"github.com/user/slidecast/pkg/adapters/ggrenderer"
	"github.com/user/slidecast/pkg/adapters/logger"
	"github.com/user/slidecast/pkg/adapters/osfilesystem"
	"github.com/user/slidecast/pkg/adapters/rgbapool"
	"github.com/user/slidecast/pkg/config"
	"github.com/user/slidecast/pkg/generator"
	"github.com/user/slidecast/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Generate GenerateCmd `cmd:"" help:"Compose still images and audio tracks into an MP4 video."`
	Reverse  ReverseCmd  `cmd:"" help:"Rewrite a clip with its frames in reverse order."`
	Concat   ConcatCmd   `cmd:"" help:"Join clips end to end into one MP4 video."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// GenerateCmd defines the generate subcommand.
type GenerateCmd struct {
	// Required arguments
	Images []string `arg:"" help:"Image files in slide order."`
	Audio  []string `short:"a" required:"" help:"Audio files paired with the images."`
	Output string   `short:"o" help:"Output MP4 file path."`

	// Config file
	Config string `short:"C" help:"YAML configuration file (flags override it)."`

	// Timeline options
	Mode        string   `short:"m" default:"multiple" enum:"single,multiple,single-audio" help:"Pairing mode for images and audio."`
	MaxDuration *float64 `help:"Cap the total duration in seconds (0 = uncapped)."`

	// Canvas options
	ScaleWidth      *int    `short:"W" help:"Scale frames to this width (0 = keep source size)."`
	OptimizeAspect  bool    `help:"Scale height along with the width to keep the aspect ratio."`
	BackgroundColor *string `help:"Background color (hex, e.g., #808080)."`

	// Encoding options
	FPS     *int `help:"Output frame rate."`
	CRF     *int `short:"q" help:"Video quality (CRF 0-51, lower is better)."`
	Bitrate *int `help:"Video bitrate in kbps (0 = CRF only)."`

	// Storage options
	WorkDir string `default:"." help:"Directory for intermediate files."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ReverseCmd defines the reverse subcommand.
type ReverseCmd struct {
	Input  string `arg:"" help:"Source clip (.mov, .mp4 or .m4v)."`
	Output string `short:"o" required:"" help:"Output MP4 file path."`

	// Encoding options
	FPS *int `help:"Output frame rate."`
	CRF *int `short:"q" help:"Video quality (CRF 0-51, lower is better)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ConcatCmd defines the concat subcommand.
type ConcatCmd struct {
	Inputs []string `arg:"" help:"Clips to join, in order."`
	Output string   `short:"o" required:"" help:"Output MP4 file path."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("slidecast"),
		kong.Description("Turn still images and audio tracks into narrated videos."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the generate command.
func (cmd *GenerateCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	log := newLogger(cmd.Quiet, cmd.LogLevel)
	ctx, cancel := signalContext(log)
	defer cancel()

	gen, err := newGenerator(cfg, log)
	if err != nil {
		return err
	}

	renderer := ggrenderer.New()
	images, err := loadImages(renderer, cmd.Images)
	if err != nil {
		return err
	}

	req := cfg.ToRequest(images, cmd.Audio)

	log.Info(l10n.F("Generating %s from %d image(s) and %d audio track(s)...", outputName(cmd.Output), len(images), len(cmd.Audio)))

	result, err := gen.Generate(ctx, req, cmd.Output, nil)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", result.Path))
	return nil
}

// Run executes the reverse command.
func (cmd *ReverseCmd) Run() error {
	cfg := config.Defaults()
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	if cmd.CRF != nil {
		cfg.CRF = *cmd.CRF
	}

	log := newLogger(cmd.Quiet, cmd.LogLevel)
	ctx, cancel := signalContext(log)
	defer cancel()

	gen, err := newGenerator(cfg, log)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Reversing %s...", cmd.Input))

	path, err := gen.Reverse(ctx, cmd.Input, cmd.Output)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", path))
	return nil
}

// Run executes the concat command.
func (cmd *ConcatCmd) Run() error {
	log := newLogger(cmd.Quiet, cmd.LogLevel)
	ctx, cancel := signalContext(log)
	defer cancel()

	gen, err := newGenerator(config.Defaults(), log)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Joining %d clip(s)...", len(cmd.Inputs)))

	path, err := gen.Concat(ctx, cmd.Inputs, cmd.Output)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", path))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("slidecast version %s", version))
	return nil
}

// buildConfig merges the config file, defaults and CLI overrides.
func (cmd *GenerateCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", cmd.Config, err)
		}
		cfg = loaded
	}

	cfg.Mode = cmd.Mode
	cfg.WorkDir = cmd.WorkDir
	if cmd.MaxDuration != nil {
		cfg.MaxDurationSec = *cmd.MaxDuration
	}
	if cmd.ScaleWidth != nil {
		cfg.ScaleWidth = *cmd.ScaleWidth
	}
	if cmd.OptimizeAspect {
		cfg.OptimizeAspect = true
	}
	if cmd.BackgroundColor != nil {
		cfg.Background = *cmd.BackgroundColor
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	if cmd.CRF != nil {
		cfg.CRF = *cmd.CRF
	}
	if cmd.Bitrate != nil {
		cfg.Bitrate = *cmd.Bitrate
	}

	return cfg, nil
}

// newGenerator wires the production adapters into a generator.
func newGenerator(cfg config.Config, log ports.Logger) (*generator.Generator, error) {
	decoder, err := ffmpegdecoder.New()
	if err != nil {
		return nil, err
	}
	engine, err := ffmpegexport.New(log)
	if err != nil {
		return nil, err
	}

	return generator.New(
		decoder,
		ffmpegsink.Opener(cfg.ToSinkOptions()),
		engine,
		osfilesystem.New(),
		rgbapool.New(),
		ggrenderer.New(),
		log,
		cfg.WorkDir,
	), nil
}

func newLogger(quiet bool, level string) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// signalContext cancels the returned context on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

// loadImages decodes every image file in order.
func loadImages(renderer ports.Renderer, paths []string) ([]image.Image, error) {
	images := make([]image.Image, len(paths))
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", path, err)
		}
		img, err := renderer.DecodeImage(data)
		if err != nil {
			return nil, fmt.Errorf("decode image %s: %w", path, err)
		}
		images[i] = img
	}
	return images, nil
}

func outputName(path string) string {
	if path == "" {
		return generator.DefaultOutputName
	}
	return path
}
