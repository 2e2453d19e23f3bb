// Package ffmpegpath locates the ffmpeg and ffprobe executables used by the
// encoding, decoding and export adapters.
package ffmpegpath

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ErrNotFound is returned when an executable cannot be located.
var ErrNotFound = errors.New("ffmpegpath: executable not found")

// Find searches for ffmpeg.
// Priority: 1) FFMPEG_PATH env, 2) PATH, 3) common locations.
func Find() (string, error) {
	return find("ffmpeg", "FFMPEG_PATH")
}

// FindProbe searches for ffprobe.
// Priority: 1) FFPROBE_PATH env, 2) PATH, 3) common locations.
func FindProbe() (string, error) {
	return find("ffprobe", "FFPROBE_PATH")
}

func find(name, envVar string) (string, error) {
	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", ErrNotFound, envVar, envPath)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, p := range commonPaths(execName) {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func commonPaths(execName string) []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\` + execName,
			`C:\Program Files\ffmpeg\bin\` + execName,
			`C:\Program Files (x86)\ffmpeg\bin\` + execName,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/" + execName,
			"/usr/local/bin/" + execName,
			"/usr/bin/" + execName,
		}
	default:
		return []string{
			"/usr/bin/" + execName,
			"/usr/local/bin/" + execName,
			"/snap/bin/" + execName,
		}
	}
}
