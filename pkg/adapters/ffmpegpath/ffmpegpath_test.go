package ffmpegpath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FFMPEG_PATH", fake)

	path, err := Find()
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if path != fake {
		t.Errorf("expected %s, got %s", fake, path)
	}
}

func TestFindRejectsBrokenEnvOverride(t *testing.T) {
	t.Setenv("FFMPEG_PATH", filepath.Join(t.TempDir(), "missing"))

	_, err := Find()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindProbeHonorsEnvOverride(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffprobe")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FFPROBE_PATH", fake)

	path, err := FindProbe()
	if err != nil {
		t.Fatalf("FindProbe failed: %v", err)
	}
	if path != fake {
		t.Errorf("expected %s, got %s", fake, path)
	}
}
