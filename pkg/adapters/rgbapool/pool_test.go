package rgbapool

import (
	"testing"
)

func TestAcquireDimensions(t *testing.T) {
	p := New()

	buf, err := p.Acquire(64, 48)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if buf.Bounds().Dx() != 64 || buf.Bounds().Dy() != 48 {
		t.Errorf("expected 64x48, got %dx%d", buf.Bounds().Dx(), buf.Bounds().Dy())
	}
}

func TestAcquireInvalidDimensions(t *testing.T) {
	p := New()

	if _, err := p.Acquire(0, 48); err == nil {
		t.Error("expected an error for zero width")
	}
	if _, err := p.Acquire(64, -1); err == nil {
		t.Error("expected an error for negative height")
	}
}

func TestBufferReuse(t *testing.T) {
	p := New()

	buf1, _ := p.Acquire(64, 48)
	p.Release(buf1)

	buf2, _ := p.Acquire(64, 48)
	if buf2.Bounds().Dx() != 64 || buf2.Bounds().Dy() != 48 {
		t.Errorf("expected 64x48, got %dx%d", buf2.Bounds().Dx(), buf2.Bounds().Dy())
	}
}

func TestDimensionChangeResetsPool(t *testing.T) {
	p := New()

	buf, _ := p.Acquire(64, 48)
	p.Release(buf)

	// A different size must never hand back the old buffer.
	buf2, _ := p.Acquire(128, 96)
	if buf2.Bounds().Dx() != 128 || buf2.Bounds().Dy() != 96 {
		t.Errorf("expected 128x96, got %dx%d", buf2.Bounds().Dx(), buf2.Bounds().Dy())
	}
}

func TestReleaseStaleBuffer(t *testing.T) {
	p := New()

	stale, _ := p.Acquire(64, 48)
	if _, err := p.Acquire(128, 96); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// Releasing the old-sized buffer must not poison the pool.
	p.Release(stale)
	buf, _ := p.Acquire(128, 96)
	if buf.Bounds().Dx() != 128 || buf.Bounds().Dy() != 96 {
		t.Errorf("expected 128x96, got %dx%d", buf.Bounds().Dx(), buf.Bounds().Dy())
	}
}

func TestReleaseNil(t *testing.T) {
	p := New()
	p.Release(nil)
}
