package codec

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	_ "image/jpeg"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func decodeSize(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return cfg.Width, cfg.Height
}

func TestProbe(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src.png")
	writePNG(t, src, 100, 80)

	info, err := New().Probe(src)
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 100 || info.Height != 80 {
		t.Errorf("probe = %dx%d, want 100x80", info.Width, info.Height)
	}
}

func TestProcessResizesPreservingAspect(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src.png")
	writePNG(t, src, 100, 80)

	dst := filepath.Join(tmp, "out-50.jpeg")
	err := New().Process(context.Background(), Job{
		Source:  src,
		Dest:    dst,
		Width:   50,
		Format:  "jpeg",
		Options: Options{Quality: 80},
	})
	if err != nil {
		t.Fatal(err)
	}
	w, h := decodeSize(t, dst)
	if w != 50 || h != 40 {
		t.Errorf("resized to %dx%d, want 50x40", w, h)
	}
}

func TestProcessNeverEnlarges(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src.png")
	writePNG(t, src, 100, 80)

	dst := filepath.Join(tmp, "out.png")
	err := New().Process(context.Background(), Job{
		Source: src,
		Dest:   dst,
		Width:  400,
		Format: "png",
	})
	if err != nil {
		t.Fatal(err)
	}
	w, h := decodeSize(t, dst)
	if w != 100 || h != 80 {
		t.Errorf("got %dx%d, want unenlarged 100x80", w, h)
	}
}

func TestProcessMalformedInputFails(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "broken.png")
	if err := os.WriteFile(src, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New().Process(context.Background(), Job{
		Source: src,
		Dest:   filepath.Join(tmp, "out.jpeg"),
		Width:  50,
		Format: "jpeg",
	})
	if err == nil {
		t.Fatal("expected decode error for malformed input")
	}
}

func TestEncodeKnobMapping(t *testing.T) {
	if got := avifSpeed(4); got != 6 {
		t.Errorf("avifSpeed(4) = %d, want 6", got)
	}
	if got := avifSpeed(0); got != 10 {
		t.Errorf("avifSpeed(0) = %d, want 10", got)
	}
	if got := webpMethod(0); got != 4 {
		t.Errorf("webpMethod(0) = %d, want 4", got)
	}
	if got := webpMethod(9); got != 6 {
		t.Errorf("webpMethod(9) = %d, want 6", got)
	}
	if got := quality(0, 80); got != 80 {
		t.Errorf("quality(0, 80) = %d, want 80", got)
	}
	if got := quality(120, 80); got != 100 {
		t.Errorf("quality(120, 80) = %d, want 100", got)
	}
}
