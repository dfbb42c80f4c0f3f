package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "resizer.config.json")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadResolvesRelativeToConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	p := writeConfig(t, tmpDir, `{
  "inputDir": "./input",
  "outputDir": "out/resized"
}`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmpDir, "input"); cfg.InputDir != want {
		t.Errorf("inputDir = %q, want %q", cfg.InputDir, want)
	}
	if want := filepath.Join(tmpDir, "out", "resized"); cfg.OutputDir != want {
		t.Errorf("outputDir = %q, want %q", cfg.OutputDir, want)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := Load(filepath.Join(tmpDir, "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(tmpDir, "images"); cfg.InputDir != want {
		t.Errorf("inputDir = %q, want %q", cfg.InputDir, want)
	}
	if cfg.Concurrency < 1 {
		t.Errorf("concurrency = %d, want >= 1", cfg.Concurrency)
	}
	if len(cfg.Formats) == 0 {
		t.Error("expected default formats")
	}
}

func TestLoadMalformedJSONReportsOffset(t *testing.T) {
	tmpDir := t.TempDir()
	p := writeConfig(t, tmpDir, `{"inputDir": }`)

	_, err := Load(p)
	if err == nil {
		t.Fatal("expected error for malformed json")
	}
	if !strings.Contains(err.Error(), "byte") {
		t.Errorf("error should carry byte offset, got: %v", err)
	}
	if !strings.Contains(err.Error(), p) {
		t.Errorf("error should name the file, got: %v", err)
	}
}

func TestSizesMixedEntries(t *testing.T) {
	tmpDir := t.TempDir()
	p := writeConfig(t, tmpDir, `{"sizes": [320, "", 640]}`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Sizes) != 3 {
		t.Fatalf("len(sizes) = %d, want 3", len(cfg.Sizes))
	}
	if cfg.Sizes[0].Width != 320 || cfg.Sizes[0].Original {
		t.Errorf("sizes[0] = %+v, want width 320", cfg.Sizes[0])
	}
	if !cfg.Sizes[1].Original {
		t.Errorf("sizes[1] = %+v, want original passthrough", cfg.Sizes[1])
	}
	if cfg.Sizes[2].Width != 640 {
		t.Errorf("sizes[2] = %+v, want width 640", cfg.Sizes[2])
	}
}

func TestExtensionsNormalized(t *testing.T) {
	tmpDir := t.TempDir()
	p := writeConfig(t, tmpDir, `{"extensions": [".JPG", "Png"]}`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Extensions[0] != "jpg" || cfg.Extensions[1] != "png" {
		t.Errorf("extensions = %v, want [jpg png]", cfg.Extensions)
	}
}

func TestHTMLPathDefault(t *testing.T) {
	tmpDir := t.TempDir()
	cfg, err := Load(filepath.Join(tmpDir, "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(cfg.OutputDir, "index.html"); cfg.HTMLPath() != want {
		t.Errorf("HTMLPath = %q, want %q", cfg.HTMLPath(), want)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	p := filepath.Join(tmpDir, "resizer.config.json")

	if err := Init(p); err != nil {
		t.Fatal(err)
	}
	// the written file must load cleanly
	if _, err := Load(p); err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if err := Init(p); err == nil {
		t.Error("expected error when config already exists")
	}
}
