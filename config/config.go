package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/respic/respic/logger"
	"github.com/respic/respic/util"
)

const DefaultFileName = "resizer.config.json"

// Config drives one resize run. InputDir, OutputDir and HTML.File are
// resolved against the directory of the config file, never against the
// process working directory.
type Config struct {
	InputDir        string   `json:"inputDir"`
	OutputDir       string   `json:"outputDir"`
	Extensions      []string `json:"extensions"`
	Formats         []Format `json:"formats"`
	Sizes           []Size   `json:"sizes"`
	PreserveFolders bool     `json:"preserveFolders"`
	Concurrency     int      `json:"concurrency"`
	HTML            HTML     `json:"html"`
}

type Format struct {
	Format           string `json:"format"`
	Quality          int    `json:"quality,omitempty"`
	Effort           int    `json:"effort,omitempty"`
	Progressive      bool   `json:"progressive,omitempty"`
	Mozjpeg          bool   `json:"mozjpeg,omitempty"`
	CompressionLevel int    `json:"compressionLevel,omitempty"`
}

type HTML struct {
	File            string `json:"file,omitempty"`
	PageTitle       string `json:"pageTitle"`
	SizesAttribute  string `json:"sizesAttribute"`
	WrapFigure      bool   `json:"wrapFigure"`
	AltFromFilename bool   `json:"altFromFilename"`
	ClassName       string `json:"className,omitempty"`
}

// Size is one entry of the sizes list: a positive target width, or the
// empty string, which requests an additional export at the image's
// original width with an unsuffixed file name.
type Size struct {
	Width    int
	Original bool
}

func (s *Size) UnmarshalJSON(data []byte) error {
	if string(data) == `""` {
		s.Original = true
		return nil
	}
	var w int
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf(`sizes entries must be positive numbers or "": %w`, err)
	}
	s.Width = w
	return nil
}

func (s Size) MarshalJSON() ([]byte, error) {
	if s.Original {
		return []byte(`""`), nil
	}
	return json.Marshal(s.Width)
}

func Default() Config {
	return Config{
		InputDir:   "./images",
		OutputDir:  "./resized",
		Extensions: []string{"jpg", "jpeg", "png", "webp"},
		Formats: []Format{
			{Format: "avif", Quality: 55, Effort: 4},
			{Format: "webp", Quality: 80, Effort: 4},
			{Format: "jpeg", Quality: 78, Progressive: true, Mozjpeg: true},
		},
		Sizes:           []Size{{Width: 320}, {Width: 640}, {Width: 960}, {Width: 1280}, {Width: 1920}},
		PreserveFolders: true,
		Concurrency:     4,
		HTML: HTML{
			PageTitle:       "Resized images",
			SizesAttribute:  "(max-width: 768px) 100vw, 768px",
			WrapFigure:      true,
			AltFromFilename: true,
		},
	}
}

// Load reads the config at path. A missing file is not an error: the
// defaults apply, resolved against the file's would-be directory.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path %s: %w", path, err)
	}
	baseDir := filepath.Dir(absPath)

	cfg := Default()
	raw, err := os.ReadFile(absPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		logger.Warn("config file not found, using defaults", "path", path)
	} else if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, decodeError(absPath, raw, err)
	}

	cfg.normalize()
	cfg.resolve(baseDir)
	return &cfg, nil
}

// decodeError turns a json error into a fatal report carrying the byte
// offset and a snippet of the surrounding document.
func decodeError(path string, raw []byte, err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return fmt.Errorf("malformed config %s at byte %d (near %q): %w",
			path, syn.Offset, snippet(raw, syn.Offset), err)
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		return fmt.Errorf("malformed config %s at byte %d (near %q): %w",
			path, typ.Offset, snippet(raw, typ.Offset), err)
	}
	return fmt.Errorf("malformed config %s: %w", path, err)
}

func snippet(raw []byte, offset int64) string {
	start := offset - 20
	if start < 0 {
		start = 0
	}
	end := offset + 20
	if end > int64(len(raw)) {
		end = int64(len(raw))
	}
	return string(raw[start:end])
}

func (c *Config) normalize() {
	if c.Concurrency < 1 {
		c.Concurrency = Default().Concurrency
	}
	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.ToLower(strings.TrimLeft(e, "."))
		if e != "" {
			exts = append(exts, e)
		}
	}
	c.Extensions = exts
}

func (c *Config) resolve(baseDir string) {
	c.InputDir = resolvePath(baseDir, c.InputDir)
	c.OutputDir = resolvePath(baseDir, c.OutputDir)
	if c.HTML.File != "" {
		c.HTML.File = resolvePath(baseDir, c.HTML.File)
	}
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}

// HTMLPath is where the preview document goes: the configured html.file,
// or index.html at the output root.
func (c *Config) HTMLPath() string {
	if c.HTML.File != "" {
		return c.HTML.File
	}
	return filepath.Join(c.OutputDir, "index.html")
}

// Init writes the default config to path, refusing to clobber an
// existing file.
func Init(path string) error {
	if util.Exists(path) {
		return fmt.Errorf("config already exists: %s", path)
	}
	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
