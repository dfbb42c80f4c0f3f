package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/respic/respic/config"
	"github.com/respic/respic/util"
)

// FileName is fixed: the manifest always sits at the output root so the
// html phase can find it with nothing but the config.
const FileName = "resized-manifest.json"

const (
	StatusWritten = "written"
	StatusSkipped = "skipped"
)

// OutputRecord describes one rendition of a source image. Path is
// absolute; the html-relative form is computed at html-generation time
// because it depends on where the document is written.
type OutputRecord struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Path   string `json:"path"`
	Status string `json:"status"`
}

type Entry struct {
	Source  string         `json:"source"`
	RelPath string         `json:"relPath"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Outputs []OutputRecord `json:"outputs"`
}

// Manifest is the durable handoff between the build and html phases.
type Manifest struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Config      config.Config `json:"config"`
	Entries     []Entry       `json:"entries"`
}

func Path(outputDir string) string {
	return filepath.Join(outputDir, FileName)
}

func (m *Manifest) Save(outputDir string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := util.EnsureDir(outputDir); err != nil {
		return err
	}
	return util.WriteFileAtomic(Path(outputDir), append(data, '\n'))
}

func Load(outputDir string) (*Manifest, error) {
	p := Path(outputDir)
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s (run build first?): %w", p, err)
	}
	m := &Manifest{}
	if err := json.Unmarshal(raw, m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", p, err)
	}
	return m, nil
}
