package pipeline

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/respic/respic/codec"
	"github.com/respic/respic/logger"
	"github.com/respic/respic/util"
)

// SourceImage is one discovered input with its natural dimensions, read
// once at scan time.
type SourceImage struct {
	Path    string
	RelPath string
	Width   int
	Height  int
}

// Scan walks inputDir for files matching the configured extensions and
// probes their dimensions. A missing input directory is structural, not
// fatal: the batch simply has nothing to do. Sources come back in lexical
// walk order, which keeps manifests deterministic.
func Scan(inputDir string, extensions []string, cd codec.Codec) ([]SourceImage, error) {
	if !util.IsDir(inputDir) {
		logger.Warn("input directory not found", "dir", inputDir)
		return nil, nil
	}

	extSet := map[string]bool{}
	for _, e := range extensions {
		extSet[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	sources := []SourceImage{}
	err := filepath.Walk(inputDir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if !extSet[ext] {
			return nil
		}
		probe, err := cd.Probe(path)
		if err != nil {
			logger.Error("probe failed, skipping image", "source", path, "error", err)
			logger.AddSummaryError("probe failed", "source", path, "error", err)
			return nil
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		sources = append(sources, SourceImage{
			Path:    path,
			RelPath: rel,
			Width:   probe.Width,
			Height:  probe.Height,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		logger.Warn("no matching images found", "dir", inputDir, "extensions", strings.Join(extensions, ","))
	}
	return sources, nil
}
