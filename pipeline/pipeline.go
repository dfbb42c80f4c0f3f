package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/respic/respic/codec"
	"github.com/respic/respic/config"
	"github.com/respic/respic/limit"
	"github.com/respic/respic/logger"
	"github.com/respic/respic/manifest"
	"github.com/respic/respic/util"
)

type Stats struct {
	Images  int
	Written int
	Skipped int
	Failed  int
}

// Runner fans the per-image pipeline out over a bounded worker set and
// reduces the results into a manifest.
type Runner struct {
	Config *config.Config
	Codec  codec.Codec
}

func NewRunner(cfg *config.Config, cd codec.Codec) *Runner {
	return &Runner{Config: cfg, Codec: cd}
}

type imageResult struct {
	idx   int
	entry manifest.Entry
	err   error
}

// Build scans the input tree and produces every configured rendition,
// skipping outputs that already exist. One failing image never aborts the
// batch; it is logged and left out of the manifest.
func (r *Runner) Build(ctx context.Context) (*manifest.Manifest, Stats, error) {
	sources, err := Scan(r.Config.InputDir, r.Config.Extensions, r.Codec)
	if err != nil {
		return nil, Stats{}, err
	}

	lim := limit.New(r.Config.Concurrency)
	results := make(chan imageResult, len(sources))
	wg := &sync.WaitGroup{}
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src SourceImage) {
			defer wg.Done()
			if err := lim.Acquire(ctx); err != nil {
				results <- imageResult{idx: i, err: err}
				return
			}
			defer lim.Release()
			outs, err := r.processImage(ctx, src)
			if err != nil {
				results <- imageResult{idx: i, err: fmt.Errorf("%s: %w", src.RelPath, err)}
				return
			}
			results <- imageResult{idx: i, entry: manifest.Entry{
				Source:  src.Path,
				RelPath: filepath.ToSlash(src.RelPath),
				Width:   src.Width,
				Height:  src.Height,
				Outputs: outs,
			}}
		}(i, src)
	}
	wg.Wait()
	close(results)

	stats := Stats{}
	byIdx := make([]*manifest.Entry, len(sources))
	for res := range results {
		if res.err != nil {
			stats.Failed++
			logger.Error("image failed", "error", res.err)
			logger.AddSummaryError("image failed", "error", res.err)
			continue
		}
		e := res.entry
		byIdx[res.idx] = &e
		for _, o := range e.Outputs {
			if o.Status == manifest.StatusWritten {
				stats.Written++
			} else {
				stats.Skipped++
			}
		}
	}

	// manifest order follows scan order regardless of completion order
	entries := make([]manifest.Entry, 0, len(sources))
	for _, e := range byIdx {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	stats.Images = len(entries)

	m := &manifest.Manifest{
		GeneratedAt: time.Now().UTC(),
		Config:      *r.Config,
		Entries:     entries,
	}
	return m, stats, nil
}

type widthSpec struct {
	width    int
	suffixed bool
}

// effectiveWidths applies the no-upscale filter to the configured sizes
// and unions in any original-width passthrough entries. Explicit widths
// always get suffixed names, even when equal to the natural width;
// passthrough (and the implicit fallback when everything filters out)
// never does.
func effectiveWidths(sizes []config.Size, natural int) []widthSpec {
	out := []widthSpec{}
	seen := map[int]bool{}
	passthrough := false
	for _, s := range sizes {
		if s.Original {
			passthrough = true
			continue
		}
		if s.Width <= 0 || s.Width > natural {
			continue
		}
		if seen[s.Width] {
			continue
		}
		seen[s.Width] = true
		out = append(out, widthSpec{width: s.Width, suffixed: true})
	}
	if passthrough || len(out) == 0 {
		out = append(out, widthSpec{width: natural, suffixed: false})
	}
	return out
}

// processImage runs the full format x width grid for one source,
// sequentially. Sequential encodes keep at most one decoded buffer alive
// per worker.
func (r *Runner) processImage(ctx context.Context, src SourceImage) ([]manifest.OutputRecord, error) {
	widths := effectiveWidths(r.Config.Sizes, src.Width)
	records := make([]manifest.OutputRecord, 0, len(r.Config.Formats)*len(widths))
	for _, f := range r.Config.Formats {
		format := strings.ToLower(f.Format)
		for _, w := range widths {
			dest, err := OutputPath(r.Config.InputDir, r.Config.OutputDir, src.Path,
				w.width, w.suffixed, format, r.Config.PreserveFolders)
			if err != nil {
				return nil, err
			}
			if err := util.EnsureDir(filepath.Dir(dest)); err != nil {
				return nil, err
			}
			if util.Exists(dest) {
				logger.Debug("output exists, skipping", "dest", dest)
				records = append(records, manifest.OutputRecord{
					Format: format, Width: w.width, Path: dest, Status: manifest.StatusSkipped,
				})
				continue
			}
			job := codec.Job{
				Source: src.Path,
				Dest:   dest,
				Width:  w.width,
				Format: format,
				Options: codec.Options{
					Quality:          f.Quality,
					Effort:           f.Effort,
					Progressive:      f.Progressive,
					Mozjpeg:          f.Mozjpeg,
					CompressionLevel: f.CompressionLevel,
				},
			}
			if err := r.Codec.Process(ctx, job); err != nil {
				return nil, fmt.Errorf("%s %dw: %w", format, w.width, err)
			}
			logger.Debug("wrote", "dest", dest)
			records = append(records, manifest.OutputRecord{
				Format: format, Width: w.width, Path: dest, Status: manifest.StatusWritten,
			})
		}
	}
	return records, nil
}
