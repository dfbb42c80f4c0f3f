package codec

import "context"

// Info is the result of a metadata probe: the natural pixel dimensions of
// a source image.
type Info struct {
	Width  int
	Height int
}

// Options carries the per-format encode settings from the config. Fields
// that a given encoder cannot honor are ignored by it.
type Options struct {
	Quality          int
	Effort           int
	Progressive      bool
	Mozjpeg          bool
	CompressionLevel int
}

// Job is one decode-resize-encode unit: read Source, auto-orient, scale to
// Width preserving aspect ratio without enlarging, encode as Format and
// write the result to Dest.
type Job struct {
	Source  string
	Dest    string
	Width   int
	Format  string
	Options Options
}

// Codec is the image codec boundary. Probe reads dimensions without a
// full decode; Process runs one Job to completion.
type Codec interface {
	Probe(path string) (Info, error)
	Process(ctx context.Context, job Job) error
}
