package codec

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/respic/respic/util"
)

const (
	defaultJPEGQuality = 80
	defaultWebPQuality = 75
	defaultAVIFQuality = 60
	defaultWebPMethod  = 4
)

type imagingCodec struct{}

// New returns the default codec, built on disintegration/imaging with
// gen2brain encoders for the next-gen formats.
func New() Codec {
	return &imagingCodec{}
}

func (c *imagingCodec) Probe(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height}, nil
}

func (c *imagingCodec) Process(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	img, err := imaging.Open(job.Source, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decode %s: %w", job.Source, err)
	}
	if job.Width > 0 && job.Width < img.Bounds().Dx() {
		img = imaging.Resize(img, job.Width, 0, imaging.Lanczos)
	}
	buf := &bytes.Buffer{}
	if err := encode(buf, img, job.Format, job.Options); err != nil {
		return fmt.Errorf("encode %s as %s: %w", job.Source, job.Format, err)
	}
	return util.WriteFileAtomic(job.Dest, buf.Bytes())
}

func encode(w io.Writer, img image.Image, format string, o Options) error {
	switch strings.ToLower(format) {
	case "jpeg", "jpg":
		// The baseline encoder only knows quality; progressive and
		// mozjpeg settings are accepted in config but have no effect here.
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality(o.Quality, defaultJPEGQuality)})
	case "png":
		enc := &png.Encoder{CompressionLevel: pngLevel(o.CompressionLevel)}
		return enc.Encode(w, img)
	case "webp":
		return webp.Encode(w, img, webp.Options{
			Quality: quality(o.Quality, defaultWebPQuality),
			Method:  webpMethod(o.Effort),
		})
	case "avif":
		return avif.Encode(w, img, avif.Options{
			Quality: quality(o.Quality, defaultAVIFQuality),
			Speed:   avifSpeed(o.Effort),
		})
	default:
		f, err := imaging.FormatFromExtension(format)
		if err != nil {
			return fmt.Errorf("unsupported output format %q", format)
		}
		return imaging.Encode(w, img, f, imaging.JPEGQuality(quality(o.Quality, defaultJPEGQuality)))
	}
}

func quality(q, def int) int {
	if q <= 0 {
		return def
	}
	if q > 100 {
		return 100
	}
	return q
}

// webpMethod maps the config's effort scale onto the encoder's method
// knob (0 fastest, 6 slowest/best).
func webpMethod(effort int) int {
	if effort <= 0 {
		return defaultWebPMethod
	}
	if effort > 6 {
		return 6
	}
	return effort
}

// avifSpeed inverts effort onto the AV1 speed knob (0 slowest/best, 10
// fastest).
func avifSpeed(effort int) int {
	s := 10 - effort
	if s < 0 {
		return 0
	}
	if s > 10 {
		return 10
	}
	return s
}

func pngLevel(level int) png.CompressionLevel {
	switch {
	case level <= 0:
		return png.DefaultCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
