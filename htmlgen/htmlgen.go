package htmlgen

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/respic/respic/config"
	"github.com/respic/respic/logger"
	"github.com/respic/respic/manifest"
	"github.com/respic/respic/util"
)

// fallbackPriority orders candidate <img> fallback formats by browser
// compatibility.
var fallbackPriority = []string{"jpeg", "jpg", "webp", "avif"}

// unknownAspect is the height/width ratio assumed when the original
// dimensions never made it into the manifest.
const unknownAspect = 0.66

type Source struct {
	Type   string
	Srcset string
	Sizes  string
}

type Img struct {
	Src    string
	Srcset string
	Sizes  string
	Alt    string
	Width  int
	Height int
	Class  string
}

type Picture struct {
	Sources    []Source
	Img        Img
	WrapFigure bool
}

type Page struct {
	Title    string
	Pictures []Picture
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Pictures}}{{if .WrapFigure}}<figure>
{{end}}<picture>
{{- range .Sources}}
  <source type="{{.Type}}" srcset="{{.Srcset}}" sizes="{{.Sizes}}">
{{- end}}
  <img src="{{.Img.Src}}" srcset="{{.Img.Srcset}}" sizes="{{.Img.Sizes}}" alt="{{.Img.Alt}}" width="{{.Img.Width}}" height="{{.Img.Height}}" loading="lazy" decoding="async"{{with .Img.Class}} class="{{.}}"{{end}}>
</picture>
{{if .WrapFigure}}</figure>
{{end}}{{end}}</body>
</html>
`))

// Generate renders responsive markup for every manifest entry, in
// manifest order, and writes the document to htmlPath. All image paths
// are relative to the document's directory, so the file can live anywhere.
func Generate(m *manifest.Manifest, cfg *config.Config, htmlPath string) error {
	htmlDir := filepath.Dir(htmlPath)
	page := Page{Title: cfg.HTML.PageTitle}
	for _, e := range m.Entries {
		pic, err := buildPicture(e, &cfg.HTML, htmlDir)
		if err != nil {
			logger.Error("skipping manifest entry", "source", e.Source, "error", err)
			logger.AddSummaryError("skipping manifest entry", "source", e.Source, "error", err)
			continue
		}
		if pic != nil {
			page.Pictures = append(page.Pictures, *pic)
		}
	}

	buf := &bytes.Buffer{}
	if err := pageTemplate.Execute(buf, page); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	if err := util.EnsureDir(htmlDir); err != nil {
		return err
	}
	return util.WriteFileAtomic(htmlPath, buf.Bytes())
}

func buildPicture(e manifest.Entry, hc *config.HTML, htmlDir string) (*Picture, error) {
	if len(e.Outputs) == 0 {
		return nil, nil
	}

	// group by format, preserving first-seen format order
	order := []string{}
	groups := map[string][]manifest.OutputRecord{}
	for _, o := range e.Outputs {
		if _, ok := groups[o.Format]; !ok {
			order = append(order, o.Format)
		}
		groups[o.Format] = append(groups[o.Format], o)
	}
	for _, g := range groups {
		sort.Slice(g, func(i, j int) bool { return g[i].Width < g[j].Width })
	}

	srcsets := map[string]string{}
	for f, g := range groups {
		parts := make([]string, 0, len(g))
		for _, o := range g {
			rel, err := htmlRel(htmlDir, o.Path)
			if err != nil {
				return nil, err
			}
			parts = append(parts, fmt.Sprintf("%s %dw", rel, o.Width))
		}
		srcsets[f] = strings.Join(parts, ", ")
	}

	fbFormat := fallbackFormat(order)
	fb := groups[fbFormat]

	// second-smallest width as the default: not the heaviest file, not a
	// thumbnail either
	fbSrc := fb[0]
	if len(fb) >= 2 {
		fbSrc = fb[1]
	}
	src, err := htmlRel(htmlDir, fbSrc.Path)
	if err != nil {
		return nil, err
	}

	wmax := fb[len(fb)-1].Width
	hmax := 0
	if e.Width > 0 && e.Height > 0 {
		hmax = int(math.Round(float64(wmax) * float64(e.Height) / float64(e.Width)))
	} else {
		hmax = int(math.Round(float64(wmax) * unknownAspect))
	}

	pic := &Picture{WrapFigure: hc.WrapFigure}
	for _, f := range order {
		if f == fbFormat {
			continue
		}
		pic.Sources = append(pic.Sources, Source{
			Type:   mimeType(f),
			Srcset: srcsets[f],
			Sizes:  hc.SizesAttribute,
		})
	}
	pic.Img = Img{
		Src:    src,
		Srcset: srcsets[fbFormat],
		Sizes:  hc.SizesAttribute,
		Alt:    altText(e.RelPath, hc.AltFromFilename),
		Width:  wmax,
		Height: hmax,
		Class:  hc.ClassName,
	}
	return pic, nil
}

// htmlRel is the POSIX-style path from the html document's directory to
// an output file.
func htmlRel(htmlDir, target string) (string, error) {
	rel, err := filepath.Rel(htmlDir, target)
	if err != nil {
		return "", fmt.Errorf("relativize %s against %s: %w", target, htmlDir, err)
	}
	return filepath.ToSlash(rel), nil
}

func fallbackFormat(formats []string) string {
	for _, p := range fallbackPriority {
		for _, f := range formats {
			if f == p {
				return p
			}
		}
	}
	return formats[0]
}

func mimeType(format string) string {
	switch format {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "svg":
		return "image/svg+xml"
	default:
		return "image/" + format
	}
}

// altText derives alt text from the file name: either the raw stem, or a
// lightly humanized form with separator runs turned into spaces.
func altText(relPath string, humanize bool) string {
	stem := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	if !humanize {
		return stem
	}
	words := strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' })
	if len(words) == 0 {
		return stem
	}
	s := []rune(strings.Join(words, " "))
	s[0] = unicode.ToUpper(s[0])
	return string(s)
}
