package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputName is the deterministic file name for one rendition. Suffixed
// names carry the target width; original-width passthrough outputs keep
// the source base name with only the extension swapped, so a same-size
// export reads as a format conversion.
func OutputName(src string, width int, suffixed bool, format string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if !suffixed {
		return fmt.Sprintf("%s.%s", base, format)
	}
	return fmt.Sprintf("%s-%d.%s", base, width, format)
}

// OutputPath places a rendition under outputDir, mirroring the source's
// directory structure when preserveFolders is set and flattening to the
// output root otherwise.
func OutputPath(inputDir, outputDir, src string, width int, suffixed bool, format string, preserveFolders bool) (string, error) {
	rel, err := filepath.Rel(inputDir, src)
	if err != nil {
		return "", fmt.Errorf("relativize %s against %s: %w", src, inputDir, err)
	}
	dirPart := ""
	if preserveFolders {
		if d := filepath.Dir(rel); d != "." {
			dirPart = d
		}
	}
	return filepath.Join(outputDir, dirPart, OutputName(src, width, suffixed, format)), nil
}
