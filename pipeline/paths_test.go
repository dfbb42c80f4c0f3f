package pipeline

import (
	"path/filepath"
	"testing"
)

func TestOutputPath(t *testing.T) {
	inputDir := filepath.Join("/project", "images")
	outputDir := filepath.Join("/project", "resized")

	tests := []struct {
		name            string
		src             string
		width           int
		suffixed        bool
		format          string
		preserveFolders bool
		want            string
	}{
		{
			name:     "flat output",
			src:      filepath.Join(inputDir, "photos", "cats", "kitty.jpg"),
			width:    640,
			suffixed: true,
			format:   "webp",
			want:     filepath.Join(outputDir, "kitty-640.webp"),
		},
		{
			name:            "preserved folders",
			src:             filepath.Join(inputDir, "photos", "cats", "kitty.jpg"),
			width:           640,
			suffixed:        true,
			format:          "webp",
			preserveFolders: true,
			want:            filepath.Join(outputDir, "photos", "cats", "kitty-640.webp"),
		},
		{
			name:     "original width is unsuffixed",
			src:      filepath.Join(inputDir, "hero.png"),
			width:    800,
			suffixed: false,
			format:   "avif",
			want:     filepath.Join(outputDir, "hero.avif"),
		},
		{
			name:            "root level file with preserve on",
			src:             filepath.Join(inputDir, "hero.png"),
			width:           320,
			suffixed:        true,
			format:          "jpeg",
			preserveFolders: true,
			want:            filepath.Join(outputDir, "hero-320.jpeg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputPath(inputDir, outputDir, tt.src, tt.width, tt.suffixed, tt.format, tt.preserveFolders)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputNameSwapsExtensionOnly(t *testing.T) {
	got := OutputName("some.photo.jpg", 1200, false, "webp")
	if got != "some.photo.webp" {
		t.Errorf("got %q, want %q", got, "some.photo.webp")
	}
}
