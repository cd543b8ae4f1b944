package dispatch

import (
	"path/filepath"
	"strings"
)

// Kind classifies how a file should be processed, purely by extension.
type Kind string

const (
	KindImage   Kind = "image"
	KindText    Kind = "text"
	KindUnknown Kind = "unknown"
)

type Options struct {
	ImageExtensions []string
	TextExtensions  []string
}

func DefaultOptions() Options {
	return Options{
		ImageExtensions: []string{
			".jpg", ".jpeg", ".png", ".tiff", ".tif",
		},
		TextExtensions: []string{
			".txt", ".log", ".csv", ".json", ".xml",
		},
	}
}

// Classify returns the processing kind for path based on its lowercased
// extension. Content is never sniffed.
func Classify(path string, opts Options) Kind {
	imageExts := normalizeExts(opts.ImageExtensions)
	textExts := normalizeExts(opts.TextExtensions)

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return KindImage
	case textExts[ext]:
		return KindText
	default:
		return KindUnknown
	}
}

func normalizeExts(exts []string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, ext := range exts {
		e := strings.TrimSpace(strings.ToLower(ext))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		m[e] = true
	}
	return m
}
