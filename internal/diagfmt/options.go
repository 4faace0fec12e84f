package diagfmt

import (
	"path/filepath"

	"reprint/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps the path as the diagnostic carries it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Sources resolves a diagnostic path to its text; nil when unknown. Without
// the text Pretty prints no source context.
type Sources func(path string) *source.File

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	BaseDir   string // для PathModeRelative
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}

func formatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if base == "" {
			return path
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return rel
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
