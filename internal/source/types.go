package source

import "fmt"

// Pos is a (line, column) pair. Lines are 1-based, columns 0-based.
// Leading whitespace is measured with tabs expanded to the tab width,
// every other byte counts one column.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ComparePos orders positions lexicographically: -1, 0 or 1.
func ComparePos(a, b Pos) int {
	if a.Line < b.Line {
		return -1
	}
	if a.Line > b.Line {
		return 1
	}
	if a.Column < b.Column {
		return -1
	}
	if a.Column > b.Column {
		return 1
	}
	return 0
}

// Range is a half-open interval [Start, End).
type Range struct {
	Start Pos
	End   Pos
}

// NewRange is shorthand for Range{Start: Pos{sl, sc}, End: Pos{el, ec}}.
func NewRange(sl, sc, el, ec int) Range {
	return Range{Start: Pos{Line: sl, Column: sc}, End: Pos{Line: el, Column: ec}}
}

// FileFlags encodes metadata about a source file.
type FileFlags uint8

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileHadCRLF
)
