package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fortio.org/safecast"
)

// File captures the bytes of one source file and its line index.
type File struct {
	Path     string
	Content  []byte
	Lines    []RawLine
	Starts   []int // byte offset of each line start
	Hash     [32]byte
	TabWidth int
	Flags    FileFlags
}

// NewFile indexes content. The content is kept as is: no BOM stripping and no
// CRLF normalisation, those bytes must survive a reprint.
func NewFile(path string, content []byte, tabWidth int) *File {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	text := string(content)
	raw := SplitLines(text)
	starts := make([]int, len(raw))
	off := 0
	for i, l := range raw {
		starts[i] = off
		off += len(l.Text) + len(l.Term)
	}

	var flags FileFlags
	if strings.HasPrefix(text, "\ufeff") {
		flags |= FileHadBOM
	}
	if strings.Contains(text, "\r\n") {
		flags |= FileHadCRLF
	}
	return &File{
		Path:     normalizePath(path),
		Content:  content,
		Lines:    raw,
		Starts:   starts,
		Hash:     sha256.Sum256(content),
		TabWidth: tabWidth,
		Flags:    flags,
	}
}

// Load reads a file from disk and indexes it.
func Load(path string, tabWidth int) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, content, tabWidth), nil
}

// Virtual builds a File that does not exist on disk (tests, stdin).
func Virtual(name, text string) *File {
	f := NewFile(name, []byte(text), 4)
	f.Flags |= FileVirtual
	return f
}

// Size returns the content length as uint32, the width the line index uses
// when serialised.
func (f *File) Size() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

// PosOf converts a byte offset into a Pos. Offsets past the end clamp to the
// end of the last line.
func (f *File) PosOf(off int) Pos {
	if off < 0 {
		off = 0
	}
	if off > len(f.Content) {
		off = len(f.Content)
	}
	// наибольший start <= off
	i := sort.Search(len(f.Starts), func(i int) bool { return f.Starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	line := f.Lines[i].Text
	rel := off - f.Starts[i]
	if rel > len(line) {
		rel = len(line)
	}
	return Pos{Line: i + 1, Column: ColumnOf(line, rel, f.TabWidth)}
}

// ColumnOf converts a byte index within line into a column.
func ColumnOf(line string, byteIdx, tabWidth int) int {
	ws := LeadingWhitespace(line)
	if byteIdx <= ws {
		return CountSpaces(line[:byteIdx], tabWidth)
	}
	return CountSpaces(line[:ws], tabWidth) + byteIdx - ws
}

// LineText returns the text of the 1-based line, "" when out of range.
func (f *File) LineText(line int) string {
	if line < 1 || line > len(f.Lines) {
		return ""
	}
	return f.Lines[line-1].Text
}

// EndPos is the position just past the last byte of the file.
func (f *File) EndPos() Pos {
	return f.PosOf(len(f.Content))
}

func normalizePath(p string) string {
	if p == "" {
		return p
	}
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
