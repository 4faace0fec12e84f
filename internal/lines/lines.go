package lines

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"reprint/internal/source"
)

// ErrOutOfBounds is returned when a position or range falls outside a buffer.
var ErrOutOfBounds = errors.New("lines: position out of bounds")

// Options controls how indentation is measured and generated.
type Options struct {
	TabWidth int  // columns per tab stop, 4 when zero
	UseTabs  bool // generate indentation with tabs where possible
}

func (o Options) withDefaults() Options {
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	return o
}

// info describes one line of a Lines value. line holds the physical text the
// line was cut from; [sliceStart, sliceEnd) is the visible content after the
// indentation, and indent is the logical indentation in columns.
type info struct {
	line       string
	term       string
	indent     int
	sliceStart int
	sliceEnd   int
	locked     bool
}

func (in info) blank() bool {
	return in.sliceStart >= in.sliceEnd
}

func (in info) content() string {
	return in.line[in.sliceStart:in.sliceEnd]
}

func (in info) length() int {
	return max(in.indent, 0) + in.sliceEnd - in.sliceStart
}

// Lines is an immutable, line-addressable view of text. Every operation
// returns a new value; a *Lines may be shared freely between goroutines.
type Lines struct {
	infos []info
	opts  Options

	tabOnce  sync.Once
	tabGuess int
}

var emptyInfo = info{}

// Empty returns a buffer holding the empty string.
func Empty(opts Options) *Lines {
	return newLines([]info{emptyInfo}, opts)
}

func newLines(infos []info, opts Options) *Lines {
	if len(infos) == 0 {
		infos = []info{emptyInfo}
	}
	infos[len(infos)-1].term = ""
	return &Lines{infos: infos, opts: opts.withDefaults()}
}

// FromString splits text on every recognised line terminator and records each
// line's indentation. String() of the result reproduces text exactly.
func FromString(text string, opts Options) *Lines {
	opts = opts.withDefaults()
	raw := source.SplitLines(text)
	infos := make([]info, len(raw))
	for i, l := range raw {
		infos[i] = infoFor(l.Text, l.Term, opts.TabWidth)
	}
	return newLines(infos, opts)
}

func infoFor(line, term string, tabWidth int) info {
	ws := source.LeadingWhitespace(line)
	return info{
		line:       line,
		term:       term,
		indent:     source.CountSpaces(line[:ws], tabWidth),
		sliceStart: ws,
		sliceEnd:   len(line),
	}
}

// Options returns the options the buffer was built with.
func (l *Lines) Options() Options { return l.opts }

// Len returns the number of lines (at least 1).
func (l *Lines) Len() int { return len(l.infos) }

// IsEmpty reports whether the buffer renders to "".
func (l *Lines) IsEmpty() bool {
	return len(l.infos) < 2 && l.infos[0].length() < 1
}

// IndentAt returns the indentation of the 1-based line, never negative.
func (l *Lines) IndentAt(line int) int {
	if line < 1 || line > len(l.infos) {
		return 0
	}
	return max(l.infos[line-1].indent, 0)
}

// LineLength returns the column length of the 1-based line.
func (l *Lines) LineLength(line int) int {
	if line < 1 || line > len(l.infos) {
		return 0
	}
	return l.infos[line-1].length()
}

// FirstPos is the position of the first column of the first line.
func (l *Lines) FirstPos() source.Pos {
	return source.Pos{Line: 1, Column: 0}
}

// LastPos is the position just past the last column of the last line.
func (l *Lines) LastPos() source.Pos {
	n := len(l.infos)
	return source.Pos{Line: n, Column: l.LineLength(n)}
}

// Full is the range covering the whole buffer.
func (l *Lines) Full() source.Range {
	return source.Range{Start: l.FirstPos(), End: l.LastPos()}
}

// Check reports an ErrOutOfBounds for a position outside the buffer.
func (l *Lines) Check(p source.Pos) error {
	if p.Line < 1 || p.Line > len(l.infos) {
		return fmt.Errorf("%w: line %d not in [1, %d]", ErrOutOfBounds, p.Line, len(l.infos))
	}
	if n := l.infos[p.Line-1].length(); p.Column < 0 || p.Column > n {
		return fmt.Errorf("%w: column %d not in [0, %d] at line %d", ErrOutOfBounds, p.Column, n, p.Line)
	}
	return nil
}

// CheckRange validates both ends of r and its orientation.
func (l *Lines) CheckRange(r source.Range) error {
	if err := l.Check(r.Start); err != nil {
		return err
	}
	if err := l.Check(r.End); err != nil {
		return err
	}
	if !r.Valid() {
		return fmt.Errorf("%w: inverted range %s", ErrOutOfBounds, r)
	}
	return nil
}

// String renders the buffer, reusing original indentation bytes wherever the
// indentation of a line did not change.
func (l *Lines) String() string {
	var sb strings.Builder
	for _, in := range l.infos {
		sb.WriteString(l.render(in))
		sb.WriteString(in.term)
	}
	return sb.String()
}

func (l *Lines) render(in info) string {
	return renderInfo(in, l.opts)
}

func renderInfo(in info, opts Options) string {
	indent := max(in.indent, 0)
	before := in.line[:in.sliceStart]
	if isOnlyWhitespace(before) && source.CountSpaces(before, opts.TabWidth) == indent {
		return in.line[:in.sliceEnd]
	}
	return makeIndent(indent, opts) + in.content()
}

func makeIndent(n int, opts Options) string {
	if n <= 0 {
		return ""
	}
	tabs, spaces := 0, n
	if opts.UseTabs {
		tabs = n / opts.TabWidth
		spaces -= tabs * opts.TabWidth
	}
	return strings.Repeat("\t", tabs) + strings.Repeat(" ", spaces)
}

func isOnlyWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\v', '\f', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// Slice returns the text between start (inclusive) and end (exclusive).
// Positions outside the buffer fail with ErrOutOfBounds; nothing is clamped.
func (l *Lines) Slice(start, end source.Pos) (*Lines, error) {
	if err := l.CheckRange(source.Range{Start: start, End: end}); err != nil {
		return nil, err
	}
	out := make([]info, 0, end.Line-start.Line+1)
	for line := start.Line; line <= end.Line; line++ {
		in := l.infos[line-1]
		switch {
		case line == start.Line && line == end.Line:
			in = sliceInfo(in, start.Column, end.Column)
		case line == start.Line:
			in = sliceInfo(in, start.Column, -1)
		case line == end.Line:
			in = sliceInfo(in, 0, end.Column)
		}
		out = append(out, in)
	}
	return newLines(out, l.opts), nil
}

// SliceRange is Slice over r.
func (l *Lines) SliceRange(r source.Range) (*Lines, error) {
	return l.Slice(r.Start, r.End)
}

// SliceString renders the text between start and end.
func (l *Lines) SliceString(start, end source.Pos) (string, error) {
	s, err := l.Slice(start, end)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// sliceInfo cuts columns [startCol, endCol) out of a line; endCol < 0 means
// the end of the line. Columns inside the indentation shrink the indentation.
func sliceInfo(in info, startCol, endCol int) info {
	sliceStart, sliceEnd := in.sliceStart, in.sliceEnd
	indent := max(in.indent, 0)
	lineLength := indent + sliceEnd - sliceStart
	if endCol < 0 || endCol > lineLength {
		endCol = lineLength
	}
	startCol = max(startCol, 0)
	endCol = max(endCol, startCol)

	if endCol < indent {
		indent = endCol
		sliceEnd = sliceStart
	} else {
		sliceEnd -= lineLength - endCol
	}

	if startCol < indent {
		indent -= startCol
	} else {
		sliceStart += startCol - indent
		indent = 0
	}
	return info{
		line:       in.line,
		term:       in.term,
		indent:     indent,
		sliceStart: sliceStart,
		sliceEnd:   sliceEnd,
		locked:     in.locked,
	}
}

// Indent shifts every non-blank, unlocked line by delta columns. Rendered
// indentation never goes below zero, but the logical value is kept, so
// Indent(d).Indent(-d) restores the original.
func (l *Lines) Indent(delta int) *Lines {
	return l.shift(delta, 0)
}

// IndentTail is Indent applied to every line but the first.
func (l *Lines) IndentTail(delta int) *Lines {
	return l.shift(delta, 1)
}

func (l *Lines) shift(delta, from int) *Lines {
	if delta == 0 || len(l.infos) <= from {
		return l
	}
	out := make([]info, len(l.infos))
	copy(out, l.infos)
	for i := from; i < len(out); i++ {
		if out[i].blank() || out[i].locked {
			continue
		}
		out[i].indent += delta
	}
	return newLines(out, l.opts)
}

// LockIndentTail pins the indentation of every line but the first, so that
// later Indent calls leave them alone (multi-line strings and comments).
func (l *Lines) LockIndentTail() *Lines {
	if len(l.infos) < 2 {
		return l
	}
	out := make([]info, len(l.infos))
	copy(out, l.infos)
	for i := 1; i < len(out); i++ {
		out[i].locked = true
	}
	return newLines(out, l.opts)
}

// Concat joins l with others using splice semantics: the last line of one
// piece and the first line of the next become a single line.
func (l *Lines) Concat(others ...*Lines) *Lines {
	elems := make([]*Lines, 0, len(others)+1)
	elems = append(elems, l)
	elems = append(elems, others...)
	return joinOpts(l.opts, nil, elems)
}

// Join concatenates elems. Nil and empty elements are skipped.
func Join(elems ...*Lines) *Lines {
	return joinOpts(firstOpts(elems), nil, elems)
}

// JoinWith concatenates elems, inserting sep between non-empty elements.
func JoinWith(sep *Lines, elems []*Lines) *Lines {
	return joinOpts(firstOpts(elems), sep, elems)
}

// ConcatAny accepts strings and *Lines mixed; strings are
// converted with opts.
func ConcatAny(opts Options, parts ...any) *Lines {
	elems := make([]*Lines, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case nil:
		case string:
			elems = append(elems, FromString(v, opts))
		case *Lines:
			elems = append(elems, v)
		default:
			panic(fmt.Sprintf("lines: cannot concat %T", p))
		}
	}
	return joinOpts(opts, nil, elems)
}

func firstOpts(elems []*Lines) Options {
	for _, e := range elems {
		if e != nil {
			return e.opts
		}
	}
	return Options{}.withDefaults()
}

func joinOpts(opts Options, sep *Lines, elems []*Lines) *Lines {
	opts = opts.withDefaults()
	var out []info
	appendLines := func(piece *Lines) {
		if len(out) > 0 {
			prev := out[len(out)-1]
			first := piece.infos[0]
			merged := renderInfo(prev, opts) + piece.render(first)
			in := infoFor(merged, first.term, opts.TabWidth)
			in.locked = prev.locked || first.locked
			out[len(out)-1] = in
			out = append(out, piece.infos[1:]...)
			return
		}
		out = append(out, piece.infos...)
	}

	n := 0
	for _, e := range elems {
		if e == nil || e.IsEmpty() {
			continue
		}
		if n > 0 && sep != nil && !sep.IsEmpty() {
			appendLines(sep)
		}
		appendLines(e)
		n++
	}
	if len(out) == 0 {
		return Empty(opts)
	}
	return newLines(out, opts)
}
