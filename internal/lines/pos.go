package lines

import (
	"reprint/internal/source"
)

// CharAt returns the byte at p as it renders: ' ' inside indentation, '\n'
// at the end of every line but the last, and 0 past the end.
func (l *Lines) CharAt(p source.Pos) byte {
	if p.Line < 1 || p.Line > len(l.infos) || p.Column < 0 {
		return 0
	}
	in := l.infos[p.Line-1]
	indent := max(in.indent, 0)
	if p.Column < indent {
		return ' '
	}
	c := p.Column - indent + in.sliceStart
	if c == in.sliceEnd && p.Line < len(l.infos) {
		return '\n'
	}
	if c >= in.sliceEnd {
		return 0
	}
	return in.line[c]
}

// NextPos advances p by one column, wrapping to the next line.
func (l *Lines) NextPos(p source.Pos) (source.Pos, bool) {
	if p.Line < 1 || p.Line > len(l.infos) {
		return p, false
	}
	if p.Column < l.LineLength(p.Line) {
		p.Column++
		return p, true
	}
	if p.Line < len(l.infos) {
		return source.Pos{Line: p.Line + 1, Column: 0}, true
	}
	return p, false
}

// PrevPos moves p back by one column, wrapping to the end of the previous line.
func (l *Lines) PrevPos(p source.Pos) (source.Pos, bool) {
	if p.Line < 1 || p.Line > len(l.infos) {
		return p, false
	}
	if p.Column < 1 {
		if p.Line <= 1 {
			return p, false
		}
		return source.Pos{Line: p.Line - 1, Column: l.LineLength(p.Line - 1)}, true
	}
	p.Column = min(p.Column-1, l.LineLength(p.Line))
	return p, true
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\v', '\f', '\r', '\n':
		return true
	}
	return false
}

// SkipSpaces moves forward from p past whitespace (line breaks included) and
// returns the first non-space position. Backward, it returns the position just
// after the last non-space character before p. ok is false when only
// whitespace remains in that direction.
func (l *Lines) SkipSpaces(p source.Pos, backward bool) (source.Pos, bool) {
	if backward {
		for {
			prev, ok := l.PrevPos(p)
			if !ok {
				return p, false
			}
			p = prev
			if !isSpaceByte(l.CharAt(p)) {
				next, _ := l.NextPos(p)
				return next, true
			}
		}
	}
	for isSpaceByte(l.CharAt(p)) {
		next, ok := l.NextPos(p)
		if !ok {
			return p, false
		}
		p = next
	}
	return p, l.CharAt(p) != 0
}

// TrimLeft drops leading whitespace, blank lines included.
func (l *Lines) TrimLeft() *Lines {
	start, ok := l.SkipSpaces(l.FirstPos(), false)
	if !ok {
		return Empty(l.opts)
	}
	out, err := l.Slice(start, l.LastPos())
	if err != nil {
		panic(err) // SkipSpaces only returns positions inside l
	}
	return out
}

// TrimRight drops trailing whitespace, blank lines included.
func (l *Lines) TrimRight() *Lines {
	end, ok := l.SkipSpaces(l.LastPos(), true)
	if !ok {
		return Empty(l.opts)
	}
	out, err := l.Slice(l.FirstPos(), end)
	if err != nil {
		panic(err)
	}
	return out
}

// Trim drops leading and trailing whitespace.
func (l *Lines) Trim() *Lines {
	return l.TrimLeft().TrimRight()
}

// FirstChar returns the first non-space byte, 0 when there is none.
func (l *Lines) FirstChar() byte {
	p, ok := l.SkipSpaces(l.FirstPos(), false)
	if !ok {
		return 0
	}
	return l.CharAt(p)
}

// LastChar returns the last non-space byte, 0 when there is none.
func (l *Lines) LastChar() byte {
	p, ok := l.SkipSpaces(l.LastPos(), true)
	if !ok {
		return 0
	}
	prev, _ := l.PrevPos(p)
	return l.CharAt(prev)
}

// GuessTabWidth infers the indentation unit from the most frequent
// indentation step between consecutive non-blank lines.
func (l *Lines) GuessTabWidth() int {
	l.tabOnce.Do(func() {
		counts := map[int]int{}
		last := 0
		for _, in := range l.infos {
			if in.blank() || isOnlyWhitespace(in.content()) {
				continue
			}
			diff := in.indent - last
			if diff < 0 {
				diff = -diff
			}
			counts[diff]++
			last = in.indent
		}
		best, result := -1, 2
		for width, n := range counts {
			if width == 0 {
				continue
			}
			if n > best || (n == best && width < result) {
				best, result = n, width
			}
		}
		l.tabGuess = result
	})
	return l.tabGuess
}

// LineTerminator returns the most common terminator, "\n" when the buffer
// has a single line.
func (l *Lines) LineTerminator() string {
	counts := map[string]int{}
	best, bestN := "\n", 0
	for _, in := range l.infos {
		if in.term == "" {
			continue
		}
		counts[in.term]++
		if n := counts[in.term]; n > bestN {
			best, bestN = in.term, n
		}
	}
	return best
}
