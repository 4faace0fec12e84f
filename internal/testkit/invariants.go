// Package testkit holds checks shared by tests of the packages that build
// or consume located trees.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"reprint/internal/ast"
	"reprint/internal/lines"
	"reprint/internal/source"
)

// CheckLocInvariants runs the location invariants on a parsed tree:
// 1) every Loc is a valid range inside the text, with columns on their line
// 2) Loc.Indent is the start column of a node that begins its line, and the
// indent of the enclosing node otherwise
// 3) child ranges nest inside the parent and siblings do not overlap
// 4) comment ranges are valid and inside the text
func CheckLocInvariants(root ast.Node, text *lines.Lines) error {
	if ast.IsNil(root) || text == nil {
		return fmt.Errorf("nil tree or text")
	}
	full := source.Range{Start: text.FirstPos(), End: text.LastPos()}
	return checkNode(root, nil, 0, full, text)
}

func checkNode(n ast.Node, parent *ast.Loc, indent int, full source.Range, text *lines.Lines) error {
	loc := n.Loc()
	if loc != nil {
		if err := checkRange(loc.Range, full, text); err != nil {
			return fmt.Errorf("%s %v: %w", n.Kind(), loc.Range, err)
		}
		want := indent
		if loc.Start.Column <= text.IndentAt(loc.Start.Line) {
			want = loc.Start.Column
		}
		if loc.Indent != want {
			return fmt.Errorf("%s %v: indent %d, want %d", n.Kind(), loc.Range, loc.Indent, want)
		}
		indent = want
		if parent != nil && !parent.Contains(loc.Range) {
			return fmt.Errorf("%s %v is outside its parent %v", n.Kind(), loc.Range, parent.Range)
		}
		parent = loc
	}
	for _, c := range n.Comments() {
		if c.Loc == nil {
			continue
		}
		if err := checkRange(c.Loc.Range, full, text); err != nil {
			return fmt.Errorf("comment %q: %w", c.Text, err)
		}
	}

	var prev *ast.Loc
	for _, c := range ast.Children(n) {
		if err := checkNode(c, parent, indent, full, text); err != nil {
			return err
		}
		cl := c.Loc()
		if cl == nil {
			continue
		}
		if prev != nil && source.ComparePos(prev.End, cl.Start) > 0 {
			return fmt.Errorf("%s %v overlaps previous sibling %v", c.Kind(), cl.Range, prev.Range)
		}
		prev = cl
	}
	return nil
}

func checkRange(r, full source.Range, text *lines.Lines) error {
	if !r.Valid() {
		return fmt.Errorf("inverted range")
	}
	if !full.Contains(r) {
		return fmt.Errorf("range outside text %v", full)
	}
	for _, p := range []source.Pos{r.Start, r.End} {
		// позиции сериализуются как uint32
		if _, err := safecast.Conv[uint32](p.Line); err != nil {
			return fmt.Errorf("line %d: %w", p.Line, err)
		}
		col, err := safecast.Conv[uint32](p.Column)
		if err != nil {
			return fmt.Errorf("column %d: %w", p.Column, err)
		}
		length, err := safecast.Conv[uint32](text.LineLength(p.Line))
		if err != nil {
			return fmt.Errorf("line length overflow: %w", err)
		}
		if col > length {
			return fmt.Errorf("column %d past end of line %d (%d)", col, p.Line, length)
		}
	}
	return nil
}
