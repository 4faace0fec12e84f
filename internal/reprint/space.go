package reprint

import (
	"reprint/internal/ast"
	"reprint/internal/lines"
)

// hasParens reports whether the original text of n is directly enclosed in
// parentheses.
func hasParens(src *lines.Lines, n ast.Node) bool {
	loc := n.Loc()
	if loc == nil {
		return false
	}
	back, ok := src.SkipSpaces(loc.Start, true)
	if !ok {
		return false
	}
	prev, ok := src.PrevPos(back)
	if !ok || src.CharAt(prev) != '(' {
		return false
	}
	next, ok := src.SkipSpaces(loc.End, false)
	return ok && src.CharAt(next) == ')'
}

func risky(c byte) bool {
	return c == '_' || c == '$' ||
		('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// fuses reports whether left immediately followed by right would lex as a
// single token: an identifier or number, `++`, `--`, or a comment opener.
func fuses(left, right byte) bool {
	switch {
	case risky(left) && risky(right):
		return true
	case (left == '+' || left == '-') && right == left:
		return true
	case left == '/' && (right == '/' || right == '*'):
		return true
	}
	return false
}

// separate pads repl with a space on either side where its first or last
// character would fuse into one token with the text around loc.
func separate(src *lines.Lines, loc *ast.Loc, repl *lines.Lines) *lines.Lines {
	if repl.IsEmpty() {
		return repl
	}
	var lead, trail bool
	if prev, ok := src.PrevPos(loc.Start); ok {
		lead = fuses(src.CharAt(prev), repl.CharAt(repl.FirstPos()))
	}
	if last, ok := repl.PrevPos(repl.LastPos()); ok {
		trail = fuses(repl.CharAt(last), src.CharAt(loc.End))
	}
	if !lead && !trail {
		return repl
	}
	parts := make([]any, 0, 3)
	if lead {
		parts = append(parts, " ")
	}
	parts = append(parts, repl)
	if trail {
		parts = append(parts, " ")
	}
	return lines.ConcatAny(repl.Options(), parts...)
}
