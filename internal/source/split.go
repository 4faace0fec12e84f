package source

import "strings"

// RawLine is one physical line with its terminator ("" for the last line).
type RawLine struct {
	Text string
	Term string
}

// Line terminators recognised by SplitLines, longest first.
var terminators = []string{"\r\n", "\n", "\r", "\u2028", "\u2029"}

// SplitLines splits text into lines, keeping each terminator verbatim so that
// concatenating Text+Term over the result reproduces text byte for byte.
// An empty input yields one empty line.
func SplitLines(text string) []RawLine {
	out := make([]RawLine, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); {
		term := terminatorAt(text, i)
		if term == "" {
			i++
			continue
		}
		out = append(out, RawLine{Text: text[start:i], Term: term})
		i += len(term)
		start = i
	}
	out = append(out, RawLine{Text: text[start:]})
	return out
}

func terminatorAt(text string, i int) string {
	switch text[i] {
	case '\r':
		if i+1 < len(text) && text[i+1] == '\n' {
			return "\r\n"
		}
		return "\r"
	case '\n':
		return "\n"
	case 0xE2:
		// U+2028 / U+2029 are E2 80 A8 / E2 80 A9 in UTF-8
		for _, t := range terminators[3:] {
			if strings.HasPrefix(text[i:], t) {
				return t
			}
		}
	}
	return ""
}

// IsTerminatorByteSeq reports whether s starts with a line terminator and
// returns its length.
func IsTerminatorByteSeq(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	t := terminatorAt(s, 0)
	return len(t), t != ""
}

// LeadingWhitespace returns the byte length of the indentation of line.
func LeadingWhitespace(line string) int {
	i := 0
	for i < len(line) {
		switch line[i] {
		case ' ', '\t', '\v', '\f':
			i++
			continue
		}
		break
	}
	return i
}

// CountSpaces measures whitespace in columns, advancing tabs to the next
// multiple of tabWidth.
func CountSpaces(ws string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	count := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			count = (count/tabWidth + 1) * tabWidth
			continue
		}
		count++
	}
	return count
}
