package driver

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp marks a line of a LineDiff.
type DiffOp byte

const (
	DiffKeep   DiffOp = ' '
	DiffDelete DiffOp = '-'
	DiffInsert DiffOp = '+'
)

// DiffLine is one line of a LineDiff, without its terminator.
type DiffLine struct {
	Op   DiffOp
	Line int // 1-based line in the old text, or in the new text for inserts
	Text string
}

// LineDiff compares a and b line by line.
func LineDiff(a, b string) []DiffLine {
	dmp := diffmatchpatch.New()
	ca, cb, index := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), index)

	var out []DiffLine
	oldLine, newLine := 1, 1
	for _, d := range diffs {
		for _, text := range splitKeepingLast(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				out = append(out, DiffLine{Op: DiffKeep, Line: oldLine, Text: text})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				out = append(out, DiffLine{Op: DiffDelete, Line: oldLine, Text: text})
				oldLine++
			case diffmatchpatch.DiffInsert:
				out = append(out, DiffLine{Op: DiffInsert, Line: newLine, Text: text})
				newLine++
			}
		}
	}
	return out
}

// Hunks drops unchanged lines further than context lines away from a change.
// Every dropped run becomes one separator line: Op DiffKeep, Line 0.
func Hunks(lines []DiffLine, context int) []DiffLine {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Op == DiffKeep {
			continue
		}
		for j := max(0, i-context); j <= min(len(lines)-1, i+context); j++ {
			keep[j] = true
		}
	}
	var out []DiffLine
	gap := false
	for i, l := range lines {
		if !keep[i] {
			gap = true
			continue
		}
		if gap && len(out) > 0 {
			out = append(out, DiffLine{Op: DiffKeep})
		}
		gap = false
		out = append(out, l)
	}
	return out
}

// splitKeepingLast splits a diff chunk into lines; each chunk ends with a
// terminator except possibly the last one of the text.
func splitKeepingLast(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimRight(p, "\r\n")
	}
	return parts
}
