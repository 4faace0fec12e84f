package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     int
	Column   int
	Message  string
}

// FormatShort renders diagnostics one per line as
// "severity CODE path:line:col message", sorted deterministically. Columns
// are printed 1-based. Returns "" when diags is empty.
func FormatShort(diags []Diagnostic, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []shortDiagnostic, d *Diagnostic, includeNotes bool) []shortDiagnostic {
	path := normalizePath(d.Path)
	out = append(out, shortDiagnostic{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     d.Primary.Start.Line,
		Column:   d.Primary.Start.Column + 1,
		Message:  sanitizeMessage(d.Message),
	})
	if includeNotes {
		for _, note := range d.Notes {
			out = append(out, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     path,
				Line:     note.Range.Start.Line,
				Column:   note.Range.Start.Column + 1,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func normalizePath(path string) string {
	if path == "" {
		return "<input>"
	}
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	return strings.ToLower(sev.String())
}

func sanitizeMessage(msg string) string {
	// одна строка на диагностику
	return strings.Join(strings.Fields(msg), " ")
}
