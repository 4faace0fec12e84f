package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"reprint/internal/diag"
	"reprint/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <sev> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Primary, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, sources Sources, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	p := prettyPrinter{w: w, sources: sources, opts: opts}
	for _, d := range bag.Items() {
		if err := p.diagnostic(d); err != nil {
			return err
		}
	}
	return nil
}

type prettyPrinter struct {
	w       io.Writer
	sources Sources
	opts    PrettyOpts
}

func (p prettyPrinter) paint(c *color.Color) *color.Color {
	if !p.opts.Color {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

func (p prettyPrinter) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.paint(color.New(color.FgRed, color.Bold))
	case diag.SevWarning:
		return p.paint(color.New(color.FgYellow, color.Bold))
	default:
		return p.paint(color.New(color.FgCyan))
	}
}

func (p prettyPrinter) diagnostic(d diag.Diagnostic) error {
	path := formatPath(d.Path, p.opts.PathMode, p.opts.BaseDir)
	pos := d.Primary.Start
	var head strings.Builder
	if path != "" {
		head.WriteString(p.paint(color.New(color.Bold)).Sprint(path) + ":")
	}
	if pos.Line > 0 {
		fmt.Fprintf(&head, "%d:%d:", pos.Line, pos.Column+1)
	}
	if head.Len() > 0 {
		head.WriteString(" ")
	}
	fmt.Fprintf(&head, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), d.Code.ID(), d.Message)
	if _, err := io.WriteString(p.w, head.String()); err != nil {
		return err
	}
	if err := p.context(d.Path, d.Primary, d.Severity); err != nil {
		return err
	}
	if !p.opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		if _, err := fmt.Fprintf(p.w, "  %s %s\n", p.paint(color.New(color.FgBlue)).Sprint("note:"), n.Msg); err != nil {
			return err
		}
	}
	return nil
}

// context prints the first line of r with a caret line under it.
func (p prettyPrinter) context(path string, r source.Range, sev diag.Severity) error {
	if p.sources == nil || r.Start.Line < 1 {
		return nil
	}
	f := p.sources(path)
	if f == nil || r.Start.Line > len(f.Lines) {
		return nil
	}
	text := f.LineText(r.Start.Line)
	// табы в отступе раскрываем, чтобы колонка совпала с кареткой
	ws := source.LeadingWhitespace(text)
	text = strings.Repeat(" ", source.CountSpaces(text[:ws], f.TabWidth)) + text[ws:]
	text = strings.TrimRight(text, "\r\n")

	width := 1
	if r.End.Line == r.Start.Line && r.End.Column > r.Start.Column {
		width = r.End.Column - r.Start.Column
	} else if r.End.Line > r.Start.Line {
		width = max(len(text)-r.Start.Column, 1)
	}
	gutter := fmt.Sprintf("%d", r.Start.Line)
	pad := strings.Repeat(" ", len(gutter))
	marker := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(p.w, " %s | %s\n %s | %s%s\n", gutter, text, pad,
		strings.Repeat(" ", r.Start.Column), p.severity(sev).Sprint(marker))
	return err
}
