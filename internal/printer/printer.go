// Package printer turns a tree back into text. Print keeps the original
// text of every node the reprint planner can reuse and lays out the rest
// generically; PrintGenerically never looks at the original.
package printer

import (
	"errors"
	"fmt"
	"strings"

	"reprint/internal/ast"
	"reprint/internal/cursor"
	"reprint/internal/diag"
	"reprint/internal/lines"
	"reprint/internal/reprint"
	"reprint/internal/source"
	"reprint/internal/trace"
)

const (
	QuoteAuto   = "auto"
	QuoteSingle = "single"
	QuoteDouble = "double"
)

type Options struct {
	TabWidth int  // indentation unit; guessed from the source when zero
	UseTabs  bool // indent generated text with tabs
	Quote    string
	// LineTerminator for generated line breaks; empty means the dominant
	// terminator of the source, "\n" without one.
	LineTerminator  string
	ReuseWhitespace bool // false: never reuse original text
	TrailingComma   bool // after the last property of multi-line objects
	Tracer          trace.Tracer
	// Reporter receives a PrintFallback note whenever a planned reuse had to
	// be abandoned.
	Reporter diag.Reporter
}

// DefaultOptions reuses original text and keeps literal quotes.
func DefaultOptions() Options {
	return Options{Quote: QuoteAuto, ReuseWhitespace: true}
}

// Printer prints nodes of one tree. It is not safe for concurrent use.
type Printer struct {
	opts    Options
	snap    *ast.Snapshot
	lopts   lines.Options
	unit    int
	term    string
	generic bool
}

// New returns a printer for trees whose parsed state is snap; snap may be
// nil for trees built from scratch.
func New(opts Options, snap *ast.Snapshot) *Printer {
	p := &Printer{opts: opts, snap: snap, unit: opts.TabWidth, term: opts.LineTerminator}
	if opts.Quote == "" {
		p.opts.Quote = QuoteAuto
	}
	var src *lines.Lines
	if snap != nil {
		src = snap.Lines
	}
	if src != nil {
		p.lopts = src.Options()
		if p.unit <= 0 {
			p.unit = src.GuessTabWidth()
		}
		if p.term == "" {
			p.term = src.LineTerminator()
		}
	}
	if p.unit <= 0 {
		p.unit = 4
	}
	if p.term == "" {
		p.term = "\n"
	}
	p.lopts.UseTabs = opts.UseTabs
	return p
}

// Print renders n, reusing original text wherever it is still accurate.
func (p *Printer) Print(n ast.Node) (*lines.Lines, error) {
	return p.run(n, "print", !p.opts.ReuseWhitespace)
}

// PrintGenerically renders n from the tree alone.
func (p *Printer) PrintGenerically(n ast.Node) (*lines.Lines, error) {
	return p.run(n, "print-generic", true)
}

func (p *Printer) run(n ast.Node, name string, generic bool) (*lines.Lines, error) {
	sp := trace.Begin(p.opts.Tracer, trace.ScopePass, name, 0)
	prev := p.generic
	p.generic = generic
	defer func() { p.generic = prev }()

	out, err := p.print(cursor.New(n), true, false)
	if err != nil {
		sp.End("error")
		return nil, err
	}
	sp.End("")
	return out, nil
}

// print renders the node at path, with its attached comments when
// withComments is set.
func (p *Printer) print(path *cursor.Path, withComments, avoidParens bool) (*lines.Lines, error) {
	n, ok := path.Value().(ast.Node)
	if !ok || ast.IsNil(n) {
		return p.empty(), nil
	}
	body, err := p.printNode(path, n, avoidParens)
	if err != nil || !withComments {
		return body, err
	}
	return p.withComments(n, body), nil
}

func (p *Printer) printNode(path *cursor.Path, n ast.Node, avoidParens bool) (*lines.Lines, error) {
	if !p.generic && !(avoidParens && path.NeedsParens()) {
		if plan := reprint.Get(path, p.snap, p.opts.Tracer); plan != nil {
			out, err := plan(p.render)
			if err == nil {
				return out, nil
			}
			if !errors.Is(err, reprint.ErrNotReusable) {
				return nil, err
			}
			p.fallback(n, err)
		}
	}
	out, err := p.printGeneric(path, n)
	if err != nil {
		return nil, err
	}
	if !avoidParens && path.NeedsParens() {
		out = p.concat("(", out, ")")
	}
	return out, nil
}

// render is the callback the reprint planner renders replacements with.
func (p *Printer) render(path *cursor.Path, o reprint.RenderOpts) (*lines.Lines, error) {
	out, err := p.print(path, o.WithComments, o.AvoidParens)
	if err != nil {
		return nil, err
	}
	return out.IndentTail(o.Indent), nil
}

func (p *Printer) fallback(n ast.Node, err error) {
	trace.Point(p.opts.Tracer, trace.ScopeNode, "reprint", "fallback", map[string]string{
		"kind":  n.Kind().String(),
		"error": err.Error(),
	})
	if p.opts.Reporter == nil {
		return
	}
	var rng source.Range
	if orig := p.snap.Original(n); orig != nil && orig.Loc() != nil {
		rng = orig.Loc().Range
	}
	msg := fmt.Sprintf("%s printed generically: %v", n.Kind(), err)
	diag.ReportInfo(p.opts.Reporter, diag.PrintFallback, rng, msg).Emit()
}

// ===== строительные блоки =====

func (p *Printer) empty() *lines.Lines { return lines.Empty(p.lopts) }

func (p *Printer) text(s string) *lines.Lines {
	if strings.Contains(s, "\n") && p.term != "\n" {
		s = strings.ReplaceAll(s, "\n", p.term)
	}
	return lines.FromString(s, p.lopts)
}

func (p *Printer) newline() *lines.Lines { return p.text("\n") }

// concat splices strings and buffers onto one line.
func (p *Printer) concat(parts ...any) *lines.Lines {
	for i, part := range parts {
		if s, ok := part.(string); ok {
			parts[i] = p.text(s)
		}
	}
	return lines.ConcatAny(p.lopts, parts...)
}

// stack puts every element on its own line.
func (p *Printer) stack(elems []*lines.Lines) *lines.Lines {
	return lines.JoinWith(p.newline(), elems)
}

// block wraps body in braces, indented one unit.
func (p *Printer) block(open, close string, body *lines.Lines) *lines.Lines {
	if body.IsEmpty() {
		return p.text(open + close)
	}
	return lines.Join(p.text(open), p.newline(), body.Indent(p.unit), p.newline(), p.text(close))
}
