package parser

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"reprint/internal/ast"
	"reprint/internal/diag"
	"reprint/internal/lexer"
	"reprint/internal/lines"
	"reprint/internal/source"
	"reprint/internal/token"
	"reprint/internal/trace"
)

// ErrSyntax is wrapped by every *Error returned from Parse and ParseExpr.
var ErrSyntax = errors.New("syntax error")

// Error carries the diagnostics of a failed parse.
type Error struct {
	Diagnostics []diag.Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diagnostics) == 0 {
		return ErrSyntax.Error()
	}
	first := e.Diagnostics[0]
	if n := len(e.Diagnostics) - 1; n > 0 {
		return fmt.Sprintf("%s: %s (and %d more)", ErrSyntax, first.Error(), n)
	}
	return fmt.Sprintf("%s: %s", ErrSyntax, first.Error())
}

func (e *Error) Unwrap() error { return ErrSyntax }

type Options struct {
	TabWidth  int // 4 when zero
	MaxErrors int // 0: без ограничения
	// Reporter receives every diagnostic in addition to the result bag.
	Reporter diag.Reporter
	Tracer   trace.Tracer
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return 4
	}
	return o.TabWidth
}

type Result struct {
	Name        string
	Source      *source.File
	Lines       *lines.Lines
	File        *ast.File
	Snapshot    *ast.Snapshot
	Diagnostics *diag.Bag
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	rep      diag.Reporter
	errors   int
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики

	parens map[ast.Node]source.Span // внешний span выражений в скобках
	spans  map[ast.Node]source.Span
	used   map[uint32]bool // комментарии, уже привязанные к узлам
}

func newParser(file *source.File, opts Options, bag *diag.Bag) *Parser {
	var rep diag.Reporter = diag.BagReporter{Bag: bag, Path: file.Path}
	if opts.Reporter != nil {
		rep = multiReporter{rep, opts.Reporter}
	}
	rep = diag.NewDedupReporter(rep)
	return &Parser{
		lx:     lexer.New(file, lexer.Options{Reporter: rep}),
		file:   file,
		opts:   opts,
		rep:    rep,
		parens: make(map[ast.Node]source.Span),
		spans:  make(map[ast.Node]source.Span),
		used:   make(map[uint32]bool),
	}
}

type multiReporter []diag.Reporter

func (m multiReporter) Report(code diag.Code, sev diag.Severity, primary source.Range, msg string, notes []diag.Note) {
	for _, r := range m {
		r.Report(code, sev, primary, msg, notes)
	}
}

// Parse разбирает файл целиком и снимает Snapshot до того, как дерево
// попадёт в руки мутаций. Синтаксические ошибки возвращаются как *Error.
func Parse(name string, src []byte, opts Options) (*Result, error) {
	sp := trace.Begin(opts.Tracer, trace.ScopePass, "parse", 0).WithExtra("file", name)
	file := source.NewFile(name, src, opts.tabWidth())
	bag := diag.NewBag(max(opts.MaxErrors, 100))
	p := newParser(file, opts, bag)

	root := p.parseFile()
	if bag.HasErrors() {
		sp.End("error")
		return nil, &Error{Diagnostics: slices.Clone(bag.Items())}
	}

	p.fixIndents(root, 0)
	text := lines.FromString(string(src), lines.Options{TabWidth: opts.tabWidth()})
	res := &Result{
		Name:        name,
		Source:      file,
		Lines:       text,
		File:        root,
		Snapshot:    ast.NewSnapshot(root, text),
		Diagnostics: bag,
	}
	sp.WithExtra("nodes", strconv.Itoa(res.Snapshot.Len())).End("")
	return res, nil
}

// ParseExpr разбирает одиночное выражение (фрагменты для рецептов). У
// результата нет Loc: печатается он всегда заново.
func ParseExpr(src string) (ast.Expr, error) {
	file := source.Virtual("<expr>", src)
	bag := diag.NewBag(100)
	p := newParser(file, Options{}, bag)

	x := p.parseExpr()
	if x != nil && !p.at(token.EOF) {
		p.err(diag.SynTrailingInput, fmt.Sprintf("unexpected %q after expression", p.lx.Peek().Text))
	}
	if bag.HasErrors() || x == nil {
		return nil, &Error{Diagnostics: slices.Clone(bag.Items())}
	}
	ast.ClearLocs(x)
	return x, nil
}

func (p *Parser) parseFile() *ast.File {
	f := &ast.File{}
	f.Body = p.parseStmtList(token.EOF)
	eof := p.lx.Peek()
	attachDangling(p, f.Body, eof)
	// файл покрывает весь буфер, комментарии в начале и конце включительно
	f.SetLoc(&ast.Loc{Range: source.Range{Start: source.Pos{Line: 1}, End: p.file.EndPos()}})
	return f
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// enough reports whether MaxErrors has been reached.
func (p *Parser) enough() bool {
	return p.opts.MaxErrors > 0 && p.errors >= p.opts.MaxErrors
}
