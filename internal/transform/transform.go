// Package transform applies recipe rules to a parsed tree in place. It is the
// mutation step between parsing and reprinting: rules only rewrite the live
// tree, the snapshot taken by the parser stays untouched.
package transform

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"reprint/internal/ast"
	"reprint/internal/cursor"
	"reprint/internal/parser"
)

// ErrUnknownRule is returned for rule kinds Apply does not know.
var ErrUnknownRule = errors.New("transform: unknown rule")

// Rule is one mutation of a Recipe.
type Rule interface {
	RuleName() string
}

// Rename renames identifiers named From to To. From == "this" also turns
// `this` expressions into the identifier To. Names are compared after NFC
// normalisation.
type Rename struct {
	From string
	To   string
}

func (Rename) RuleName() string { return "rename" }

// Literal kinds accepted by ReplaceLiteral.
const (
	KindString = "string"
	KindNumber = "number"
	KindIdent  = "ident"
)

// ReplaceLiteral replaces every literal (or identifier) of Kind equal to From
// with a fresh copy of To.
type ReplaceLiteral struct {
	Kind string
	From string
	To   ast.Expr
}

func (ReplaceLiteral) RuleName() string { return "replace" }

// NewReplaceLiteral parses to as an expression fragment.
func NewReplaceLiteral(kind, from, to string) (ReplaceLiteral, error) {
	switch kind {
	case KindString, KindNumber, KindIdent:
	default:
		return ReplaceLiteral{}, fmt.Errorf("%w: replace kind %q", ErrUnknownRule, kind)
	}
	x, err := parser.ParseExpr(to)
	if err != nil {
		return ReplaceLiteral{}, fmt.Errorf("replace %q: %w", to, err)
	}
	return ReplaceLiteral{Kind: kind, From: from, To: x}, nil
}

// Recipe is an ordered list of rules.
type Recipe struct {
	Rules []Rule
}

// Empty reports whether applying r would be a no-op.
func (r Recipe) Empty() bool { return len(r.Rules) == 0 }

// Stats counts the edits made by Apply, in total and per rule name.
type Stats struct {
	Edits  int
	ByRule map[string]int
}

// Apply runs the rules of r over f one after another.
func Apply(f *ast.File, r Recipe) (Stats, error) {
	st := Stats{ByRule: make(map[string]int)}
	for _, rule := range r.Rules {
		var fn visitFunc
		switch rule := rule.(type) {
		case Rename:
			fn = rule.visit
		case ReplaceLiteral:
			if rule.To == nil {
				return st, fmt.Errorf("replace %q: empty replacement", rule.From)
			}
			fn = rule.visit
		default:
			return st, fmt.Errorf("%w: %T", ErrUnknownRule, rule)
		}
		n, err := walk(f, fn)
		if err != nil {
			return st, fmt.Errorf("%s: %w", rule.RuleName(), err)
		}
		st.Edits += n
		st.ByRule[rule.RuleName()] += n
	}
	return st, nil
}

// visitFunc returns the node to put in place of n (nil keeps n) and whether
// anything was edited. binding is set for names that must stay identifiers.
type visitFunc func(n ast.Node, binding bool) (ast.Node, bool)

func (r Rename) visit(n ast.Node, _ bool) (ast.Node, bool) {
	from := norm.NFC.String(r.From)
	switch n := n.(type) {
	case *ast.Ident:
		if norm.NFC.String(n.Name) == from && n.Name != r.To {
			n.Name = r.To
			return nil, true
		}
	case *ast.This:
		if from == "this" {
			return carryComments(n, ast.NewIdent(r.To)), true
		}
	}
	return nil, false
}

func (r ReplaceLiteral) visit(n ast.Node, binding bool) (ast.Node, bool) {
	match := false
	switch n := n.(type) {
	case *ast.StringLit:
		match = r.Kind == KindString && n.Value == r.From
	case *ast.NumberLit:
		match = r.Kind == KindNumber && n.Raw == r.From
	case *ast.Ident:
		match = r.Kind == KindIdent && !binding && norm.NFC.String(n.Name) == norm.NFC.String(r.From)
	}
	if !match {
		return nil, false
	}
	return carryComments(n, ast.Copy(r.To)), true
}

func carryComments(from, to ast.Node) ast.Node {
	if cs := from.Comments(); len(cs) > 0 {
		if s, ok := to.(interface{ SetComments([]*ast.Comment) }); ok {
			s.SetComments(cs)
		}
	}
	return to
}

// walk visits every node under f with a cursor and stores replacements in
// place. Replaced subtrees are not visited again.
func walk(f *ast.File, fn visitFunc) (int, error) {
	edits := 0
	var visit func(p *cursor.Path, binding bool) error
	visit = func(p *cursor.Path, binding bool) error {
		n := p.Node()
		if n == nil {
			return nil
		}
		repl, edited := fn(n, binding)
		if edited {
			edits++
		}
		if repl != nil {
			return p.Replace(repl)
		}
		for _, fld := range ast.Fields(n) {
			if skipField(n, fld.Name) {
				continue
			}
			bind := bindingField(n, fld.Name)
			descend := func(p *cursor.Path) error { return visit(p, bind) }
			switch fld.Kind {
			case ast.FieldNode:
				if fld.Node == nil {
					continue
				}
				if err := p.Call(descend, fld.Name); err != nil {
					return err
				}
			case ast.FieldList:
				if err := p.Each(descend, fld.Name); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return edits, visit(cursor.New(f), false)
}

// skipField reports property names that look like identifiers but are not
// references: `x.name` and object keys.
func skipField(n ast.Node, field string) bool {
	switch n := n.(type) {
	case *ast.MemberExpr:
		return field == "Prop" && !n.Computed
	case *ast.Property:
		return field == "Key"
	}
	return false
}

func bindingField(n ast.Node, field string) bool {
	switch n.(type) {
	case *ast.VarDeclarator:
		return field == "Name"
	case *ast.FuncDecl, *ast.FuncExpr:
		return field == "Name" || field == "Params"
	}
	return false
}
