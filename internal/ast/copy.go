package ast

import "fmt"

// Copy returns a deep copy of n, locations and comments included.
func Copy(n Node) Node {
	return deepCopy(n, nil)
}

type copier struct {
	record func(from, to Node)
}

func deepCopy(n Node, record func(from, to Node)) Node {
	if IsNil(n) {
		return nil
	}
	c := copier{record: record}
	return c.node(n)
}

func (c copier) base(dst *Base, src Node) {
	if loc := src.Loc(); loc != nil {
		l := *loc
		dst.loc = &l
	}
	if cs := src.Comments(); len(cs) > 0 {
		dst.comments = make([]*Comment, len(cs))
		for i, cm := range cs {
			cp := *cm
			if cm.Loc != nil {
				l := *cm.Loc
				cp.Loc = &l
			}
			dst.comments[i] = &cp
		}
	}
}

func (c copier) expr(e Expr) Expr {
	if e == nil {
		return nil
	}
	return c.node(e).(Expr)
}

func (c copier) stmt(s Stmt) Stmt {
	if s == nil {
		return nil
	}
	return c.node(s).(Stmt)
}

func (c copier) ident(id *Ident) *Ident {
	if id == nil {
		return nil
	}
	return c.node(id).(*Ident)
}

func (c copier) block(b *BlockStmt) *BlockStmt {
	if b == nil {
		return nil
	}
	return c.node(b).(*BlockStmt)
}

func (c copier) exprs(xs []Expr) []Expr {
	if xs == nil {
		return nil
	}
	out := make([]Expr, len(xs))
	for i, x := range xs {
		out[i] = c.expr(x)
	}
	return out
}

func (c copier) stmts(xs []Stmt) []Stmt {
	if xs == nil {
		return nil
	}
	out := make([]Stmt, len(xs))
	for i, x := range xs {
		out[i] = c.stmt(x)
	}
	return out
}

func (c copier) idents(xs []*Ident) []*Ident {
	if xs == nil {
		return nil
	}
	out := make([]*Ident, len(xs))
	for i, x := range xs {
		out[i] = c.ident(x)
	}
	return out
}

func (c copier) node(n Node) Node {
	var out Node
	switch n := n.(type) {
	case *File:
		out = &File{Body: c.stmts(n.Body)}
	case *VarDecl:
		decls := make([]*VarDeclarator, len(n.Decls))
		for i, d := range n.Decls {
			decls[i] = c.node(d).(*VarDeclarator)
		}
		out = &VarDecl{Keyword: n.Keyword, Decls: decls}
	case *VarDeclarator:
		out = &VarDeclarator{Name: c.ident(n.Name), Init: c.expr(n.Init)}
	case *ExprStmt:
		out = &ExprStmt{X: c.expr(n.X)}
	case *ReturnStmt:
		out = &ReturnStmt{Arg: c.expr(n.Arg)}
	case *ThrowStmt:
		out = &ThrowStmt{Arg: c.expr(n.Arg)}
	case *IfStmt:
		out = &IfStmt{Test: c.expr(n.Test), Then: c.stmt(n.Then), Else: c.stmt(n.Else)}
	case *BlockStmt:
		out = &BlockStmt{Body: c.stmts(n.Body)}
	case *FuncDecl:
		out = &FuncDecl{Name: c.ident(n.Name), Params: c.idents(n.Params), Body: c.block(n.Body)}
	case *EmptyStmt:
		out = &EmptyStmt{}
	case *Ident:
		out = &Ident{Name: n.Name}
	case *This:
		out = &This{}
	case *NumberLit:
		out = &NumberLit{Raw: n.Raw}
	case *StringLit:
		out = &StringLit{Value: n.Value, Raw: n.Raw}
	case *BoolLit:
		out = &BoolLit{Value: n.Value}
	case *NullLit:
		out = &NullLit{}
	case *ArrayLit:
		out = &ArrayLit{Elems: c.exprs(n.Elems)}
	case *ObjectLit:
		props := make([]*Property, len(n.Props))
		for i, p := range n.Props {
			props[i] = c.node(p).(*Property)
		}
		out = &ObjectLit{Props: props}
	case *Property:
		out = &Property{Key: c.expr(n.Key), Value: c.expr(n.Value)}
	case *FuncExpr:
		out = &FuncExpr{Name: c.ident(n.Name), Params: c.idents(n.Params), Body: c.block(n.Body)}
	case *MemberExpr:
		out = &MemberExpr{X: c.expr(n.X), Prop: c.expr(n.Prop), Computed: n.Computed}
	case *CallExpr:
		out = &CallExpr{Callee: c.expr(n.Callee), Args: c.exprs(n.Args)}
	case *NewExpr:
		out = &NewExpr{Callee: c.expr(n.Callee), Args: c.exprs(n.Args)}
	case *UnaryExpr:
		out = &UnaryExpr{Op: n.Op, X: c.expr(n.X)}
	case *BinaryExpr:
		out = &BinaryExpr{Op: n.Op, X: c.expr(n.X), Y: c.expr(n.Y)}
	case *LogicalExpr:
		out = &LogicalExpr{Op: n.Op, X: c.expr(n.X), Y: c.expr(n.Y)}
	case *AssignExpr:
		out = &AssignExpr{Op: n.Op, X: c.expr(n.X), Y: c.expr(n.Y)}
	case *CondExpr:
		out = &CondExpr{Test: c.expr(n.Test), Cons: c.expr(n.Cons), Alt: c.expr(n.Alt)}
	case *SeqExpr:
		out = &SeqExpr{List: c.exprs(n.List)}
	default:
		panic(fmt.Sprintf("ast: cannot copy %T", n))
	}
	c.base(out.base(), n)
	if c.record != nil {
		c.record(n, out)
	}
	return out
}
