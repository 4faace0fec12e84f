package ast

import (
	"errors"
	"fmt"
)

// FieldKind tells how a structural field is stored.
type FieldKind uint8

const (
	FieldScalar FieldKind = iota
	FieldNode
	FieldList
)

// Field is one structural field of a node. Exactly one of Node, List or
// Scalar is meaningful, depending on Kind. A missing optional child is a
// FieldNode with a nil Node.
type Field struct {
	Name   string
	Kind   FieldKind
	Node   Node
	List   []Node
	Scalar any
}

// ErrNoField is returned by SetChild for an unknown field or index.
var ErrNoField = errors.New("ast: no such field")

func scalar(name string, v any) Field {
	return Field{Name: name, Kind: FieldScalar, Scalar: v}
}

func child(name string, n Node) Field {
	if IsNil(n) {
		n = nil
	}
	return Field{Name: name, Kind: FieldNode, Node: n}
}

func list[T Node](name string, xs []T) Field {
	out := make([]Node, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return Field{Name: name, Kind: FieldList, List: out}
}

// Fields returns the structural fields of n in source order. Location and
// comments are not structural fields.
func Fields(n Node) []Field {
	switch n := n.(type) {
	case *File:
		return []Field{list("Body", n.Body)}
	case *VarDecl:
		return []Field{scalar("Keyword", n.Keyword), list("Decls", n.Decls)}
	case *VarDeclarator:
		return []Field{child("Name", n.Name), child("Init", n.Init)}
	case *ExprStmt:
		return []Field{child("X", n.X)}
	case *ReturnStmt:
		return []Field{child("Arg", n.Arg)}
	case *ThrowStmt:
		return []Field{child("Arg", n.Arg)}
	case *IfStmt:
		return []Field{child("Test", n.Test), child("Then", n.Then), child("Else", n.Else)}
	case *BlockStmt:
		return []Field{list("Body", n.Body)}
	case *FuncDecl:
		return []Field{child("Name", n.Name), list("Params", n.Params), child("Body", n.Body)}
	case *EmptyStmt, *This, *NullLit:
		return nil
	case *Ident:
		return []Field{scalar("Name", n.Name)}
	case *NumberLit:
		return []Field{scalar("Raw", n.Raw)}
	case *StringLit:
		return []Field{scalar("Value", n.Value)}
	case *BoolLit:
		return []Field{scalar("Value", n.Value)}
	case *ArrayLit:
		return []Field{list("Elems", n.Elems)}
	case *ObjectLit:
		return []Field{list("Props", n.Props)}
	case *Property:
		return []Field{child("Key", n.Key), child("Value", n.Value)}
	case *FuncExpr:
		return []Field{child("Name", n.Name), list("Params", n.Params), child("Body", n.Body)}
	case *MemberExpr:
		return []Field{child("X", n.X), child("Prop", n.Prop), scalar("Computed", n.Computed)}
	case *CallExpr:
		return []Field{child("Callee", n.Callee), list("Args", n.Args)}
	case *NewExpr:
		return []Field{child("Callee", n.Callee), list("Args", n.Args)}
	case *UnaryExpr:
		return []Field{scalar("Op", n.Op), child("X", n.X)}
	case *BinaryExpr:
		return []Field{scalar("Op", n.Op), child("X", n.X), child("Y", n.Y)}
	case *LogicalExpr:
		return []Field{scalar("Op", n.Op), child("X", n.X), child("Y", n.Y)}
	case *AssignExpr:
		return []Field{scalar("Op", n.Op), child("X", n.X), child("Y", n.Y)}
	case *CondExpr:
		return []Field{child("Test", n.Test), child("Cons", n.Cons), child("Alt", n.Alt)}
	case *SeqExpr:
		return []Field{list("List", n.List)}
	}
	panic(fmt.Sprintf("ast: unexpected node %T", n))
}

// FieldByName returns the named field of n.
func FieldByName(n Node, name string) (Field, bool) {
	for _, f := range Fields(n) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Children returns the non-nil child nodes of n in source order.
func Children(n Node) []Node {
	var out []Node
	for _, f := range Fields(n) {
		switch f.Kind {
		case FieldNode:
			if f.Node != nil {
				out = append(out, f.Node)
			}
		case FieldList:
			out = append(out, f.List...)
		}
	}
	return out
}

// SetChild stores c into field of parent. For list fields index selects the
// element; index -1 on a single-node field. c of the wrong type for the field
// is an error, not a panic.
func SetChild(parent Node, field string, index int, c Node) error {
	fail := func() error {
		return fmt.Errorf("%w: %s.%s[%d] <- %T", ErrNoField, parent.Kind(), field, index, c)
	}
	switch p := parent.(type) {
	case *File:
		if field == "Body" {
			return setElem(p.Body, index, c, fail)
		}
	case *VarDecl:
		if field == "Decls" {
			return setElem(p.Decls, index, c, fail)
		}
	case *VarDeclarator:
		switch field {
		case "Name":
			return setOne(&p.Name, c, fail)
		case "Init":
			return setOne(&p.Init, c, fail)
		}
	case *ExprStmt:
		if field == "X" {
			return setOne(&p.X, c, fail)
		}
	case *ReturnStmt:
		if field == "Arg" {
			return setOne(&p.Arg, c, fail)
		}
	case *ThrowStmt:
		if field == "Arg" {
			return setOne(&p.Arg, c, fail)
		}
	case *IfStmt:
		switch field {
		case "Test":
			return setOne(&p.Test, c, fail)
		case "Then":
			return setOne(&p.Then, c, fail)
		case "Else":
			return setOne(&p.Else, c, fail)
		}
	case *BlockStmt:
		if field == "Body" {
			return setElem(p.Body, index, c, fail)
		}
	case *FuncDecl:
		switch field {
		case "Name":
			return setOne(&p.Name, c, fail)
		case "Params":
			return setElem(p.Params, index, c, fail)
		case "Body":
			return setOne(&p.Body, c, fail)
		}
	case *ArrayLit:
		if field == "Elems" {
			return setElem(p.Elems, index, c, fail)
		}
	case *ObjectLit:
		if field == "Props" {
			return setElem(p.Props, index, c, fail)
		}
	case *Property:
		switch field {
		case "Key":
			return setOne(&p.Key, c, fail)
		case "Value":
			return setOne(&p.Value, c, fail)
		}
	case *FuncExpr:
		switch field {
		case "Name":
			return setOne(&p.Name, c, fail)
		case "Params":
			return setElem(p.Params, index, c, fail)
		case "Body":
			return setOne(&p.Body, c, fail)
		}
	case *MemberExpr:
		switch field {
		case "X":
			return setOne(&p.X, c, fail)
		case "Prop":
			return setOne(&p.Prop, c, fail)
		}
	case *CallExpr:
		switch field {
		case "Callee":
			return setOne(&p.Callee, c, fail)
		case "Args":
			return setElem(p.Args, index, c, fail)
		}
	case *NewExpr:
		switch field {
		case "Callee":
			return setOne(&p.Callee, c, fail)
		case "Args":
			return setElem(p.Args, index, c, fail)
		}
	case *UnaryExpr:
		if field == "X" {
			return setOne(&p.X, c, fail)
		}
	case *BinaryExpr:
		return setOperand(field, &p.X, &p.Y, c, fail)
	case *LogicalExpr:
		return setOperand(field, &p.X, &p.Y, c, fail)
	case *AssignExpr:
		return setOperand(field, &p.X, &p.Y, c, fail)
	case *CondExpr:
		switch field {
		case "Test":
			return setOne(&p.Test, c, fail)
		case "Cons":
			return setOne(&p.Cons, c, fail)
		case "Alt":
			return setOne(&p.Alt, c, fail)
		}
	case *SeqExpr:
		if field == "List" {
			return setElem(p.List, index, c, fail)
		}
	}
	return fail()
}

func setOne[T Node](dst *T, c Node, fail func() error) error {
	if c == nil {
		var zero T
		*dst = zero
		return nil
	}
	v, ok := c.(T)
	if !ok {
		return fail()
	}
	*dst = v
	return nil
}

func setElem[T Node](xs []T, index int, c Node, fail func() error) error {
	if index < 0 || index >= len(xs) {
		return fail()
	}
	v, ok := c.(T)
	if !ok {
		return fail()
	}
	xs[index] = v
	return nil
}

func setOperand(field string, x, y *Expr, c Node, fail func() error) error {
	switch field {
	case "X":
		return setOne(x, c, fail)
	case "Y":
		return setOne(y, c, fail)
	}
	return fail()
}
