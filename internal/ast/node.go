package ast

import (
	"reprint/internal/source"
)

// Loc is the source location of a node: its range and the indentation of the
// line the range starts on. Nodes built after parsing have a nil Loc.
type Loc struct {
	source.Range
	Indent int
}

// Comment is a line or block comment attached to a node. Text holds the
// comment with its delimiters.
type Comment struct {
	Block    bool
	Text     string
	Leading  bool
	Trailing bool
	Loc      *Loc
}

// Kind returns KindComment.
func (c *Comment) Kind() Kind { return KindComment }

// Equal reports whether two comments print the same way in the same place.
func (c *Comment) Equal(o *Comment) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.Block == o.Block && c.Text == o.Text && c.Leading == o.Leading && c.Trailing == o.Trailing
}

// Node is implemented by every tree node.
type Node interface {
	Kind() Kind
	Loc() *Loc
	Comments() []*Comment
	base() *Base
}

// Expr is a node that may appear in expression position.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that may appear in statement position.
type Stmt interface {
	Node
	stmtNode()
}

// Base carries the data shared by all nodes.
type Base struct {
	loc      *Loc
	comments []*Comment
}

func (b *Base) Loc() *Loc { return b.loc }

func (b *Base) Comments() []*Comment { return b.comments }

func (b *Base) base() *Base { return b }

// SetLoc replaces the node's location.
func (b *Base) SetLoc(loc *Loc) { b.loc = loc }

// SetComments replaces the node's attached comments.
func (b *Base) SetComments(cs []*Comment) { b.comments = cs }

// AddComment attaches c to n.
func AddComment(n Node, c *Comment) {
	b := n.base()
	b.comments = append(b.comments, c)
}

// LeadingComments returns the comments printed before n.
func LeadingComments(n Node) []*Comment {
	var out []*Comment
	for _, c := range n.Comments() {
		if c.Leading {
			out = append(out, c)
		}
	}
	return out
}

// TrailingComments returns the comments printed after n.
func TrailingComments(n Node) []*Comment {
	var out []*Comment
	for _, c := range n.Comments() {
		if c.Trailing {
			out = append(out, c)
		}
	}
	return out
}

// CommentsEqual reports whether a and b carry the same comments in the same
// order and placement.
func CommentsEqual(a, b Node) bool {
	ca, cb := a.Comments(), b.Comments()
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !ca[i].Equal(cb[i]) {
			return false
		}
	}
	return true
}

// IsNil reports whether n is nil, including a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *Ident:
		return v == nil
	case *BlockStmt:
		return v == nil
	case *VarDeclarator:
		return v == nil
	case *Property:
		return v == nil
	}
	return false
}
