package ast

// Visitor is called for each node by Walk. If it returns nil the children
// of the node are skipped; Visit(nil) is called after the children.
type Visitor interface {
	Visit(n Node) Visitor
}

// Walk traverses the tree rooted at n in depth-first source order.
func Walk(v Visitor, n Node) {
	if IsNil(n) {
		return
	}
	if v = v.Visit(n); v == nil {
		return
	}
	for _, c := range Children(n) {
		Walk(v, c)
	}
	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(n Node) Visitor {
	if n != nil && f(n) {
		return f
	}
	return nil
}

// Inspect calls f for every node under n; returning false prunes the subtree.
func Inspect(n Node, f func(Node) bool) {
	Walk(inspector(f), n)
}

// ClearLocs drops the location of every node under n and of their comments,
// so that the printer treats the subtree as new.
func ClearLocs(n Node) {
	Inspect(n, func(x Node) bool {
		b := x.base()
		b.loc = nil
		for _, c := range b.comments {
			c.Loc = nil
		}
		return true
	})
}
