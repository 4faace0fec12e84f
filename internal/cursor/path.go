// Package cursor implements the traversal path the printer and the reprint
// planner walk the tree with. A Path is a stack of frames from the root to
// the current value; descending into a field pushes frames and the previous
// position is always restored on return.
package cursor

import (
	"fmt"

	"reprint/internal/ast"
)

// Frame is one step of a Path. Name is the field the value was reached
// through ("" for the root); Index is its position in a list field or -1.
// Value is an ast.Node, a []ast.Node list, a scalar or nil.
type Frame struct {
	Name  string
	Index int
	Value any
}

// Path is a cursor into a tree. It is not safe for concurrent use.
type Path struct {
	stack []Frame
}

// New returns a path positioned at root.
func New(root any) *Path {
	return &Path{stack: []Frame{{Index: -1, Value: root}}}
}

// Copy returns an independent path at the same position.
func (p *Path) Copy() *Path {
	stack := make([]Frame, len(p.stack))
	copy(stack, p.stack)
	return &Path{stack: stack}
}

// Depth returns the number of frames.
func (p *Path) Depth() int { return len(p.stack) }

// Frames returns a copy of the frames from the root to the current value.
func (p *Path) Frames() []Frame {
	out := make([]Frame, len(p.stack))
	copy(out, p.stack)
	return out
}

func (p *Path) top() Frame { return p.stack[len(p.stack)-1] }

// Value returns the value at the current position.
func (p *Path) Value() any { return p.top().Value }

// Name returns the field name the current value was reached through.
func (p *Path) Name() string { return p.top().Name }

// Index returns the list index of the current value, -1 outside lists.
func (p *Path) Index() int { return p.top().Index }

func asNode(v any) ast.Node {
	n, ok := v.(ast.Node)
	if !ok || ast.IsNil(n) {
		return nil
	}
	return n
}

// nodeAt returns the count-th node (0 = nearest) at or above the top along
// with its frame index, or -1.
func (p *Path) nodeAt(count int) (ast.Node, int) {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if n := asNode(p.stack[i].Value); n != nil {
			if count == 0 {
				return n, i
			}
			count--
		}
	}
	return nil, -1
}

// Node returns the nearest node at or above the current position.
func (p *Path) Node() ast.Node {
	n, _ := p.nodeAt(0)
	return n
}

// ParentNode returns the node enclosing Node, nil at the root.
func (p *Path) ParentNode() ast.Node {
	n, _ := p.nodeAt(1)
	return n
}

// Push moves the cursor to value, reached through field name at index.
// Every Push must be matched by a Pop.
func (p *Path) Push(name string, index int, value any) {
	p.stack = append(p.stack, Frame{Name: name, Index: index, Value: value})
}

// Pop undoes the last Push.
func (p *Path) Pop() {
	if len(p.stack) < 2 {
		panic("cursor: pop past the root")
	}
	p.stack = p.stack[:len(p.stack)-1]
}

// truncate restores the stack to depth n; used by deferred restores so that
// a panic inside a callback leaves the path where it was.
func (p *Path) truncate(n int) {
	clear(p.stack[n:])
	p.stack = p.stack[:n]
}

func (p *Path) field(name string) (ast.Field, error) {
	n := asNode(p.Value())
	if n == nil {
		return ast.Field{}, fmt.Errorf("cursor: %T has no field %q", p.Value(), name)
	}
	f, ok := ast.FieldByName(n, name)
	if !ok {
		return ast.Field{}, fmt.Errorf("cursor: %s has no field %q", n.Kind(), name)
	}
	return f, nil
}

func fieldValue(f ast.Field) any {
	switch f.Kind {
	case ast.FieldNode:
		if f.Node == nil {
			return nil
		}
		return f.Node
	case ast.FieldList:
		return f.List
	default:
		return f.Scalar
	}
}

// Call runs fn with the cursor at field of the current node and restores
// the position afterwards, whatever fn does.
func (p *Path) Call(fn func(*Path) error, field string) (err error) {
	f, err := p.field(field)
	if err != nil {
		return err
	}
	depth := len(p.stack)
	defer p.truncate(depth)
	p.Push(field, -1, fieldValue(f))
	return fn(p)
}

// CallIndex runs fn with the cursor at element index of the list field.
func (p *Path) CallIndex(fn func(*Path) error, field string, index int) error {
	f, err := p.field(field)
	if err != nil {
		return err
	}
	if f.Kind != ast.FieldList {
		return fmt.Errorf("cursor: field %q is not a list", field)
	}
	if index < 0 || index >= len(f.List) {
		return fmt.Errorf("cursor: index %d out of range for %q (len %d)", index, field, len(f.List))
	}
	depth := len(p.stack)
	defer p.truncate(depth)
	p.Push(field, -1, f.List)
	p.Push(field, index, f.List[index])
	return fn(p)
}

// Each calls fn for every element of the list field, stopping at the
// first error.
func (p *Path) Each(fn func(*Path) error, field string) error {
	f, err := p.field(field)
	if err != nil {
		return err
	}
	for i := range f.List {
		if err := p.CallIndex(fn, field, i); err != nil {
			return err
		}
	}
	return nil
}

// Map calls fn for every element of the list field of the current node and
// collects the results.
func Map[T any](p *Path, field string, fn func(*Path) (T, error)) ([]T, error) {
	f, err := p.field(field)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(f.List))
	for i := range f.List {
		var v T
		err := p.CallIndex(func(p *Path) error {
			var err error
			v, err = fn(p)
			return err
		}, field, i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Replace stores n at the current position in the enclosing node.
func (p *Path) Replace(n ast.Node) error {
	if len(p.stack) < 2 {
		return fmt.Errorf("cursor: cannot replace the root")
	}
	fr := p.top()
	var parent ast.Node
	for i := len(p.stack) - 2; i >= 0 && parent == nil; i-- {
		parent = asNode(p.stack[i].Value)
	}
	if parent == nil {
		return fmt.Errorf("cursor: no enclosing node")
	}
	if err := ast.SetChild(parent, fr.Name, fr.Index, n); err != nil {
		return err
	}
	if fr.Index >= 0 {
		if list, ok := p.stack[len(p.stack)-2].Value.([]ast.Node); ok {
			list[fr.Index] = n
		}
	}
	p.stack[len(p.stack)-1].Value = n
	return nil
}
