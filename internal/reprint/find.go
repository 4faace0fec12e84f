package reprint

import (
	"reprint/internal/ast"
	"reprint/internal/cursor"
)

// findChildReprints compares the live node at newPath with the original at
// oldPath field by field and collects the places that need rendering. It
// reports false when the node cannot be patched internally.
func findChildReprints(newPath, oldPath *cursor.Path, snap *ast.Snapshot, out *[]item) bool {
	live, old := newPath.Node(), oldPath.Node()
	if live == nil || old == nil || live.Kind() != old.Kind() {
		return false
	}
	if newPath.NeedsParens() && !hasParens(snap.Lines, old) {
		return false
	}
	if !ast.CommentsEqual(live, old) {
		return false
	}

	lf, of := ast.Fields(live), ast.Fields(old)
	if len(lf) != len(of) {
		return false
	}
	before := len(*out)
	for i := range lf {
		a, b := lf[i], of[i]
		if a.Name != b.Name || a.Kind != b.Kind {
			return false
		}
		switch a.Kind {
		case ast.FieldScalar:
			if a.Scalar != b.Scalar {
				return false
			}
		case ast.FieldNode:
			newPath.Push(a.Name, -1, nodeValue(a.Node))
			oldPath.Push(b.Name, -1, nodeValue(b.Node))
			ok := findAnyReprints(newPath, oldPath, snap, out)
			newPath.Pop()
			oldPath.Pop()
			if !ok {
				return false
			}
		case ast.FieldList:
			// вставка или удаление элемента: узел печатается целиком
			if len(a.List) != len(b.List) {
				return false
			}
			if !findListReprints(newPath, oldPath, a, b, snap, out) {
				return false
			}
		}
	}

	// A comment printed in front of a return or throw argument would end the
	// statement right after the keyword.
	switch live.(type) {
	case *ast.ReturnStmt, *ast.ThrowStmt:
		for _, it := range (*out)[before:] {
			if !it.keepComments && len(it.path.Node().Comments()) > 0 {
				return false
			}
		}
	}
	return true
}

func findListReprints(newPath, oldPath *cursor.Path, a, b ast.Field, snap *ast.Snapshot, out *[]item) bool {
	if reordered(a.List, b.List, snap) {
		return false
	}
	newPath.Push(a.Name, -1, a.List)
	oldPath.Push(b.Name, -1, b.List)
	defer newPath.Pop()
	defer oldPath.Pop()
	for j := range a.List {
		newPath.Push(a.Name, j, a.List[j])
		oldPath.Push(b.Name, j, b.List[j])
		ok := findAnyReprints(newPath, oldPath, snap, out)
		newPath.Pop()
		oldPath.Pop()
		if !ok {
			return false
		}
	}
	return true
}

func findAnyReprints(newPath, oldPath *cursor.Path, snap *ast.Snapshot, out *[]item) bool {
	live, _ := newPath.Value().(ast.Node)
	old, _ := oldPath.Value().(ast.Node)
	if ast.IsNil(live) || ast.IsNil(old) {
		return ast.IsNil(live) && ast.IsNil(old)
	}
	if snap.Original(live) == old && snap.Unchanged(live) {
		return true
	}
	return findObjectReprints(newPath, oldPath, live, old, snap, out)
}

func findObjectReprints(newPath, oldPath *cursor.Path, live, old ast.Node, snap *ast.Snapshot, out *[]item) bool {
	if old.Loc() == nil {
		return false
	}
	if live.Kind() == old.Kind() {
		var child []item
		if findChildReprints(newPath, oldPath, snap, &child) {
			*out = append(*out, child...)
			return true
		}
		return record(newPath, live, old, snap, out)
	}
	nk, okd := live.Kind(), old.Kind()
	if (nk.IsExpr() && okd.IsExpr()) || (nk.IsStmt() && okd.IsStmt()) {
		return record(newPath, live, old, snap, out)
	}
	return false
}

func record(newPath *cursor.Path, live, old ast.Node, snap *ast.Snapshot, out *[]item) bool {
	keep := ast.CommentsEqual(live, old)
	// строчный комментарий после элемента съел бы разделитель
	if !keep && !live.Kind().IsStmt() && hasTrailingLineComment(live) {
		return false
	}
	*out = append(*out, item{
		old:          old,
		path:         newPath.Copy(),
		oldParens:    hasParens(snap.Lines, old),
		sameKind:     live.Kind() == old.Kind(),
		keepComments: keep,
	})
	return true
}

func nodeValue(n ast.Node) any {
	if ast.IsNil(n) {
		return nil
	}
	return n
}

func hasTrailingLineComment(n ast.Node) bool {
	for _, c := range ast.TrailingComments(n) {
		if !c.Block {
			return true
		}
	}
	return false
}

// reordered reports whether some live element comes from a different slot
// of the original list. Separators and comments between moved elements
// cannot be carried along, so the list is printed anew.
func reordered(live, old []ast.Node, snap *ast.Snapshot) bool {
	slot := make(map[ast.Node]int, len(old))
	for i, n := range old {
		if !ast.IsNil(n) {
			slot[n] = i
		}
	}
	for j, n := range live {
		if ast.IsNil(n) {
			continue
		}
		if i, ok := slot[snap.Original(n)]; ok && i != j {
			return true
		}
	}
	return false
}
