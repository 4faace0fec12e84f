package ast

import (
	"reprint/internal/lines"
)

// Snapshot is the tree exactly as parsed, kept apart from the live tree the
// caller mutates. It maps every parsed live node to its original copy and is
// never modified after NewSnapshot returns, so it may be shared freely.
type Snapshot struct {
	Root  Node
	Lines *lines.Lines

	orig map[Node]Node
}

// NewSnapshot deep-copies root and remembers, for each node of root, the copy
// it corresponds to. Call it before any mutation.
func NewSnapshot(root Node, src *lines.Lines) *Snapshot {
	s := &Snapshot{Lines: src, orig: make(map[Node]Node)}
	s.Root = deepCopy(root, func(from, to Node) {
		s.orig[from] = to
	})
	return s
}

// Original returns the parsed counterpart of a live node, nil for nodes that
// did not come out of the parser.
func (s *Snapshot) Original(live Node) Node {
	if s == nil || IsNil(live) {
		return nil
	}
	return s.orig[live]
}

// Len returns the number of nodes recorded.
func (s *Snapshot) Len() int { return len(s.orig) }

// Unchanged reports whether the subtree rooted at live is still exactly the
// parsed one: same node identities in the same places, same scalars and the
// same comments.
func (s *Snapshot) Unchanged(live Node) bool {
	old := s.Original(live)
	if old == nil {
		return false
	}
	return s.unchanged(live, old)
}

func (s *Snapshot) unchanged(live, old Node) bool {
	if live.Kind() != old.Kind() || !CommentsEqual(live, old) {
		return false
	}
	lf, of := Fields(live), Fields(old)
	if len(lf) != len(of) {
		return false
	}
	for i := range lf {
		a, b := lf[i], of[i]
		switch a.Kind {
		case FieldScalar:
			if a.Scalar != b.Scalar {
				return false
			}
		case FieldNode:
			if !s.sameChild(a.Node, b.Node) {
				return false
			}
		case FieldList:
			if len(a.List) != len(b.List) {
				return false
			}
			for j := range a.List {
				if !s.sameChild(a.List[j], b.List[j]) {
					return false
				}
			}
		}
	}
	return true
}

func (s *Snapshot) sameChild(live, old Node) bool {
	if live == nil || old == nil {
		return live == nil && old == nil
	}
	return s.orig[live] == old && s.unchanged(live, old)
}
