// Package reprint decides, for a node of an edited tree, how much of the
// original source text can be kept. A node whose subtree changed only in a
// few places is printed by splicing freshly rendered text for those places
// into the original slice; everything else stays byte for byte.
package reprint

import (
	"errors"
	"fmt"
	"strconv"

	"reprint/internal/ast"
	"reprint/internal/cursor"
	"reprint/internal/lines"
	"reprint/internal/patch"
	"reprint/internal/trace"
)

var (
	// ErrContract reports an original location that is inverted or lies
	// outside the snapshot text.
	ErrContract = errors.New("reprint: invalid original location")
	// ErrNotReusable means the original text could not be patched after all;
	// the caller should render the node generically.
	ErrNotReusable = errors.New("reprint: original text not reusable")
)

// RenderOpts tells the renderer how to lay out a replacement.
type RenderOpts struct {
	// Indent is the indentation of the line the replaced text started on;
	// every line of the result but the first is shifted by it.
	Indent       int
	WithComments bool
	// AvoidParens suppresses parentheses around the root of the rendering
	// because the original text already has them.
	AvoidParens bool
}

// RenderFunc renders the node at p.
type RenderFunc func(p *cursor.Path, opts RenderOpts) (*lines.Lines, error)

// Func produces the text of one node, relative to the indentation of its
// first line. It is valid for a single render pass.
type Func func(render RenderFunc) (*lines.Lines, error)

// item is one place where original text is replaced by a rendering.
type item struct {
	old          ast.Node     // snapshot node whose text goes away
	path         *cursor.Path // live node rendered in its place
	oldParens    bool
	sameKind     bool
	keepComments bool
}

// Get returns a plan for printing the node at p from the original text, or
// nil when the node has to be rendered from scratch.
func Get(p *cursor.Path, snap *ast.Snapshot, tr trace.Tracer) Func {
	node := p.Node()
	if node == nil || snap == nil || snap.Lines == nil {
		return nil
	}
	orig := snap.Original(node)
	if orig == nil || orig.Loc() == nil {
		return nil
	}
	if err := checkLoc(snap.Lines, orig); err != nil {
		return func(RenderFunc) (*lines.Lines, error) { return nil, err }
	}

	var items []item
	if !findChildReprints(p, cursor.New(orig), snap, &items) {
		point(tr, node, "regenerate", nil)
		return nil
	}
	decision := "reuse"
	if len(items) > 0 {
		decision = "patch"
	}
	point(tr, node, decision, map[string]string{"patches": strconv.Itoa(len(items))})

	parens := p.NeedsParens()
	return func(render RenderFunc) (*lines.Lines, error) {
		return run(snap.Lines, orig, items, parens, render)
	}
}

func run(src *lines.Lines, orig ast.Node, items []item, parens bool, render RenderFunc) (*lines.Lines, error) {
	pt := patch.New(src)
	for _, it := range items {
		if err := checkLoc(src, it.old); err != nil {
			return nil, err
		}
		oldLoc := it.old.Loc()
		if !it.keepComments {
			if err := pt.DeleteComments(it.old); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrNotReusable, err)
			}
		}
		repl, err := render(it.path, RenderOpts{
			Indent:       oldLoc.Indent,
			WithComments: !it.keepComments,
			AvoidParens:  it.sameKind && it.oldParens,
		})
		if err != nil {
			return nil, err
		}
		repl = separate(src, oldLoc, repl)
		if err := pt.Replace(oldLoc.Range, repl); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotReusable, err)
		}
	}

	loc := orig.Loc()
	out, err := pt.Get(&loc.Range)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotReusable, err)
	}
	out = out.IndentTail(-loc.Indent)
	if parens {
		out = lines.ConcatAny(out.Options(), "(", out, ")")
	}
	return out, nil
}

func checkLoc(src *lines.Lines, n ast.Node) error {
	loc := n.Loc()
	if loc == nil {
		return fmt.Errorf("%w: %s has no location", ErrContract, n.Kind())
	}
	if err := src.CheckRange(loc.Range); err != nil {
		return fmt.Errorf("%w: %s at %s: %w", ErrContract, n.Kind(), loc.Range, err)
	}
	return nil
}

func point(tr trace.Tracer, n ast.Node, decision string, extra map[string]string) {
	if tr == nil || !tr.Enabled() {
		return
	}
	if extra == nil {
		extra = map[string]string{}
	}
	extra["kind"] = n.Kind().String()
	if loc := n.Loc(); loc != nil {
		extra["range"] = loc.Range.String()
	}
	trace.Point(tr, trace.ScopeNode, "reprint", decision, extra)
}
