// Package patch accumulates replacements against one immutable text buffer
// and splices them into a new buffer on demand.
package patch

import (
	"errors"
	"fmt"
	"sort"

	"reprint/internal/ast"
	"reprint/internal/lines"
	"reprint/internal/source"
)

// ErrOverlap reports two patches whose ranges intersect without one
// containing the other, or a patch straddling the range passed to Get.
var ErrOverlap = errors.New("patch: overlapping replacements")

type replacement struct {
	r    source.Range
	with *lines.Lines
}

// Patcher records replacements over a source buffer. It is not safe for
// concurrent use; create one per reprint.
type Patcher struct {
	src     *lines.Lines
	patches []replacement
}

// New binds a Patcher to src with no replacements recorded.
func New(src *lines.Lines) *Patcher {
	return &Patcher{src: src}
}

// Source returns the buffer the patches apply to.
func (p *Patcher) Source() *lines.Lines { return p.src }

// Len returns the number of replacements that survive into the splice.
func (p *Patcher) Len() int { return len(p.patches) }

// Ranges returns the surviving replacement ranges in position order.
func (p *Patcher) Ranges() []source.Range {
	out := make([]source.Range, 0, len(p.patches))
	for _, rep := range p.sorted() {
		out = append(out, rep.r)
	}
	return out
}

// nested reports whether inner lies within outer. An insertion (empty
// range) sitting exactly on a boundary of a non-empty range is not nested:
// it happens next to that range, not inside it.
func nested(outer, inner source.Range) bool {
	if !outer.Contains(inner) {
		return false
	}
	if inner.Empty() && !outer.Empty() {
		return inner.Start != outer.Start && inner.Start != outer.End
	}
	return true
}

// Replace records that r is to be replaced with with. A range identical to
// or inside an already recorded one is dropped; recording a range drops the
// recorded ranges it contains. A range crossing a recorded one fails with
// ErrOverlap and leaves the patch set unchanged.
func (p *Patcher) Replace(r source.Range, with *lines.Lines) error {
	if err := p.src.CheckRange(r); err != nil {
		return fmt.Errorf("patch: replace %s: %w", r, err)
	}
	if with == nil {
		with = lines.Empty(p.src.Options())
	}
	for _, rep := range p.patches {
		if nested(rep.r, r) {
			return nil
		}
		if !nested(r, rep.r) && rep.r.Overlaps(r) {
			return fmt.Errorf("%w: %s crosses %s", ErrOverlap, r, rep.r)
		}
	}
	kept := p.patches[:0]
	for _, rep := range p.patches {
		if !nested(r, rep.r) {
			kept = append(kept, rep)
		}
	}
	p.patches = append(kept, replacement{r: r, with: with})
	return nil
}

// ReplaceString is Replace with text converted using the source options.
func (p *Patcher) ReplaceString(r source.Range, text string) error {
	return p.Replace(r, lines.FromString(text, p.src.Options()))
}

func (p *Patcher) sorted() []replacement {
	out := make([]replacement, len(p.patches))
	copy(out, p.patches)
	sort.SliceStable(out, func(i, j int) bool {
		if c := source.ComparePos(out[i].r.Start, out[j].r.Start); c != 0 {
			return c < 0
		}
		return source.ComparePos(out[i].r.End, out[j].r.End) < 0
	})
	return out
}

// Get splices the patched text of r, or of the whole buffer when r is nil.
// Unpatched text is copied verbatim; patches outside r are ignored.
func (p *Patcher) Get(r *source.Range) (*lines.Lines, error) {
	window := p.src.Full()
	if r != nil {
		if err := p.src.CheckRange(*r); err != nil {
			return nil, fmt.Errorf("patch: get %s: %w", *r, err)
		}
		window = *r
	}

	pieces := make([]*lines.Lines, 0, 2*len(p.patches)+1)
	from := window.Start
	for _, rep := range p.sorted() {
		if !window.Contains(rep.r) {
			if rep.r.Overlaps(window) {
				return nil, fmt.Errorf("%w: %s straddles %s", ErrOverlap, rep.r, window)
			}
			continue
		}
		if source.ComparePos(from, rep.r.Start) > 0 {
			// Replace keeps ranges disjoint, so this is a broken invariant.
			return nil, fmt.Errorf("%w: %s starts before %s", ErrOverlap, rep.r, from)
		}
		before, err := p.src.Slice(from, rep.r.Start)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, before, rep.with)
		from = rep.r.End
	}
	tail, err := p.src.Slice(from, window.End)
	if err != nil {
		return nil, err
	}
	pieces = append(pieces, tail)
	return lines.Join(pieces...), nil
}

// DeleteComments removes the attached comments of n from the output: a
// leading comment together with the whitespace after it, a trailing comment
// together with the whitespace before it. Comments without a location are
// skipped.
func (p *Patcher) DeleteComments(n ast.Node) error {
	for _, c := range n.Comments() {
		if c.Loc == nil {
			continue
		}
		var r source.Range
		switch {
		case c.Leading:
			end, ok := p.src.SkipSpaces(c.Loc.End, false)
			if !ok {
				end = p.src.LastPos()
			}
			r = source.Range{Start: c.Loc.Start, End: end}
		case c.Trailing:
			start, ok := p.src.SkipSpaces(c.Loc.Start, true)
			if !ok {
				start = p.src.FirstPos()
			}
			r = source.Range{Start: start, End: c.Loc.End}
		default:
			r = c.Loc.Range
		}
		if err := p.Replace(r, nil); err != nil {
			return err
		}
	}
	return nil
}
