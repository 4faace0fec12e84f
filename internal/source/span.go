package source

import "fmt"

// Span is a half-open byte interval [Start, End) in a File's content.
type Span struct {
	Start uint32
	End   uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Cover returns the smallest span containing both.
func (s Span) Cover(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// RangeOf converts a byte span into line/column coordinates.
func (f *File) RangeOf(sp Span) Range {
	return Range{Start: f.PosOf(int(sp.Start)), End: f.PosOf(int(sp.End))}
}

// Text returns the bytes covered by sp, clamped to the content.
func (f *File) Text(sp Span) string {
	end := min(int(sp.End), len(f.Content))
	start := min(int(sp.Start), end)
	return string(f.Content[start:end])
}
