package source

import "fmt"

func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// Valid reports whether Start <= End.
func (r Range) Valid() bool {
	return ComparePos(r.Start, r.End) <= 0
}

// Empty reports whether the range covers no text.
func (r Range) Empty() bool {
	return r.Start == r.End
}

// Contains reports whether other lies entirely inside r (bounds included).
func (r Range) Contains(other Range) bool {
	return ComparePos(r.Start, other.Start) <= 0 && ComparePos(other.End, r.End) <= 0
}

// ContainsPos reports whether p lies in [Start, End).
func (r Range) ContainsPos(p Pos) bool {
	return ComparePos(r.Start, p) <= 0 && ComparePos(p, r.End) < 0
}

// Overlaps reports whether the two ranges share at least one position.
// Zero-length ranges overlap a range only when strictly inside it.
func (r Range) Overlaps(other Range) bool {
	if r.Empty() && other.Empty() {
		return false
	}
	if r.Empty() {
		return ComparePos(other.Start, r.Start) < 0 && ComparePos(r.Start, other.End) < 0
	}
	if other.Empty() {
		return ComparePos(r.Start, other.Start) < 0 && ComparePos(other.Start, r.End) < 0
	}
	return ComparePos(r.Start, other.End) < 0 && ComparePos(other.Start, r.End) < 0
}

// Cover returns the smallest range containing both.
func (r Range) Cover(other Range) Range {
	if ComparePos(other.Start, r.Start) < 0 {
		r.Start = other.Start
	}
	if ComparePos(other.End, r.End) > 0 {
		r.End = other.End
	}
	return r
}
