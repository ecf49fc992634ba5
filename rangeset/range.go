// Package rangeset implements an interval-set algebra over int64.
//
// A List is a canonical set of closed intervals: sorted ascending by Min,
// pairwise disjoint, and maximally merged (two neighbouring intervals are
// always separated by a gap of at least one missing integer). Every
// operation that produces a List returns a fresh value and never mutates
// its operands.
package rangeset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument reports a nil operand, an unknown operator code or a
// malformed encoded list.
var ErrInvalidArgument = errors.New("invalid argument")

// Range is the closed interval [Min, Max].
type Range struct {
	Min int64
	Max int64
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Min, r.Max)
}

// touches reports whether an interval ending at max and one starting at min
// overlap or are contiguous.
func touches(max, min int64) bool {
	return min <= max || max+1 == min
}

// List is a set of integers stored as canonical intervals. The zero value
// is an empty list.
type List struct {
	ranges []Range
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// Of returns the singleton list {v}.
func Of(v int64) *List {
	return &List{ranges: []Range{{Min: v, Max: v}}}
}

// FromRanges builds a list by inserting every range in order.
func FromRanges(ranges ...Range) *List {
	l := New()
	for _, r := range ranges {
		l.Add(r.Min, r.Max)
	}
	return l
}

// Add inserts the interval [min(x,y), max(x,y)] keeping the list canonical.
func (l *List) Add(x, y int64) {
	lo, hi := min(x, y), max(x, y)

	if len(l.ranges) == 0 {
		l.ranges = append(l.ranges, Range{Min: lo, Max: hi})
		return
	}

	i := 0
	for i < len(l.ranges)-1 && !touches(l.ranges[i].Max, lo) {
		i++
	}
	cur := l.ranges[i]

	switch {
	case !touches(hi, cur.Min):
		l.insert(i, Range{Min: lo, Max: hi})
	case !touches(cur.Max, lo):
		l.insert(i+1, Range{Min: lo, Max: hi})
	default:
		cur.Min = min(cur.Min, lo)
		cur.Max = max(cur.Max, hi)
		j := i + 1
		for j < len(l.ranges) && touches(cur.Max, l.ranges[j].Min) {
			cur.Max = max(cur.Max, l.ranges[j].Max)
			j++
		}
		l.ranges[i] = cur
		l.ranges = append(l.ranges[:i+1], l.ranges[j:]...)
	}
}

func (l *List) insert(i int, r Range) {
	l.ranges = append(l.ranges, Range{})
	copy(l.ranges[i+1:], l.ranges[i:])
	l.ranges[i] = r
}

// Len returns the number of disjoint intervals.
func (l *List) Len() int {
	return len(l.ranges)
}

func (l *List) IsEmpty() bool {
	return len(l.ranges) == 0
}

// Ranges returns a copy of the intervals in ascending order.
func (l *List) Ranges() []Range {
	out := make([]Range, len(l.ranges))
	copy(out, l.ranges)
	return out
}

// Bounds returns the envelope of the list: the Min of the first interval and
// the Max of the last one. An empty list has the envelope (0, 0).
func (l *List) Bounds() (int64, int64) {
	if len(l.ranges) == 0 {
		return 0, 0
	}
	return l.ranges[0].Min, l.ranges[len(l.ranges)-1].Max
}

func (l *List) Contains(v int64) bool {
	for _, r := range l.ranges {
		if v < r.Min {
			return false
		}
		if v <= r.Max {
			return true
		}
	}
	return false
}

// Equal reports whether both lists hold the same intervals.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.ranges) != len(other.ranges) {
		return false
	}
	for i := range l.ranges {
		if l.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}

func (l *List) String() string {
	if len(l.ranges) == 0 {
		return "[]"
	}
	var b strings.Builder
	for _, r := range l.ranges {
		b.WriteString(r.String())
	}
	return b.String()
}

// Copy rebuilds list by re-inserting each of its intervals.
func Copy(list *List) (*List, error) {
	return mapBounds(list, func(v int64) int64 { return v })
}

// Negate returns {-v : v in list}.
func Negate(list *List) (*List, error) {
	return mapBounds(list, func(v int64) int64 { return -v })
}

// BitNot applies bitwise complement to every bound.
func BitNot(list *List) (*List, error) {
	return mapBounds(list, func(v int64) int64 { return ^v })
}

func mapBounds(list *List, f func(int64) int64) (*List, error) {
	if list == nil {
		return nil, ErrInvalidArgument
	}
	out := New()
	for _, r := range list.ranges {
		out.Add(f(r.Min), f(r.Max))
	}
	return out, nil
}

// Not returns the gaps between consecutive intervals of list. The unbounded
// head and tail are never produced, and a list with fewer than two
// intervals yields the singleton [0,0].
func Not(list *List) (*List, error) {
	if list == nil {
		return nil, ErrInvalidArgument
	}
	out := New()
	if len(list.ranges) < 2 {
		out.Add(0, 0)
		return out, nil
	}
	for i := 0; i+1 < len(list.ranges); i++ {
		out.Add(list.ranges[i].Max+1, list.ranges[i+1].Min-1)
	}
	return out, nil
}
