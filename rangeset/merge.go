package rangeset

// mergeFunc consumes the next interval of an ordered two-list walk. last
// holds the callback's notion of the previously emitted interval and is nil
// before the first call.
type mergeFunc func(dst *List, last **Range, next *Range) error

// merge walks left and right in ascending Min order, ties going to right,
// and feeds every interval to fn. Once one side is exhausted the other is
// drained the same way.
func merge(dst *List, left, right []Range, fn mergeFunc) error {
	var last *Range
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		var next *Range
		if left[i].Min < right[j].Min {
			next = &left[i]
			i++
		} else {
			next = &right[j]
			j++
		}
		if err := fn(dst, &last, next); err != nil {
			return err
		}
	}

	for ; i < len(left); i++ {
		if err := fn(dst, &last, &left[i]); err != nil {
			return err
		}
	}

	for ; j < len(right); j++ {
		if err := fn(dst, &last, &right[j]); err != nil {
			return err
		}
	}
	return nil
}

// mergeOr grows the last emitted interval of dst while the walk stays
// contiguous, and starts a new one across a real gap. last always points
// into dst and is refreshed after every append.
func mergeOr(dst *List, last **Range, next *Range) error {
	if *last == nil || !touches((*last).Max, next.Min) {
		dst.Add(next.Min, next.Max)
		*last = &dst.ranges[len(dst.ranges)-1]
		return nil
	}
	(*last).Min = min((*last).Min, next.Min)
	(*last).Max = max((*last).Max, next.Max)
	return nil
}

// mergeAnd emits the overlap between next and the interval that reached
// furthest so far. last points into the operands and is only read.
func mergeAnd(dst *List, last **Range, next *Range) error {
	if *last == nil {
		*last = next
		return nil
	}

	prev := *last
	if prev.Min <= next.Max && prev.Max >= next.Min {
		dst.Add(max(prev.Min, next.Min), min(prev.Max, next.Max))
	}

	if prev.Max < next.Max {
		*last = next
	}
	return nil
}

// Union returns left ∪ right.
func Union(left, right *List) (*List, error) {
	return mergeLists(left, right, mergeOr)
}

// Intersect returns left ∩ right.
func Intersect(left, right *List) (*List, error) {
	return mergeLists(left, right, mergeAnd)
}

func mergeLists(left, right *List, fn mergeFunc) (*List, error) {
	if left == nil || right == nil {
		return nil, ErrInvalidArgument
	}
	out := New()
	if err := merge(out, left.ranges, right.ranges, fn); err != nil {
		return nil, err
	}
	return out, nil
}
