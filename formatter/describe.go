package formatter

import (
	"fmt"
	"strings"

	"github.com/gnoverse/rangelogic/logic"
	"github.com/gnoverse/rangelogic/rangeset"
)

// DescribeRange renders the values of list as an English phrase, e.g.
// "is between 10 and 20" or "is 1, 3 to 5 or 9".
func DescribeRange(list *rangeset.List) string {
	if list == nil || list.IsEmpty() {
		return "is never satisfied"
	}

	ranges := list.Ranges()
	if len(ranges) == 1 {
		r := ranges[0]
		if r.Min == r.Max {
			return fmt.Sprintf("is %d", r.Min)
		}
		return fmt.Sprintf("is between %d and %d", r.Min, r.Max)
	}

	parts := make([]string, len(ranges))
	for i, r := range ranges {
		if r.Min == r.Max {
			parts[i] = fmt.Sprintf("%d", r.Min)
		} else {
			parts[i] = fmt.Sprintf("%d to %d", r.Min, r.Max)
		}
	}
	last := len(parts) - 1
	return "is " + strings.Join(parts[:last], ", ") + " or " + parts[last]
}

// DescribeCondition renders a logic tree as a parenthesised sentence.
func DescribeCondition(n *logic.Node) string {
	if n == nil {
		return "always"
	}
	switch n.Kind() {
	case logic.KindVar:
		return n.Name() + " " + DescribeRange(n.Domain())
	case logic.KindAnd, logic.KindOr:
		return "(" + DescribeCondition(n.Left()) + " " + n.Kind().String() + " " + DescribeCondition(n.Right()) + ")"
	}
	return n.Kind().String()
}
