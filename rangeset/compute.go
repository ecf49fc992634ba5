package rangeset

import (
	"fmt"
	"math"
)

// Operator is a binary operator code understood by Compute.
type Operator int

const (
	_ Operator = iota
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
)

var operatorTokens = map[Operator]string{
	OpAnd:    "&&",
	OpOr:     "||",
	OpEq:     "==",
	OpNe:     "!=",
	OpLt:     "<",
	OpLe:     "<=",
	OpGt:     ">",
	OpGe:     ">=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpShl:    "<<",
	OpShr:    ">>",
	OpBitAnd: "&",
	OpBitOr:  "|",
	OpBitXor: "^",
}

func (op Operator) String() string {
	if s, ok := operatorTokens[op]; ok {
		return s
	}
	return "?"
}

// IsRelational reports whether op compares its operands.
func (op Operator) IsRelational() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsLogical reports whether op is && or ||.
func (op Operator) IsLogical() bool {
	return op == OpAnd || op == OpOr
}

// ParseOperator maps an operator token such as "<=" to its code.
func ParseOperator(s string) (Operator, error) {
	for op, tok := range operatorTokens {
		if tok == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q: %w", s, ErrInvalidArgument)
}

// Compute combines left and right under op.
//
// Logical and equality operators work on the sets themselves. Relational
// operators intersect left with a single interval derived from the
// envelopes of both operands. Arithmetic and bitwise operators apply op to
// the bounds of every interval of left against the envelope of right, which
// over-approximates the exact elementwise result.
func Compute(op Operator, left, right *List) (*List, error) {
	if left == nil || right == nil {
		return nil, ErrInvalidArgument
	}

	leftMin, leftMax := left.Bounds()
	_, rightMax := right.Bounds()

	switch op {
	case OpOr:
		return Union(left, right)
	case OpAnd, OpEq:
		return Intersect(left, right)
	case OpNe:
		both, err := Intersect(left, right)
		if err != nil {
			return nil, err
		}
		return Not(both)
	case OpLt:
		if rightMax == math.MinInt64 {
			return Intersect(left, Of(0))
		}
		return lessEqual(left, leftMin, rightMax-1)
	case OpLe:
		return lessEqual(left, leftMin, rightMax)
	case OpGt:
		if rightMax == math.MaxInt64 {
			return Intersect(left, Of(0))
		}
		return greaterEqual(left, leftMax, rightMax+1)
	case OpGe:
		return greaterEqual(left, leftMax, rightMax)
	case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpShl, OpShr, OpBitAnd, OpBitOr, OpBitXor:
		return arithmetic(op, left, right)
	}
	return nil, fmt.Errorf("operator %d: %w", int(op), ErrInvalidArgument)
}

func lessEqual(left *List, leftMin, bound int64) (*List, error) {
	if bound < leftMin {
		return Intersect(left, Of(0))
	}
	return Intersect(left, FromRanges(Range{Min: leftMin, Max: bound}))
}

func greaterEqual(left *List, leftMax, bound int64) (*List, error) {
	if leftMax < bound {
		return Intersect(left, Of(0))
	}
	return Intersect(left, FromRanges(Range{Min: bound, Max: leftMax}))
}

func arithmetic(op Operator, left, right *List) (*List, error) {
	rightMin, rightMax := right.Bounds()

	out := New()
	for _, r := range left.ranges {
		out.Add(apply(op, r.Min, rightMin), apply(op, r.Max, rightMax))
	}
	return out, nil
}

// apply evaluates a op b. Division, modulus and shifts whose right operand
// would fault yield 0.
func apply(op Operator, a, b int64) int64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		if b == 0 {
			return 0
		}
		return a / b
	case OpMod:
		if b == 0 {
			return 0
		}
		return a % b
	case OpShl:
		if b < 0 {
			return 0
		}
		return a << uint64(b)
	case OpShr:
		if b < 0 {
			return 0
		}
		return a >> uint64(b)
	case OpBitAnd:
		return a & b
	case OpBitOr:
		return a | b
	case OpBitXor:
		return a ^ b
	}
	return 0
}
