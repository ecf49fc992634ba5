package symbolic

import (
	"errors"
	"fmt"
	"math"

	"github.com/gnoverse/rangelogic/logic"
	"github.com/gnoverse/rangelogic/rangeset"
)

var (
	// ErrUnsupported is returned for expressions the evaluator cannot turn
	// into a value set or a predicate, such as logical negation.
	ErrUnsupported = errors.New("unsupported expression")
	// ErrUnknownVariable is returned in strict mode for unbound variables.
	ErrUnknownVariable = errors.New("unknown variable")
)

// EvalConfig holds configuration for the evaluator.
type EvalConfig struct {
	// DefaultDomain is assumed for variables missing from the environment.
	DefaultDomain rangeset.Range
	// StrictVars rejects unbound variables instead of using DefaultDomain.
	StrictVars bool
}

// DefaultConfig returns the default evaluation configuration: unbound
// variables range over the 32-bit integers.
func DefaultConfig() EvalConfig {
	return EvalConfig{
		DefaultDomain: rangeset.Range{Min: math.MinInt32, Max: math.MaxInt32},
		StrictVars:    false,
	}
}

// Evaluator computes value sets of numeric expressions and predicate trees
// of conditions.
type Evaluator struct {
	config EvalConfig
}

// NewEvaluator creates a new evaluator with the given configuration.
func NewEvaluator(config EvalConfig) *Evaluator {
	return &Evaluator{config: config}
}

// EvalRange returns the set of values expr may take in env.
func (ev *Evaluator) EvalRange(expr Expr, env *Env) (*rangeset.List, error) {
	switch e := expr.(type) {
	case LiteralExpr:
		return rangeset.Of(e.Val), nil

	case VarExpr:
		domain, err := ev.lookup(e.Name, env)
		if err != nil {
			return nil, err
		}
		return rangeset.Copy(domain)

	case BinaryExpr:
		left, err := ev.EvalRange(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := ev.EvalRange(e.Right, env)
		if err != nil {
			return nil, err
		}
		out, err := rangeset.Compute(e.Op, left, right)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e, err)
		}
		return out, nil

	case UnaryExpr:
		operand, err := ev.EvalRange(e.Operand, env)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case OpNeg:
			return rangeset.Negate(operand)
		case OpBitNot:
			return rangeset.BitNot(operand)
		}
		return nil, unsupportedNot(e)
	}
	return nil, fmt.Errorf("%v: %w", expr, ErrUnsupported)
}

// EvalCond turns a condition into a predicate tree. Comparisons between a
// variable and an expression become leaves holding the solved value set;
// && and || combine sub-conditions, collapsing leaves on the same variable.
func (ev *Evaluator) EvalCond(expr Expr, env *Env) (*logic.Node, error) {
	switch e := expr.(type) {
	case BinaryExpr:
		switch {
		case e.Op.IsLogical():
			return ev.evalLogical(e, env)
		case e.Op.IsRelational():
			return ev.evalComparison(e, env)
		}
	case UnaryExpr:
		if e.Op == OpNot {
			return nil, unsupportedNot(e)
		}
	}
	return nil, fmt.Errorf("%v is not a condition: %w", expr, ErrUnsupported)
}

// unsupportedNot reports a logical negation. Predicate trees have no NOT
// form, so the error matches both ErrUnsupported and ErrInvalidArgument.
func unsupportedNot(e UnaryExpr) error {
	return fmt.Errorf("%s: %w: %w", e, ErrUnsupported, rangeset.ErrInvalidArgument)
}

func (ev *Evaluator) evalLogical(e BinaryExpr, env *Env) (*logic.Node, error) {
	kind := logic.KindAnd
	if e.Op == rangeset.OpOr {
		kind = logic.KindOr
	}

	left, err := ev.EvalCond(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.EvalCond(e.Right, env)
	if err != nil {
		logic.Destroy(left)
		return nil, err
	}

	if left.Kind() == logic.KindVar && right.Kind() == logic.KindVar {
		merged, err := logic.VarMerge(left, right, kind)
		logic.Destroy(left)
		logic.Destroy(right)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e, err)
		}
		return merged, nil
	}

	linked, err := logic.Link(left, right, kind)
	if err != nil {
		logic.Destroy(left)
		logic.Destroy(right)
		return nil, fmt.Errorf("%s: %w", e, err)
	}
	return linked, nil
}

func (ev *Evaluator) evalComparison(e BinaryExpr, env *Env) (*logic.Node, error) {
	name, other, op, ok := splitComparison(e)
	if !ok {
		return nil, fmt.Errorf("%s compares no variable: %w", e, ErrUnsupported)
	}

	domain, err := ev.lookup(name, env)
	if err != nil {
		return nil, err
	}
	bound, err := ev.EvalRange(other, env)
	if err != nil {
		return nil, err
	}
	solved, err := rangeset.Compute(op, domain, bound)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e, err)
	}
	return logic.NewVar(name, solved)
}

// splitComparison puts the variable operand of a comparison on the left,
// mirroring the operator when the variable was on the right.
func splitComparison(e BinaryExpr) (string, Expr, rangeset.Operator, bool) {
	if v, ok := e.Left.(VarExpr); ok {
		return v.Name, e.Right, e.Op, true
	}
	if v, ok := e.Right.(VarExpr); ok {
		return v.Name, e.Left, mirror(e.Op), true
	}
	return "", nil, 0, false
}

func mirror(op rangeset.Operator) rangeset.Operator {
	switch op {
	case rangeset.OpLt:
		return rangeset.OpGt
	case rangeset.OpLe:
		return rangeset.OpGe
	case rangeset.OpGt:
		return rangeset.OpLt
	case rangeset.OpGe:
		return rangeset.OpLe
	}
	return op
}

// lookup returns the domain bound to name. The result may be shared and is
// only read.
func (ev *Evaluator) lookup(name string, env *Env) (*rangeset.List, error) {
	if env != nil {
		if d := env.Get(name); d != nil {
			return d, nil
		}
	}
	if ev.config.StrictVars {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownVariable)
	}
	return rangeset.FromRanges(ev.config.DefaultDomain), nil
}
