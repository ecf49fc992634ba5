package describe

import (
	"errors"
	"fmt"

	"github.com/gnoverse/rangelogic/internal/symbolic"
	"github.com/gnoverse/rangelogic/rangeset"
)

// ErrInvalidScenario is returned for malformed scenario documents.
var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is the content of one scenario file.
type Scenario struct {
	Scripts []Script `yaml:"scripts"`
}

// Script describes one script: the condition guarding it and the numeric
// expressions whose values should be reported. Variables bound here apply
// to this script only and shadow the configured ones.
type Script struct {
	Name      string                    `yaml:"name"`
	Variables map[string]*rangeset.List `yaml:"variables"`
	Condition *ExprNode                 `yaml:"condition"`
	Values    map[string]*ExprNode      `yaml:"values"`
}

// ExprNode is the YAML form of an expression. Exactly one of Lit, Var or Op
// is set; Op takes either Operand (unary) or Left and Right (binary).
//
//	condition:
//	  op: "&&"
//	  left:  {op: ">=", left: {var: level}, right: {lit: 10}}
//	  right: {op: "==", left: {var: refine}, right: {lit: 7}}
type ExprNode struct {
	Lit     *int64    `yaml:"lit"`
	Var     string    `yaml:"var"`
	Op      string    `yaml:"op"`
	Left    *ExprNode `yaml:"left"`
	Right   *ExprNode `yaml:"right"`
	Operand *ExprNode `yaml:"operand"`
}

// Expr converts n into an evaluable expression.
func (n *ExprNode) Expr() (symbolic.Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("missing expression: %w", ErrInvalidScenario)
	}

	set := 0
	if n.Lit != nil {
		set++
	}
	if n.Var != "" {
		set++
	}
	if n.Op != "" {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("expression needs exactly one of lit, var or op: %w", ErrInvalidScenario)
	}

	switch {
	case n.Lit != nil:
		return symbolic.IntLit(*n.Lit), nil
	case n.Var != "":
		return symbolic.Var(n.Var), nil
	case n.Operand != nil:
		if n.Left != nil || n.Right != nil {
			return nil, fmt.Errorf("%q: operand and left/right are exclusive: %w", n.Op, ErrInvalidScenario)
		}
		return n.unary()
	}
	return n.binary()
}

func (n *ExprNode) unary() (symbolic.Expr, error) {
	op, err := symbolic.ParseUnaryOp(n.Op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	operand, err := n.Operand.Expr()
	if err != nil {
		return nil, err
	}
	return symbolic.Unary(op, operand), nil
}

func (n *ExprNode) binary() (symbolic.Expr, error) {
	op, err := rangeset.ParseOperator(n.Op)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	left, err := n.Left.Expr()
	if err != nil {
		return nil, fmt.Errorf("%q left: %w", n.Op, err)
	}
	right, err := n.Right.Expr()
	if err != nil {
		return nil, fmt.Errorf("%q right: %w", n.Op, err)
	}
	return symbolic.Binary(op, left, right), nil
}
