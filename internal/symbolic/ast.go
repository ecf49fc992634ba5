package symbolic

import (
	"fmt"

	"github.com/gnoverse/rangelogic/rangeset"
)

// Expr represents a script expression.
type Expr interface {
	isExpr()
	String() string
}

// LiteralExpr represents an integer constant.
type LiteralExpr struct {
	Val int64
}

func (LiteralExpr) isExpr() {}
func (e LiteralExpr) String() string {
	return fmt.Sprintf("%d", e.Val)
}

// VarExpr represents a variable reference.
type VarExpr struct {
	Name string
}

func (VarExpr) isExpr() {}
func (e VarExpr) String() string {
	return e.Name
}

// BinaryExpr represents a binary expression.
type BinaryExpr struct {
	Op    rangeset.Operator
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}
func (e BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Op.String() + " " + e.Right.String() + ")"
}

// UnaryOp represents unary operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpBitNot
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpBitNot:
		return "~"
	case OpNot:
		return "!"
	default:
		return "?"
	}
}

// ParseUnaryOp maps "-", "~" or "!" to its operator.
func ParseUnaryOp(s string) (UnaryOp, error) {
	switch s {
	case "-":
		return OpNeg, nil
	case "~":
		return OpBitNot, nil
	case "!":
		return OpNot, nil
	}
	return 0, fmt.Errorf("unknown unary operator %q: %w", s, rangeset.ErrInvalidArgument)
}

// UnaryExpr represents a unary expression.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (UnaryExpr) isExpr() {}
func (e UnaryExpr) String() string {
	return "(" + e.Op.String() + e.Operand.String() + ")"
}

// IntLit creates an integer literal expression.
func IntLit(v int64) Expr {
	return LiteralExpr{Val: v}
}

// Var creates a variable reference expression.
func Var(name string) Expr {
	return VarExpr{Name: name}
}

// Binary creates a binary expression.
func Binary(op rangeset.Operator, left, right Expr) Expr {
	return BinaryExpr{Op: op, Left: left, Right: right}
}

// Unary creates a unary expression.
func Unary(op UnaryOp, operand Expr) Expr {
	return UnaryExpr{Op: op, Operand: operand}
}

// And creates a logical and (&&) expression.
func And(left, right Expr) Expr { return Binary(rangeset.OpAnd, left, right) }

// Or creates a logical or (||) expression.
func Or(left, right Expr) Expr { return Binary(rangeset.OpOr, left, right) }

// Eq, Neq, Lt, Lte, Gt and Gte create the comparisons ==, !=, <, <=, > and >=.
func Eq(left, right Expr) Expr  { return Binary(rangeset.OpEq, left, right) }
func Neq(left, right Expr) Expr { return Binary(rangeset.OpNe, left, right) }
func Lt(left, right Expr) Expr  { return Binary(rangeset.OpLt, left, right) }
func Lte(left, right Expr) Expr { return Binary(rangeset.OpLe, left, right) }
func Gt(left, right Expr) Expr  { return Binary(rangeset.OpGt, left, right) }
func Gte(left, right Expr) Expr { return Binary(rangeset.OpGe, left, right) }

// Neg creates an arithmetic negation.
func Neg(e Expr) Expr { return Unary(OpNeg, e) }

// BitNot creates a bitwise complement.
func BitNot(e Expr) Expr { return Unary(OpBitNot, e) }

// Not creates a logical not expression. The evaluator rejects it.
func Not(e Expr) Expr { return Unary(OpNot, e) }
