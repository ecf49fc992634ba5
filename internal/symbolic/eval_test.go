package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoverse/rangelogic/logic"
	"github.com/gnoverse/rangelogic/rangeset"
)

func testEnv() *Env {
	env := NewEnv()
	env.Set("level", rangeset.FromRanges(rangeset.Range{Min: 1, Max: 99}))
	env.Set("refine", rangeset.FromRanges(rangeset.Range{Min: 0, Max: 10}))
	return env
}

func TestEvalRange(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expr     Expr
		expected string
	}{
		{"literal", IntLit(5), "[5,5]"},
		{"bound variable", Var("level"), "[1,99]"},
		{"unbound variable", Var("job"), "[-2147483648,2147483647]"},
		{"negation", Neg(Var("level")), "[-99,-1]"},
		{"complement", BitNot(IntLit(0)), "[-1,-1]"},
		{"multiply", Binary(rangeset.OpMul, Var("level"), IntLit(2)), "[2,198]"},
		{"add variables", Binary(rangeset.OpAdd, Var("refine"), Var("refine")), "[0,20]"},
		{"divide by zero", Binary(rangeset.OpDiv, Var("refine"), IntLit(0)), "[0,0]"},
		{"relational", Lt(Var("level"), IntLit(10)), "[1,9]"},
	}

	ev := NewEvaluator(DefaultConfig())
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ev.EvalRange(tt.expr, testEnv())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestEvalRangeReturnsFreshList(t *testing.T) {
	t.Parallel()
	env := testEnv()
	ev := NewEvaluator(DefaultConfig())

	got, err := ev.EvalRange(Var("level"), env)
	require.NoError(t, err)
	assert.NotSame(t, env.Get("level"), got)

	got.Add(200, 300)
	assert.Equal(t, "[1,99]", env.Get("level").String())
}

func TestEvalRangeErrors(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(DefaultConfig())

	_, err := ev.EvalRange(Not(Var("level")), testEnv())
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, err, rangeset.ErrInvalidArgument)

	_, err = ev.EvalRange(nil, testEnv())
	assert.ErrorIs(t, err, ErrUnsupported)

	strict := NewEvaluator(EvalConfig{StrictVars: true})
	_, err = strict.EvalRange(Binary(rangeset.OpAdd, Var("level"), Var("job")), testEnv())
	assert.ErrorIs(t, err, ErrUnknownVariable)
}

func TestEvalCondLeaves(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expr     Expr
		variable string
		expected string
	}{
		{"greater or equal", Gte(Var("level"), IntLit(10)), "level", "[10,99]"},
		{"variable on the right", Lte(IntLit(10), Var("level")), "level", "[10,99]"},
		{"strictly less on the right", Gt(IntLit(10), Var("level")), "level", "[1,9]"},
		{"equality", Eq(Var("refine"), IntLit(7)), "refine", "[7,7]"},
		{"unsatisfiable", Eq(Var("level"), IntLit(200)), "level", "[]"},
		{"derived bound", Gt(Var("level"), Binary(rangeset.OpAdd, Var("refine"), IntLit(5))), "level", "[16,99]"},
		{"range on one variable", And(Gte(Var("level"), IntLit(10)), Lte(Var("level"), IntLit(20))), "level", "[10,20]"},
		{"disjoint alternatives", Or(Lt(Var("level"), IntLit(5)), Gt(Var("level"), IntLit(90))), "level", "[1,4][91,99]"},
		{"unbound variable", Eq(Var("job"), IntLit(4)), "job", "[4,4]"},
	}

	ev := NewEvaluator(DefaultConfig())
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, err := ev.EvalCond(tt.expr, testEnv())
			require.NoError(t, err)
			require.Equal(t, logic.KindVar, n.Kind())
			assert.Equal(t, tt.variable, n.Name())
			assert.Equal(t, tt.expected, n.Domain().String())
		})
	}
}

func TestEvalCondTree(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(DefaultConfig())

	// (level >= 10 && refine == 7) || job == 4
	expr := Or(
		And(Gte(Var("level"), IntLit(10)), Eq(Var("refine"), IntLit(7))),
		Eq(Var("job"), IntLit(4)),
	)
	root, err := ev.EvalCond(expr, testEnv())
	require.NoError(t, err)

	require.Equal(t, logic.KindOr, root.Kind())
	and := root.Left()
	require.Equal(t, logic.KindAnd, and.Kind())
	assert.Same(t, root, and.Parent())
	assert.Equal(t, "level", and.Left().Name())
	assert.Equal(t, "[10,99]", and.Left().Domain().String())
	assert.Equal(t, "refine", and.Right().Name())
	assert.Equal(t, "[7,7]", and.Right().Domain().String())
	assert.Equal(t, "job", root.Right().Name())
	assert.Equal(t, "[4,4]", root.Right().Domain().String())
}

func TestEvalCondErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		expr     Expr
		strict   bool
		expected error
	}{
		{"negated condition", Not(Gt(Var("level"), IntLit(1))), false, ErrUnsupported},
		{"constant comparison", Lt(IntLit(1), IntLit(2)), false, ErrUnsupported},
		{"arithmetic as condition", Binary(rangeset.OpAdd, Var("level"), IntLit(1)), false, ErrUnsupported},
		{"bare variable", Var("level"), false, ErrUnsupported},
		{"negation inside and", And(Gt(Var("level"), IntLit(1)), Not(Var("refine"))), false, ErrUnsupported},
		{"unknown variable", Eq(Var("job"), IntLit(1)), true, ErrUnknownVariable},
		{"unknown variable in bound", Eq(Var("level"), Var("job")), true, ErrUnknownVariable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			config.StrictVars = tt.strict
			_, err := NewEvaluator(config).EvalCond(tt.expr, testEnv())
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestEvalCondNegationIsInvalid(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator(DefaultConfig())

	for _, expr := range []Expr{
		Not(Gt(Var("level"), IntLit(1))),
		Or(Lt(Var("level"), IntLit(5)), Not(Eq(Var("refine"), IntLit(7)))),
	} {
		_, err := ev.EvalCond(expr, testEnv())
		assert.ErrorIs(t, err, ErrUnsupported, expr.String())
		assert.ErrorIs(t, err, logic.ErrInvalidArgument, expr.String())
	}
}

func TestEvalCondUsesParentScope(t *testing.T) {
	t.Parallel()
	child := NewChildEnv(testEnv())
	child.Set("level", rangeset.FromRanges(rangeset.Range{Min: 50, Max: 60}))

	ev := NewEvaluator(EvalConfig{StrictVars: true})
	n, err := ev.EvalCond(And(Gte(Var("level"), IntLit(55)), Lt(Var("refine"), IntLit(3))), child)
	require.NoError(t, err)
	require.Equal(t, logic.KindAnd, n.Kind())
	assert.Equal(t, "[55,60]", n.Left().Domain().String())
	assert.Equal(t, "[0,2]", n.Right().Domain().String())
}
