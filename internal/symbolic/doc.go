// Package symbolic evaluates script expressions over value sets.
//
// Numeric expressions evaluate to the rangeset.List of values they can take,
// given the domains bound in an Env. Conditions evaluate to logic trees
// whose leaves hold, for each compared variable, the values that satisfy
// the comparison. Two comparisons on the same variable joined by && or ||
// collapse into a single leaf, so
//
//	level >= 10 && level <= 20
//
// yields the leaf `level in [10,20]` instead of two nested comparisons.
//
// Out of scope (returns ErrUnsupported):
//   - logical negation of a condition
//   - comparisons with no variable operand
//   - numeric expressions used directly as conditions
package symbolic
