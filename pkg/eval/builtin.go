package eval

import (
	"github.com/benchwise/sheetcalc/pkg/formula"
	"github.com/benchwise/sheetcalc/pkg/types"
)

// BuiltinFunc is a builtin formula function. Builtins receive argument nodes
// rather than evaluated values so IF can short-circuit: the untaken branch
// is never evaluated and its cell references never touch the session.
type BuiltinFunc func(e *Evaluator, args []formula.Node, visiting []string) Result

// builtinRegistry returns the closed builtin function table, keyed by
// uppercased name. Unknown names are handled at the call site and resolve
// to empty text rather than an error.
func builtinRegistry() map[string]BuiltinFunc {
	return map[string]BuiltinFunc{
		"IF":   builtinIf,
		"SUM":  builtinSum,
		"TRIM": builtinTrim,
	}
}

// builtinIf evaluates the condition, then exactly one branch. A missing
// else-branch defaults to empty text.
func builtinIf(e *Evaluator, args []formula.Node, visiting []string) Result {
	if len(args) < 2 {
		return Result{Value: types.Empty}
	}
	cond := e.evalNode(args[0], visiting)
	if types.Truthy(cond.Value) {
		branch := e.evalNode(args[1], visiting)
		return Result{Value: branch.Value, Soft: firstSoft(cond.Soft, branch.Soft)}
	}
	if len(args) < 3 {
		return Result{Value: types.Empty, Soft: cond.Soft}
	}
	branch := e.evalNode(args[2], visiting)
	return Result{Value: branch.Value, Soft: firstSoft(cond.Soft, branch.Soft)}
}

// builtinSum totals its arguments. Range arguments flatten: every covered
// cell is coerced to a number and added; scalars coerce directly.
func builtinSum(e *Evaluator, args []formula.Node, visiting []string) Result {
	total := 0.0
	soft := SoftNone
	for _, arg := range args {
		res := e.evalNode(arg, visiting)
		soft = firstSoft(soft, res.Soft)
		if res.Value.Type() == types.TypeList {
			for _, item := range res.Value.AsList() {
				total += types.ToNumber(item)
			}
			continue
		}
		total += types.ToNumber(res.Value)
	}
	return Result{Value: types.NewNumber(total), Soft: soft}
}

// builtinTrim applies the whitespace-collapsing trim rule to its single
// argument.
func builtinTrim(e *Evaluator, args []formula.Node, visiting []string) Result {
	if len(args) == 0 {
		return Result{Value: types.Empty}
	}
	res := e.evalNode(args[0], visiting)
	return Result{Value: types.NewText(types.Trim(res.Value)), Soft: res.Soft}
}
