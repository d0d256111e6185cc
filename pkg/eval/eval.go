// Package eval implements the formula evaluator: cell resolution against a
// loaded sheet with an override layer, per-session memoization, and cycle
// short-circuiting.
package eval

import (
	"strings"

	"github.com/benchwise/sheetcalc/pkg/formula"
	"github.com/benchwise/sheetcalc/pkg/ref"
	"github.com/benchwise/sheetcalc/pkg/sheet"
	"github.com/benchwise/sheetcalc/pkg/types"
)

// SoftFail names a condition that resolves to a default value instead of an
// error. These are compatibility behavior: the grid stays usable when a
// formula references something the engine does not implement.
type SoftFail int

const (
	SoftNone            SoftFail = iota
	SoftUnknownName              // bare identifier with no binding
	SoftUnknownFunction          // call to a function outside the builtin set
	SoftCycle                    // reference cycle short-circuited
	SoftBadFormula               // formula failed to tokenize or parse
	SoftBadReference             // reference or range that cannot be decoded
)

// String returns the soft-fail condition name.
func (s SoftFail) String() string {
	switch s {
	case SoftNone:
		return "none"
	case SoftUnknownName:
		return "unknown-name"
	case SoftUnknownFunction:
		return "unknown-function"
	case SoftCycle:
		return "cycle"
	case SoftBadFormula:
		return "bad-formula"
	case SoftBadReference:
		return "bad-reference"
	default:
		return "unknown"
	}
}

// Result pairs a computed value with the first soft-fail condition hit while
// computing it. The value is always the compatibility value; Soft exists so
// a stricter mode can be layered on without changing defaults.
type Result struct {
	Value types.Value
	Soft  SoftFail
}

// Evaluator is one evaluation session: a value cache and the builtin table,
// bound to a sheet and an override snapshot. Sessions are single-threaded
// and cheap to construct; build a fresh one whenever the overrides change so
// stale memoized values can never leak into a new pass.
type Evaluator struct {
	sheet     *sheet.Sheet
	asts      *formula.Cache
	overrides map[string]types.Value
	cache     map[string]Result
	funcs     map[string]BuiltinFunc
}

// New creates an evaluation session for the given sheet. The AST cache is
// shared across sessions (parsed trees are pure data); overrides are
// snapshotted so later edits cannot disturb this session.
func New(s *sheet.Sheet, asts *formula.Cache, overrides map[string]types.Value) *Evaluator {
	snap := make(map[string]types.Value, len(overrides))
	for k, v := range overrides {
		snap[k] = v
	}
	return &Evaluator{
		sheet:     s,
		asts:      asts,
		overrides: snap,
		cache:     make(map[string]Result),
		funcs:     builtinRegistry(),
	}
}

// EvaluateCell resolves a single cell to its value. The only possible error
// is a reference that cannot be decoded at all.
func (e *Evaluator) EvaluateCell(r string) (types.Value, error) {
	res, err := e.ResolveCell(r)
	if err != nil {
		return types.Blank, err
	}
	return res.Value, nil
}

// ResolveCell resolves a single cell and reports any soft-fail condition
// encountered along the way.
func (e *Evaluator) ResolveCell(r string) (Result, error) {
	norm, err := ref.Normalize(r)
	if err != nil {
		return Result{Value: types.Blank}, err
	}
	return e.evaluateCell(norm, nil), nil
}

// EvaluateFormula evaluates an ad-hoc formula string against the session,
// without binding the result to any cell. A leading "=" is accepted.
func (e *Evaluator) EvaluateFormula(src string) (types.Value, error) {
	node, err := e.asts.Get(stripEquals(src))
	if err != nil {
		return types.Blank, err
	}
	return e.evalNode(node, nil).Value, nil
}

// evaluateCell resolves one normalized reference. The visitation list is a
// copy-on-extend value threaded through the recursion, so sibling subtrees
// cannot see each other's in-progress state.
func (e *Evaluator) evaluateCell(norm string, visiting []string) Result {
	if res, ok := e.cache[norm]; ok {
		return res
	}

	// A repeat encounter short-circuits to empty text instead of recursing.
	// The cycle result is not cached: the same cell resolved from outside
	// the cycle must still compute normally.
	for _, v := range visiting {
		if v == norm {
			return Result{Value: types.Empty, Soft: SoftCycle}
		}
	}

	res := e.resolve(norm, visiting)
	e.cache[norm] = res
	return res
}

func (e *Evaluator) resolve(norm string, visiting []string) Result {
	// Overrides win for raw values and suppress any stored formula.
	if v, ok := e.overrides[norm]; ok {
		return Result{Value: v}
	}

	cell, ok := e.sheet.Lookup(norm)
	if !ok {
		return Result{Value: types.Blank}
	}
	if !cell.HasFormula() {
		return Result{Value: cell.Value}
	}

	node, err := e.asts.Get(stripEquals(cell.Formula))
	if err != nil {
		// A failed parse degrades to a blank cell; it never aborts the
		// rest of the sheet.
		return Result{Value: types.Blank, Soft: SoftBadFormula}
	}
	return e.evalNode(node, extend(visiting, norm))
}

// evalNode dispatches on node kind.
func (e *Evaluator) evalNode(node formula.Node, visiting []string) Result {
	switch n := node.(type) {
	case *formula.NumberNode:
		return Result{Value: types.NewNumber(n.Value)}
	case *formula.TextNode:
		return Result{Value: types.NewText(n.Value)}
	case *formula.CellNode:
		norm, err := ref.Normalize(n.Ref)
		if err != nil {
			return Result{Value: types.Blank, Soft: SoftBadReference}
		}
		return e.evaluateCell(norm, visiting)
	case *formula.RangeNode:
		return e.evalRange(n, visiting)
	case *formula.NameNode:
		return Result{Value: types.Empty, Soft: SoftUnknownName}
	case *formula.UnaryNode:
		return e.evalUnary(n, visiting)
	case *formula.BinaryNode:
		return e.evalBinary(n, visiting)
	case *formula.CallNode:
		fn, ok := e.funcs[n.Name]
		if !ok {
			return Result{Value: types.Empty, Soft: SoftUnknownFunction}
		}
		return fn(e, n.Args, visiting)
	default:
		return Result{Value: types.Blank}
	}
}

// evalRange expands the rectangle and resolves every covered cell in
// row-major order. The list result only means something inside an aggregate
// function; in any other operator context it coerces like blank.
func (e *Evaluator) evalRange(n *formula.RangeNode, visiting []string) Result {
	refs, err := ref.ExpandRange(n.From, n.To)
	if err != nil {
		return Result{Value: types.Blank, Soft: SoftBadReference}
	}
	values := make([]types.Value, len(refs))
	soft := SoftNone
	for i, r := range refs {
		res := e.evaluateCell(r, visiting)
		values[i] = res.Value
		soft = firstSoft(soft, res.Soft)
	}
	return Result{Value: types.NewList(values), Soft: soft}
}

func (e *Evaluator) evalUnary(n *formula.UnaryNode, visiting []string) Result {
	operand := e.evalNode(n.Operand, visiting)
	num := types.ToNumber(operand.Value)
	if n.Op == formula.TokenMinus {
		num = -num
	}
	return Result{Value: types.NewNumber(num), Soft: operand.Soft}
}

func (e *Evaluator) evalBinary(n *formula.BinaryNode, visiting []string) Result {
	left := e.evalNode(n.Left, visiting)
	right := e.evalNode(n.Right, visiting)
	soft := firstSoft(left.Soft, right.Soft)

	var v types.Value
	switch n.Op {
	case formula.TokenPlus:
		v = types.NewNumber(types.ToNumber(left.Value) + types.ToNumber(right.Value))
	case formula.TokenMinus:
		v = types.NewNumber(types.ToNumber(left.Value) - types.ToNumber(right.Value))
	case formula.TokenStar:
		v = types.NewNumber(types.ToNumber(left.Value) * types.ToNumber(right.Value))
	case formula.TokenSlash:
		// Plain IEEE division; x/0 yields an infinity or NaN, not an error
		// value.
		v = types.NewNumber(types.ToNumber(left.Value) / types.ToNumber(right.Value))
	case formula.TokenAmp:
		v = types.NewText(types.ToText(left.Value) + types.ToText(right.Value))
	case formula.TokenEq:
		v = types.NewBool(types.ToText(left.Value) == types.ToText(right.Value))
	case formula.TokenNeq:
		v = types.NewBool(types.ToText(left.Value) != types.ToText(right.Value))
	case formula.TokenLt:
		v = types.NewBool(types.ToNumber(left.Value) < types.ToNumber(right.Value))
	case formula.TokenGt:
		v = types.NewBool(types.ToNumber(left.Value) > types.ToNumber(right.Value))
	case formula.TokenLte:
		v = types.NewBool(types.ToNumber(left.Value) <= types.ToNumber(right.Value))
	case formula.TokenGte:
		v = types.NewBool(types.ToNumber(left.Value) >= types.ToNumber(right.Value))
	default:
		v = types.Blank
	}
	return Result{Value: v, Soft: soft}
}

// extend returns a new visitation list with one more entry. The copy keeps
// the list a true value: siblings evaluated after this call never observe
// the extension.
func extend(visiting []string, norm string) []string {
	next := make([]string, len(visiting)+1)
	copy(next, visiting)
	next[len(visiting)] = norm
	return next
}

func firstSoft(a, b SoftFail) SoftFail {
	if a != SoftNone {
		return a
	}
	return b
}

func stripEquals(src string) string {
	return strings.TrimPrefix(strings.TrimSpace(src), "=")
}
