package lint

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/types/typeutil"

	"github.com/sirkon/safenum"
	"github.com/sirkon/safenum/internal/report"
	"github.com/sirkon/safenum/internal/rules"
	"github.com/sirkon/safenum/policy"
	"github.com/sirkon/safenum/repr"
)

// evaluator computes safe types and derivations of a package statically.
// Objects assigned from safe type declarations, values or operations over
// them are tracked by their types.Object.
type evaluator struct {
	pass  *analysis.Pass
	lint  *linter
	rep   *report.Reporter
	types map[types.Object]*safenum.Type

	// values maps objects holding safe values to types of these values.
	values map[types.Object]*safenum.Type
}

func newEvaluator(pass *analysis.Pass, l *linter) *evaluator {
	return &evaluator{
		pass:   pass,
		lint:   l,
		rep:    report.New(l.cfg.Disabled...),
		types:  map[types.Object]*safenum.Type{},
		values: map[types.Object]*safenum.Type{},
	}
}

// apiCall is a call of the safe numerics API.
type apiCall struct {
	call *ast.CallExpr
	name string

	// recv is a receiver type name of methods, empty for functions.
	recv     string
	recvExpr ast.Expr
}

func (c apiCall) fn(name string) bool {
	return c.recv == "" && c.name == name
}

func (c apiCall) method(recv, name string) bool {
	return c.recv == recv && c.name == name
}

func (c apiCall) arg(i int) ast.Expr {
	if i >= len(c.call.Args) {
		return nil
	}

	return c.call.Args[i]
}

func (e *evaluator) apiCall(call *ast.CallExpr) (apiCall, bool) {
	fn, ok := typeutil.Callee(e.pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil || fn.Pkg().Path() != e.lint.cfg.Package {
		return apiCall{}, false
	}

	res := apiCall{
		call: call,
		name: fn.Name(),
	}
	recv := fn.Signature().Recv()
	if recv == nil {
		return res, true
	}

	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok {
		return apiCall{}, false
	}
	rt := recv.Type()
	if p, ok := rt.(*types.Pointer); ok {
		rt = p.Elem()
	}
	named, ok := types.Unalias(rt).(*types.Named)
	if !ok {
		return apiCall{}, false
	}
	res.recv = named.Obj().Name()
	res.recvExpr = sel.X

	return res, true
}

// assign tracks objects assigned from safe types and values.
func (e *evaluator) assign(lhs, rhs []ast.Expr) {
	if len(rhs) != 1 && len(lhs) != len(rhs) {
		return
	}

	for i, l := range lhs {
		if len(rhs) == 1 && i > 0 {
			break
		}

		id, ok := l.(*ast.Ident)
		if !ok || id.Name == "_" {
			continue
		}
		obj := e.pass.TypesInfo.ObjectOf(id)
		if obj == nil {
			continue
		}

		if t := e.safeType(rhs[i]); t != nil {
			e.types[obj] = t
			continue
		}
		if t := e.valueType(rhs[i]); t != nil {
			e.values[obj] = t
		}
	}
}

func (e *evaluator) object(expr ast.Expr) types.Object {
	switch x := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return e.pass.TypesInfo.ObjectOf(x)
	case *ast.SelectorExpr:
		return e.pass.TypesInfo.ObjectOf(x.Sel)
	default:
		return nil
	}
}

// safeType evaluates expressions of *safenum.Type. Returns nil for anything
// it cannot evaluate.
func (e *evaluator) safeType(expr ast.Expr) *safenum.Type {
	if call, ok := ast.Unparen(expr).(*ast.CallExpr); ok {
		c, ok := e.apiCall(call)
		if !ok {
			return nil
		}
		t, _ := e.declare(c)
		return t
	}

	if obj := e.object(expr); obj != nil {
		return e.types[obj]
	}

	return nil
}

// valueType evaluates the type of safe value expressions.
func (e *evaluator) valueType(expr ast.Expr) *safenum.Type {
	call, ok := ast.Unparen(expr).(*ast.CallExpr)
	if !ok {
		if obj := e.object(expr); obj != nil {
			return e.values[obj]
		}
		return nil
	}

	c, ok := e.apiCall(call)
	if !ok {
		return nil
	}

	switch {
	case c.fn("Make"), c.fn("MustMake"):
		return e.safeType(c.arg(0))
	case c.fn("Literal"):
		k, ok := e.typeArg(call)
		if !ok {
			return nil
		}
		b, ok := e.constant(c.arg(0))
		if !ok {
			return nil
		}
		t, err := safenum.DeclareKind(k, k.Normalize(b), k.Normalize(b), nil, nil)
		if err != nil {
			return nil
		}
		return t
	case c.method("Type", "Default"), c.method("Type", "From"), c.method("Type", "Parse"),
		c.method("Type", "Min"), c.method("Type", "Max"):
		return e.safeType(c.recvExpr)
	case c.method("Value", "Compound"):
		return e.valueType(c.recvExpr)
	case c.recv == "Value":
		op, ok := opByName[c.name]
		if !ok || op.Relational() {
			return nil
		}
		t, u := e.valueType(c.recvExpr), e.valueType(c.arg(0))
		if t == nil || u == nil {
			return nil
		}
		b, err := safenum.Bind(op, t, u)
		if err != nil {
			return nil
		}
		return b.Result()
	default:
		return nil
	}
}

// declare evaluates type declarations. Returns nil type and no error when
// the declaration cannot be evaluated.
func (e *evaluator) declare(c apiCall) (*safenum.Type, error) {
	var (
		k        repr.Kind
		lo, hi   uint64
		promo    policy.Promotion
		exc      *policy.Exception
		ok, pok  bool
		eok, bok = true, true
	)

	switch {
	case c.fn("Declare"):
		if k, ok = e.typeArg(c.call); !ok {
			return nil, nil
		}
		var lok, hok bool
		lo, lok = e.constant(c.arg(0))
		hi, hok = e.constant(c.arg(1))
		bok = lok && hok
		promo, pok = e.promotion(c.arg(2))
		exc, eok = e.exception(c.arg(3))
	case c.fn("Full"):
		if k, ok = e.typeArg(c.call); !ok {
			return nil, nil
		}
		lo, hi = k.Lowest(), k.Highest()
		promo, pok = e.promotion(c.arg(0))
		exc, eok = e.exception(c.arg(1))
	case c.fn("Native"):
		if k, ok = e.typeArg(c.call); !ok {
			return nil, nil
		}
		lo, hi = k.Lowest(), k.Highest()
		promo, pok, exc = policy.Native, true, policy.Default
	default:
		return nil, nil
	}

	if !bok || !pok || !eok {
		return nil, nil
	}

	return safenum.DeclareKind(k, k.Normalize(lo), k.Normalize(hi), promo, exc)
}

// typeArg returns the kind of the first type argument of a generic call.
func (e *evaluator) typeArg(call *ast.CallExpr) (repr.Kind, bool) {
	fun := ast.Unparen(call.Fun)
	switch f := fun.(type) {
	case *ast.IndexExpr:
		fun = f.X
	case *ast.IndexListExpr:
		fun = f.X
	}

	var id *ast.Ident
	switch f := fun.(type) {
	case *ast.Ident:
		id = f
	case *ast.SelectorExpr:
		id = f.Sel
	default:
		return 0, false
	}

	inst, ok := e.pass.TypesInfo.Instances[id]
	if !ok || inst.TypeArgs.Len() == 0 {
		return 0, false
	}

	return e.kindOf(inst.TypeArgs.At(0))
}

func (e *evaluator) kindOf(t types.Type) (repr.Kind, bool) {
	b, ok := types.Unalias(t).Underlying().(*types.Basic)
	if !ok {
		return 0, false
	}

	switch b.Kind() {
	case types.Int8:
		return repr.Int8, true
	case types.Int16:
		return repr.Int16, true
	case types.Int32:
		return repr.Int32, true
	case types.Int64:
		return repr.Int64, true
	case types.Uint8:
		return repr.Uint8, true
	case types.Uint16:
		return repr.Uint16, true
	case types.Uint32:
		return repr.Uint32, true
	case types.Uint64:
		return repr.Uint64, true
	case types.Int:
		if e.pass.TypesSizes.Sizeof(b) == 4 {
			return repr.Int32, true
		}
		return repr.Int64, true
	case types.Uint, types.Uintptr:
		if e.pass.TypesSizes.Sizeof(b) == 4 {
			return repr.Uint32, true
		}
		return repr.Uint64, true
	default:
		return 0, false
	}
}

// constant returns a 64 bit pattern of an integer constant expression.
func (e *evaluator) constant(expr ast.Expr) (uint64, bool) {
	if expr == nil {
		return 0, false
	}
	tv, ok := e.pass.TypesInfo.Types[expr]
	if !ok || tv.Value == nil {
		return 0, false
	}

	v := constant.ToInt(tv.Value)
	if v.Kind() != constant.Int {
		return 0, false
	}
	if i, ok := constant.Int64Val(v); ok {
		return uint64(i), true
	}
	if u, ok := constant.Uint64Val(v); ok {
		return u, true
	}

	return 0, false
}

func (e *evaluator) isNil(expr ast.Expr) bool {
	tv, ok := e.pass.TypesInfo.Types[expr]
	return ok && tv.IsNil()
}

// reference returns a reference to a package level variable or constant.
func (e *evaluator) reference(expr ast.Expr) (Reference, bool) {
	obj := e.object(expr)
	if obj == nil || obj.Pkg() == nil || obj.Parent() != obj.Pkg().Scope() {
		return Reference{}, false
	}

	return Reference{
		Package: obj.Pkg().Path(),
		Name:    obj.Name(),
	}, true
}

func (e *evaluator) promotion(expr ast.Expr) (policy.Promotion, bool) {
	if expr == nil {
		return nil, false
	}
	if e.isNil(expr) {
		return nil, true
	}

	ref, ok := e.reference(expr)
	if !ok {
		return nil, false
	}

	return e.lint.known.promotion(ref)
}

func (e *evaluator) exception(expr ast.Expr) (*policy.Exception, bool) {
	if expr == nil {
		return nil, false
	}
	if e.isNil(expr) {
		return nil, true
	}

	ref, ok := e.reference(expr)
	if !ok {
		return nil, false
	}

	return e.lint.known.exception(ref)
}

// op evaluates operator constants of the policy package.
func (e *evaluator) op(expr ast.Expr) (policy.Op, bool) {
	ref, ok := e.reference(expr)
	if !ok || ref.Package != e.lint.cfg.policyPackage() {
		return 0, false
	}

	op, ok := opByName[ref.Name]
	return op, ok
}

// opByName maps identifiers of operator constants and Value methods alike.
var opByName = map[string]policy.Op{
	"Add":          policy.Add,
	"Sub":          policy.Sub,
	"Mul":          policy.Mul,
	"Div":          policy.Div,
	"Mod":          policy.Mod,
	"Lsh":          policy.Lsh,
	"Rsh":          policy.Rsh,
	"Or":           policy.Or,
	"And":          policy.And,
	"Xor":          policy.Xor,
	"Less":         policy.Less,
	"Greater":      policy.Greater,
	"LessEqual":    policy.LessEqual,
	"GreaterEqual": policy.GreaterEqual,
	"Equal":        policy.Equal,
	"NotEqual":     policy.NotEqual,
}

func (e *evaluator) report(phase report.Phase, rule rules.Rule, pos token.Pos, msg string) {
	if !e.rep.Phase(phase).Report(rule, msg, pos) {
		return
	}

	e.pass.Reportf(pos, "%s: %s", rule, msg)
}
