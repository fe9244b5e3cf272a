// Package lint implements safelint: an analyzer deciding from declared safe
// types which operations are rejected by trap policies, which values never
// fit their types and which operand policies do not compose.
package lint

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/sirkon/safenum"
	"github.com/sirkon/safenum/internal/report"
	"github.com/sirkon/safenum/internal/rules"
	"github.com/sirkon/safenum/policy"
	"github.com/sirkon/safenum/repr"
)

const doc = `safelint reports safe integer operations rejected by trap policies

Safe types declared with constant ranges and known policies are evaluated
statically, so are derivations of operations over their values. A trap
policy rejects any operation which may fail, safelint reports these before
the program runs.`

// Analyzer is the main entry point for the linter. It is configured with
// -config and -debug flags.
var Analyzer = newFlagAnalyzer()

// NewAnalyzer creates an analyzer with the given config and logger.
func NewAnalyzer(cfg *Config, logger *zap.Logger) *analysis.Analyzer {
	l := newLinter(cfg, logger)

	return &analysis.Analyzer{
		Name:       "safelint",
		Doc:        doc,
		Requires:   []*analysis.Analyzer{inspect.Analyzer},
		ResultType: reflect.TypeFor[*report.Reporter](),
		Run:        l.run,
	}
}

func newFlagAnalyzer() *analysis.Analyzer {
	var (
		configPath string
		debug      bool
	)

	setup := sync.OnceValues(func() (*linter, error) {
		cfg := DefaultConfig()
		if configPath != "" {
			var err error
			cfg, err = LoadConfig(configPath)
			if err != nil {
				return nil, fmt.Errorf("load config: %w", err)
			}
		}

		logger := zap.NewNop()
		if debug {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			var err error
			logger, err = config.Build()
			if err != nil {
				return nil, fmt.Errorf("failed to initialize logger: %w", err)
			}
		}

		return newLinter(cfg, logger), nil
	})

	a := &analysis.Analyzer{
		Name:       "safelint",
		Doc:        doc,
		Requires:   []*analysis.Analyzer{inspect.Analyzer},
		ResultType: reflect.TypeFor[*report.Reporter](),
	}
	a.Flags.StringVar(&configPath, "config", "", "path to the YAML config")
	a.Flags.BoolVar(&debug, "debug", false, "log derivations and findings")
	a.Run = func(pass *analysis.Pass) (any, error) {
		l, err := setup()
		if err != nil {
			return nil, err
		}

		return l.run(pass)
	}

	return a
}

type linter struct {
	cfg    *Config
	known  *knownPolicies
	logger *zap.Logger
}

func newLinter(cfg *Config, logger *zap.Logger) *linter {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &linter{
		cfg:    cfg,
		known:  newKnownPolicies(cfg),
		logger: logger,
	}
}

func (l *linter) run(pass *analysis.Pass) (any, error) {
	pector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	e := newEvaluator(pass, l)

	nodeFilter := []ast.Node{
		(*ast.ValueSpec)(nil),
		(*ast.AssignStmt)(nil),
		(*ast.CallExpr)(nil),
	}

	// Assignments are visited before calls on their right hand sides, so
	// every call sees objects assigned above it.
	pector.Preorder(nodeFilter, func(node ast.Node) {
		switch n := node.(type) {
		case *ast.ValueSpec:
			lhs := make([]ast.Expr, len(n.Names))
			for i, name := range n.Names {
				lhs[i] = name
			}
			e.assign(lhs, n.Values)
		case *ast.AssignStmt:
			e.assign(n.Lhs, n.Rhs)
		case *ast.CallExpr:
			e.check(n)
		}
	})

	e.rep.Log(l.logger.With(zap.String("package", pass.Pkg.Path())), pass.Fset)

	return e.rep, nil
}

// check reports findings of a call.
func (e *evaluator) check(call *ast.CallExpr) {
	c, ok := e.apiCall(call)
	if !ok {
		return
	}

	switch {
	case c.fn("Declare"), c.fn("Full"), c.fn("Native"):
		e.checkDeclare(c)
	case c.fn("Bind"), c.fn("MustBind"):
		op, ok := e.op(c.arg(0))
		if !ok {
			return
		}
		e.checkBind(call.Pos(), op, e.safeType(c.arg(1)), e.safeType(c.arg(2)))
	case c.fn("Make"), c.fn("MustMake"):
		e.checkMake(c)
	case c.fn("Convert"):
		e.checkConvert(c)
	case c.method("Type", "Default"):
		t := e.safeType(c.recvExpr)
		if t != nil && t.Exception().Action(policy.UninitializedValue) == policy.Trap {
			e.report(report.PhaseValue, rules.UninitializedTrap(), call.Pos(), fmt.Sprintf("default value of %s", t))
		}
	case c.method("Type", "From"):
		t, s := e.safeType(c.recvExpr), e.valueType(c.arg(0))
		if t == nil || s == nil {
			return
		}
		lo, hi := s.Bounds()
		e.checkAdmission(call.Pos(), s.Kind(), lo, hi, t)
	case c.method("Value", "Compound"):
		op, ok := e.op(c.arg(0))
		if !ok {
			return
		}
		t := e.valueType(c.recvExpr)
		b := e.checkBind(call.Pos(), op, t, e.valueType(c.arg(1)))
		if b == nil || b.Result() == nil {
			return
		}
		lo, hi := b.Result().Bounds()
		e.checkAdmission(call.Pos(), b.Result().Kind(), lo, hi, t)
	case c.recv == "Value":
		op, ok := opByName[c.name]
		if !ok {
			return
		}
		e.checkBind(call.Pos(), op, e.valueType(c.recvExpr), e.valueType(c.arg(0)))
	}
}

func (e *evaluator) checkDeclare(c apiCall) {
	var policies []ast.Expr
	switch {
	case c.fn("Declare"):
		policies = []ast.Expr{c.arg(2), c.arg(3)}
	case c.fn("Full"):
		policies = []ast.Expr{c.arg(0), c.arg(1)}
	}
	if e.lint.cfg.Strict && len(policies) == 2 {
		if _, ok := e.promotion(policies[0]); !ok {
			e.report(report.PhasePolicy, rules.UnknownPolicy(), policies[0].Pos(), "promotion policy is not known")
		}
		if _, ok := e.exception(policies[1]); !ok {
			e.report(report.PhasePolicy, rules.UnknownPolicy(), policies[1].Pos(), "exception policy is not known")
		}
	}

	if _, err := e.declare(c); err != nil {
		e.report(report.PhaseDeclare, rules.InvalidRange(), c.call.Pos(), err.Error())
	}
}

// checkBind reports derivations rejected by traps or by policy composition.
// Returns the derivation if it was computed.
func (e *evaluator) checkBind(pos token.Pos, op policy.Op, t, u *safenum.Type) *safenum.Binary {
	if t == nil || u == nil {
		return nil
	}

	b, err := safenum.Bind(op, t, u)
	switch {
	case err == nil:
		e.lint.logger.Debug(
			"derive",
			zap.Stringer("op", op),
			zap.Stringer("left", t),
			zap.Stringer("right", u),
			zap.Stringer("result", b.Result()),
			zap.Bool("exception_possible", b.ExceptionPossible()),
		)
		return b
	case errors.Is(err, policy.ErrTrapped):
		e.report(report.PhaseDerive, rules.TrapReachable(), pos, err.Error())
	case errors.Is(err, policy.ErrPolicyUnset), errors.Is(err, policy.ErrPolicyMismatch):
		e.report(report.PhaseDerive, rules.PolicyUnresolved(), pos, err.Error())
	default:
		e.lint.logger.Debug("derive failed", zap.Stringer("op", op), zap.Error(err))
	}

	return nil
}

func (e *evaluator) checkMake(c apiCall) {
	t := e.safeType(c.arg(0))
	k, ok := e.typeArg(c.call)
	if t == nil || !ok {
		return
	}

	lo, hi := k.Lowest(), k.Highest()
	if b, ok := e.constant(c.arg(1)); ok {
		lo, hi = k.Normalize(b), k.Normalize(b)
	}
	e.checkAdmission(c.call.Pos(), k, lo, hi, t)
}

func (e *evaluator) checkConvert(c apiCall) {
	t := e.valueType(c.arg(0))
	k, ok := e.typeArg(c.call)
	if t == nil || !ok {
		return
	}

	lo, hi := t.Bounds()
	e.checkAdmissionInto(c.call.Pos(), t.Kind(), lo, hi, k, k.Lowest(), k.Highest(), t.Exception())
}

// checkAdmission reports sources of kind k with the range [lo, hi] which
// cannot fit t or may fail to under a trap.
func (e *evaluator) checkAdmission(pos token.Pos, k repr.Kind, lo, hi uint64, t *safenum.Type) {
	if t == nil {
		return
	}

	tmin, tmax := t.Bounds()
	e.checkAdmissionInto(pos, k, lo, hi, t.Kind(), tmin, tmax, t.Exception())
}

func (e *evaluator) checkAdmissionInto(
	pos token.Pos,
	k repr.Kind,
	lo, hi uint64,
	dk repr.Kind,
	dmin, dmax uint64,
	exc *policy.Exception,
) {
	source := fmt.Sprintf("%s[%s,%s]", k, k.Format(lo), k.Format(hi))
	target := fmt.Sprintf("%s[%s,%s]", dk, dk.Format(dmin), dk.Format(dmax))

	switch {
	case repr.Compare(lo, k, dmin, dk) >= 0 && repr.Compare(hi, k, dmax, dk) <= 0:
		return
	case repr.Compare(hi, k, dmin, dk) < 0 || repr.Compare(lo, k, dmax, dk) > 0:
		e.report(report.PhaseValue, rules.NeverFits(), pos, fmt.Sprintf("%s never fits %s", source, target))
	case exc.Action(policy.ArithmeticError) == policy.Trap:
		e.report(report.PhaseValue, rules.TrapReachable(), pos, fmt.Sprintf("%s may not fit %s", source, target))
	}
}
