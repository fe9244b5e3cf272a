package safenum

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirkon/safenum/checked"
	"github.com/sirkon/safenum/policy"
	"github.com/sirkon/safenum/repr"
	"github.com/sirkon/safenum/tribool"
)

// ErrTypeMismatch means operands do not match types of a derivation.
var ErrTypeMismatch = errors.New("operand types do not match the derivation")

// Binary is a derivation of a binary operator over two safe types. It is
// computed from types alone and is cached: binding the same operator to the
// same types returns the same *Binary.
type Binary struct {
	op    policy.Op
	left  *Type
	right *Type

	// result is nil for relational operators.
	result *Type
	exc    *policy.Exception
	kinds  []checked.ErrorKind
	known  tribool.Value
	eng    engine
}

// Bind derives a binary operation over types t and u.
//
// The result representation comes from the promotion policy and the result
// range from interval arithmetic over operand ranges. The returned error
// wraps policy.ErrTrapped when a possible failure is mapped to Trap, and
// policy.ErrPolicyUnset or policy.ErrPolicyMismatch when operand policies
// do not compose.
func Bind(op policy.Op, t, u *Type) (*Binary, error) {
	if t == nil || u == nil {
		return nil, errUninitialized(fmt.Sprintf("bind %s", op))
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	key := &derivationKey{
		op:    op,
		left:  t.id,
		right: u.id,
	}
	if got := registry.derivations.Search(key); got != nil {
		return got.bin, got.err
	}

	key.bin, key.err = derive(op, t, u)
	if key.err != nil {
		key.bin = nil
		key.err = fmt.Errorf("%s %s %s: %w", t, op.Symbol(), u, key.err)
	}
	registry.derivations.InsertReturn(key)

	return key.bin, key.err
}

// MustBind is like Bind but panics on failure.
func MustBind(op policy.Op, t, u *Type) *Binary {
	b, err := Bind(op, t, u)
	if err != nil {
		panic(err)
	}

	return b
}

func derive(op policy.Op, t, u *Type) (*Binary, error) {
	switch {
	case op.Relational(), op.Bitwise(), op.Shift():
	case op == policy.Add, op == policy.Sub, op == policy.Mul, op == policy.Div, op == policy.Mod:
	default:
		return nil, fmt.Errorf("unsupported operator %s", op)
	}

	promo, err := policy.ResolvePromotion(t.promo, u.promo)
	if err != nil {
		return nil, err
	}
	exc, err := policy.ResolveException(t.exc, u.exc)
	if err != nil {
		return nil, err
	}

	b := &Binary{
		op:    op,
		left:  t,
		right: u,
		exc:   exc,
	}
	if op.Relational() {
		b.known = relation(op, t, u)
		return b, nil
	}

	rk := promo.Result(op, t.kind, u.kind)
	eng, ok := engines[rk]
	if !ok {
		return nil, fmt.Errorf("promotion %s gives unsupported representation %s", promo.Name(), rk)
	}
	b.eng = eng

	d := eng.derive(op, t, u)
	b.kinds = d.kinds

	var trapped []checked.ErrorKind
	widen := false
	for _, kind := range d.kinds {
		switch exc.Action(policy.Classify(kind)) {
		case policy.Trap:
			trapped = append(trapped, kind)
		case policy.Ignore:
			widen = true
		}
	}
	if len(trapped) > 0 {
		return nil, &policy.Error{
			Kind:     trapped[0],
			Category: policy.Classify(trapped[0]),
			Action:   policy.Trap,
			Message:  fmt.Sprintf("possible failures %v", trapped),
		}
	}

	low, high := d.low, d.high
	if widen {
		// Ignored failures leave natively computed values which may be
		// anywhere within the representation.
		low, high = rk.Lowest(), rk.Highest()
	}
	b.result = internLocked(&Type{
		kind:  rk,
		min:   low,
		max:   high,
		promo: promo,
		exc:   exc,
	})

	return b, nil
}

// relation decides a relational operator from types when their ranges allow.
func relation(op policy.Op, t, u *Type) tribool.Value {
	lt := func(a uint64, ak repr.Kind, b uint64, bk repr.Kind) bool {
		return repr.Compare(a, ak, b, bk) < 0
	}

	less := tribool.Indeterminate
	switch {
	case lt(t.max, t.kind, u.min, u.kind):
		less = tribool.True
	case !lt(t.min, t.kind, u.max, u.kind):
		less = tribool.False
	}
	greater := tribool.Indeterminate
	switch {
	case lt(u.max, u.kind, t.min, t.kind):
		greater = tribool.True
	case !lt(u.min, u.kind, t.max, t.kind):
		greater = tribool.False
	}
	equal := tribool.Indeterminate
	switch {
	case less.IsTrue() || greater.IsTrue():
		equal = tribool.False
	case t.min == t.max && u.min == u.max && repr.Compare(t.min, t.kind, u.min, u.kind) == 0:
		equal = tribool.True
	}

	switch op {
	case policy.Less:
		return less
	case policy.Greater:
		return greater
	case policy.LessEqual:
		return greater.Not()
	case policy.GreaterEqual:
		return less.Not()
	case policy.Equal:
		return equal
	case policy.NotEqual:
		return equal.Not()
	default:
		panic(fmt.Errorf("%s is not relational", op))
	}
}

// Op returns the operator.
func (b *Binary) Op() policy.Op { return b.op }

// Left returns the left operand type.
func (b *Binary) Left() *Type { return b.left }

// Right returns the right operand type.
func (b *Binary) Right() *Type { return b.right }

// Result returns the result type. It is nil for relational operators.
func (b *Binary) Result() *Type { return b.result }

// Exception returns the composed exception policy.
func (b *Binary) Exception() *policy.Exception { return b.exc }

// ExceptionPossible tells if the operation can fail at run time.
func (b *Binary) ExceptionPossible() bool {
	return len(b.kinds) > 0
}

// Reasons lists failure kinds the operation may produce.
func (b *Binary) Reasons() []checked.ErrorKind {
	return slices.Clone(b.kinds)
}

// Known returns the outcome of a relational operator decided from types
// alone, Indeterminate if it needs a run time comparison.
func (b *Binary) Known() tribool.Value {
	return b.known
}

// Apply computes an arithmetic, shift or bitwise operator.
func (b *Binary) Apply(x, y Value) (Value, error) {
	if b.op.Relational() {
		return Value{}, fmt.Errorf("apply %s: relational operator, use Compare", b.op)
	}
	if err := b.check(x, y); err != nil {
		return Value{}, err
	}

	if !b.ExceptionPossible() {
		return Value{t: b.result, bits: b.eng.raw(b.op, x, y)}, nil
	}

	r, err := b.eng.exec(b.op, x, y, b.exc)
	if err != nil {
		return Value{}, fmt.Errorf("%s %s %s: %w", x, b.op.Symbol(), y, err)
	}

	return Value{t: b.result, bits: r}, nil
}

// Compare computes a relational operator.
func (b *Binary) Compare(x, y Value) (bool, error) {
	if !b.op.Relational() {
		return false, fmt.Errorf("compare %s: not a relational operator", b.op)
	}
	if err := b.check(x, y); err != nil {
		return false, err
	}

	if !b.known.IsIndeterminate() {
		return b.known.IsTrue(), nil
	}

	c := repr.Compare(x.bits, x.t.kind, y.bits, y.t.kind)
	switch b.op {
	case policy.Less:
		return c < 0, nil
	case policy.Greater:
		return c > 0, nil
	case policy.LessEqual:
		return c <= 0, nil
	case policy.GreaterEqual:
		return c >= 0, nil
	case policy.Equal:
		return c == 0, nil
	default:
		return c != 0, nil
	}
}

func (b *Binary) check(x, y Value) error {
	if x.t == nil || y.t == nil {
		return errUninitialized(b.op.String())
	}
	if x.t != b.left || y.t != b.right {
		return fmt.Errorf("%s %s %s: %w", x.t, b.op.Symbol(), y.t, ErrTypeMismatch)
	}

	return nil
}
