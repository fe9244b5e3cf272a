package policy

import (
	"errors"
	"fmt"

	"github.com/sirkon/safenum/repr"
)

var (
	// ErrPolicyUnset means neither operand has a policy.
	ErrPolicyUnset = errors.New("both policies are unset")

	// ErrPolicyMismatch means operands have different policies.
	ErrPolicyMismatch = errors.New("policies differ")
)

// Promotion selects representation of a binary operation result.
// Promotions are identified by their names.
type Promotion interface {
	Name() string
	Result(op Op, t, u repr.Kind) repr.Kind
}

// Predefined promotion policies.
var (
	// Native follows Go: no implicit widening, operands meet in the
	// wider of their kinds and a shift keeps the left operand kind.
	Native Promotion = nativePromotion{}

	// Integral follows integral promotion and usual arithmetic conversions
	// of C with 32 bit int.
	Integral Promotion = integralPromotion{}

	// Widest computes everything in 64 bits.
	Widest Promotion = widestPromotion{}
)

// Promotions lists predefined promotion policies by their names.
var Promotions = map[string]Promotion{
	Native.Name():   Native,
	Integral.Name(): Integral,
	Widest.Name():   Widest,
}

type nativePromotion struct{}

func (nativePromotion) Name() string { return "native" }

func (nativePromotion) Result(op Op, t, u repr.Kind) repr.Kind {
	if op.Shift() {
		return t
	}

	return wider(t, u)
}

type integralPromotion struct{}

func (integralPromotion) Name() string { return "integral" }

func (integralPromotion) Result(op Op, t, u repr.Kind) repr.Kind {
	t, u = promote(t), promote(u)
	if op.Shift() {
		return t
	}

	return wider(t, u)
}

type widestPromotion struct{}

func (widestPromotion) Name() string { return "widest" }

func (widestPromotion) Result(op Op, t, u repr.Kind) repr.Kind {
	switch {
	case t.IsFloat() || (!op.Shift() && u.IsFloat()):
		return repr.Float64
	case t.Signed() || (!op.Shift() && u.Signed()):
		return repr.Int64
	default:
		return repr.Uint64
	}
}

func promote(k repr.Kind) repr.Kind {
	if k.IsInteger() && k.Bits() < 32 {
		return repr.Int32
	}

	return k
}

// wider implements usual arithmetic conversions over already promoted kinds.
func wider(t, u repr.Kind) repr.Kind {
	switch {
	case t == u:
		return t
	case t.IsFloat() || u.IsFloat():
		if t == repr.Float64 || u == repr.Float64 {
			return repr.Float64
		}
		return repr.Float32
	case t.Signed() == u.Signed():
		if t.Bits() >= u.Bits() {
			return t
		}
		return u
	}

	s, n := t, u
	if !s.Signed() {
		s, n = u, t
	}
	if n.Bits() >= s.Bits() {
		return n
	}
	return s
}

// ResolvePromotion picks a common promotion of two operands.
func ResolvePromotion(p1, p2 Promotion) (Promotion, error) {
	switch {
	case p1 == nil && p2 == nil:
		return nil, fmt.Errorf("promotion: %w", ErrPolicyUnset)
	case p1 == nil:
		return p2, nil
	case p2 == nil:
		return p1, nil
	case p1.Name() != p2.Name():
		return nil, fmt.Errorf("promotion %s vs %s: %w", p1.Name(), p2.Name(), ErrPolicyMismatch)
	default:
		return p1, nil
	}
}

// ResolveException picks a common exception policy of two operands.
func ResolveException(e1, e2 *Exception) (*Exception, error) {
	switch {
	case e1 == nil && e2 == nil:
		return nil, fmt.Errorf("exception: %w", ErrPolicyUnset)
	case e1 == nil:
		return e2, nil
	case e2 == nil:
		return e1, nil
	case !e1.Equal(e2):
		return nil, fmt.Errorf("exception %s vs %s: %w", e1, e2, ErrPolicyMismatch)
	default:
		return e1, nil
	}
}
