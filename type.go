package safenum

import (
	"errors"
	"fmt"

	"github.com/sirkon/safenum/checked"
	"github.com/sirkon/safenum/policy"
	"github.com/sirkon/safenum/repr"
)

var (
	// ErrDisjoint means a source range never intersects a target range, so no
	// value can pass the conversion.
	ErrDisjoint = errors.New("can't cast from ranges that don't overlap")

	// ErrUninitialized is matched by operations on zero Value.
	ErrUninitialized = errors.New("safe values must be initialized")
)

// Type is a safe integer type: a representation, an allowed range of values
// and a pair of policies. Types are interned, structurally equal types are
// the same pointer.
type Type struct {
	id    uint64
	kind  repr.Kind
	min   uint64
	max   uint64
	promo policy.Promotion
	exc   *policy.Exception
}

// Declare declares a safe type over R allowing values in [min, max].
// Both policies may be nil: such a type defers to policies of the other
// operand in binary operations.
func Declare[R repr.Integer](min, max R, p policy.Promotion, e *policy.Exception) *Type {
	if min > max {
		panic(fmt.Errorf("declare safe %s: invalid range [%v,%v]", repr.KindOf[R](), min, max))
	}

	return intern(&Type{
		kind:  repr.KindOf[R](),
		min:   repr.BitsOf(min),
		max:   repr.BitsOf(max),
		promo: p,
		exc:   e,
	})
}

// DeclareKind is the untyped version of Declare. Bounds are 64 bit patterns
// of kind k.
func DeclareKind(k repr.Kind, min, max uint64, p policy.Promotion, e *policy.Exception) (*Type, error) {
	if !k.IsInteger() {
		return nil, fmt.Errorf("declare safe %s: integer representation required", k)
	}
	if k.Normalize(min) != min || k.Normalize(max) != max {
		return nil, fmt.Errorf("declare safe %s: bounds out of the representation", k)
	}
	if repr.Compare(min, k, max, k) > 0 {
		return nil, fmt.Errorf("declare safe %s: invalid range [%s,%s]", k, k.Format(min), k.Format(max))
	}

	return intern(&Type{
		kind:  k,
		min:   min,
		max:   max,
		promo: p,
		exc:   e,
	}), nil
}

// Full declares a type allowing every value of R.
func Full[R repr.Integer](p policy.Promotion, e *policy.Exception) *Type {
	return Declare(repr.Min[R](), repr.Max[R](), p, e)
}

// Native is the full type over R with Go promotion and default exceptions.
func Native[R repr.Integer]() *Type {
	return Full[R](policy.Native, policy.Default)
}

// Literal returns a value of the single point type [v, v] with no policies,
// so that it takes policies of whatever it is combined with.
func Literal[R repr.Integer](v R) Value {
	return Value{
		t:    Declare(v, v, nil, nil),
		bits: repr.BitsOf(v),
	}
}

// Kind returns the representation.
func (t *Type) Kind() repr.Kind {
	return t.kind
}

// Promotion returns the promotion policy, nil if unset.
func (t *Type) Promotion() policy.Promotion {
	return t.promo
}

// Exception returns the exception policy, nil if unset.
func (t *Type) Exception() *policy.Exception {
	return t.exc
}

// Min returns the lowest allowed value.
func (t *Type) Min() Value {
	return Value{t: t, bits: t.min}
}

// Max returns the highest allowed value.
func (t *Type) Max() Value {
	return Value{t: t, bits: t.max}
}

// Bounds returns 64 bit patterns of the lowest and the highest allowed
// values in the type's kind.
func (t *Type) Bounds() (min, max uint64) {
	return t.min, t.max
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s[%s,%s]", t.kind, t.kind.Format(t.min), t.kind.Format(t.max))
}

// Default returns the default value of the type: zero if allowed, the lowest
// value otherwise. The uninitialized_value failure is dispatched first, so
// policies raising or trapping on it make default construction an error.
func (t *Type) Default() (Value, error) {
	if t == nil {
		return Value{}, errUninitialized("default")
	}

	if err := t.exc.Dispatch(checked.UninitializedValue, ErrUninitialized.Error()); err != nil {
		return Value{}, fmt.Errorf("default %s: %w", t, err)
	}

	if t.includes(0, repr.Uint64) {
		return Value{t: t, bits: 0}, nil
	}

	return Value{t: t, bits: t.min}, nil
}

// Make validates v against the type.
func Make[R repr.Integer](t *Type, v R) (Value, error) {
	k := repr.KindOf[R]()
	return t.validate(repr.BitsOf(v), k, k.Lowest(), k.Highest())
}

// MustMake is like Make but panics on failure.
func MustMake[R repr.Integer](t *Type, v R) Value {
	res, err := Make(t, v)
	if err != nil {
		panic(err)
	}

	return res
}

// From converts another safe value into the type. The source type range is
// used to skip checks which cannot fail.
func (t *Type) From(v Value) (Value, error) {
	if v.t == nil {
		return Value{}, errUninitialized("convert")
	}

	return t.validate(v.bits, v.t.kind, v.t.min, v.t.max)
}

// validate implements value admission. b is a pattern of kind bk, [lo, hi]
// is the statically known range of the source.
func (t *Type) validate(b uint64, bk repr.Kind, lo, hi uint64) (Value, error) {
	if t == nil {
		return Value{}, errUninitialized("make")
	}

	switch {
	case t.includes(lo, bk) && t.includes(hi, bk):
		return Value{t: t, bits: b}, nil
	case repr.Compare(hi, bk, t.min, t.kind) < 0 || repr.Compare(lo, bk, t.max, t.kind) > 0:
		return Value{}, fmt.Errorf(
			"%s[%s,%s] into %s: %w",
			bk, bk.Format(lo), bk.Format(hi), t, ErrDisjoint,
		)
	}

	kind := checked.Success
	switch {
	case repr.Compare(b, bk, t.min, t.kind) < 0:
		kind = checked.NegativeOverflow
	case repr.Compare(b, bk, t.max, t.kind) > 0:
		kind = checked.PositiveOverflow
	}
	if kind == checked.Success {
		return Value{t: t, bits: b}, nil
	}

	msg := fmt.Sprintf("value %s out of range for %s", bk.Format(b), t)
	if err := t.exc.Dispatch(kind, msg); err != nil {
		return Value{}, err
	}

	// Ignored: the value keeps its native conversion into the representation.
	return Value{t: t, bits: t.kind.Normalize(b)}, nil
}

// includes checks if the pattern b of kind bk is within the type range.
func (t *Type) includes(b uint64, bk repr.Kind) bool {
	return repr.Compare(b, bk, t.min, t.kind) >= 0 && repr.Compare(b, bk, t.max, t.kind) <= 0
}

// Parse reads a decimal value of the type.
func (t *Type) Parse(s string) (Value, error) {
	if t == nil {
		return Value{}, errUninitialized("parse")
	}

	b, k, err := t.parse(s)
	if err != nil {
		return Value{}, err
	}

	return t.validate(b, k, k.Lowest(), k.Highest())
}

func errUninitialized(op string) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUninitialized, &policy.Error{
		Kind:     checked.UninitializedValue,
		Category: policy.UninitializedValue,
		Action:   policy.Raise,
	})
}
