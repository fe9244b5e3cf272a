package safenum

import (
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/sirkon/safenum/checked"
	"github.com/sirkon/safenum/interval"
	"github.com/sirkon/safenum/policy"
	"github.com/sirkon/safenum/repr"
)

// derivation is a result range and failure kinds an operation may produce.
type derivation struct {
	low   uint64
	high  uint64
	kinds []checked.ErrorKind
}

// engine computes operations in a fixed result representation.
type engine interface {
	derive(op policy.Op, t, u *Type) derivation
	raw(op policy.Op, x, y Value) uint64
	exec(op policy.Op, x, y Value, exc *policy.Exception) (uint64, error)
}

var engines = map[repr.Kind]engine{
	repr.Int8:   typedEngine[int8]{},
	repr.Int16:  typedEngine[int16]{},
	repr.Int32:  typedEngine[int32]{},
	repr.Int64:  typedEngine[int64]{},
	repr.Uint8:  typedEngine[uint8]{},
	repr.Uint16: typedEngine[uint16]{},
	repr.Uint32: typedEngine[uint32]{},
	repr.Uint64: typedEngine[uint64]{},
}

type typedEngine[R repr.Integer] struct{}

type bounds[R repr.Integer] = interval.Interval[checked.Result[R]]

// rangeOf returns the range of t expressed in R. Endpoints are failures when
// they are out of R.
func (typedEngine[R]) rangeOf(t *Type) bounds[R] {
	return interval.New(
		checked.CastBits[R](t.min, t.kind),
		checked.CastBits[R](t.max, t.kind),
	)
}

func (e typedEngine[R]) derive(op policy.Op, t, u *Type) derivation {
	ti, ui := e.rangeOf(t), e.rangeOf(u)

	var kinds []checked.ErrorKind
	note := func(kind checked.ErrorKind) {
		if !slices.Contains(kinds, kind) {
			kinds = append(kinds, kind)
		}
	}
	noteResults := func(rs ...checked.Result[R]) {
		for _, r := range rs {
			if r.IsError() {
				note(r.Kind())
			}
		}
	}

	// Operands not fitting R fail on conversion.
	noteResults(ti.Low, ti.High, ui.Low, ui.High)

	if op.Bitwise() {
		return e.bitwise(op, ti, ui, kinds)
	}

	zero := checked.Ok[R](0)
	var ri bounds[R]
	switch op {
	case policy.Add:
		ri = ti.Add(ui)
	case policy.Sub:
		ri = ti.Sub(ui)
	case policy.Mul:
		ri = ti.Mul(ui)
	case policy.Div, policy.Mod:
		if !ui.Excludes(zero).IsTrue() {
			note(checked.DomainError)
		}
		ri = e.divide(op, ti, ui)
	case policy.Lsh, policy.Rsh:
		width := checked.Ok(R(repr.KindOf[R]().Bits()))
		if !ui.Low.Less(zero).IsFalse() {
			note(checked.NegativeShift)
		}
		if !ui.High.Less(width).IsTrue() {
			note(checked.ShiftTooLarge)
		}
		if op == policy.Lsh {
			if !ti.Low.Less(zero).IsFalse() {
				note(checked.NegativeValueShift)
			}
			ri = ti.Lsh(ui)
		} else {
			ri = ti.Rsh(ui)
		}
	default:
		panic(fmt.Errorf("derive %s: unsupported operator", op))
	}
	noteResults(ri.Low, ri.High)

	low, high := repr.BitsOf(repr.Min[R]()), repr.BitsOf(repr.Max[R]())
	if !ri.Low.IsError() {
		low = repr.BitsOf(ri.Low.Value())
	}
	if !ri.High.IsError() {
		high = repr.BitsOf(ri.High.Value())
	}

	return derivation{
		low:   low,
		high:  high,
		kinds: kinds,
	}
}

// divide computes quotient or remainder ranges. A divisor range holding zero
// is split into its negative and positive parts, so that ±1 bound the
// magnitudes of quotients.
func (typedEngine[R]) divide(op policy.Op, ti, ui bounds[R]) bounds[R] {
	apply := func(d bounds[R]) bounds[R] {
		if op == policy.Div {
			return ti.Quo(d)
		}
		return ti.Rem(d)
	}

	zero, one := checked.Ok[R](0), checked.Ok[R](1)
	if ui.Excludes(zero).IsTrue() {
		return apply(ui)
	}

	var parts []bounds[R]
	if ui.Low.Less(zero).IsTrue() {
		parts = append(parts, interval.New(ui.Low, zero.Sub(one)))
	}
	if zero.Less(ui.High).IsTrue() {
		parts = append(parts, interval.New(one, ui.High))
	}
	if len(parts) == 0 {
		// The divisor is always zero, ignored failures give zero.
		return interval.Of[R](0, 0)
	}

	res := apply(parts[0])
	for _, p := range parts[1:] {
		res = res.Union(apply(p))
	}

	return res
}

// bitwise derives or, and and xor. They never fail on their own. Ranges of
// non-negative operands are bounded by rounding up to all ones.
func (typedEngine[R]) bitwise(op policy.Op, ti, ui bounds[R], kinds []checked.ErrorKind) derivation {
	k := repr.KindOf[R]()
	d := derivation{
		low:   k.Lowest(),
		high:  k.Highest(),
		kinds: kinds,
	}

	zero := checked.Ok[R](0)
	if len(kinds) > 0 || !ti.Low.Less(zero).IsFalse() || !ui.Low.Less(zero).IsFalse() {
		return d
	}

	m := max(ti.High.Value(), ui.High.Value())
	if op == policy.And {
		m = min(ti.High.Value(), ui.High.Value())
	}
	d.low, d.high = 0, roundOut(uint64(m))

	return d
}

// roundOut returns the lowest all-ones pattern not below v.
func roundOut(v uint64) uint64 {
	n := bits.Len64(v)
	if n == 64 {
		return math.MaxUint64
	}

	return 1<<n - 1
}

func (typedEngine[R]) raw(op policy.Op, x, y Value) uint64 {
	return repr.BitsOf(native(op, repr.FromBits[R](x.bits), repr.FromBits[R](y.bits)))
}

func (typedEngine[R]) exec(op policy.Op, x, y Value, exc *policy.Exception) (uint64, error) {
	a, err := operand[R](x, exc)
	if err != nil {
		return 0, err
	}
	c, err := operand[R](y, exc)
	if err != nil {
		return 0, err
	}

	var r checked.Result[R]
	switch op {
	case policy.Add:
		r = checked.Add(a, c)
	case policy.Sub:
		r = checked.Sub(a, c)
	case policy.Mul:
		r = checked.Mul(a, c)
	case policy.Div:
		r = checked.Div(a, c)
	case policy.Mod:
		r = checked.Mod(a, c)
	case policy.Lsh:
		r = checked.Lsh(a, c)
	case policy.Rsh:
		r = checked.Rsh(a, c)
	default:
		r = checked.Ok(native(op, a, c))
	}

	if r.IsError() {
		if err := exc.Dispatch(r.Kind(), r.Message()); err != nil {
			return 0, err
		}
		return repr.BitsOf(native(op, a, c)), nil
	}

	return repr.BitsOf(r.Value()), nil
}

// operand converts an operand into R.
func operand[R repr.Integer](v Value, exc *policy.Exception) (R, error) {
	r := checked.CastBits[R](v.bits, v.t.kind)
	if !r.IsError() {
		return r.Value(), nil
	}

	if err := exc.Dispatch(r.Kind(), r.Message()); err != nil {
		return 0, err
	}

	return repr.FromBits[R](v.bits), nil
}

// native computes an operator as Go does. Division by zero gives zero and
// shift amounts are treated as unsigned.
func native[R repr.Integer](op policy.Op, a, c R) R {
	switch op {
	case policy.Add:
		return a + c
	case policy.Sub:
		return a - c
	case policy.Mul:
		return a * c
	case policy.Div:
		if c == 0 {
			return 0
		}
		return a / c
	case policy.Mod:
		if c == 0 {
			return 0
		}
		return a % c
	case policy.Lsh:
		return a << uint64(c)
	case policy.Rsh:
		return a >> uint64(c)
	case policy.Or:
		return a | c
	case policy.And:
		return a & c
	case policy.Xor:
		return a ^ c
	default:
		panic(fmt.Errorf("native %s: unsupported operator", op))
	}
}
