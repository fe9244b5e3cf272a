package checked

import (
	"fmt"

	"github.com/sirkon/safenum/repr"
	"github.com/sirkon/safenum/tribool"
)

// Result holds either a value or failure information. It is immutable.
type Result[R repr.Number] struct {
	kind  ErrorKind
	value R
	msg   string
}

// Ok creates a successful result.
func Ok[R repr.Number](v R) Result[R] {
	return Result[R]{value: v}
}

// Fail creates a failed result. Failing with Success is a programming error.
func Fail[R repr.Number](kind ErrorKind, msg string) Result[R] {
	if kind == Success {
		panic("checked: failure cannot be of success kind")
	}

	return Result[R]{kind: kind, msg: msg}
}

// IsError tells if the result holds failure information.
func (r Result[R]) IsError() bool {
	return r.kind != Success
}

// Value returns stored value. Calling it on a failed result is a caller's
// error and yields a meaningless value.
func (r Result[R]) Value() R {
	return r.value
}

// Kind returns Success or a failure kind.
func (r Result[R]) Kind() ErrorKind {
	return r.kind
}

// Message returns failure message. Must only be called on failed results.
func (r Result[R]) Message() string {
	if !r.IsError() {
		panic("checked: message of a successful result")
	}

	return r.msg
}

func (r Result[R]) String() string {
	if r.IsError() {
		if r.msg == "" {
			return r.kind.String()
		}
		return r.kind.String() + ": " + r.msg
	}

	return fmt.Sprint(r.value)
}

// Methods below let results serve as interval endpoints. Negative overflow
// acts as a value below any other and positive overflow as a value above any
// other. Any other failure is unordered and absorbs whatever it meets.

// Ordered tells if the result has a place on the number line.
func (r Result[R]) Ordered() bool {
	return !r.IsError() || r.kind.Unbounded()
}

// Zero returns a successful zero.
func (r Result[R]) Zero() Result[R] {
	return Ok[R](0)
}

// Add returns r + o.
func (r Result[R]) Add(o Result[R]) Result[R] {
	if !r.IsError() && !o.IsError() {
		return Add(r.value, o.value)
	}

	return sumOverflows(r, o)
}

// Sub returns r - o.
func (r Result[R]) Sub(o Result[R]) Result[R] {
	if !r.IsError() && !o.IsError() {
		return Sub(r.value, o.value)
	}
	if o.IsError() {
		o = o.flip()
	}

	return sumOverflows(r, o)
}

// Mul returns r * o.
func (r Result[R]) Mul(o Result[R]) Result[R] {
	if !r.IsError() && !o.IsError() {
		return Mul(r.value, o.value)
	}
	if u, ok := unordered(r, o); ok {
		return u
	}

	switch s := r.sign() * o.sign(); {
	case s > 0:
		return Fail[R](PositiveOverflow, "multiplication overflow")
	case s < 0:
		return Fail[R](NegativeOverflow, "multiplication overflow")
	default:
		return Fail[R](RangeError, "multiplying overflow by zero is undefined")
	}
}

// Quo returns r / o.
func (r Result[R]) Quo(o Result[R]) Result[R] {
	if !r.IsError() && !o.IsError() {
		return Div(r.value, o.value)
	}
	if u, ok := unordered(r, o); ok {
		return u
	}

	if o.IsError() {
		if r.IsError() {
			return Fail[R](RangeError, "dividing overflow by overflow is undefined")
		}
		return Ok[R](0)
	}
	if o.value == 0 {
		return Fail[R](DomainError, "divide by zero")
	}

	if r.sign()*o.sign() > 0 {
		return Fail[R](PositiveOverflow, "result of division overflows")
	}
	return Fail[R](NegativeOverflow, "result of division overflows")
}

// Rem returns r % o.
func (r Result[R]) Rem(o Result[R]) Result[R] {
	if !r.IsError() && !o.IsError() {
		return Mod(r.value, o.value)
	}
	if u, ok := unordered(r, o); ok {
		return u
	}

	if r.IsError() {
		return Fail[R](RangeError, "remainder of overflow is undefined")
	}
	return r
}

// Lsh returns r << o.
func (r Result[R]) Lsh(o Result[R]) Result[R] {
	if !r.IsError() && !o.IsError() {
		return Lsh(r.value, o.value)
	}
	if u, ok := unordered(r, o); ok {
		return u
	}

	if o.IsError() {
		return shiftByOverflow[R](o)
	}
	if v := Lsh[R](0, o.value); v.IsError() {
		return v
	}
	if r.kind == NegativeOverflow {
		return Fail[R](NegativeValueShift, "shifting a negative value")
	}
	return r
}

// Rsh returns r >> o.
func (r Result[R]) Rsh(o Result[R]) Result[R] {
	if !r.IsError() && !o.IsError() {
		return Rsh(r.value, o.value)
	}
	if u, ok := unordered(r, o); ok {
		return u
	}

	if o.IsError() {
		return shiftByOverflow[R](o)
	}
	if v := Rsh[R](0, o.value); v.IsError() {
		return v
	}
	return r
}

// Neg returns -r.
func (r Result[R]) Neg() Result[R] {
	if !r.IsError() {
		return Neg(r.value)
	}

	return r.flip()
}

// Less compares results. Unordered failures make the answer indeterminate,
// as well as comparing overflows of the same direction.
func (r Result[R]) Less(o Result[R]) tribool.Value {
	if !r.IsError() && !o.IsError() {
		return tribool.Of(r.value < o.value)
	}
	if !r.Ordered() || !o.Ordered() {
		return tribool.Indeterminate
	}
	if r.IsError() && o.IsError() && r.kind == o.kind {
		return tribool.Indeterminate
	}

	switch {
	case r.kind == NegativeOverflow:
		return tribool.True
	case r.kind == PositiveOverflow:
		return tribool.False
	default:
		return tribool.Of(o.kind == PositiveOverflow)
	}
}

// Equal checks structural equality. Messages are not compared.
func (r Result[R]) Equal(o Result[R]) bool {
	if r.kind != o.kind {
		return false
	}

	return r.IsError() || r.value == o.value
}

func (r Result[R]) sign() int {
	switch {
	case r.kind == PositiveOverflow:
		return 1
	case r.kind == NegativeOverflow:
		return -1
	case r.value > 0:
		return 1
	case r.value < 0:
		return -1
	default:
		return 0
	}
}

func (r Result[R]) flip() Result[R] {
	switch r.kind {
	case PositiveOverflow:
		return Result[R]{kind: NegativeOverflow, msg: r.msg}
	case NegativeOverflow:
		return Result[R]{kind: PositiveOverflow, msg: r.msg}
	default:
		return r
	}
}

func unordered[R repr.Number](r, o Result[R]) (Result[R], bool) {
	if !r.Ordered() {
		return r, true
	}
	if !o.Ordered() {
		return o, true
	}

	return Result[R]{}, false
}

func sumOverflows[R repr.Number](r, o Result[R]) Result[R] {
	if u, ok := unordered(r, o); ok {
		return u
	}

	switch {
	case r.IsError() && o.IsError() && r.kind != o.kind:
		return Fail[R](RangeError, "sum of opposite overflows is undefined")
	case r.IsError():
		return r
	default:
		return o
	}
}

func shiftByOverflow[R repr.Number](o Result[R]) Result[R] {
	if o.kind == NegativeOverflow {
		return Fail[R](NegativeShift, "shifting negative amount")
	}

	return Fail[R](ShiftTooLarge, "shifting more bits than available")
}
