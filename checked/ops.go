/*
Package checked implements arithmetic operations over fixed-width
representations that report every failure instead of producing
a wrong value.
*/
package checked

import (
	"math"
	"math/bits"

	"github.com/sirkon/safenum/repr"
)

// Add returns a + b.
func Add[R repr.Number](a, b R) Result[R] {
	k := repr.KindOf[R]()
	switch {
	case k.IsFloat():
		return floatResult(a + b)
	case k.Signed():
		x, y := int64(a), int64(b)
		s := x + y
		if y > 0 && s < x {
			return Fail[R](PositiveOverflow, "addition result too large")
		}
		if y < 0 && s > x {
			return Fail[R](NegativeOverflow, "addition result too small")
		}
		return fitInt[R](k, s, "addition result too large", "addition result too small")
	default:
		s, carry := bits.Add64(uint64(a), uint64(b), 0)
		if carry != 0 {
			return Fail[R](PositiveOverflow, "addition result too large")
		}
		return fitUint[R](k, s, "addition result too large")
	}
}

// Sub returns a - b.
func Sub[R repr.Number](a, b R) Result[R] {
	k := repr.KindOf[R]()
	switch {
	case k.IsFloat():
		return floatResult(a - b)
	case k.Signed():
		x, y := int64(a), int64(b)
		s := x - y
		if y < 0 && s < x {
			return Fail[R](PositiveOverflow, "subtraction result too large")
		}
		if y > 0 && s > x {
			return Fail[R](NegativeOverflow, "subtraction result too small")
		}
		return fitInt[R](k, s, "subtraction result too large", "subtraction result too small")
	default:
		s, borrow := bits.Sub64(uint64(a), uint64(b), 0)
		if borrow != 0 {
			return Fail[R](NegativeOverflow, "subtraction result cannot be negative")
		}
		return Ok(R(s))
	}
}

// Mul returns a * b.
func Mul[R repr.Number](a, b R) Result[R] {
	k := repr.KindOf[R]()
	switch {
	case k.IsFloat():
		return floatResult(a * b)
	case k.Signed():
		x, y := int64(a), int64(b)
		if (x > 0 && y > 0 && x > math.MaxInt64/y) ||
			(x < 0 && y < 0 && y < math.MaxInt64/x) {
			return Fail[R](PositiveOverflow, "multiplication overflow")
		}
		if (x > 0 && y < 0 && y < math.MinInt64/x) ||
			(x < 0 && y > 0 && x < math.MinInt64/y) {
			return Fail[R](NegativeOverflow, "multiplication overflow")
		}
		return fitInt[R](k, x*y, "multiplication overflow", "multiplication overflow")
	default:
		hi, lo := bits.Mul64(uint64(a), uint64(b))
		if hi != 0 {
			return Fail[R](PositiveOverflow, "multiplication overflow")
		}
		return fitUint[R](k, lo, "multiplication overflow")
	}
}

// Div returns a / b.
func Div[R repr.Number](a, b R) Result[R] {
	if b == 0 {
		return Fail[R](DomainError, "divide by zero")
	}

	k := repr.KindOf[R]()
	switch {
	case k.IsFloat():
		return floatResult(a / b)
	case k.Signed():
		x, y := int64(a), int64(b)
		if x == math.MinInt64 && y == -1 {
			return Fail[R](PositiveOverflow, "result of division overflows")
		}
		return fitInt[R](k, x/y, "result of division overflows", "result of division overflows")
	default:
		return Ok(a / b)
	}
}

// Mod returns a % b. The sign of a non-zero remainder follows the dividend.
func Mod[R repr.Number](a, b R) Result[R] {
	if b == 0 {
		return Fail[R](DomainError, "denominator is zero")
	}

	k := repr.KindOf[R]()
	switch {
	case k.IsFloat():
		return floatResult(R(math.Mod(float64(a), float64(b))))
	case k.Signed():
		x, y := int64(a), int64(b)
		if y == -1 {
			return Ok[R](0)
		}
		return Ok(R(x % y))
	default:
		return Ok(R(uint64(a) % uint64(b)))
	}
}

// Neg returns -a.
func Neg[R repr.Number](a R) Result[R] {
	return Sub[R](0, a)
}

// Lsh returns a << s.
func Lsh[R repr.Number](a, s R) Result[R] {
	k, n, failed := shiftAmount(s)
	if failed.IsError() {
		return failed
	}

	if k.Negative(uint64(a)) {
		return Fail[R](NegativeValueShift, "shifting a negative value")
	}
	x := uint64(a)
	if x > k.MaxUint64()>>n {
		return Fail[R](PositiveOverflow, "shifting left more bits than available")
	}

	return Ok(R(x << n))
}

// Rsh returns a >> s. Negative values are shifted arithmetically.
func Rsh[R repr.Number](a, s R) Result[R] {
	k, n, failed := shiftAmount(s)
	if failed.IsError() {
		return failed
	}

	if k.Signed() {
		return Ok(R(int64(a) >> n))
	}
	return Ok(R(uint64(a) >> n))
}

func shiftAmount[R repr.Number](s R) (repr.Kind, uint, Result[R]) {
	k := repr.KindOf[R]()
	if k.IsFloat() {
		return k, 0, Fail[R](DomainError, "shifting a floating point value")
	}
	if s < 0 {
		return k, 0, Fail[R](NegativeShift, "shifting negative amount")
	}
	if uint64(s) >= uint64(k.Bits()) {
		return k, 0, Fail[R](ShiftTooLarge, "shifting more bits than available")
	}

	return k, uint(s), Result[R]{}
}

func fitInt[R repr.Number](k repr.Kind, v int64, above, below string) Result[R] {
	if v > k.MaxInt64() {
		return Fail[R](PositiveOverflow, above)
	}
	if v < k.MinInt64() {
		return Fail[R](NegativeOverflow, below)
	}

	return Ok(R(v))
}

func fitUint[R repr.Number](k repr.Kind, v uint64, above string) Result[R] {
	if v > k.MaxUint64() {
		return Fail[R](PositiveOverflow, above)
	}

	return Ok(R(v))
}

func floatResult[R repr.Number](v R) Result[R] {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return Fail[R](DomainError, "result is not a number")
	case math.IsInf(f, 1):
		return Fail[R](PositiveOverflow, "result too large")
	case math.IsInf(f, -1):
		return Fail[R](NegativeOverflow, "result too small")
	default:
		return Ok(v)
	}
}
