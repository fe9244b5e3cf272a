package checked

import (
	"math"

	"github.com/sirkon/safenum/repr"
)

// Cast converts v into R reporting any change of value.
func Cast[R, S repr.Number](v S) Result[R] {
	rk, sk := repr.KindOf[R](), repr.KindOf[S]()
	switch {
	case sk.IsFloat():
		return castFloat[R](rk, float64(v))
	case rk.IsFloat():
		r := R(v)
		if sk.Signed() {
			f := float64(r)
			if f >= 0x1p63 || int64(f) != int64(v) {
				return Fail[R](PrecisionOverflow, "value cannot be represented exactly")
			}
			return Ok(r)
		}
		f := float64(r)
		if f >= 0x1p64 || uint64(f) != uint64(v) {
			return Fail[R](PrecisionOverflow, "value cannot be represented exactly")
		}
		return Ok(r)
	default:
		return CastBits[R](uint64(v), sk)
	}
}

// CastBits converts an integer pattern of the given kind into R.
func CastBits[R repr.Number](b uint64, from repr.Kind) Result[R] {
	rk := repr.KindOf[R]()
	if rk.IsFloat() {
		if from.Negative(b) {
			return Cast[R](int64(b))
		}
		return Cast[R](b)
	}

	if !rk.Fits(b, from) {
		if from.Negative(b) {
			return Fail[R](NegativeOverflow, "converted negative value too small")
		}
		return Fail[R](PositiveOverflow, "converted value too large")
	}

	if from.Negative(b) {
		return Ok(R(int64(b)))
	}
	return Ok(R(b))
}

func castFloat[R repr.Number](rk repr.Kind, f float64) Result[R] {
	if math.IsNaN(f) {
		return Fail[R](DomainError, "casting not a number")
	}

	if rk.IsFloat() {
		limit := math.MaxFloat64
		if rk == repr.Float32 {
			limit = math.MaxFloat32
		}
		switch {
		case f > limit:
			return Fail[R](PositiveOverflow, "converted value too large")
		case f < -limit:
			return Fail[R](NegativeOverflow, "converted value too small")
		}
		return Ok(R(f))
	}

	low, high := 0.0, math.Ldexp(1, rk.Bits())
	if rk.Signed() {
		low, high = -math.Ldexp(1, rk.Bits()-1), math.Ldexp(1, rk.Bits()-1)
	}
	switch {
	case f >= high:
		return Fail[R](PositiveOverflow, "converted value too large")
	case f < low:
		return Fail[R](NegativeOverflow, "converted value too small")
	}

	r := R(f)
	if float64(r) != f {
		return Fail[R](PrecisionOverflow, "conversion loses fractional part")
	}
	return Ok(r)
}
