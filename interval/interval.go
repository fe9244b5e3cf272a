// Package interval implements closed interval arithmetic used to propagate
// statically known value ranges through operations.
//
// Intervals are generic over their endpoint type. With checked.Result
// endpoints a bound may itself be a failure: the image of a type limit
// under a cast or an operation may not be representable.
package interval

import (
	"fmt"

	"github.com/sirkon/safenum/checked"
	"github.com/sirkon/safenum/repr"
	"github.com/sirkon/safenum/tribool"
)

// Endpoint is a set of operations an interval bound must support.
type Endpoint[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Quo(T) T
	Rem(T) T
	Lsh(T) T
	Rsh(T) T
	Neg() T
	Zero() T

	// Less returns indeterminate when the order cannot be decided.
	Less(T) tribool.Value
	// Ordered tells if the bound has a place on the number line.
	Ordered() bool
	Equal(T) bool
}

// Interval is a closed range [Low, High]. Low <= High is the caller's responsibility.
type Interval[T Endpoint[T]] struct {
	Low  T
	High T
}

// New creates an interval.
func New[T Endpoint[T]](low, high T) Interval[T] {
	return Interval[T]{Low: low, High: high}
}

// Of creates an interval of successful checked results.
func Of[R repr.Number](low, high R) Interval[checked.Result[R]] {
	return New(checked.Ok(low), checked.Ok(high))
}

// Full returns the whole range of R.
func Full[R repr.Number]() Interval[checked.Result[R]] {
	return Of(repr.Min[R](), repr.Max[R]())
}

// MinMax returns the convex hull of the given points. An unordered point
// makes both bounds that point.
func MinMax[T Endpoint[T]](first T, rest ...T) Interval[T] {
	if !first.Ordered() {
		return New(first, first)
	}

	low, high := first, first
	for _, v := range rest {
		if !v.Ordered() {
			return New(v, v)
		}
		if v.Less(low).IsTrue() {
			low = v
		}
		if high.Less(v).IsTrue() {
			high = v
		}
	}

	return New(low, high)
}

// Includes tells if the point belongs to the interval.
func (i Interval[T]) Includes(v T) tribool.Value {
	return lessEqual(i.Low, v).And(lessEqual(v, i.High))
}

// IncludesInterval tells if o is a subset of the interval.
func (i Interval[T]) IncludesInterval(o Interval[T]) tribool.Value {
	return lessEqual(o.High, i.High).And(lessEqual(i.Low, o.Low))
}

// Excludes tells if the point lies outside the interval.
func (i Interval[T]) Excludes(v T) tribool.Value {
	return v.Less(i.Low).Or(i.High.Less(v))
}

// ExcludesInterval tells if intervals have no common points.
func (i Interval[T]) ExcludesInterval(o Interval[T]) tribool.Value {
	return o.High.Less(i.Low).Or(i.High.Less(o.Low))
}

// Intersects is a complement of ExcludesInterval.
func (i Interval[T]) Intersects(o Interval[T]) tribool.Value {
	return i.ExcludesInterval(o).Not()
}

// Empty tells if the interval holds no points, i.e. Low > High.
func (i Interval[T]) Empty() tribool.Value {
	return i.High.Less(i.Low)
}

// Add returns the range of sums.
func (i Interval[T]) Add(o Interval[T]) Interval[T] {
	return New(i.Low.Add(o.Low), i.High.Add(o.High))
}

// Sub returns the range of differences.
func (i Interval[T]) Sub(o Interval[T]) Interval[T] {
	return New(i.Low.Sub(o.High), i.High.Sub(o.Low))
}

// Mul returns the range of products.
func (i Interval[T]) Mul(o Interval[T]) Interval[T] {
	return MinMax(i.Low.Mul(o.Low), i.Low.Mul(o.High), i.High.Mul(o.Low), i.High.Mul(o.High))
}

// Quo returns the range of quotients. The divisor must exclude zero.
func (i Interval[T]) Quo(o Interval[T]) Interval[T] {
	o.mustExcludeZero("division")
	return MinMax(i.Low.Quo(o.Low), i.Low.Quo(o.High), i.High.Quo(o.Low), i.High.Quo(o.High))
}

// Rem returns the range of remainders. The divisor must exclude zero.
//
// Remainders are not monotonic in the dividend, so the corners do not bound
// them: [0,10] % [7,7] holds 6 while both corners give 0 and 3. The range is
// derived from |a % b| <= min(|a|, |b|) with the sign of the dividend instead.
func (i Interval[T]) Rem(o Interval[T]) Interval[T] {
	o.mustExcludeZero("modulus")

	zero := i.Low.Zero()
	m := maxOf(abs(o.Low), abs(o.High))
	if !m.Ordered() {
		return New(m, m)
	}

	low, high := zero, zero
	if i.Low.Less(zero).IsTrue() {
		low = maxOf(i.Low, m.Neg())
	}
	if zero.Less(i.High).IsTrue() {
		high = minOf(i.High, m)
	}

	return New(low, high)
}

// Lsh returns the range of left shifts.
func (i Interval[T]) Lsh(o Interval[T]) Interval[T] {
	return MinMax(i.Low.Lsh(o.Low), i.Low.Lsh(o.High), i.High.Lsh(o.Low), i.High.Lsh(o.High))
}

// Rsh returns the range of right shifts.
func (i Interval[T]) Rsh(o Interval[T]) Interval[T] {
	return MinMax(i.Low.Rsh(o.Low), i.Low.Rsh(o.High), i.High.Rsh(o.Low), i.High.Rsh(o.High))
}

// Union returns the smallest interval holding both intervals.
func (i Interval[T]) Union(o Interval[T]) Interval[T] {
	return New(minOf(i.Low, o.Low), maxOf(i.High, o.High))
}

// Intersect returns the common part. It is Empty when intervals do not intersect.
func (i Interval[T]) Intersect(o Interval[T]) Interval[T] {
	return New(maxOf(i.Low, o.Low), minOf(i.High, o.High))
}

// Less is true if every point of i is below every point of o and false if every point is above.
func (i Interval[T]) Less(o Interval[T]) tribool.Value {
	if i.High.Less(o.Low).IsTrue() {
		return tribool.True
	}
	if o.High.Less(i.Low).IsTrue() {
		return tribool.False
	}

	return tribool.Indeterminate
}

// Greater is a mirror of Less.
func (i Interval[T]) Greater(o Interval[T]) tribool.Value {
	return o.Less(i)
}

// LessEqual is a negation of Greater.
func (i Interval[T]) LessEqual(o Interval[T]) tribool.Value {
	return i.Greater(o).Not()
}

// GreaterEqual is a negation of Less.
func (i Interval[T]) GreaterEqual(o Interval[T]) tribool.Value {
	return i.Less(o).Not()
}

// Equal compares bounds, this is not an overlap test.
func (i Interval[T]) Equal(o Interval[T]) bool {
	return i.Low.Equal(o.Low) && i.High.Equal(o.High)
}

func (i Interval[T]) String() string {
	return fmt.Sprintf("[%v,%v]", i.Low, i.High)
}

func (i Interval[T]) mustExcludeZero(what string) {
	if !i.Excludes(i.Low.Zero()).IsTrue() {
		panic(fmt.Sprintf("interval: %s by interval %v which may include zero", what, i))
	}
}

func lessEqual[T Endpoint[T]](a, b T) tribool.Value {
	return b.Less(a).Not()
}

func minOf[T Endpoint[T]](a, b T) T {
	if b.Less(a).IsTrue() {
		return b
	}

	return a
}

func maxOf[T Endpoint[T]](a, b T) T {
	if a.Less(b).IsTrue() {
		return b
	}

	return a
}

func abs[T Endpoint[T]](v T) T {
	if v.Less(v.Zero()).IsTrue() {
		return v.Neg()
	}

	return v
}
