package safenum

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirkon/safenum/checked"
	"github.com/sirkon/safenum/policy"
	"github.com/sirkon/safenum/repr"
	"github.com/sirkon/safenum/tribool"
)

var ignoreAll = &policy.Exception{
	ArithmeticError:               policy.Ignore,
	ImplementationDefinedBehavior: policy.Ignore,
	UndefinedBehavior:             policy.Ignore,
	UninitializedValue:            policy.Ignore,
}

func requireKind(t *testing.T, err error, kind checked.ErrorKind) {
	t.Helper()

	var perr *policy.Error
	require.ErrorAs(t, err, &perr)
	require.Equal(t, kind, perr.Kind)
}

func TestOverflowRaisesOrWraps(t *testing.T) {
	raising := Full[int8](policy.Native, policy.StrictException)
	x := MustMake(raising, int8(127))
	y := MustMake(raising, int8(2))

	_, err := x.Add(y)
	require.ErrorIs(t, err, policy.ErrRaised)
	requireKind(t, err, checked.PositiveOverflow)

	ignoring := Full[int8](policy.Native, ignoreAll)
	r, err := MustMake(ignoring, int8(127)).Add(MustMake(ignoring, int8(2)))
	require.NoError(t, err)
	got, err := Convert[int8](r)
	require.NoError(t, err)
	require.Equal(t, int8(-127), got)
}

func TestDivisorStraddlingZero(t *testing.T) {
	dividend := Declare[uint8](0, 200, policy.Integral, policy.StrictException)
	divisor := Declare[int8](-5, 5, policy.Integral, policy.StrictException)

	b, err := Bind(policy.Div, dividend, divisor)
	require.NoError(t, err)
	require.True(t, b.ExceptionPossible())
	require.Contains(t, b.Reasons(), checked.DomainError)

	q, err := b.Apply(MustMake(dividend, uint8(100)), MustMake(divisor, int8(3)))
	require.NoError(t, err)
	require.Equal(t, "33", q.String())

	q, err = b.Apply(MustMake(dividend, uint8(100)), MustMake(divisor, int8(-5)))
	require.NoError(t, err)
	require.Equal(t, "-20", q.String())

	_, err = b.Apply(MustMake(dividend, uint8(100)), MustMake(divisor, int8(0)))
	require.ErrorIs(t, err, policy.ErrRaised)
	requireKind(t, err, checked.DomainError)
}

func TestResultRange(t *testing.T) {
	small := Declare[uint8](0, 10, policy.Native, policy.StrictException)
	b := MustBind(policy.Add, small, small)
	require.False(t, b.ExceptionPossible())
	require.Equal(t, "uint8[0,20]", b.Result().String())

	r, err := MustMake(small, uint8(10)).Add(MustMake(small, uint8(7)))
	require.NoError(t, err)
	require.Equal(t, b.Result(), r.Type())
	require.Equal(t, "17", r.String())

	big := Declare[uint8](0, 200, policy.Native, policy.StrictException)
	b = MustBind(policy.Add, big, big)
	require.True(t, b.ExceptionPossible())
	require.Equal(t, "uint8[0,255]", b.Result().String())
}

func TestTypeInterning(t *testing.T) {
	a := Declare[int16](-5, 5, policy.Native, policy.StrictException)
	b := Declare[int16](-5, 5, policy.Native, &policy.Exception{
		ArithmeticError:               policy.Raise,
		ImplementationDefinedBehavior: policy.Raise,
		UndefinedBehavior:             policy.Raise,
		UninitializedValue:            policy.Ignore,
	})
	require.Same(t, a, b)

	c := Declare[int16](-5, 5, policy.Widest, policy.StrictException)
	require.NotSame(t, a, c)

	k, err := DeclareKind(repr.Int16, repr.BitsOf(int16(-5)), 5, policy.Native, policy.StrictException)
	require.NoError(t, err)
	require.Same(t, a, k)

	_, err = DeclareKind(repr.Int16, 5, repr.BitsOf(int16(-5)), nil, nil)
	require.Error(t, err)
	_, err = DeclareKind(repr.Float64, 0, 1, nil, nil)
	require.Error(t, err)
	require.Panics(t, func() { Declare[uint8](10, 1, nil, nil) })
}

func TestMake(t *testing.T) {
	percent := Declare[int16](0, 100, policy.Native, policy.StrictException)

	v, err := Make(percent, int16(42))
	require.NoError(t, err)
	require.Equal(t, "42", v.String())

	_, err = Make(percent, int16(101))
	require.ErrorIs(t, err, policy.ErrRaised)
	requireKind(t, err, checked.PositiveOverflow)

	_, err = Make(percent, int64(-1))
	requireKind(t, err, checked.NegativeOverflow)

	v, err = Make(percent, uint8(7))
	require.NoError(t, err)
	require.Equal(t, "7", v.String())

	negative := Declare[int8](-10, -1, policy.Native, policy.StrictException)
	_, err = Make(negative, uint8(3))
	require.ErrorIs(t, err, ErrDisjoint)

	loose := Declare[int16](0, 100, policy.Native, ignoreAll)
	v, err = Make(loose, int32(70000))
	require.NoError(t, err)
	require.Equal(t, fmt.Sprint(int16(int32(70000)&0xffff)), v.String())
}

func TestConvert(t *testing.T) {
	small := Declare[int64](-10, 300, policy.Native, policy.StrictException)

	v := MustMake(small, int64(200))
	got, err := Convert[uint8](v)
	require.NoError(t, err)
	require.Equal(t, uint8(200), got)

	_, err = Convert[int8](v)
	requireKind(t, err, checked.PositiveOverflow)

	_, err = Convert[uint16](MustMake(small, int64(-3)))
	requireKind(t, err, checked.NegativeOverflow)

	wide, err := Convert[int16](MustMake(small, int64(-3)))
	require.NoError(t, err)
	require.Equal(t, int16(-3), wide)

	neg := Declare[int64](-10, -1, policy.Native, policy.StrictException)
	_, err = Convert[uint32](MustMake(neg, int64(-1)))
	require.ErrorIs(t, err, ErrDisjoint)

	_, err = Convert[int](Value{})
	require.ErrorIs(t, err, policy.ErrRaised)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		t    *Type
		in   int64
	}{
		{"int8 low", Native[int8](), math.MinInt8},
		{"int8 high", Native[int8](), math.MaxInt8},
		{"uint16", Native[uint16](), 65535},
		{"bounded", Declare[int32](-1000, 1000, policy.Native, policy.StrictException), -999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Make(tt.t, tt.in)
			require.NoError(t, err)
			out, err := Convert[int64](v)
			require.NoError(t, err)
			require.Equal(t, tt.in, out)

			same, err := tt.t.From(v)
			require.NoError(t, err)
			require.Equal(t, v, same)

			parsed, err := tt.t.Parse(v.String())
			require.NoError(t, err)
			require.Equal(t, v, parsed)
		})
	}
}

func TestParse(t *testing.T) {
	u := Native[uint8]()

	v, err := u.Parse(" 200 ")
	require.NoError(t, err)
	require.Equal(t, "200", v.String())

	_, err = u.Parse("256")
	requireKind(t, err, checked.PositiveOverflow)

	_, err = u.Parse("-1")
	requireKind(t, err, checked.DomainError)

	_, err = u.Parse("-0")
	require.NoError(t, err)

	_, err = u.Parse("twelve")
	require.Error(t, err)
	require.False(t, errors.Is(err, policy.ErrRaised))

	_, err = Native[int64]().Parse("-9223372036854775809")
	requireKind(t, err, checked.NegativeOverflow)

	for _, s := range []string{"+5", " +5"} {
		v, err = u.Parse(s)
		require.NoError(t, err)
		require.Equal(t, "5", v.String())
	}
	v, err = Native[int8]().Parse("+5")
	require.NoError(t, err)
	require.Equal(t, "5", v.String())

	for _, s := range []string{"++5", "+-5", "+"} {
		_, err = u.Parse(s)
		require.Error(t, err, s)
	}
}

func TestDefault(t *testing.T) {
	v, err := Declare[int8](-5, 5, policy.Native, policy.StrictException).Default()
	require.NoError(t, err)
	require.Equal(t, "0", v.String())

	v, err = Declare[int8](3, 5, policy.Native, policy.StrictException).Default()
	require.NoError(t, err)
	require.Equal(t, "3", v.String())

	_, err = Declare[int8](3, 5, policy.Native, policy.StrictTrap).Default()
	require.ErrorIs(t, err, policy.ErrTrapped)
	requireKind(t, err, checked.UninitializedValue)

	var zero Value
	require.False(t, zero.Valid())
	require.Equal(t, "<uninitialized>", zero.String())
	_, err = zero.Add(MustMake(Native[int8](), int8(1)))
	require.ErrorIs(t, err, ErrUninitialized)
}

func TestNilType(t *testing.T) {
	var nt *Type

	_, err := nt.Default()
	require.ErrorIs(t, err, ErrUninitialized)
	requireKind(t, err, checked.UninitializedValue)

	_, err = nt.Parse("1")
	require.ErrorIs(t, err, ErrUninitialized)
	requireKind(t, err, checked.UninitializedValue)
}

func TestIgnoreFallbacks(t *testing.T) {
	ignoring := Full[int8](policy.Native, ignoreAll)

	tests := []struct {
		name string
		op   policy.Op
		x, y int8
		want int8
	}{
		{name: "divide by zero", op: policy.Div, x: 7, y: 0, want: 0},
		{name: "modulo by zero", op: policy.Mod, x: 7, y: 0, want: 0},
		{name: "negative shift", op: policy.Lsh, x: 1, y: -1, want: 0},
		{name: "negative value shift", op: policy.Lsh, x: -1, y: 1, want: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Bind(tt.op, ignoring, ignoring)
			require.NoError(t, err)
			require.True(t, b.ExceptionPossible())
			require.Same(t, ignoring, b.Result())

			v, err := b.Apply(MustMake(ignoring, tt.x), MustMake(ignoring, tt.y))
			require.NoError(t, err)
			require.Same(t, ignoring, v.Type())

			got, err := Convert[int8](v)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRelational(t *testing.T) {
	low := Declare[int8](-10, 0, policy.Native, policy.StrictException)
	high := Declare[uint8](1, 10, policy.Native, policy.StrictException)

	b := MustBind(policy.Less, low, high)
	require.Equal(t, tribool.True, b.Known())
	require.Nil(t, b.Result())

	lt, err := MustMake(low, int8(-3)).Less(MustMake(high, uint8(4)))
	require.NoError(t, err)
	require.True(t, lt)

	require.Equal(t, tribool.False, MustBind(policy.Equal, low, high).Known())
	require.Equal(t, tribool.True, MustBind(policy.NotEqual, low, high).Known())

	// Mixed signs compare by value, not by representation.
	full8 := Native[int8]()
	fullU := Native[uint64]()
	require.Equal(t, tribool.Indeterminate, MustBind(policy.Less, full8, fullU).Known())

	lt, err = MustMake(full8, int8(-1)).Less(MustMake(fullU, uint64(math.MaxUint64)))
	require.NoError(t, err)
	require.True(t, lt)

	ge, err := MustMake(full8, int8(-1)).GreaterEqual(MustMake(fullU, uint64(0)))
	require.NoError(t, err)
	require.False(t, ge)

	eq, err := Literal(7).Equal(MustMake(full8, int8(7)))
	require.NoError(t, err)
	require.True(t, eq)

	_, err = MustBind(policy.Less, full8, full8).Apply(MustMake(full8, int8(1)), MustMake(full8, int8(2)))
	require.Error(t, err)
}

func TestBitwise(t *testing.T) {
	nibble := Declare[uint8](0, 15, policy.Native, policy.StrictException)

	b := MustBind(policy.Xor, nibble, nibble)
	require.False(t, b.ExceptionPossible())
	require.Equal(t, "uint8[0,15]", b.Result().String())

	r, err := MustMake(nibble, uint8(0b1010)).Xor(MustMake(nibble, uint8(0b0110)))
	require.NoError(t, err)
	require.Equal(t, "12", r.String())

	r, err = MustMake(nibble, uint8(0b1010)).And(MustMake(nibble, uint8(0b0110)))
	require.NoError(t, err)
	require.Equal(t, "2", r.String())

	r, err = MustMake(nibble, uint8(0b1010)).Or(MustMake(nibble, uint8(0b0110)))
	require.NoError(t, err)
	require.Equal(t, "14", r.String())
}

func TestShifts(t *testing.T) {
	u := Native[uint16]()
	amount := Native[uint16]()

	r, err := MustMake(u, uint16(1)).Lsh(MustMake(amount, uint16(15)))
	require.NoError(t, err)
	require.Equal(t, "32768", r.String())

	_, err = MustMake(u, uint16(1)).Lsh(MustMake(amount, uint16(16)))
	requireKind(t, err, checked.ShiftTooLarge)

	s := Native[int16]()
	_, err = MustMake(s, int16(-1)).Lsh(MustMake(s, int16(1)))
	requireKind(t, err, checked.NegativeValueShift)

	_, err = MustMake(s, int16(4)).Rsh(MustMake(s, int16(-1)))
	requireKind(t, err, checked.NegativeShift)

	r, err = MustMake(s, int16(-8)).Rsh(MustMake(s, int16(1)))
	require.NoError(t, err)
	require.Equal(t, "-4", r.String())
}

func TestTrap(t *testing.T) {
	tiny := Declare[int8](0, 10, policy.Native, policy.StrictTrap)

	_, err := Bind(policy.Add, tiny, tiny)
	require.NoError(t, err)

	_, err = Bind(policy.Div, tiny, tiny)
	require.ErrorIs(t, err, policy.ErrTrapped)

	full := Full[int8](policy.Native, policy.StrictTrap)
	_, err = MustMake(full, int8(1)).Add(MustMake(full, int8(1)))
	require.ErrorIs(t, err, policy.ErrTrapped)
}

func TestPolicyComposition(t *testing.T) {
	strict := Native[int32]()
	widest := Full[int32](policy.Widest, policy.StrictException)
	_, err := Bind(policy.Add, strict, widest)
	require.ErrorIs(t, err, policy.ErrPolicyMismatch)

	bare := Full[int32](nil, nil)
	_, err = Bind(policy.Add, bare, bare)
	require.ErrorIs(t, err, policy.ErrPolicyUnset)

	r, err := MustMake(strict, int32(40)).Add(Literal(int32(2)))
	require.NoError(t, err)
	require.Equal(t, "42", r.String())
	require.Equal(t, policy.Native, r.Type().Promotion())
}

func TestCompound(t *testing.T) {
	counter := Declare[uint8](0, 100, policy.Native, policy.StrictException)
	step := Declare[uint8](0, 10, policy.Native, policy.StrictException)

	v := MustMake(counter, uint8(95))
	v, err := v.Compound(policy.Add, MustMake(step, uint8(5)))
	require.NoError(t, err)
	require.Equal(t, counter, v.Type())
	require.Equal(t, "100", v.String())

	_, err = v.Compound(policy.Add, MustMake(step, uint8(1)))
	requireKind(t, err, checked.PositiveOverflow)
}

func TestFormat(t *testing.T) {
	v := MustMake(Native[int16](), int16(-255))
	require.Equal(t, "-255", fmt.Sprintf("%v", v))
	require.Equal(t, "-ff", fmt.Sprintf("%x", v))
	require.Equal(t, " -255", fmt.Sprintf("%5d", v))

	text, err := v.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "-255", string(text))
}
