// Package repr describes fixed-width numeric representations the safe
// arithmetic is built upon.
package repr

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Integer is a set of integer representations.
type Integer = constraints.Integer

// Float is a set of floating point representations.
type Float = constraints.Float

// Number is a set of all supported representations.
type Number interface {
	constraints.Integer | constraints.Float
}

// Kind identifies a fixed-width representation.
type Kind int

const (
	kindInvalid Kind = iota

	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
)

var kindNames = map[Kind]string{
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

func (k Kind) String() string {
	v, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind-invalid(%d)", int(k))
	}

	return v
}

var (
	_ encoding.TextMarshaler   = Kind(0)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// MarshalText to use kinds in configs.
func (k Kind) MarshalText() ([]byte, error) {
	v, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Kind(%d)", int(k))
	}

	return []byte(v), nil
}

// UnmarshalText to use kinds in configs.
func (k *Kind) UnmarshalText(b []byte) error {
	text := string(b)
	for kk, v := range kindNames {
		if v == text {
			*k = kk
			return nil
		}
	}

	return fmt.Errorf("unknown representation kind %q", text)
}

// Valid checks if this is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Bits returns representation width.
func (k Kind) Bits() int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64:
		return 64
	default:
		panic(fmt.Errorf("bits of %s", k))
	}
}

// Signed tells if the representation can hold negative values.
func (k Kind) Signed() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// IsFloat tells if this is a floating point representation.
func (k Kind) IsFloat() bool {
	return k == Float32 || k == Float64
}

// IsInteger tells if this is an integer representation.
func (k Kind) IsInteger() bool {
	return k.Valid() && !k.IsFloat()
}

// Unsigned returns an unsigned integer kind of the same width.
func (k Kind) Unsigned() Kind {
	switch k {
	case Int8, Uint8:
		return Uint8
	case Int16, Uint16:
		return Uint16
	case Int32, Uint32:
		return Uint32
	case Int64, Uint64:
		return Uint64
	default:
		panic(fmt.Errorf("no unsigned counterpart for %s", k))
	}
}

// MinInt64 returns the lowest value of an integer kind.
func (k Kind) MinInt64() int64 {
	if !k.Signed() {
		return 0
	}

	return -1 << (k.Bits() - 1)
}

// MaxInt64 returns the highest value of an integer kind clamped to the int64 range.
func (k Kind) MaxInt64() int64 {
	if k == Uint64 {
		return math.MaxInt64
	}

	return int64(k.MaxUint64())
}

// MaxUint64 returns the highest value of an integer kind.
func (k Kind) MaxUint64() uint64 {
	if k.Signed() {
		return 1<<(k.Bits()-1) - 1
	}

	return math.MaxUint64 >> (64 - k.Bits())
}

// KindOf returns a kind of R. Named types are resolved through their underlying types.
func KindOf[R Number]() Kind {
	switch reflect.TypeFor[R]().Kind() {
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Int:
		if strconv.IntSize == 32 {
			return Int32
		}
		return Int64
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Uint, reflect.Uintptr:
		if strconv.IntSize == 32 {
			return Uint32
		}
		return Uint64
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	default:
		panic(fmt.Errorf("unsupported representation %s", reflect.TypeFor[R]()))
	}
}

// Min returns the lowest value of R. It is the most negative finite value for floats.
func Min[R Number]() R {
	k := KindOf[R]()
	switch {
	case k == Float32:
		v := -math.MaxFloat32
		return R(v)
	case k == Float64:
		v := -math.MaxFloat64
		return R(v)
	case k.Signed():
		v := k.MinInt64()
		return R(v)
	default:
		return 0
	}
}

// Max returns the highest value of R.
func Max[R Number]() R {
	k := KindOf[R]()
	switch {
	case k == Float32:
		v := math.MaxFloat32
		return R(v)
	case k == Float64:
		v := math.MaxFloat64
		return R(v)
	default:
		v := k.MaxUint64()
		return R(v)
	}
}
