package repr

import (
	"fmt"
	"strconv"
)

// Integer values travel through the untyped layers as 64 bit patterns:
// signed kinds are sign-extended, unsigned ones are zero-extended.

// BitsOf returns the 64 bit pattern of an integer value.
func BitsOf[R Integer](v R) uint64 {
	return uint64(v)
}

// FromBits restores an integer value from its 64 bit pattern.
func FromBits[R Integer](b uint64) R {
	return R(b)
}

// Normalize truncates a pattern to the width of k and extends it back.
func (k Kind) Normalize(b uint64) uint64 {
	switch k {
	case Int8:
		return uint64(int8(b))
	case Int16:
		return uint64(int16(b))
	case Int32:
		return uint64(int32(b))
	case Uint8:
		return uint64(uint8(b))
	case Uint16:
		return uint64(uint16(b))
	case Uint32:
		return uint64(uint32(b))
	default:
		return b
	}
}

// Negative checks if the pattern holds a negative value of kind k.
func (k Kind) Negative(b uint64) bool {
	return k.Signed() && int64(b) < 0
}

// Compare compares two integer values of possibly different kinds
// without sign confusion. Returns -1, 0 or 1.
func Compare(a uint64, ak Kind, b uint64, bk Kind) int {
	an := ak.Negative(a)
	bn := bk.Negative(b)
	switch {
	case an && !bn:
		return -1
	case !an && bn:
		return 1
	case an && bn:
		return cmpInt(int64(a), int64(b))
	default:
		return cmpUint(a, b)
	}
}

// Fits checks if the pattern of kind from holds a value representable with kind k.
func (k Kind) Fits(b uint64, from Kind) bool {
	if from.Negative(b) {
		return k.Signed() && int64(b) >= k.MinInt64()
	}

	return b <= k.MaxUint64()
}

// Format renders the pattern as a decimal number.
func (k Kind) Format(b uint64) string {
	if k.Signed() {
		return strconv.FormatInt(int64(b), 10)
	}

	return strconv.FormatUint(b, 10)
}

// Parse reads a decimal number of kind k into its pattern.
func (k Kind) Parse(s string) (uint64, error) {
	if !k.IsInteger() {
		return 0, fmt.Errorf("parse %s: not an integer kind", k)
	}

	if k.Signed() {
		v, err := strconv.ParseInt(s, 10, k.Bits())
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}

	return strconv.ParseUint(s, 10, k.Bits())
}

// Lowest returns the pattern of the lowest value of an integer kind.
func (k Kind) Lowest() uint64 {
	return uint64(k.MinInt64())
}

// Highest returns the pattern of the highest value of an integer kind.
func (k Kind) Highest() uint64 {
	return k.MaxUint64()
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
