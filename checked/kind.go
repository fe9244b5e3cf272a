package checked

import (
	"encoding"
	"fmt"
)

// ErrorKind is an outcome of a checked operation.
type ErrorKind int

const (
	Success ErrorKind = iota

	PositiveOverflow
	NegativeOverflow
	Underflow
	RangeError
	DomainError
	PrecisionOverflow
	NegativeValueShift
	NegativeShift
	ShiftTooLarge
	UninitializedValue
)

var errorKindNames = map[ErrorKind]string{
	Success:            "success",
	PositiveOverflow:   "positive_overflow",
	NegativeOverflow:   "negative_overflow",
	Underflow:          "underflow",
	RangeError:         "range_error",
	DomainError:        "domain_error",
	PrecisionOverflow:  "precision_overflow",
	NegativeValueShift: "negative_value_shift",
	NegativeShift:      "negative_shift",
	ShiftTooLarge:      "shift_too_large",
	UninitializedValue: "uninitialized_value",
}

func (k ErrorKind) String() string {
	v, ok := errorKindNames[k]
	if !ok {
		return fmt.Sprintf("error-kind-invalid(%d)", int(k))
	}

	return v
}

// Description returns the human-readable explanation of the kind.
func (k ErrorKind) Description() string {
	switch k {
	case Success:
		return "no exception"
	case PositiveOverflow:
		return "positive overflow"
	case NegativeOverflow:
		return "negative overflow"
	case Underflow:
		return "underflow"
	case RangeError:
		return "range error"
	case DomainError:
		return "domain error"
	case PrecisionOverflow:
		return "precision overflow"
	case NegativeValueShift:
		return "negative value shift"
	case NegativeShift:
		return "negative shift"
	case ShiftTooLarge:
		return "shift too large"
	case UninitializedValue:
		return "uninitialized value"
	default:
		return fmt.Sprintf("unknown error kind(%d)", int(k))
	}
}

var _ encoding.TextUnmarshaler = (*ErrorKind)(nil)

// UnmarshalText for setting values with configs, CLI, etc.
func (k *ErrorKind) UnmarshalText(b []byte) error {
	text := string(b)
	for kk, v := range errorKindNames {
		if v == text {
			*k = kk
			return nil
		}
	}

	return fmt.Errorf("unknown error kind %q", text)
}

// MarshalText pairs UnmarshalText.
func (k ErrorKind) MarshalText() ([]byte, error) {
	v, ok := errorKindNames[k]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid ErrorKind(%d)", int(k))
	}

	return []byte(v), nil
}

// Unbounded tells if the kind stands for a value beyond one of the
// representation bounds: negative overflow is below everything and positive
// overflow is above everything. Other failures have no place on the number line.
func (k ErrorKind) Unbounded() bool {
	return k == PositiveOverflow || k == NegativeOverflow
}
