package safenum

import (
	"encoding"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirkon/safenum/checked"
	"github.com/sirkon/safenum/repr"
)

// Value is a value of a safe type. Zero Value is uninitialized: it has no
// type and every operation on it fails.
type Value struct {
	t    *Type
	bits uint64
}

// Type returns the type of the value, nil for uninitialized values.
func (v Value) Type() *Type {
	return v.t
}

// Valid tells if the value was initialized.
func (v Value) Valid() bool {
	return v.t != nil
}

// Convert extracts the value as R. Conversions which cannot change the value
// are unchecked, others are validated against the value's exception policy.
func Convert[R repr.Integer](v Value) (R, error) {
	if v.t == nil {
		return 0, errUninitialized("convert")
	}

	t := v.t
	rk := repr.KindOf[R]()
	switch {
	case rk.Fits(t.min, t.kind) && rk.Fits(t.max, t.kind):
		return repr.FromBits[R](v.bits), nil
	case repr.Compare(t.max, t.kind, rk.Lowest(), rk) < 0 || repr.Compare(t.min, t.kind, rk.Highest(), rk) > 0:
		return 0, fmt.Errorf("%s into %s: %w", t, rk, ErrDisjoint)
	}

	if !rk.Fits(v.bits, t.kind) {
		kind := checked.PositiveOverflow
		if t.kind.Negative(v.bits) {
			kind = checked.NegativeOverflow
		}
		msg := fmt.Sprintf("value %s out of range for %s", v, rk)
		if err := t.exc.Dispatch(kind, msg); err != nil {
			return 0, err
		}
	}

	return repr.FromBits[R](v.bits), nil
}

func (v Value) String() string {
	if v.t == nil {
		return "<uninitialized>"
	}

	return v.t.kind.Format(v.bits)
}

var _ fmt.Formatter = Value{}

// Format supports integer verbs of fmt with the value's native signedness.
func (v Value) Format(f fmt.State, verb rune) {
	format := fmt.FormatString(f, verb)
	switch {
	case v.t == nil || verb == 's' || verb == 'q' || verb == 'v':
		_, _ = fmt.Fprintf(f, format, v.String())
	case v.t.kind.Signed():
		_, _ = fmt.Fprintf(f, format, int64(v.bits))
	default:
		_, _ = fmt.Fprintf(f, format, v.bits)
	}
}

var _ encoding.TextMarshaler = Value{}

// MarshalText renders the value as a decimal number.
func (v Value) MarshalText() ([]byte, error) {
	if v.t == nil {
		return nil, errUninitialized("marshal")
	}

	return []byte(v.String()), nil
}

// parse reads text as a 64 bit value. Negative text for an unsigned type is
// a domain error.
func (t *Type) parse(s string) (uint64, repr.Kind, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+"); ok && !strings.HasPrefix(rest, "-") && !strings.HasPrefix(rest, "+") {
		s = rest
	}

	k := repr.Uint64
	if t.kind.Signed() || strings.HasPrefix(s, "-") {
		k = repr.Int64
	}

	b, err := k.Parse(s)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			return 0, 0, fmt.Errorf("parse %q as %s: %w", s, t, err)
		}

		kind, clamp := checked.PositiveOverflow, k.Highest()
		if strings.HasPrefix(s, "-") {
			kind, clamp = checked.NegativeOverflow, k.Lowest()
		}
		if err := t.exc.Dispatch(kind, fmt.Sprintf("error in text input: %q is out of %s", s, k)); err != nil {
			return 0, 0, err
		}
		b = clamp
	}

	if !t.kind.Signed() && k.Negative(b) {
		msg := fmt.Sprintf("error in text input: negative %q for unsigned %s", s, t)
		if err := t.exc.Dispatch(checked.DomainError, msg); err != nil {
			return 0, 0, err
		}
	}

	return b, k, nil
}
