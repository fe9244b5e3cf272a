package safenum

import (
	"github.com/sirkon/safenum/policy"
)

func (v Value) apply(op policy.Op, o Value) (Value, error) {
	b, err := Bind(op, v.t, o.t)
	if err != nil {
		return Value{}, err
	}

	return b.Apply(v, o)
}

func (v Value) compare(op policy.Op, o Value) (bool, error) {
	b, err := Bind(op, v.t, o.t)
	if err != nil {
		return false, err
	}

	return b.Compare(v, o)
}

// Add returns v + o.
func (v Value) Add(o Value) (Value, error) { return v.apply(policy.Add, o) }

// Sub returns v - o.
func (v Value) Sub(o Value) (Value, error) { return v.apply(policy.Sub, o) }

// Mul returns v * o.
func (v Value) Mul(o Value) (Value, error) { return v.apply(policy.Mul, o) }

// Div returns v / o.
func (v Value) Div(o Value) (Value, error) { return v.apply(policy.Div, o) }

// Mod returns v % o.
func (v Value) Mod(o Value) (Value, error) { return v.apply(policy.Mod, o) }

// Lsh returns v << o.
func (v Value) Lsh(o Value) (Value, error) { return v.apply(policy.Lsh, o) }

// Rsh returns v >> o.
func (v Value) Rsh(o Value) (Value, error) { return v.apply(policy.Rsh, o) }

// Or returns v | o.
func (v Value) Or(o Value) (Value, error) { return v.apply(policy.Or, o) }

// And returns v & o.
func (v Value) And(o Value) (Value, error) { return v.apply(policy.And, o) }

// Xor returns v ^ o.
func (v Value) Xor(o Value) (Value, error) { return v.apply(policy.Xor, o) }

// Less returns v < o.
func (v Value) Less(o Value) (bool, error) { return v.compare(policy.Less, o) }

// Greater returns v > o.
func (v Value) Greater(o Value) (bool, error) { return v.compare(policy.Greater, o) }

// LessEqual returns v <= o.
func (v Value) LessEqual(o Value) (bool, error) { return v.compare(policy.LessEqual, o) }

// GreaterEqual returns v >= o.
func (v Value) GreaterEqual(o Value) (bool, error) { return v.compare(policy.GreaterEqual, o) }

// Equal returns v == o.
func (v Value) Equal(o Value) (bool, error) { return v.compare(policy.Equal, o) }

// NotEqual returns v != o.
func (v Value) NotEqual(o Value) (bool, error) { return v.compare(policy.NotEqual, o) }

// Compound implements assignment operators like +=: the result of v op o is
// converted back into the type of v.
func (v Value) Compound(op policy.Op, o Value) (Value, error) {
	r, err := v.apply(op, o)
	if err != nil {
		return Value{}, err
	}

	return v.t.From(r)
}
