// Package tribool provides three-valued logic used for range comparisons.
package tribool

import "fmt"

// Value is either true, false or indeterminate.
type Value int8

const (
	False Value = iota
	True
	Indeterminate
)

// Of lifts a bool.
func Of(v bool) Value {
	if v {
		return True
	}

	return False
}

func (v Value) String() string {
	switch v {
	case False:
		return "false"
	case True:
		return "true"
	case Indeterminate:
		return "indeterminate"
	default:
		return fmt.Sprintf("tribool-invalid(%d)", int8(v))
	}
}

// IsTrue reports whether the value is definitely true.
func (v Value) IsTrue() bool { return v == True }

// IsFalse reports whether the value is definitely false.
func (v Value) IsFalse() bool { return v == False }

// IsIndeterminate reports whether the value is neither true nor false.
func (v Value) IsIndeterminate() bool { return v == Indeterminate }

// Not negates the value, indeterminate stays indeterminate.
func (v Value) Not() Value {
	switch v {
	case True:
		return False
	case False:
		return True
	default:
		return Indeterminate
	}
}

// And computes Kleene conjunction.
func (v Value) And(o Value) Value {
	if v == False || o == False {
		return False
	}
	if v == True && o == True {
		return True
	}

	return Indeterminate
}

// Or computes Kleene disjunction.
func (v Value) Or(o Value) Value {
	if v == True || o == True {
		return True
	}
	if v == False && o == False {
		return False
	}

	return Indeterminate
}
