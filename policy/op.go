package policy

import (
	"encoding"
	"fmt"
)

// Op is a binary operator.
type Op int

const (
	opInvalid Op = iota

	Add
	Sub
	Mul
	Div
	Mod
	Lsh
	Rsh
	Or
	And
	Xor
	Less
	Greater
	LessEqual
	GreaterEqual
	Equal
	NotEqual
)

var opValueMap = map[Op]string{
	Add:          "add",
	Sub:          "sub",
	Mul:          "mul",
	Div:          "div",
	Mod:          "mod",
	Lsh:          "lsh",
	Rsh:          "rsh",
	Or:           "or",
	And:          "and",
	Xor:          "xor",
	Less:         "less",
	Greater:      "greater",
	LessEqual:    "less_equal",
	GreaterEqual: "greater_equal",
	Equal:        "equal",
	NotEqual:     "not_equal",
}

var opSymbols = map[Op]string{
	Add:          "+",
	Sub:          "-",
	Mul:          "*",
	Div:          "/",
	Mod:          "%",
	Lsh:          "<<",
	Rsh:          ">>",
	Or:           "|",
	And:          "&",
	Xor:          "^",
	Less:         "<",
	Greater:      ">",
	LessEqual:    "<=",
	GreaterEqual: ">=",
	Equal:        "==",
	NotEqual:     "!=",
}

func (o Op) String() string {
	v, ok := opValueMap[o]
	if !ok {
		return fmt.Sprintf("op-invalid(%d)", int(o))
	}

	return v
}

// Symbol returns Go operator token.
func (o Op) Symbol() string {
	return opSymbols[o]
}

// Relational tells if the operator yields a boolean.
func (o Op) Relational() bool {
	return o >= Less && o <= NotEqual
}

// Bitwise tells if the operator works on bits rather than on numbers.
func (o Op) Bitwise() bool {
	return o == Or || o == And || o == Xor
}

// Shift tells if the operator is a shift.
func (o Op) Shift() bool {
	return o == Lsh || o == Rsh
}

var _ encoding.TextUnmarshaler = (*Op)(nil)

// UnmarshalText for setting values with configs, CLI, etc.
func (o *Op) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range opValueMap {
		if v == text || opSymbols[k] == text {
			*o = k
			return nil
		}
	}

	return fmt.Errorf("unknown operator %q", text)
}
