package policy

import (
	"encoding"
	"fmt"

	"github.com/sirkon/safenum/checked"
)

// Action is what happens when a failure of some category is detected.
type Action int

const (
	actionInvalid Action = iota

	// Ignore silently falls back to the native unchecked result.
	Ignore

	// Raise returns a typed error to the caller.
	Raise

	// Trap rejects any operation that can fail at all, regardless of the
	// actual values. Derivations reaching it are refused when operand types
	// are combined and the safelint analyzer reports them before the program
	// is built.
	Trap
)

var actionValueMap = map[Action]string{
	Ignore: "ignore",
	Raise:  "raise",
	Trap:   "trap",
}

func (a Action) String() string {
	v, ok := actionValueMap[a]
	if !ok {
		return fmt.Sprintf("action-invalid(%d)", int(a))
	}

	return v
}

var (
	_ encoding.TextMarshaler   = Action(0)
	_ encoding.TextUnmarshaler = (*Action)(nil)
)

// MarshalText to put actions in configs.
func (a Action) MarshalText() ([]byte, error) {
	v, ok := actionValueMap[a]
	if !ok {
		return nil, fmt.Errorf("cannot marshal invalid Action(%d)", int(a))
	}

	return []byte(v), nil
}

// UnmarshalText for setting values with configs, CLI, etc.
func (a *Action) UnmarshalText(rawtext []byte) error {
	text := string(rawtext)
	for k, v := range actionValueMap {
		if v == text {
			*a = k
			return nil
		}
	}

	return fmt.Errorf("unknown action %q", text)
}

// Category groups failure kinds an exception policy reacts on.
type Category int

const (
	// NoAction is a category of a success.
	NoAction Category = iota

	ArithmeticError
	ImplementationDefinedBehavior
	UndefinedBehavior
	UninitializedValue
)

var categoryValueMap = map[Category]string{
	NoAction:                      "no_action",
	ArithmeticError:               "arithmetic_error",
	ImplementationDefinedBehavior: "implementation_defined_behavior",
	UndefinedBehavior:             "undefined_behavior",
	UninitializedValue:            "uninitialized_value",
}

func (c Category) String() string {
	v, ok := categoryValueMap[c]
	if !ok {
		return fmt.Sprintf("category-invalid(%d)", int(c))
	}

	return v
}

// Classify maps every failure kind to its category.
func Classify(kind checked.ErrorKind) Category {
	switch kind {
	case checked.Success:
		return NoAction
	case checked.PositiveOverflow,
		checked.NegativeOverflow,
		checked.Underflow,
		checked.RangeError,
		checked.DomainError,
		checked.PrecisionOverflow:
		return ArithmeticError
	case checked.NegativeValueShift,
		checked.NegativeShift,
		checked.ShiftTooLarge:
		return ImplementationDefinedBehavior
	case checked.UninitializedValue:
		return UninitializedValue
	default:
		panic(fmt.Errorf("classify unknown error kind %s", kind))
	}
}
