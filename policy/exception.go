package policy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/safenum/checked"
)

var (
	// ErrRaised is matched by failures of categories set to Raise.
	ErrRaised = errors.New("safe arithmetic failure")

	// ErrTrapped is matched by failures of categories set to Trap.
	ErrTrapped = errors.New("operation rejected by trap policy")
)

// Exception maps failure categories to actions.
type Exception struct {
	ArithmeticError               Action `yaml:"arithmetic_error"`
	ImplementationDefinedBehavior Action `yaml:"implementation_defined_behavior"`
	UndefinedBehavior             Action `yaml:"undefined_behavior"`
	UninitializedValue            Action `yaml:"uninitialized_value"`
}

// Predefined exception policies.
var (
	LooseException  = &Exception{Raise, Ignore, Ignore, Ignore}
	LooseTrap       = &Exception{Trap, Ignore, Ignore, Ignore}
	StrictException = &Exception{Raise, Raise, Raise, Ignore}
	StrictTrap      = &Exception{Trap, Trap, Trap, Trap}

	// Default is used where no exception policy was given at all.
	Default = StrictException
)

// Presets lists predefined exception policies by their config names.
var Presets = map[string]*Exception{
	"loose_exception":  LooseException,
	"loose_trap":       LooseTrap,
	"strict_exception": StrictException,
	"strict_trap":      StrictTrap,
	"default":          Default,
}

// Action returns an action for the category. Nil policy acts like Default.
func (e *Exception) Action(c Category) Action {
	if e == nil {
		e = Default
	}

	switch c {
	case ArithmeticError:
		return e.ArithmeticError
	case ImplementationDefinedBehavior:
		return e.ImplementationDefinedBehavior
	case UndefinedBehavior:
		return e.UndefinedBehavior
	case UninitializedValue:
		return e.UninitializedValue
	default:
		return Ignore
	}
}

// Dispatch reacts on a failure of the given kind.
func (e *Exception) Dispatch(kind checked.ErrorKind, msg string) error {
	c := Classify(kind)
	if c == NoAction {
		return nil
	}

	a := e.Action(c)
	if a == Ignore {
		return nil
	}

	return &Error{
		Kind:     kind,
		Category: c,
		Action:   a,
		Message:  msg,
	}
}

// Dispatch reacts on a failure of the given kind with the exception policy e.
func Dispatch(e *Exception, kind checked.ErrorKind, msg string) error {
	return e.Dispatch(kind, msg)
}

// Equal compares policies by their actions.
func (e *Exception) Equal(o *Exception) bool {
	if e == nil || o == nil {
		return e == o
	}

	return *e == *o
}

func (e *Exception) String() string {
	if e == nil {
		return "<unset>"
	}

	for _, name := range []string{"strict_exception", "strict_trap", "loose_exception", "loose_trap"} {
		if e.Equal(Presets[name]) {
			return name
		}
	}

	return fmt.Sprintf(
		"exception(%s=%s, %s=%s, %s=%s, %s=%s)",
		ArithmeticError, e.ArithmeticError,
		ImplementationDefinedBehavior, e.ImplementationDefinedBehavior,
		UndefinedBehavior, e.UndefinedBehavior,
		UninitializedValue, e.UninitializedValue,
	)
}

var _ yaml.Unmarshaler = (*Exception)(nil)

// UnmarshalYAML accepts either a preset name or a full mapping of categories.
func (e *Exception) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p, ok := Presets[strings.TrimSpace(node.Value)]
		if !ok {
			return fmt.Errorf("unknown exception policy preset %q", node.Value)
		}
		*e = *p
		return nil
	}

	type plain Exception
	var v plain
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("decode exception policy: %w", err)
	}
	*e = Exception(v)

	return e.validate()
}

// ParseException reads an exception policy from YAML.
func ParseException(data []byte) (*Exception, error) {
	var e Exception
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse exception policy: %w", err)
	}

	return &e, nil
}

// LoadException reads an exception policy from a YAML file.
func LoadException(path string) (*Exception, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exception policy file: %w", err)
	}

	e, err := ParseException(data)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", path, err)
	}

	return e, nil
}

func (e *Exception) validate() error {
	for _, c := range []Category{ArithmeticError, ImplementationDefinedBehavior, UndefinedBehavior, UninitializedValue} {
		if a := e.Action(c); a == actionInvalid {
			return fmt.Errorf("missing action for %s", c)
		}
	}

	return nil
}

// Error is a failure surfaced by a policy.
type Error struct {
	Kind     checked.ErrorKind
	Category Category
	Action   Action
	Message  string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Category, e.Kind.Description())
	}

	return fmt.Sprintf("%s: %s: %s", e.Category, e.Kind.Description(), e.Message)
}

// Unwrap allows matching with ErrRaised or ErrTrapped.
func (e *Error) Unwrap() error {
	if e.Action == Trap {
		return ErrTrapped
	}

	return ErrRaised
}
