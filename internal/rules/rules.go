package rules

import (
	"encoding"
	"fmt"
	"strings"
)

// Rule represents a safelint rule code (SFN-series).
type Rule int

const (
	ruleInvalid Rule = iota

	SFN000InvalidRange
	SFN010PolicyUnresolved
	SFN020TrapReachable
	SFN030NeverFits
	SFN040UninitializedTrap
	SFN050UnknownPolicy
)

var ruleNames = map[Rule]string{
	SFN000InvalidRange:      "InvalidRange",
	SFN010PolicyUnresolved:  "PolicyUnresolved",
	SFN020TrapReachable:     "TrapReachable",
	SFN030NeverFits:         "NeverFits",
	SFN040UninitializedTrap: "UninitializedTrap",
	SFN050UnknownPolicy:     "UnknownPolicy",
}

// Code returns the code of the rule, like "SFN020".
func (r Rule) Code() string {
	if _, ok := ruleNames[r]; !ok {
		return fmt.Sprintf("rule-unknown(%d)", r)
	}

	return fmt.Sprintf("SFN%03d", 10*(int(r)-1))
}

// String returns the canonical code and short name of the rule.
// Example: "SFN000: InvalidRange"
func (r Rule) String() string {
	name, ok := ruleNames[r]
	if !ok {
		return fmt.Sprintf("rule-unknown(%d)", r)
	}

	return r.Code() + ": " + name
}

// Description returns the human-readable explanation of the rule.
func (r Rule) Description() string {
	switch r {
	case SFN000InvalidRange:
		return "Declared minimum is above the declared maximum."
	case SFN010PolicyUnresolved:
		return "Operand policies are both unset or differ."
	case SFN020TrapReachable:
		return "Operation may fail while its exception policy traps the failure."
	case SFN030NeverFits:
		return "Source value or range never fits the safe type."
	case SFN040UninitializedTrap:
		return "Default value requested while uninitialized values are trapped."
	case SFN050UnknownPolicy:
		return "Policy expression cannot be evaluated statically."
	default:
		return fmt.Sprintf("unknown-rule(%d)", r)
	}
}

var (
	_ encoding.TextMarshaler   = Rule(0)
	_ encoding.TextUnmarshaler = (*Rule)(nil)
)

// MarshalText renders the rule code.
func (r Rule) MarshalText() ([]byte, error) {
	if _, ok := ruleNames[r]; !ok {
		return nil, fmt.Errorf("cannot marshal invalid Rule(%d)", int(r))
	}

	return []byte(r.Code()), nil
}

// UnmarshalText accepts either a code (SFN020) or a short name (TrapReachable).
func (r *Rule) UnmarshalText(rawtext []byte) error {
	text := strings.TrimSpace(string(rawtext))
	for k, name := range ruleNames {
		if text == k.Code() || text == name {
			*r = k
			return nil
		}
	}

	return fmt.Errorf("unknown rule %q", text)
}

// Canonical constructors.

func InvalidRange() Rule      { return SFN000InvalidRange }
func PolicyUnresolved() Rule  { return SFN010PolicyUnresolved }
func TrapReachable() Rule     { return SFN020TrapReachable }
func NeverFits() Rule         { return SFN030NeverFits }
func UninitializedTrap() Rule { return SFN040UninitializedTrap }
func UnknownPolicy() Rule     { return SFN050UnknownPolicy }
