// Package policy defines how safe values react on failures and which
// representation a binary operation computes in.
//
// There are two kinds of policies:
//
//   - Promotion selects the result representation of an operator given
//     representations of both operands.
//   - Exception maps failure categories to actions: ignore, raise or trap.
//
// Every failure kind belongs to exactly one category:
//
//	positive_overflow, negative_overflow, underflow,
//	range_error, domain_error, precision_overflow    → arithmetic_error
//	negative_value_shift, negative_shift,
//	shift_too_large                                  → implementation_defined_behavior
//	uninitialized_value                              → uninitialized_value
//	success                                          → no_action
//
// Operand policies compose: identical policies compose to themselves,
// an unset policy yields to a set one and two unset policies do not
// compose at all.
package policy
