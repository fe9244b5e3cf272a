// Package safenum implements bounded integers: values guaranteed to lie within
// a declared range of a fixed width representation.
//
// A *Type couples a representation, a range and two policies: a promotion
// policy choosing the representation binary operations compute in and an
// exception policy telling what happens on failures. Combining two types with
// an operator is a derivation computed once and cached:
//
//	percent := safenum.Declare[uint8](0, 100, policy.Native, policy.StrictException)
//	sum := safenum.MustBind(policy.Add, percent, percent)
//	sum.Result()            // uint8[0,200]
//	sum.ExceptionPossible() // false
//
// Operations whose result ranges fit the representation run without any
// checks. Others run checked and dispatch failures to the exception policy:
// ignored failures leave the natively computed value, raised ones are
// returned as errors matching policy.ErrRaised. Operations which may fail
// under a Trap action are rejected by Bind with an error matching
// policy.ErrTrapped before any value is involved.
//
// Zero Value is uninitialized, operations on it fail with ErrUninitialized.
package safenum
