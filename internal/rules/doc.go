// Package rules defines the canonical rule codes (SFN-series) reported by safelint.
//
// Each rule is a property of safe types and their derivations that can be
// decided before the program runs. Codes give findings a stable identity, so
// that they can be reported, filtered in configs and traced across passes.
//
// # Structure
//
// Rule codes follow the format “SFN<NNN>: <Name>” and are grouped by area:
//
//	000–009  Type declarations
//	010–029  Derivations of binary operations
//	030–049  Values entering or being created by safe types
//	050–059  Configuration
//
// Example:
//
//	rules.SFN020TrapReachable.String()      → "SFN020: TrapReachable"
//	rules.SFN020TrapReachable.Description() → "Operation may fail while its exception policy traps the failure."
//
// # Notes
//
//   - Rule identifiers are stable; never renumber existing codes.
//   - Rules are disabled in configs by their codes: SFN030.
package rules
