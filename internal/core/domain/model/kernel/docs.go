// Package kernel contains the shared value objects of the dispatch domain:
// UUID identifiers, non-negative Money amounts, and calendar Day keys.
//
// All types in this package are immutable value objects created through
// validating constructors. Zero values fail Validate, which protects
// aggregates reconstructed from persistence or decoded from the wire from
// carrying half-initialized identifiers or amounts.
package kernel
