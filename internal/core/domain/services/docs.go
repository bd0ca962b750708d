// Package services contains stateless domain services of the allocation
// protocol.
//
// BidSelector implements the winner-selection rule: earliest bid timestamp
// wins, ties broken by courier identifier. Keeping the rule here, outside the
// Coordinator, makes the determinism property directly testable against
// arbitrary snapshots.
package services
