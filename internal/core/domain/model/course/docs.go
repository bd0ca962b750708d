// Package course contains the Course aggregate and its allocation Status
// state machine.
//
// A course is a single delivery task offered to couriers: pickup, dropoff and
// reward, announced once and never mutated afterwards. The aggregate also
// owns the allocation outcome. The Coordinator is the single writer of that
// outcome; agents and reporting surfaces only ever observe it through
// broadcast events or the allocation log.
//
// Every course ends in exactly one of three terminal states: NoInterest
// (nobody bid), Confirmed (the selected courier acknowledged in time) or
// Expired (the selected courier forfeited). There is no re-offer to the
// runner-up after a forfeit.
package course
