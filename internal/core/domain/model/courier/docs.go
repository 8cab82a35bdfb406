// Package courier contains the Courier aggregate.
//
// A courier is a delivery worker who can hold at most one active order at a
// time. The busy flag tracks that: the assignment job marks a courier busy
// when it hands them an order, and delivery confirmation frees them again.
package courier
