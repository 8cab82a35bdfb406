// Package order contains the order aggregate and its value objects.
// The aggregate is the sole writer of an order's status, payment, and
// delivery fields: every state change goes through a validated method on
// Order, and the persistence layer only stores what the aggregate produced.
//
// Lifecycle: Placed -> Cooking -> Ready -> OutForDelivery -> Delivered.
// Status moves strictly forward, one step at a time, with one exception:
// MarkDelivered closes the lifecycle from any non-terminal status, so a
// courier confirming a handover always wins even when intermediate steps
// were never recorded.
package order
