package order

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the kitchen-to-doorstep workflow.
//
// State transitions:
//
//	Placed ──> Cooking ──> Ready ──> OutForDelivery ──> Delivered
//	   │          │          │              │               ▲
//	   └──────────┴──────────┴──────────────┴───────────────┘
//	                 (Deliver may jump from any non-terminal state)
//
// Advance only accepts the immediate next status: skipping ahead and
// moving backward are both invalid. Deliver is the single exception,
// jumping straight to Delivered from any non-terminal status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status assigned at checkout.
	// The restaurant has not started preparing the order yet.
	Placed

	// Cooking indicates the restaurant accepted the order and is preparing it.
	Cooking

	// Ready indicates the food is packed and waiting for a courier pickup.
	Ready

	// OutForDelivery indicates a courier picked the order up and is en route.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Placed:         "Placed",
		Cooking:        "Cooking",
		Ready:          "Ready",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:         "Placed",
		Cooking:        "Cooking",
		Ready:          "Ready",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
	}
}

// StatusFromString parses a status name as it appears in API requests
// and persisted records. Returns an error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status name", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Placed, Cooking, Ready, OutForDelivery, Delivered.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is the final lifecycle state.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Advance transitions the status one step forward in the lifecycle.
//
// The target must be exactly the next status in the sequence: advancing
// Placed to Ready (skipping Cooking) fails, as does any backward move or
// any transition out of Delivered.
//
// Returns:
//   - (to, nil) on valid transition
//   - (0, *InvalidTransitionError) otherwise
func (s Status) Advance(to Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() || to != s+1 {
		return 0, NewInvalidTransitionError(s, to)
	}

	return to, nil
}

// Deliver transitions the status directly to Delivered.
//
// Valid from any non-terminal status: a courier marking an order as handed
// over always closes the lifecycle, even if intermediate statuses were
// never recorded. Fails only when the order is already Delivered.
func (s Status) Deliver() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, NewInvalidTransitionError(s, Delivered)
	}

	return Delivered, nil
}
