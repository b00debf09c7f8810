package order

import (
	"errors"
	"fmt"

	"shop/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for illegal order status transitions.
// Use errors.Is to classify; the concrete error carries the offending edge.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports an attempt to move an order along an edge
// that does not exist in the status graph.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Shipping ──> Delivered ──> Returned
//	   │            │             │             │
//	   └────────────┴─────────────┴─────────────┴──> Cancelled
//
// Cancelled and Returned are terminal: they have no outgoing edges. Delivered
// ends fulfillment but keeps a single outgoing edge, the return.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a validated order request is accepted.
	// The authoritative inventory decrement has already happened at this point.
	Pending

	// Confirmed indicates the order has been acknowledged for fulfillment.
	Confirmed

	// Processing indicates the order is being picked and packed at its branches.
	Processing

	// Shipping indicates the order has been handed to the shipping carrier.
	Shipping

	// Delivered indicates the order reached the customer.
	Delivered

	// Cancelled indicates the order was cancelled before delivery. Terminal.
	Cancelled

	// Returned indicates a delivered order was sent back. Terminal.
	Returned
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipping:   "Shipping",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
		Returned:   "Returned",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Confirmed:  "Confirmed",
		Processing: "Processing",
		Shipping:   "Shipping",
		Delivered:  "Delivered",
		Cancelled:  "Cancelled",
		Returned:   "Returned",
	}
}

// getSuccessors returns the allowed outgoing edges per status.
// Terminal statuses are present with no successors, so a membership check
// distinguishes "terminal" from "unknown".
func getSuccessors() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Confirmed, Cancelled},
		Confirmed:  {Processing, Cancelled},
		Processing: {Shipping, Cancelled},
		Shipping:   {Delivered, Cancelled},
		Delivered:  {Returned},
		Cancelled:  {},
		Returned:   {},
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Processing, Shipping, Delivered,
// Cancelled, Returned. Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses a status name, case-sensitively, into its Status
// value. Returns Unknown with a validation error when the name does not
// denote a valid status.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// IsTerminal reports whether the status has no outgoing edges.
// Unknown is not terminal; it is simply invalid.
func (s Status) IsTerminal() bool {
	successors, ok := getSuccessors()[s]
	return ok && len(successors) == 0
}

// RequiresReason reports whether entering this status requires a non-empty
// status reason. Cancellation and return are the auditable terminal outcomes.
func (s Status) RequiresReason() bool {
	return s == Cancelled || s == Returned
}

// RestoresStock reports whether entering this status credits the reserved
// inventory back to its branches.
func (s Status) RestoresStock() bool {
	return s == Cancelled || s == Returned
}

// CanTransitionTo reports whether target is a direct successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getSuccessors()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to target and returns the new status.
//
// Returns:
//   - (target, nil) when the edge exists in the status graph
//   - (0, *InvalidTransitionError) otherwise, including any move out of a
//     terminal status and any move involving an invalid status value
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, &InvalidTransitionError{From: s, To: target}
	}
	if !s.CanTransitionTo(target) {
		return 0, &InvalidTransitionError{From: s, To: target}
	}
	return target, nil
}
