package order

import (
	"errors"
	"fmt"

	"tableside/internal/pkg/errs"
)

// ErrInvalidTransition is returned when a requested status change is not
// allowed by the state machine. The wrapped detail names the attempted
// transition; callers classify with errors.Is.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
// It implements a linear state machine with defined transitions to ensure
// orders follow the kitchen workflow.
//
// State transitions:
//
//	New ──> InProgress ──> Fulfilled
//
// No transition skips a state and no transition moves backward. Fulfilled is
// terminal. Merging new line items into an order resets its status to New,
// which is a property of the Order aggregate rather than of the machine
// itself (see Order.AddItems).
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when an order is first created, and the
	// status an order returns to when new line items are merged into it.
	// Only New orders accept merges from subsequent carts.
	New

	// InProgress indicates the kitchen has begun preparing the order.
	InProgress

	// Fulfilled indicates the kitchen has marked the order ready.
	// This is a final state with no further transitions allowed.
	Fulfilled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		New:        "New",
		InProgress: "InProgress",
		Fulfilled:  "Fulfilled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "New",
		InProgress: "InProgress",
		Fulfilled:  "Fulfilled",
	}
}

// StatusFromString parses a status name as used in persistence and API
// payloads. Returns an error for names outside {New, InProgress, Fulfilled}.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: New, InProgress, Fulfilled.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOpen reports whether an order in this status is still open,
// i.e. not yet Fulfilled. Open orders are candidates for the per-table
// place-or-merge lookup.
func (s Status) IsOpen() bool {
	return s == New || s == InProgress
}

// Start transitions the status to InProgress ("kitchen begins preparation").
//
// Valid transitions:
//   - New -> InProgress
//
// Returns:
//   - (InProgress, nil) on valid transition
//   - (0, ErrInvalidTransition) otherwise
func (s Status) Start() (Status, error) {
	if s != New {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, InProgress)
	}
	return InProgress, nil
}

// Fulfill transitions the status to Fulfilled ("kitchen marks ready").
//
// Valid transitions:
//   - InProgress -> Fulfilled
//
// Returns:
//   - (Fulfilled, nil) on valid transition
//   - (0, ErrInvalidTransition) otherwise
func (s Status) Fulfill() (Status, error) {
	if s != InProgress {
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, Fulfilled)
	}
	return Fulfilled, nil
}

// TransitionTo validates a requested transition to an arbitrary target status
// and returns the new status. Only the two forward steps of the machine are
// legal; everything else, including no-op transitions and any transition out
// of Fulfilled, fails with ErrInvalidTransition and leaves the caller's state
// untouched.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	switch target {
	case InProgress:
		return s.Start()
	case Fulfilled:
		return s.Fulfill()
	default:
		return 0, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
}
