package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a job. It implements a state
// machine with defined transitions so jobs follow the dispatch workflow.
//
// State transitions:
//
//	pending ──> assigned ──> in_progress ──> completed
//	    │           │  │          │
//	    │           └──┘          │
//	    │     (reassignment)      │
//	    └───────────┴─────────────┴──> cancelled
//
// completed and cancelled are terminal. Only the five named values are
// legal; no other value parses, persists, or broadcasts.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every created job, regardless of
	// what the creation request asked for.
	Pending

	// Assigned indicates a driver has been given the job.
	Assigned

	// InProgress indicates the driver is actively working the job.
	InProgress

	// Completed indicates the work is done. Terminal.
	Completed

	// Cancelled indicates the job was called off. Terminal, reachable from
	// any non-terminal status.
	Cancelled
)

// getStatusStrings maps all Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Assigned:   "assigned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings maps only the legal Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Assigned:   "assigned",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

// StatusFromString parses a status from its wire representation. Any string
// other than the five legal values yields a ValidationError.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValidationErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the five legal values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValidationErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the wire representation of the status. Implements
// fmt.Stringer; safe on any value, invalid ones render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the transition from s to next is legal.
//
// Legal transitions:
//   - pending → assigned
//   - assigned → assigned (reassignment to a different driver)
//   - assigned → in_progress
//   - in_progress → completed
//   - any non-terminal → cancelled
//
// Transitions never move backwards and never leave a terminal status.
func (s Status) CanTransitionTo(next Status) bool {
	if s.Validate() != nil || next.Validate() != nil {
		return false
	}

	if next == Cancelled {
		return !s.IsTerminal()
	}

	switch s {
	case Pending:
		return next == Assigned
	case Assigned:
		return next == Assigned || next == InProgress
	case InProgress:
		return next == Completed
	default:
		return false
	}
}

// TransitionTo validates and performs the transition from s to next.
// Returns the new status, or a ValidationError if the transition is not
// allowed from the current status.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}

	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewValidationErrorWithCause("status",
			fmt.Errorf("cannot transition from %s to %s", s, next))
	}

	return next, nil
}
