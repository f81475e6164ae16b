// Package order defines the order status vocabulary and the transition
// policy consulted by the admin commands and the TUI. The table mirrors the
// backend rule; the server stays authoritative and its rejections win.
package order

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of an order as reported by the backend.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusProcessing     Status = "PROCESSING"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// ErrInvalidTransition is returned when a requested transition is not in the
// allowed set for the current status. It is raised before any network call.
var ErrInvalidTransition = errors.New("order: invalid status transition")

// transitions maps each status to the statuses an administrator may move the
// order to. SHIPPED has no admin transitions; delivery confirmation is a
// customer action.
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusPaid, StatusCancelled},
	StatusPaid:           {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// progressSteps is the linear fulfillment sequence used for progress
// rendering. CANCELLED is a separate branch and never appears here.
var progressSteps = []Status{
	StatusPendingPayment,
	StatusPaid,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// Label returns a human-readable form for terminal output.
func (s Status) Label() string {
	switch s {
	case StatusPendingPayment:
		return "Pending payment"
	case StatusPaid:
		return "Paid"
	case StatusProcessing:
		return "Processing"
	case StatusShipped:
		return "Shipped"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// NextStatuses returns the statuses an administrator may move an order in
// status s to. The returned slice is a copy; callers may reorder it.
func NextStatuses(s Status) []Status {
	next := transitions[s]
	if len(next) == 0 {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether an admin move from one status to another is
// allowed by the table.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CheckTransition validates a requested move and returns ErrInvalidTransition
// with both statuses named when it is not allowed.
func CheckTransition(from, to Status) error {
	if !from.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, string(from))
	}
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, string(to))
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// ProgressSteps returns the linear fulfillment sequence for progress bars.
func ProgressSteps() []Status {
	out := make([]Status, len(progressSteps))
	copy(out, progressSteps)
	return out
}

// ProgressIndex returns the position of s in the linear sequence. ok is false
// for CANCELLED and unknown statuses, which must not be drawn on the bar.
func ProgressIndex(s Status) (int, bool) {
	for i, step := range progressSteps {
		if step == s {
			return i, true
		}
	}
	return 0, false
}

// All returns every known status in lifecycle order, cancelled last.
func All() []Status {
	out := ProgressSteps()
	return append(out, StatusCancelled)
}
